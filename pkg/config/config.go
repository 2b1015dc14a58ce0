package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	OTP           OTPConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Reports       ReportsConfig
	CORS          CORSConfig
	Worker        WorkerConfig
	Seed          SeedConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VENUEHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"VENUEHUB_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VENUEHUB_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"VENUEHUB_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"VENUEHUB_LOG_WARN_STACK" default:"false"`

	ShutdownTimeout time.Duration `envconfig:"VENUEHUB_SHUTDOWN_TIMEOUT" default:"15s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"VENUEHUB_DB_DSN"`
	Driver string `envconfig:"VENUEHUB_DB_DRIVER" default:"postgres"`

	SQLitePath string `envconfig:"VENUEHUB_SQLITE_PATH" default:"venuehub.db"`

	LegacyHost     string `envconfig:"VENUEHUB_DB_HOST"`
	LegacyPort     int    `envconfig:"VENUEHUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VENUEHUB_DB_USER"`
	LegacyPassword string `envconfig:"VENUEHUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"VENUEHUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"VENUEHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VENUEHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VENUEHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VENUEHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VENUEHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	SlowQueryThreshold time.Duration `envconfig:"VENUEHUB_DB_SLOW_QUERY_THRESHOLD" default:"200ms"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VENUEHUB_REDIS_URL" required:"true"`
	Address      string        `envconfig:"VENUEHUB_REDIS_ADDR"`
	Password     string        `envconfig:"VENUEHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"VENUEHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VENUEHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VENUEHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VENUEHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VENUEHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VENUEHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
	KeyPrefix    string        `envconfig:"VENUEHUB_REDIS_KEY_PREFIX" default:"vh"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"VENUEHUB_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"VENUEHUB_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"VENUEHUB_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"VENUEHUB_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"VENUEHUB_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"VENUEHUB_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"VENUEHUB_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"VENUEHUB_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"VENUEHUB_ARGON_KEY_LEN" default:"32"`
	MinLength        int `envconfig:"VENUEHUB_PASSWORD_MIN_LENGTH" default:"8"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"VENUEHUB_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"VENUEHUB_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"VENUEHUB_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"VENUEHUB_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"VENUEHUB_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"VENUEHUB_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
	OTPWindow          time.Duration `envconfig:"VENUEHUB_AUTH_RATE_LIMIT_OTP_WINDOW" default:"10m"`
	OTPEmailLimit      int           `envconfig:"VENUEHUB_AUTH_RATE_LIMIT_OTP_EMAIL_LIMIT" default:"5"`
	OTPIPLimit         int           `envconfig:"VENUEHUB_AUTH_RATE_LIMIT_OTP_IP_LIMIT" default:"30"`
}

type OTPConfig struct {
	Length         int           `envconfig:"VENUEHUB_OTP_LENGTH" default:"6"`
	TTL            time.Duration `envconfig:"VENUEHUB_OTP_TTL" default:"10m"`
	MaxAttempts    int           `envconfig:"VENUEHUB_OTP_MAX_ATTEMPTS" default:"5"`
	ResendCooldown time.Duration `envconfig:"VENUEHUB_OTP_RESEND_COOLDOWN" default:"60s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"VENUEHUB_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"VENUEHUB_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"VENUEHUB_GCP_PROJECT_ID"`
}

// Enabled reports whether a GCP project has been configured.
func (g GCPConfig) Enabled() bool {
	return strings.TrimSpace(g.ProjectID) != ""
}

type PubSubConfig struct {
	DomainTopic       string `envconfig:"VENUEHUB_PUBSUB_DOMAIN_TOPIC" default:"vh-domain-events"`
	NotificationTopic string `envconfig:"VENUEHUB_PUBSUB_NOTIFICATION_TOPIC" default:"vh-notification-events"`

	NotificationSubscription string `envconfig:"VENUEHUB_PUBSUB_NOTIFICATION_SUBSCRIPTION" default:"vh-notification-mailer"`
}

type WorkerConfig struct {
	IdempotencyTTL time.Duration `envconfig:"VENUEHUB_WORKER_IDEMPOTENCY_TTL" default:"24h"`
}

// SeedConfig holds the credentials cmd/seed writes for the demo accounts.
type SeedConfig struct {
	AdminEmail    string `envconfig:"VENUEHUB_SEED_ADMIN_EMAIL" default:"admin@venuehub.local"`
	AdminPassword string `envconfig:"VENUEHUB_SEED_ADMIN_PASSWORD"`
	UserPassword  string `envconfig:"VENUEHUB_SEED_USER_PASSWORD"`
}

type CORSConfig struct {
	AllowedOrigins []string      `envconfig:"VENUEHUB_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	MaxAge         time.Duration `envconfig:"VENUEHUB_CORS_MAX_AGE" default:"5m"`
}

type ReportsConfig struct {
	BrandName string `envconfig:"VENUEHUB_REPORTS_BRAND_NAME" default:"VenueHub"`
	AutoPrint bool   `envconfig:"VENUEHUB_REPORTS_AUTO_PRINT" default:"true"`
	TimeZone  string `envconfig:"VENUEHUB_REPORTS_TIME_ZONE" default:"UTC"`
}

// Location resolves the configured report time zone, falling back to UTC.
func (r ReportsConfig) Location() *time.Location {
	name := strings.TrimSpace(r.TimeZone)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if useSQLite {
		db.Driver = DriverSQLite
		if db.DSN == "" {
			db.DSN = db.SQLitePath
		}
		return nil
	}
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

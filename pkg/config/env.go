package config

const (
	EnvPrefix = "VENUEHUB"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnvAppEnv = "VENUEHUB_APP_ENV"
	EnvPort   = "VENUEHUB_APP_PORT"

	EnvDBDSN  = "VENUEHUB_DB_DSN"
	EnvDBHost = "VENUEHUB_DB_HOST"
	EnvDBUser = "VENUEHUB_DB_USER"
	EnvDBName = "VENUEHUB_DB_NAME"

	EnvUseSQLite  = "VENUEHUB_USE_SQLITE"
	EnvSQLitePath = "VENUEHUB_SQLITE_PATH"

	EnvRedisURL = "VENUEHUB_REDIS_URL"

	EnvJWTSecret              = "VENUEHUB_JWT_SECRET"
	EnvJWTIssuer              = "VENUEHUB_JWT_ISSUER"
	EnvJWTExpMins             = "VENUEHUB_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "VENUEHUB_REFRESH_TOKEN_TTL_MINUTES"

	EnvOTPTTL         = "VENUEHUB_OTP_TTL"
	EnvGCPProjectID   = "VENUEHUB_GCP_PROJECT_ID"
	EnvReportTimeZone = "VENUEHUB_REPORTS_TIME_ZONE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/venuehub/venuehub-backend/api/controllers"
	"github.com/venuehub/venuehub-backend/api/middleware"
	"github.com/venuehub/venuehub-backend/internal/auth"
	"github.com/venuehub/venuehub-backend/internal/dashboard"
	"github.com/venuehub/venuehub-backend/internal/listings"
	"github.com/venuehub/venuehub-backend/internal/preferences"
	"github.com/venuehub/venuehub-backend/internal/report"
	"github.com/venuehub/venuehub-backend/internal/vendors"
	"github.com/venuehub/venuehub-backend/internal/vouchers"
	"github.com/venuehub/venuehub-backend/pkg/auth/session"
	"github.com/venuehub/venuehub-backend/pkg/config"
	"github.com/venuehub/venuehub-backend/pkg/enums"
	"github.com/venuehub/venuehub-backend/pkg/logger"
	"github.com/venuehub/venuehub-backend/pkg/metrics"
	pkgredis "github.com/venuehub/venuehub-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (session.Pair, error)
	Revoke(context.Context, string) error
}

// redisStore is the slice of the Redis client the HTTP layer needs for
// rate limits, idempotency and readiness.
type redisStore interface {
	pkgredis.IdempotencyStore
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Ping(context.Context) error
}

// Params packages everything the router wires into handlers. Nil stores
// disable the middleware that depends on them.
type Params struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          controllers.Pinger
	Redis       redisStore
	Sessions    sessionManager
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
	Exporter    *report.Exporter

	Auth        auth.Service
	Vouchers    vouchers.Service
	Vendors     vendors.Service
	Preferences preferences.Service
	Listings    listings.Service
	Dashboard   dashboard.Service
}

func NewRouter(p Params) http.Handler {
	cfg, logg := p.Config, p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.CORS(cfg.CORS),
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)
	otpPolicy := middleware.NewAuthRateLimitPolicy(
		"otp",
		cfg.AuthRateLimit.OTPWindow,
		cfg.AuthRateLimit.OTPIPLimit,
		cfg.AuthRateLimit.OTPEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, readinessDeps(p), logg))
	})
	if p.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/preferences", controllers.PublicPreferences(p.Preferences, logg))
		r.Get("/listings", controllers.PublicListingBrowse(p.Listings, logg))
		r.Get("/listings/{listingId}", controllers.PublicListingGet(p.Listings, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(middleware.Idempotency(p.Redis, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).Post("/register", controllers.AuthRegister(p.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AuthLogin(p.Auth, logg))
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthRateLimit(otpPolicy, p.Redis, logg))
			r.Post("/verify-otp", controllers.AuthVerifyOTP(p.Auth, logg))
			r.Post("/resend-otp", controllers.AuthResendOTP(p.Auth, logg))
			r.Post("/forgot-password", controllers.AuthForgotPassword(p.Auth, logg))
			r.Post("/reset-password", controllers.AuthResetPassword(p.Auth, logg))
		})
		r.Post("/refresh", controllers.AuthRefresh(p.Sessions, cfg.JWT, logg))
		r.Post("/logout", controllers.AuthLogout(p.Sessions, cfg.JWT, logg))
	})

	r.Route("/api/admin/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AdminAuthLogin(p.Auth, logg))
	})

	r.Route("/api/v1/vendor", func(r chi.Router) {
		r.Use(
			middleware.Auth(cfg.JWT, p.Sessions, logg),
			middleware.RequireRole(enums.UserRoleVendor, logg),
			middleware.VendorContext(logg),
			middleware.Idempotency(p.Redis, logg),
		)

		r.Get("/profile", controllers.VendorProfile(p.Vendors, logg))
		r.Patch("/profile", controllers.VendorUpdateProfile(p.Vendors, logg))
		r.Get("/dashboard", controllers.VendorDashboard(p.Vendors, logg))

		r.Route("/listings", func(r chi.Router) {
			r.Get("/", controllers.VendorListingList(p.Listings, logg))
			r.Post("/venues", controllers.VendorCreateVenue(p.Listings, logg))
			r.Post("/farmhouses", controllers.VendorCreateFarmhouse(p.Listings, logg))
			r.Post("/catering-packages", controllers.VendorCreateCateringPackage(p.Listings, logg))
			r.Post("/photography-packages", controllers.VendorCreatePhotographyPackage(p.Listings, logg))
			r.Patch("/{listingId}/status", controllers.VendorListingStatus(p.Listings, logg))
		})

		r.Route("/vouchers", func(r chi.Router) {
			mountVoucherRoutes(r, p)
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(
			middleware.Auth(cfg.JWT, p.Sessions, logg),
			middleware.RequireRole(enums.UserRoleAdmin, logg),
			middleware.Idempotency(p.Redis, logg),
		)

		r.Get("/dashboard", controllers.AdminDashboard(p.Dashboard, logg))

		r.Route("/vouchers", func(r chi.Router) {
			mountVoucherRoutes(r, p)
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", controllers.AdminVendorList(p.Vendors, logg))
			r.Get("/export", controllers.AdminVendorExport(p.Vendors, p.Exporter, logg))
			r.Get("/{vendorId}", controllers.AdminVendorGet(p.Vendors, logg))
			r.Post("/{vendorId}/status", controllers.AdminVendorUpdateStatus(p.Vendors, logg))
			r.Post("/{vendorId}/verification", controllers.AdminVendorSetVerified(p.Vendors, logg))
		})

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/", controllers.AdminPreferenceList(p.Preferences, logg))
			r.Post("/", controllers.AdminPreferenceCreate(p.Preferences, logg))
			r.Get("/export", controllers.AdminPreferenceExport(p.Preferences, p.Exporter, logg))
			r.Get("/{preferenceId}", controllers.AdminPreferenceGet(p.Preferences, logg))
			r.Patch("/{preferenceId}", controllers.AdminPreferenceUpdate(p.Preferences, logg))
			r.Delete("/{preferenceId}", controllers.AdminPreferenceDelete(p.Preferences, logg))
		})

		r.Route("/listings", func(r chi.Router) {
			r.Get("/", controllers.AdminListingList(p.Listings, logg))
			r.Get("/export", controllers.AdminListingExport(p.Listings, p.Exporter, logg))
		})
	})

	return r
}

// mountVoucherRoutes serves both the admin and vendor voucher screens; the
// handlers scope by the vendor on the caller's token.
func mountVoucherRoutes(r chi.Router, p Params) {
	logg := p.Logger
	r.Get("/", controllers.VoucherList(p.Vouchers, logg))
	r.Post("/", controllers.VoucherCreate(p.Vouchers, logg))
	r.Get("/export", controllers.VoucherExport(p.Vouchers, p.Exporter, logg))
	r.Get("/{voucherId}", controllers.VoucherGet(p.Vouchers, logg))
	r.Patch("/{voucherId}", controllers.VoucherUpdate(p.Vouchers, logg))
	r.Patch("/{voucherId}/active", controllers.VoucherSetActive(p.Vouchers, logg))
	r.Delete("/{voucherId}", controllers.VoucherDelete(p.Vouchers, logg))
}

func readinessDeps(p Params) map[string]controllers.Pinger {
	deps := map[string]controllers.Pinger{}
	if p.DB != nil {
		deps["db"] = p.DB
	}
	if p.Redis != nil {
		deps["redis"] = p.Redis
	}
	return deps
}

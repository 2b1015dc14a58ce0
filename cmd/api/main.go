package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/venuehub/venuehub-backend/api/routes"
	"github.com/venuehub/venuehub-backend/internal/auth"
	"github.com/venuehub/venuehub-backend/internal/dashboard"
	"github.com/venuehub/venuehub-backend/internal/events"
	"github.com/venuehub/venuehub-backend/internal/listings"
	"github.com/venuehub/venuehub-backend/internal/preferences"
	"github.com/venuehub/venuehub-backend/internal/report"
	"github.com/venuehub/venuehub-backend/internal/users"
	"github.com/venuehub/venuehub-backend/internal/vendors"
	"github.com/venuehub/venuehub-backend/internal/vouchers"
	"github.com/venuehub/venuehub-backend/pkg/auth/session"
	"github.com/venuehub/venuehub-backend/pkg/config"
	"github.com/venuehub/venuehub-backend/pkg/db"
	"github.com/venuehub/venuehub-backend/pkg/instance"
	"github.com/venuehub/venuehub-backend/pkg/logger"
	"github.com/venuehub/venuehub-backend/pkg/metrics"
	"github.com/venuehub/venuehub-backend/pkg/migrate"
	"github.com/venuehub/venuehub-backend/pkg/pubsub"
	"github.com/venuehub/venuehub-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	err = migrate.MaybeRunDev(ctx, cfg, logg, dbClient)
	requireResource(ctx, logg, "dev migrations", err)

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	requireResource(ctx, logg, "session manager", err)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	authMetrics := metrics.NewAuthMetrics(registry)
	reportMetrics := metrics.NewReportMetrics(registry)

	var (
		domainPublisher events.Publisher = events.NewLogPublisher(logg)
		otpNotifier     auth.Notifier    = auth.NewLogNotifier(logg)
	)
	if cfg.GCP.Enabled() {
		pubsubClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
		requireResource(ctx, logg, "pubsub", err)
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing pubsub", err)
			}
		}()

		domain, err := events.NewPubSubPublisher(pubsubClient, pubsubClient.DomainTopic(), logg)
		requireResource(ctx, logg, "domain publisher", err)
		notification, err := events.NewPubSubPublisher(pubsubClient, pubsubClient.NotificationTopic(), logg)
		requireResource(ctx, logg, "notification publisher", err)

		domainPublisher = domain
		otpNotifier = auth.NewEventNotifier(notification)
	}

	userRepo := users.NewRepository(dbClient.DB())
	vendorRepo := vendors.NewRepository(dbClient.DB())
	voucherRepo := vouchers.NewRepository(dbClient.DB())
	preferenceRepo := preferences.NewRepository(dbClient.DB())
	listingRepo := listings.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		DB:             dbClient,
		UserRepo:       userRepo,
		VendorRepo:     vendorRepo,
		SessionManager: sessionManager,
		OTPStore:       redisClient,
		Notifier:       otpNotifier,
		Metrics:        authMetrics,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		OTPConfig:      cfg.OTP,
		Logger:         logg,
	})
	requireResource(ctx, logg, "auth service", err)

	voucherService, err := vouchers.NewService(voucherRepo, vendorRepo)
	requireResource(ctx, logg, "voucher service", err)

	vendorService, err := vendors.NewService(vendors.ServiceParams{
		Repo:      vendorRepo,
		Listings:  listingRepo,
		Vouchers:  voucherRepo,
		Publisher: domainPublisher,
		Logger:    logg,
	})
	requireResource(ctx, logg, "vendor service", err)

	preferenceService, err := preferences.NewService(preferenceRepo)
	requireResource(ctx, logg, "preference service", err)

	listingService, err := listings.NewService(listings.ServiceParams{
		Repo:      listingRepo,
		Vendors:   vendorRepo,
		Publisher: domainPublisher,
		Logger:    logg,
	})
	requireResource(ctx, logg, "listing service", err)

	dashboardService, err := dashboard.NewService(dashboard.ServiceParams{
		Vendors:  vendorRepo,
		Vouchers: voucherRepo,
		Listings: listingRepo,
		Users:    userRepo,
	})
	requireResource(ctx, logg, "dashboard service", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID("local"),
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			Sessions:    sessionManager,
			HTTPMetrics: httpMetrics,
			Gatherer:    registry,
			Exporter:    report.NewExporter(cfg.Reports, reportMetrics, logg),
			Auth:        authService,
			Vouchers:    voucherService,
			Vendors:     vendorService,
			Preferences: preferenceService,
			Listings:    listingService,
			Dashboard:   dashboardService,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
		return
	}
	logg.Info(ctx, "api server stopped")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}

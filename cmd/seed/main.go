package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/venuehub/venuehub-backend/internal/seed"
	"github.com/venuehub/venuehub-backend/pkg/config"
	"github.com/venuehub/venuehub-backend/pkg/db"
	"github.com/venuehub/venuehub-backend/pkg/db/models"
	"github.com/venuehub/venuehub-backend/pkg/logger"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	migrateSQLite := flag.Bool("migrate", false, "auto-migrate the schema first (sqlite only)")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithFields(ctx, map[string]any{
		"env":    cfg.App.Env,
		"driver": cfg.DB.Driver,
	})

	if cfg.App.IsProd() {
		fmt.Fprintln(os.Stderr, "refusing to seed a prod environment")
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	if *migrateSQLite {
		if cfg.DB.Driver != config.DriverSQLite {
			fmt.Fprintln(os.Stderr, "-migrate only applies to sqlite; run cmd/migrate for postgres")
			os.Exit(1)
		}
		requireResource(ctx, logg, "sqlite schema", dbClient.AutoMigrate(models.All()...))
	}

	seeder, err := seed.New(dbClient.DB(), logg, seed.Options{
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: cfg.Seed.AdminPassword,
		UserPassword:  cfg.Seed.UserPassword,
		Passwords:     cfg.Password,
	})
	requireResource(ctx, logg, "seeder", err)

	if _, err := seeder.Run(ctx); err != nil {
		for _, e := range multierr.Errors(err) {
			logg.Error(ctx, "seed record failed", e)
		}
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}

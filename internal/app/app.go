package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/clubhouse/config"
	"github.com/DhavalSuthar-24/clubhouse/internal/constants"
	"github.com/DhavalSuthar-24/clubhouse/internal/entity"
	"github.com/DhavalSuthar-24/clubhouse/internal/logger"
	"github.com/DhavalSuthar-24/clubhouse/internal/middleware"
	"github.com/DhavalSuthar-24/clubhouse/internal/tournament"
	"github.com/DhavalSuthar-24/clubhouse/internal/user"
	"github.com/DhavalSuthar-24/clubhouse/routes"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(ProvideDB),
	fx.Provide(entity.Catalog),
	fx.Provide(ProvideRateLimiter),
	fx.Provide(ProvideSessionStore),
	fx.Provide(routes.SetupRoutes),
	fx.Invoke(Migrate),
)

func ProvideDB(lc fx.Lifecycle, cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := config.ConnectDB(cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			if err := sqlDB.Close(); err != nil {
				log.Warn().Err(err).Msg("error closing database connection")
			}
			return nil
		},
	})
	return db, nil
}

func ProvideRateLimiter(lc fx.Lifecycle, cfg *config.Config) *middleware.IPRateLimiter {
	limiter := middleware.NewIPRateLimiter(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.AuthBurst)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go limiter.Run(ctx, constants.SessionSweepInterval)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return limiter
}

func ProvideSessionStore(lc fx.Lifecycle, cfg *config.Config, log zerolog.Logger) (tournament.SessionStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.DatabaseTimeout)
	defer cancel()

	store, stop, err := tournament.NewSessionStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			stop()
			return nil
		},
	})
	return store, nil
}

// Migrate creates or updates the tables for users and every registered entity.
func Migrate(db *gorm.DB, registry *entity.Registry, log zerolog.Logger) error {
	models := append([]interface{}{&user.User{}}, registry.Models()...)
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Info().Strs("entities", registry.Names()).Msg("auto migrate successful")
	return nil
}

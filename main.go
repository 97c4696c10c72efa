package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/DhavalSuthar-24/clubhouse/config"
	_ "github.com/DhavalSuthar-24/clubhouse/docs"
	"github.com/DhavalSuthar-24/clubhouse/internal/app"
	"github.com/DhavalSuthar-24/clubhouse/internal/constants"
)

// @title Clubhouse API
// @version 1.0
// @description Backend for a cricket club: entities, live scoring and fixture scheduling.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	fx.New(
		app.Module,
		fx.Invoke(runServer),
	).Run()
}

func runServer(lc fx.Lifecycle, r *gin.Engine, cfg *config.Config, log zerolog.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info().Str("addr", srv.Addr).Str("env", cfg.App.Env).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			log.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}

package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/clubhouse/config"
	"github.com/DhavalSuthar-24/clubhouse/internal/auth"
	"github.com/DhavalSuthar-24/clubhouse/internal/constants"
	"github.com/DhavalSuthar-24/clubhouse/internal/entity"
	"github.com/DhavalSuthar-24/clubhouse/internal/logger"
	"github.com/DhavalSuthar-24/clubhouse/internal/match"
	"github.com/DhavalSuthar-24/clubhouse/internal/middleware"
	"github.com/DhavalSuthar-24/clubhouse/internal/tournament"
	"github.com/DhavalSuthar-24/clubhouse/pkg/responses"
)

func SetupRoutes(
	cfg *config.Config,
	db *gorm.DB,
	registry *entity.Registry,
	limiter *middleware.IPRateLimiter,
	store tournament.SessionStore,
	log zerolog.Logger,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger(log))
	r.Use(cors.New(corsConfig(cfg)))

	r.GET("/health", health(db))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.GET("/club", func(c *gin.Context) {
		responses.SuccessResponse(c, http.StatusOK, cfg.Club)
	})

	auth.RegisterAuthRoutes(api, db, cfg, log, limiter)
	entity.RegisterEntityRoutes(api, db, registry, cfg.JWT.Secret, log)
	match.MatchRoutes(api, db, cfg, log)
	tournament.TournamentRoutes(api, db, cfg, store, log)

	return r
}

func corsConfig(cfg *config.Config) cors.Config {
	cc := cors.DefaultConfig()
	cc.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cc.AllowHeaders = append(cc.AllowHeaders, "Authorization", "X-Request-ID")
	cc.ExposeHeaders = []string{"X-Request-ID"}
	if cfg.App.FrontendURL == "" || cfg.App.FrontendURL == "*" {
		cc.AllowAllOrigins = true
		return cc
	}
	cc.AllowOrigins = []string{cfg.App.FrontendURL}
	cc.AllowCredentials = true
	cc.MaxAge = 12 * time.Hour
	return cc
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), constants.DatabaseTimeout)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			logger.FromContext(c).Error().Err(err).Msg("health check failed")
			responses.ErrorResponse(c, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "ok"})
	}
}

package tournament

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/clubhouse/config"
	"github.com/DhavalSuthar-24/clubhouse/internal/club"
	"github.com/DhavalSuthar-24/clubhouse/internal/middleware"
	"github.com/DhavalSuthar-24/clubhouse/pkg/rmiddleware"
)

func TournamentRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, store SessionStore, log zerolog.Logger) {
	tc := NewTournamentController(NewGormTournamentRepository(db), club.NewClubRepository(db), store, appConfig, log)
	registerRoutes(router, tc, middleware.AuthMiddleware(appConfig.JWT.Secret, db))
}

// Scheduling is an admin task; reading teams is public.
func registerRoutes(router *gin.RouterGroup, tc *TournamentController, auth gin.HandlerFunc) {
	router.GET("/tournaments/:id/teams", tc.GetTeams)

	admin := router.Group("")
	admin.Use(auth, rmiddleware.AdminMiddleware())
	{
		admin.POST("/tournaments/:id/schedule/sessions", tc.CreateSession)
		admin.POST("/tournaments/:id/schedule/check", tc.CheckFixtures)

		sessions := admin.Group("/schedule/sessions/:sid")
		sessions.GET("", tc.GetSession)
		sessions.PUT("/config", tc.UpdateConfig)
		sessions.POST("/generate", tc.Generate)
		sessions.POST("/back", tc.Back)
		sessions.POST("/swap", tc.SwapFixtures)
		sessions.POST("/fixtures", tc.AddFixture)
		sessions.PATCH("/fixtures/:index", tc.UpdateFixture)
		sessions.DELETE("/fixtures/:index", tc.RemoveFixture)
		sessions.POST("/confirm", tc.Confirm)
	}
}

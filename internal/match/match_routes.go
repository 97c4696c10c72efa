package match

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/clubhouse/config"
)

// MatchRoutes sets up the read-only match report routes. Fixtures and
// deliveries are written through the entity API.
func MatchRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, log zerolog.Logger) {
	matchController := NewMatchController(NewGormMatchRepository(db), appConfig, log)

	matches := router.Group("/matches")
	{
		matches.GET("/:id", matchController.GetMatch)
		matches.GET("/:id/scorecard", matchController.GetScorecard)
		matches.GET("/:id/overlay", matchController.GetOverlay)
		matches.GET("/:id/overlay/ws", matchController.OverlayWS)
		matches.GET("/:id/wagon-wheel", matchController.GetWagonWheel)
	}

	router.GET("/tournaments/:id/matches", matchController.ListTournamentMatches)
}

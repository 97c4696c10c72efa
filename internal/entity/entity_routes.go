package entity

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/clubhouse/internal/middleware"
	"github.com/DhavalSuthar-24/clubhouse/pkg/rmiddleware"
)

func RegisterEntityRoutes(router *gin.RouterGroup, db *gorm.DB, registry *Registry, jwtSecret string, log zerolog.Logger) {
	ec := NewEntityController(NewRepository(db), registry, log)
	auth := middleware.AuthMiddleware(jwtSecret, db)

	entities := router.Group("/entities")
	{
		entities.GET("", ec.Names)
		entities.GET("/:name", ec.List)
		entities.GET("/:name/:id", ec.Get)
		entities.POST("/:name/filter", ec.Filter)

		entities.POST("/:name", auth, ec.Create)
		entities.POST("/:name/bulk", auth, ec.BulkCreate)
		entities.PUT("/:name/:id", auth, ec.Update)
		entities.DELETE("/:name/:id", auth, rmiddleware.AdminMiddleware(), ec.Delete)
	}
}

package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/clubhouse/config"
	"github.com/DhavalSuthar-24/clubhouse/internal/middleware"
)

func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, log zerolog.Logger, limiter *middleware.IPRateLimiter) {
	authController := NewAuthController(NewAuthRepository(db), appConfig, log)
	registerRoutes(router, authController, db, appConfig.JWT.Secret, limiter)
}

func registerRoutes(router *gin.RouterGroup, ac *AuthController, db *gorm.DB, jwtSecret string, limiter *middleware.IPRateLimiter) {
	authPublic := router.Group("/auth")
	{
		authPublic.POST("/register", limiter.Middleware(), ac.Register)
		authPublic.POST("/login", limiter.Middleware(), ac.Login)
		authPublic.GET("/verify-email", ac.VerifyEmail)
		authPublic.POST("/resend-verification", limiter.Middleware(), ac.ResendVerificationEmail)
		authPublic.GET("/check", middleware.OptionalAuth(jwtSecret), ac.Check)
		authPublic.POST("/logout", ac.Logout)
	}

	authProtected := router.Group("/auth")
	authProtected.Use(middleware.AuthMiddleware(jwtSecret, db))
	{
		authProtected.GET("/me", ac.GetProfile)
		authProtected.PUT("/me", ac.UpdateProfile)
		authProtected.POST("/change-password", ac.ChangePassword)
	}
}

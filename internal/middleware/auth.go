package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/clubhouse/internal/user"
	"github.com/DhavalSuthar-24/clubhouse/pkg/responses"
	"github.com/DhavalSuthar-24/clubhouse/pkg/token"
)

const (
	AuthUserIDKey   = "auth_user_id"
	AuthUserRoleKey = "auth_user_role"
)

// AuthMiddleware requires a valid bearer token for a user that still exists.
// The role is read from the database, not from the token.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := bearerToken(c)
		if err != nil {
			responses.Unauthorized(c, err.Error())
			return
		}

		claims, err := token.Validate(raw, jwtSecret)
		if err != nil {
			responses.Unauthorized(c, "Invalid or expired token: "+err.Error())
			return
		}

		var u user.User
		err = db.WithContext(c.Request.Context()).Select("id", "role").First(&u, claims.UserID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.Unauthorized(c, "User not found or inactive")
				return
			}
			responses.InternalServerError(c)
			return
		}

		c.Set(AuthUserIDKey, u.ID)
		c.Set(AuthUserRoleKey, u.Role)
		c.Next()
	}
}

// OptionalAuth sets the user id when a valid token is present and never
// rejects the request.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := bearerToken(c); err == nil {
			if claims, err := token.Validate(raw, jwtSecret); err == nil {
				c.Set(AuthUserIDKey, claims.UserID)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errors.New("Authorization header is required")
	}
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("Invalid Authorization header format. Expected: Bearer <token>")
	}
	return parts[1], nil
}

func GetUserIDFromContext(c *gin.Context) (uint, error) {
	userID, exists := c.Get(AuthUserIDKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}
	uid, ok := userID.(uint)
	if !ok {
		return 0, fmt.Errorf("user ID has unexpected type: %T", userID)
	}
	return uid, nil
}

func GetUserRoleFromContext(c *gin.Context) string {
	return c.GetString(AuthUserRoleKey)
}

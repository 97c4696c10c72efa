package rmiddleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/clubhouse/internal/middleware"
	"github.com/DhavalSuthar-24/clubhouse/pkg/responses"
)

// RoleMiddleware must run after middleware.AuthMiddleware, which loads the
// caller's role.
func RoleMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := middleware.GetUserIDFromContext(c); err != nil {
			responses.Unauthorized(c, "Unauthorized: "+err.Error())
			return
		}

		role := middleware.GetUserRoleFromContext(c)
		for _, required := range requiredRoles {
			if strings.EqualFold(role, required) {
				c.Next()
				return
			}
		}
		responses.Forbidden(c, "You don't have permission to access this resource")
	}
}

func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware("admin")
}

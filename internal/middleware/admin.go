package middleware

import (
	"github.com/gin-gonic/gin"
	apierrors "github.com/ideaboard/ideaboard-api/internal/errors"
)

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := GetUser(c)
		if !exists {
			apierrors.Unauthorized(c, "Unauthorized request")
			c.Abort()
			return
		}

		if !user.IsAdmin {
			apierrors.Forbidden(c, "Only admins can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

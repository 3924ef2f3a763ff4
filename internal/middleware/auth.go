package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ideaboard/ideaboard-api/internal/auth"
	"github.com/ideaboard/ideaboard-api/internal/constants"
	apierrors "github.com/ideaboard/ideaboard-api/internal/errors"
	"github.com/ideaboard/ideaboard-api/internal/models"
	"github.com/ideaboard/ideaboard-api/internal/repository"
)

// RequireAuth resolves the access token to a user without its credentials.
// The accessToken cookie wins over an Authorization: Bearer header.
func RequireAuth(tokens *auth.TokenService, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := AccessToken(c)
		if token == "" {
			apierrors.Unauthorized(c, "Unauthorized request")
			c.Abort()
			return
		}

		claims, err := tokens.VerifyAccessToken(token)
		if err != nil {
			apierrors.InvalidToken(c, "Invalid access token")
			c.Abort()
			return
		}

		// Tokens outlive deleted accounts
		user, err := users.FindIdentity(c.Request.Context(), claims.UserID)
		if err != nil {
			apierrors.InvalidToken(c, "Invalid access token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, *user)
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	}
}

// AccessToken returns the presented access token, or "" when there is none.
func AccessToken(c *gin.Context) string {
	if cookie, err := c.Cookie(constants.AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// GetUser retrieves the authenticated user from context
func GetUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(constants.ContextKeyUserID)
	return userID, userID != ""
}

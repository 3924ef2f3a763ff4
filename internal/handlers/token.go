package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ideaboard/ideaboard-api/internal/auth"
	apierrors "github.com/ideaboard/ideaboard-api/internal/errors"
	"github.com/ideaboard/ideaboard-api/internal/middleware"
)

// TokenHandler answers whether an access token is still good.
type TokenHandler struct {
	tokens *auth.TokenService
}

func NewTokenHandler(tokens *auth.TokenService) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// VerifyAccessToken checks the signature and expiry only; the user is not looked up.
func (h *TokenHandler) VerifyAccessToken(c *gin.Context) {
	token := middleware.AccessToken(c)
	if token == "" {
		apierrors.Unauthorized(c, "Unauthorized request")
		return
	}

	if _, err := h.tokens.VerifyAccessToken(token); err != nil {
		apierrors.InvalidToken(c, "Invalid or Expired Token")
		return
	}

	respond(c, http.StatusOK, nil, "Valid Access token")
}

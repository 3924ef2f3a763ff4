package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ideaboard/ideaboard-api/internal/auth"
	"github.com/ideaboard/ideaboard-api/internal/constants"
	"github.com/ideaboard/ideaboard-api/internal/dto"
	apierrors "github.com/ideaboard/ideaboard-api/internal/errors"
	"github.com/ideaboard/ideaboard-api/internal/middleware"
	"github.com/ideaboard/ideaboard-api/internal/services"
)

// UserHandler coordinates registration, login and token handlers.
type UserHandler struct {
	authService *services.AuthService
	tokens      *auth.TokenService
	uploadDir   string
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, tokens *auth.TokenService, uploadDir string) *UserHandler {
	return &UserHandler{
		authService: authService,
		tokens:      tokens,
		uploadDir:   uploadDir,
	}
}

// Register creates a user from a JSON or multipart body. Multipart requests
// may carry avatar and coverImage files.
func (h *UserHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		FirstName string `json:"firstName" form:"firstName"`
		LastName  string `json:"lastName" form:"lastName"`
		Email     string `json:"email" form:"email"`
		Password  string `json:"password" form:"password"`
		IsAdmin   bool   `json:"isAdmin" form:"isAdmin"`
	}

	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	avatar, err := saveUpload(c, h.uploadDir, constants.AvatarField)
	if err != nil {
		respondError(c, err, "save avatar")
		return
	}
	coverImage, err := saveUpload(c, h.uploadDir, constants.CoverImageField)
	if err != nil {
		removeUploads([]string{avatar})
		respondError(c, err, "save cover image")
		return
	}
	defer removeUploads([]string{avatar, coverImage})

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Password:       req.Password,
		IsAdmin:        req.IsAdmin,
		AvatarPath:     avatar,
		CoverImagePath: coverImage,
	})
	if err != nil {
		respondError(c, err, "register user")
		return
	}

	respond(c, http.StatusCreated, dto.ToUserDTO(*user), "User registered Successfully")
}

// Login authenticates a user and sets the token cookies.
func (h *UserHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err, "log in")
		return
	}

	h.setTokenCookies(c, session.Tokens)
	respond(c, http.StatusOK, toLoginResponse(session), "User logged In Successfully")
}

// RefreshToken rotates the token pair. The refresh token is read from its
// cookie or from the JSON body.
func (h *UserHandler) RefreshToken(c *gin.Context) {
	type RefreshRequest struct {
		RefreshToken string `json:"refreshToken" form:"refreshToken"`
	}

	token, _ := c.Cookie(constants.RefreshTokenCookie)
	if token == "" {
		var req RefreshRequest
		// An empty body is reported as a missing token below
		_ = c.ShouldBind(&req)
		token = req.RefreshToken
	}
	if token == "" {
		apierrors.Unauthorized(c, "Unauthorized request")
		return
	}

	session, err := h.authService.RefreshTokens(c.Request.Context(), token)
	if err != nil {
		respondError(c, err, "refresh access token")
		return
	}

	h.setTokenCookies(c, session.Tokens)
	respond(c, http.StatusOK, toLoginResponse(session), "Access token refreshed")
}

// Logout forgets the refresh token and clears both cookies.
func (h *UserHandler) Logout(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err, "log out")
		return
	}

	h.clearTokenCookies(c)
	respond(c, http.StatusOK, nil, "User logged Out")
}

// CurrentUser returns the authenticated user.
func (h *UserHandler) CurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "fetch current user")
		return
	}

	respond(c, http.StatusOK, dto.ToUserDTO(*user), "User fetched successfully")
}

func (h *UserHandler) setTokenCookies(c *gin.Context, pair auth.TokenPair) {
	setCookie(c, constants.AccessTokenCookie, pair.AccessToken, h.tokens.AccessTTL())
	setCookie(c, constants.RefreshTokenCookie, pair.RefreshToken, h.tokens.RefreshTTL())
}

func (h *UserHandler) clearTokenCookies(c *gin.Context) {
	setCookie(c, constants.AccessTokenCookie, "", -time.Second)
	setCookie(c, constants.RefreshTokenCookie, "", -time.Second)
}

func setCookie(c *gin.Context, name, value string, ttl time.Duration) {
	c.SetCookie(name, value, int(ttl.Seconds()), "/", "", true, true)
}

func toLoginResponse(session *services.Session) dto.LoginResponse {
	return dto.LoginResponse{
		User:         dto.ToUserDTO(*session.User),
		AccessToken:  session.Tokens.AccessToken,
		RefreshToken: session.Tokens.RefreshToken,
	}
}

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ideaboard/ideaboard-api/internal/auth"
	"github.com/ideaboard/ideaboard-api/internal/constants"
	"github.com/ideaboard/ideaboard-api/internal/database"
	"github.com/ideaboard/ideaboard-api/internal/dto"
	"github.com/ideaboard/ideaboard-api/internal/models"
	"github.com/ideaboard/ideaboard-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	tokens   *auth.TokenService
	router   *gin.Engine
	calls    int
	identity models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	f := &fixture{
		db:     db,
		tokens: auth.NewTokenService("access-secret", "refresh-secret", time.Minute, time.Hour),
		router: gin.New(),
	}

	protected := f.router.Group("/", RequireAuth(f.tokens, repository.NewUserRepository(db)))
	protected.GET("/me", func(c *gin.Context) {
		f.calls++
		user, ok := GetUser(c)
		require.True(t, ok)
		userID, ok := GetUserID(c)
		require.True(t, ok)
		require.Equal(t, user.ID, userID)
		f.identity = user
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	protected.POST("/admin", RequireAdmin(), func(c *gin.Context) {
		f.calls++
		c.Status(http.StatusOK)
	})

	return f
}

func (f *fixture) user(t *testing.T, email string, admin bool) models.User {
	t.Helper()
	user := models.User{Username: email, Email: email, PasswordHash: "x", IsAdmin: admin}
	require.NoError(t, f.db.Create(&user).Error)
	return user
}

func (f *fixture) token(t *testing.T, user models.User) string {
	t.Helper()
	token, err := f.tokens.IssueAccessToken(user)
	require.NoError(t, err)
	return token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.Envelope {
	t.Helper()
	var envelope dto.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestRequireAuthBearer(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "a@example.com", false)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+f.token(t, user))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID)
}

func TestRequireAuthIdentityCarriesNoCredentials(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "a@example.com", false)
	require.NoError(t, f.db.Model(&user).Update("refresh_token", "stored-refresh").Error)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+f.token(t, user))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user.ID, f.identity.ID)
	assert.Equal(t, "a@example.com", f.identity.Email)
	assert.Empty(t, f.identity.PasswordHash)
	assert.Empty(t, f.identity.RefreshToken)
}

func TestRequireAuthCookieWins(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "a@example.com", false)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: constants.AccessTokenCookie, Value: f.token(t, user)})
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthRejects(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "a@example.com", false)
	ghost := models.User{ID: "ghost", Email: "ghost@example.com"}

	expired, err := auth.NewTokenService("access-secret", "refresh-secret", -time.Minute, time.Hour).IssueAccessToken(user)
	require.NoError(t, err)
	foreign, err := auth.NewTokenService("other-secret", "refresh-secret", time.Minute, time.Hour).IssueAccessToken(user)
	require.NoError(t, err)

	cases := map[string]string{
		"missing":      "",
		"malformed":    "Bearer not-a-jwt",
		"expired":      "Bearer " + expired,
		"wrong secret": "Bearer " + foreign,
		"unknown user": "Bearer " + f.token(t, ghost),
		"wrong scheme": "Basic " + f.token(t, user),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			f.router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			envelope := decode(t, w)
			assert.Equal(t, http.StatusUnauthorized, envelope.StatusCode)
			assert.False(t, envelope.Success)
		})
	}
	assert.Zero(t, f.calls)
}

func TestRequireAdmin(t *testing.T) {
	f := newFixture(t)
	member := f.user(t, "member@example.com", false)
	admin := f.user(t, "admin@example.com", true)

	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+f.token(t, member))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, http.StatusForbidden, decode(t, w).StatusCode)
	assert.Zero(t, f.calls)

	req = httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+f.token(t, admin))
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, f.calls)
}

func TestRequireAdminWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RequireAdmin()(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS("https://app.example.com"))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORSWildcardEchoesOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS("*"))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://anywhere.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ideaboard/ideaboard-api/internal/config"
	"github.com/ideaboard/ideaboard-api/internal/models"
)

// ErrInvalidToken covers malformed, tampered and expired tokens alike.
var ErrInvalidToken = errors.New("invalid token")

// AccessClaims is the payload of an access token
type AccessClaims struct {
	UserID   string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload of a refresh token
type RefreshClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenPair is issued on login and refresh
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenService signs and verifies access and refresh tokens with separate secrets.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func NewTokenServiceFromConfig(cfg *config.Config) *TokenService {
	return NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)
}

// AccessTTL is the lifetime of issued access tokens
func (s *TokenService) AccessTTL() time.Duration {
	return s.accessTTL
}

// RefreshTTL is the lifetime of issued refresh tokens
func (s *TokenService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

func (s *TokenService) IssueAccessToken(user models.User) (string, error) {
	claims := AccessClaims{
		UserID:           user.ID,
		Email:            user.Email,
		Username:         user.Username,
		RegisteredClaims: registeredClaims(user.ID, s.accessTTL),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.accessSecret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) IssueRefreshToken(user models.User) (string, error) {
	claims := RefreshClaims{
		UserID:           user.ID,
		RegisteredClaims: registeredClaims(user.ID, s.refreshTTL),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("sign refresh token: %w", err)
	}
	return signed, nil
}

// IssuePair signs a fresh access/refresh pair. Persisting the refresh token is
// the caller's job.
func (s *TokenService) IssuePair(user models.User) (TokenPair, error) {
	accessToken, err := s.IssueAccessToken(user)
	if err != nil {
		return TokenPair{}, err
	}
	refreshToken, err := s.IssueRefreshToken(user)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *TokenService) VerifyAccessToken(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := parse(token, claims, s.accessSecret); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *TokenService) VerifyRefreshToken(token string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := parse(token, claims, s.refreshSecret); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func parse(token string, claims jwt.Claims, secret []byte) error {
	if token == "" {
		return ErrInvalidToken
	}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}

func registeredClaims(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Subject:   subject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

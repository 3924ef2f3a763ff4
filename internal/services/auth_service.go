package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ideaboard/ideaboard-api/internal/auth"
	"github.com/ideaboard/ideaboard-api/internal/constants"
	"github.com/ideaboard/ideaboard-api/internal/models"
	"github.com/ideaboard/ideaboard-api/internal/repository"
	"github.com/ideaboard/ideaboard-api/internal/storage"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrRegistrationFields   = errors.New("first name, email and password are required")
	ErrLoginFields          = errors.New("email and password are required")
	ErrEmailTaken           = errors.New("user with this email already exists")
	ErrInvalidCredentials   = errors.New("invalid user credentials")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user does not exist")
	ErrInvalidRefreshToken  = errors.New("refresh token is invalid or expired")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToIssueTokens  = errors.New("failed to generate access and refresh tokens")
)

// AuthService handles registration, login and the refresh token lifecycle.
type AuthService struct {
	userRepo         repository.UserRepository
	tokens           *auth.TokenService
	uploader         storage.Uploader
	allowAdminSignup bool
}

// NewAuthService creates a new AuthService. uploader may be nil, in which case
// registrations carrying images fail with ErrImageUpload.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService, uploader storage.Uploader, allowAdminSignup bool) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		tokens:           tokens,
		uploader:         uploader,
		allowAdminSignup: allowAdminSignup,
	}
}

// RegisterInput represents the information needed to create a user.
// AvatarPath and CoverImagePath point at already saved temp files.
type RegisterInput struct {
	FirstName      string
	LastName       string
	Email          string
	Password       string
	IsAdmin        bool
	AvatarPath     string
	CoverImagePath string
}

// Register creates a new user. The username is the lowercased concatenation
// of first and last name.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if firstName == "" || email == "" || input.Password == "" {
		return nil, ErrRegistrationFields
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     strings.ToLower(firstName + lastName),
		Email:        email,
		PasswordHash: string(hashedPassword),
		IsAdmin:      input.IsAdmin && s.allowAdminSignup,
	}

	if input.AvatarPath != "" {
		urls, err := uploadImages(ctx, s.uploader, []string{input.AvatarPath})
		if err != nil {
			return nil, err
		}
		user.Avatar = urls[0]
	}
	if input.CoverImagePath != "" {
		urls, err := uploadImages(ctx, s.uploader, []string{input.CoverImagePath})
		if err != nil {
			return nil, err
		}
		user.CoverImage = urls[0]
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration of the same email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Session is an authenticated user with a freshly issued token pair.
type Session struct {
	User   *models.User
	Tokens auth.TokenPair
}

// Login verifies credentials, issues a token pair and stores the refresh token
// as the user's single active one.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, ErrLoginFields
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.startSession(ctx, user.ID)
}

// RefreshTokens rotates the token pair. The presented token must verify and
// match the one stored for its user.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, ErrInvalidRefreshToken
	}

	return s.startSession(ctx, user.ID)
}

// Logout forgets the stored refresh token.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, ""); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID together with the ids of their ideas.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id, "Ideas")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func (s *AuthService) startSession(ctx context.Context, userID string) (*Session, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	pair, err := s.tokens.IssuePair(*user)
	if err != nil {
		return nil, ErrFailedToIssueTokens
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	user.RefreshToken = pair.RefreshToken

	return &Session{User: user, Tokens: pair}, nil
}

package repository

import (
	"context"
	"time"

	"github.com/ideaboard/ideaboard-api/internal/models"
	"github.com/ideaboard/ideaboard-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID with optional preloading
	FindByID(ctx context.Context, id string, preload ...string) (*models.User, error)
	// FindIdentity finds a user by ID without the password hash or refresh token
	FindIdentity(ctx context.Context, id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateRefreshToken overwrites the stored refresh token
	UpdateRefreshToken(ctx context.Context, userID, token string) error
}

// IdeaFilter holds filtering options for listing ideas
type IdeaFilter struct {
	OwnerID      *string
	Status       *models.IdeaStatus
	State        *models.IdeaState
	OrderByLikes bool
	Pagination   utils.PaginationParams
}

// LikeResult is the outcome of a like toggle
type LikeResult struct {
	Liked bool
	Count int64
	Users []string
}

// IdeaRepository defines the interface for idea data access
type IdeaRepository interface {
	// Create creates a new idea for an existing owner
	Create(ctx context.Context, idea *models.Idea) error

	// FindByID finds an idea by ID with optional preloading
	FindByID(ctx context.Context, id string, preload ...string) (*models.Idea, error)

	// List retrieves ideas with filtering and pagination
	List(ctx context.Context, filter IdeaFilter) ([]models.Idea, int64, error)

	// Save persists the editable columns of an idea, leaving likes_count alone
	Save(ctx context.Context, idea *models.Idea) error

	// Delete hard deletes an idea together with its likes
	Delete(ctx context.Context, id string) error

	// ToggleLike adds or removes userID from the idea's likers and moves the
	// counter by the same delta in one transaction
	ToggleLike(ctx context.Context, ideaID, userID string) (*LikeResult, error)

	// CountByStatus counts ideas grouped by status
	CountByStatus(ctx context.Context) (map[models.IdeaStatus]int64, error)

	// CreationTimes returns the creation time of every idea
	CreationTimes(ctx context.Context) ([]time.Time, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(ctx context.Context, comment *models.Comment) error

	// FindByID finds a comment by ID
	FindByID(ctx context.Context, id string) (*models.Comment, error)

	// ListTopLevel lists the comments of an idea that reply to nothing
	ListTopLevel(ctx context.Context, ideaID string) ([]models.Comment, error)

	// ListByParents lists the direct replies to any of the given comments
	ListByParents(ctx context.Context, parentIDs []string) ([]models.Comment, error)
}

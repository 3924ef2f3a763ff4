package repository

import (
	"context"

	"github.com/ideaboard/ideaboard-api/internal/models"
	"gorm.io/gorm"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// FindByID finds a comment by ID
func (r *GormCommentRepository) FindByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListTopLevel lists the comments of an idea that reply to nothing
func (r *GormCommentRepository) ListTopLevel(ctx context.Context, ideaID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Where("idea_id = ? AND parent_id IS NULL", ideaID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// ListByParents lists the direct replies to any of the given comments
func (r *GormCommentRepository) ListByParents(ctx context.Context, parentIDs []string) ([]models.Comment, error) {
	if len(parentIDs) == 0 {
		return []models.Comment{}, nil
	}

	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Where("parent_id IN ?", parentIDs).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ideaboard/ideaboard-api/internal/database"
	"github.com/ideaboard/ideaboard-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrOwnerNotFound is returned when an idea is created for a user that does not exist.
var ErrOwnerNotFound = errors.New("idea repository: owner not found")

// GormIdeaRepository is a GORM implementation of IdeaRepository
type GormIdeaRepository struct {
	db *gorm.DB
}

// NewIdeaRepository creates a new IdeaRepository
func NewIdeaRepository(db *gorm.DB) IdeaRepository {
	return &GormIdeaRepository{db: db}
}

// Create inserts the idea after checking its owner within one transaction.
// The owner's idea list is the owner_id relation, so the insert is the only write.
func (r *GormIdeaRepository) Create(ctx context.Context, idea *models.Idea) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owners int64
		if err := tx.Model(&models.User{}).Where("id = ?", idea.OwnerID).Count(&owners).Error; err != nil {
			return err
		}
		if owners == 0 {
			return ErrOwnerNotFound
		}

		return tx.Omit(clause.Associations).Create(idea).Error
	})
}

// FindByID finds an idea by ID with optional preloading
func (r *GormIdeaRepository) FindByID(ctx context.Context, id string, preload ...string) (*models.Idea, error) {
	var idea models.Idea
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p, preloadScope(p))
	}

	if err := query.Where("id = ?", id).First(&idea).Error; err != nil {
		return nil, err
	}

	return &idea, nil
}

// List retrieves ideas with filtering and pagination
func (r *GormIdeaRepository) List(ctx context.Context, filter IdeaFilter) ([]models.Idea, int64, error) {
	var ideas []models.Idea

	query := r.db.WithContext(ctx).Model(&models.Idea{})

	// Apply filters
	if filter.OwnerID != nil {
		query = query.Where("ideas.owner_id = ?", *filter.OwnerID)
	}
	if filter.Status != nil {
		query = query.Where("ideas.status = ?", *filter.Status)
	}
	if filter.State != nil {
		query = query.Where("ideas.state = ?", *filter.State)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query
	if filter.OrderByLikes {
		listQuery = listQuery.Order("ideas.likes_count DESC").Order("ideas.created_at DESC")
	} else {
		listQuery = listQuery.Order("ideas.created_at DESC")
	}
	listQuery = listQuery.Order("ideas.id DESC")

	if filter.Pagination.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(filter.Pagination))
	}

	if err := listQuery.
		Preload("Owner", preloadScope("Owner")).
		Preload("Likes", preloadScope("Likes")).
		Find(&ideas).Error; err != nil {
		return nil, 0, err
	}

	return ideas, total, nil
}

// Save persists the editable columns of an idea. likes_count is owned by
// ToggleLike and never written from a previously read copy.
func (r *GormIdeaRepository) Save(ctx context.Context, idea *models.Idea) error {
	return r.db.WithContext(ctx).Omit("likes_count", clause.Associations).Save(idea).Error
}

// Delete hard deletes an idea and its likes in a transaction. Comments are left in place.
func (r *GormIdeaRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("idea_id = ?", id).Delete(&models.IdeaLike{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Idea{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ToggleLike flips the user's membership in the idea's likers. The counter only
// moves when a like row was actually removed or inserted, so it cannot drift
// from the size of the set under concurrent toggles.
func (r *GormIdeaRepository) ToggleLike(ctx context.Context, ideaID, userID string) (*LikeResult, error) {
	var result LikeResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ideas int64
		if err := tx.Model(&models.Idea{}).Where("id = ?", ideaID).Count(&ideas).Error; err != nil {
			return err
		}
		if ideas == 0 {
			return gorm.ErrRecordNotFound
		}

		removed := tx.Where("idea_id = ? AND user_id = ?", ideaID, userID).Delete(&models.IdeaLike{})
		if removed.Error != nil {
			return removed.Error
		}

		if removed.RowsAffected > 0 {
			if err := tx.Model(&models.Idea{}).
				Where("id = ? AND likes_count > 0", ideaID).
				UpdateColumn("likes_count", gorm.Expr("likes_count - ?", 1)).Error; err != nil {
				return err
			}
			result.Liked = false
		} else {
			inserted := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.IdeaLike{IdeaID: ideaID, UserID: userID})
			if inserted.Error != nil {
				return inserted.Error
			}
			if inserted.RowsAffected > 0 {
				if err := tx.Model(&models.Idea{}).
					Where("id = ?", ideaID).
					UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1)).Error; err != nil {
					return err
				}
			}
			result.Liked = true
		}

		var idea models.Idea
		if err := tx.Select("id", "likes_count").Where("id = ?", ideaID).First(&idea).Error; err != nil {
			return err
		}
		result.Count = idea.LikesCount

		users := []string{}
		if err := tx.Model(&models.IdeaLike{}).
			Where("idea_id = ?", ideaID).
			Order("created_at ASC").Order("user_id ASC").
			Pluck("user_id", &users).Error; err != nil {
			return err
		}
		result.Users = users

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// CountByStatus counts ideas grouped by status
func (r *GormIdeaRepository) CountByStatus(ctx context.Context) (map[models.IdeaStatus]int64, error) {
	var rows []struct {
		Status models.IdeaStatus
		Count  int64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Idea{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count ideas by status: %w", err)
	}

	counts := make(map[models.IdeaStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CreationTimes returns the creation time of every idea
func (r *GormIdeaRepository) CreationTimes(ctx context.Context) ([]time.Time, error) {
	var times []time.Time
	if err := r.db.WithContext(ctx).
		Model(&models.Idea{}).
		Pluck("created_at", &times).Error; err != nil {
		return nil, fmt.Errorf("load idea creation times: %w", err)
	}
	return times, nil
}

// preloadScope narrows preloaded relations to what responses expose
func preloadScope(relation string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch relation {
		case "Owner":
			return db.Select("id", "username", "email")
		case "Likes":
			return db.Order("created_at ASC").Order("user_id ASC")
		default:
			return db
		}
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ideaboard/ideaboard-api/internal/constants"
	"github.com/ideaboard/ideaboard-api/internal/models"
	"github.com/ideaboard/ideaboard-api/internal/repository"
	"github.com/ideaboard/ideaboard-api/internal/storage"
	"github.com/ideaboard/ideaboard-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrIdeaNotFound       = errors.New("idea not found")
	ErrIdeaFieldsRequired = errors.New("title, description and short description are required")
	ErrIdeaFieldEmpty     = errors.New("title, description and short description cannot be empty")
	ErrTooManyImages      = errors.New("too many images")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidState       = errors.New("invalid state")
	ErrNotIdeaOwner       = errors.New("only the owner or an admin can modify this idea")
)

const statisticsCacheKey = "ideas"

// StatsCache is a read-through cache for dashboard statistics.
type StatsCache interface {
	Get(ctx context.Context, name string, dest any) (bool, error)
	Set(ctx context.Context, name string, value any) error
	Invalidate(ctx context.Context, names ...string) error
}

// IdeaService handles idea business logic
type IdeaService struct {
	ideaRepo repository.IdeaRepository
	uploader storage.Uploader
	cache    StatsCache
}

// NewIdeaService creates a new IdeaService. uploader and cache may be nil.
func NewIdeaService(ideaRepo repository.IdeaRepository, uploader storage.Uploader, cache StatsCache) *IdeaService {
	return &IdeaService{
		ideaRepo: ideaRepo,
		uploader: uploader,
		cache:    cache,
	}
}

// Actor is the authenticated user performing an operation
type Actor struct {
	ID      string
	IsAdmin bool
}

// CreateIdeaInput represents input for creating an idea
type CreateIdeaInput struct {
	OwnerID          string
	Title            string
	Description      string
	ShortDescription string
	Tags             []string
	ImagePaths       []string
}

// UpdateIdeaInput represents a partial update. Nil fields are left unchanged
// and uploaded images are appended to the existing ones.
type UpdateIdeaInput struct {
	Title            *string
	Description      *string
	ShortDescription *string
	Tags             []string
	ImagePaths       []string
}

// UpdateStatusInput carries a moderation decision. Either field may be omitted.
type UpdateStatusInput struct {
	Status  *models.IdeaStatus
	Remarks *string
}

// IdeaStatistics is the moderation dashboard aggregate
type IdeaStatistics struct {
	CountByMonth  [12]int64                   `json:"countByMonth"`
	CountByStatus map[models.IdeaStatus]int64 `json:"countByStatus"`
}

// CreateIdea stores a new Pending/Todo idea owned by the caller
func (s *IdeaService) CreateIdea(ctx context.Context, input CreateIdeaInput) (*models.Idea, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	shortDescription := strings.TrimSpace(input.ShortDescription)
	if title == "" || description == "" || shortDescription == "" {
		return nil, ErrIdeaFieldsRequired
	}
	if len(input.ImagePaths) > constants.MaxIdeaImages {
		return nil, ErrTooManyImages
	}

	images, err := uploadImages(ctx, s.uploader, input.ImagePaths)
	if err != nil {
		return nil, err
	}

	idea := &models.Idea{
		Title:            title,
		Description:      description,
		ShortDescription: shortDescription,
		Tags:             cleanTags(input.Tags),
		Images:           images,
		Status:           models.IdeaStatusPending,
		State:            models.IdeaStateTodo,
		OwnerID:          input.OwnerID,
	}

	if err := s.ideaRepo.Create(ctx, idea); err != nil {
		if errors.Is(err, repository.ErrOwnerNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create idea: %w", err)
	}

	s.invalidateStatistics(ctx)

	return s.GetIdea(ctx, idea.ID)
}

// GetIdea returns an idea with its owner and likers
func (s *IdeaService) GetIdea(ctx context.Context, id string) (*models.Idea, error) {
	idea, err := s.ideaRepo.FindByID(ctx, id, "Owner", "Likes")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdeaNotFound
		}
		return nil, fmt.Errorf("failed to find idea: %w", err)
	}

	return idea, nil
}

// UpdateIdea applies a partial update on behalf of the owner or an admin
func (s *IdeaService) UpdateIdea(ctx context.Context, id string, actor Actor, input UpdateIdeaInput) (*models.Idea, error) {
	if len(input.ImagePaths) > constants.MaxIdeaImages {
		return nil, ErrTooManyImages
	}

	idea, err := s.findOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	for _, field := range []struct {
		value *string
		dest  *string
	}{
		{input.Title, &idea.Title},
		{input.Description, &idea.Description},
		{input.ShortDescription, &idea.ShortDescription},
	} {
		if field.value == nil {
			continue
		}
		trimmed := strings.TrimSpace(*field.value)
		if trimmed == "" {
			return nil, ErrIdeaFieldEmpty
		}
		*field.dest = trimmed
	}
	if input.Tags != nil {
		idea.Tags = cleanTags(input.Tags)
	}

	images, err := uploadImages(ctx, s.uploader, input.ImagePaths)
	if err != nil {
		return nil, err
	}
	if len(images) > 0 {
		idea.Images = append(append([]string{}, idea.Images...), images...)
	}

	if err := s.ideaRepo.Save(ctx, idea); err != nil {
		return nil, fmt.Errorf("failed to update idea: %w", err)
	}

	return s.GetIdea(ctx, idea.ID)
}

// UpdateStatus records a moderation decision. Setting the status stamps
// statusUpdatedBy and setting remarks stamps remarkUpdatedBy.
func (s *IdeaService) UpdateStatus(ctx context.Context, id, actorID string, input UpdateStatusInput) (*models.Idea, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	idea, err := s.GetIdea(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Status == nil && input.Remarks == nil {
		return idea, nil
	}

	if input.Status != nil {
		idea.Status = *input.Status
		idea.StatusUpdatedByID = &actorID
	}
	if input.Remarks != nil {
		idea.Remarks = strings.TrimSpace(*input.Remarks)
		idea.RemarkUpdatedByID = &actorID
	}

	if err := s.ideaRepo.Save(ctx, idea); err != nil {
		return nil, fmt.Errorf("failed to update idea status: %w", err)
	}

	if input.Status != nil {
		s.invalidateStatistics(ctx)
	}

	return s.GetIdea(ctx, idea.ID)
}

// UpdateState moves an idea through its workflow. No "updated by" is recorded.
func (s *IdeaService) UpdateState(ctx context.Context, id string, actor Actor, state models.IdeaState) (*models.Idea, error) {
	if !state.Valid() {
		return nil, ErrInvalidState
	}

	idea, err := s.findOwned(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	idea.State = state
	if err := s.ideaRepo.Save(ctx, idea); err != nil {
		return nil, fmt.Errorf("failed to update idea state: %w", err)
	}

	return s.GetIdea(ctx, idea.ID)
}

// ToggleLike adds the user to the idea's likers or removes them
func (s *IdeaService) ToggleLike(ctx context.Context, ideaID, userID string) (*repository.LikeResult, error) {
	result, err := s.ideaRepo.ToggleLike(ctx, ideaID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdeaNotFound
		}
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	return result, nil
}

// DeleteIdea hard deletes an idea. Its comments are kept.
func (s *IdeaService) DeleteIdea(ctx context.Context, id string, actor Actor) error {
	if _, err := s.findOwned(ctx, id, actor); err != nil {
		return err
	}

	if err := s.ideaRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIdeaNotFound
		}
		return fmt.Errorf("failed to delete idea: %w", err)
	}

	s.invalidateStatistics(ctx)
	return nil
}

// ListIdeas returns every idea, newest first
func (s *IdeaService) ListIdeas(ctx context.Context, params utils.PaginationParams) ([]models.Idea, int64, error) {
	return s.list(ctx, repository.IdeaFilter{Pagination: params})
}

// ListUserIdeas returns the ideas of one owner, newest first
func (s *IdeaService) ListUserIdeas(ctx context.Context, ownerID string, params utils.PaginationParams) ([]models.Idea, int64, error) {
	return s.list(ctx, repository.IdeaFilter{OwnerID: &ownerID, Pagination: params})
}

// ListByStatus returns the ideas with the given moderation status
func (s *IdeaService) ListByStatus(ctx context.Context, status models.IdeaStatus, params utils.PaginationParams) ([]models.Idea, int64, error) {
	if !status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.list(ctx, repository.IdeaFilter{Status: &status, Pagination: params})
}

// ListByState returns the ideas in the given workflow state
func (s *IdeaService) ListByState(ctx context.Context, state models.IdeaState, params utils.PaginationParams) ([]models.Idea, int64, error) {
	if !state.Valid() {
		return nil, 0, ErrInvalidState
	}
	return s.list(ctx, repository.IdeaFilter{State: &state, Pagination: params})
}

// TopIdeas returns the most liked ideas
func (s *IdeaService) TopIdeas(ctx context.Context, limit int) ([]models.Idea, error) {
	if limit < constants.MinPageSize {
		limit = constants.DefaultTopIdeas
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}

	ideas, _, err := s.list(ctx, repository.IdeaFilter{
		OrderByLikes: true,
		Pagination:   utils.NewPaginationParams(1, limit),
	})
	return ideas, err
}

// Statistics counts ideas per creation month (January first, all years
// folded together) and per canonical status, zero-filled.
func (s *IdeaService) Statistics(ctx context.Context) (*IdeaStatistics, error) {
	if s.cache != nil {
		var cached IdeaStatistics
		hit, err := s.cache.Get(ctx, statisticsCacheKey, &cached)
		if err != nil {
			slog.Warn("read statistics cache", "err", err)
		} else if hit {
			return &cached, nil
		}
	}

	times, err := s.ideaRepo.CreationTimes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load idea statistics: %w", err)
	}
	byStatus, err := s.ideaRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load idea statistics: %w", err)
	}

	stats := &IdeaStatistics{
		CountByMonth:  countByMonth(times),
		CountByStatus: make(map[models.IdeaStatus]int64, len(models.IdeaStatuses)),
	}
	for _, status := range models.IdeaStatuses {
		stats.CountByStatus[status] = byStatus[status]
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, statisticsCacheKey, stats); err != nil {
			slog.Warn("write statistics cache", "err", err)
		}
	}

	return stats, nil
}

func (s *IdeaService) list(ctx context.Context, filter repository.IdeaFilter) ([]models.Idea, int64, error) {
	ideas, total, err := s.ideaRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ideas: %w", err)
	}
	return ideas, total, nil
}

func (s *IdeaService) findOwned(ctx context.Context, id string, actor Actor) (*models.Idea, error) {
	idea, err := s.ideaRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdeaNotFound
		}
		return nil, fmt.Errorf("failed to find idea: %w", err)
	}

	if idea.OwnerID != actor.ID && !actor.IsAdmin {
		return nil, ErrNotIdeaOwner
	}
	return idea, nil
}

func (s *IdeaService) invalidateStatistics(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, statisticsCacheKey); err != nil {
		slog.Warn("invalidate statistics cache", "err", err)
	}
}

func countByMonth(times []time.Time) [12]int64 {
	var months [12]int64
	for _, t := range times {
		months[t.UTC().Month()-1]++
	}
	return months
}

func cleanTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return cleaned
}

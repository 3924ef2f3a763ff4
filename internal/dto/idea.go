package dto

import (
	"time"

	"github.com/ideaboard/ideaboard-api/internal/models"
	"github.com/ideaboard/ideaboard-api/internal/utils"
)

// LikesDTO mirrors the idea's like counter and the set of likers
type LikesDTO struct {
	Count int64    `json:"count"`
	Users []string `json:"users"`
}

// IdeaDTO represents an idea in API responses
type IdeaDTO struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"shortDescription"`
	Tags             []string          `json:"tags"`
	Images           []string          `json:"images"`
	Status           models.IdeaStatus `json:"status"`
	State            models.IdeaState  `json:"state"`
	Remarks          string            `json:"remarks"`
	OwnerID          string            `json:"ownerId"`
	Owner            *OwnerDTO         `json:"owner,omitempty"`
	StatusUpdatedBy  *string           `json:"statusUpdatedBy"`
	RemarkUpdatedBy  *string           `json:"remarkUpdatedBy"`
	Likes            LikesDTO          `json:"likes"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// IdeaListResponse represents a paginated list of ideas
type IdeaListResponse struct {
	Ideas      []IdeaDTO                `json:"ideas"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// TopIdeasResponse lists ideas ordered by like count
type TopIdeasResponse struct {
	Ideas []IdeaDTO `json:"ideas"`
}

// LikeResponse is returned after a like toggle
type LikeResponse struct {
	Liked bool     `json:"liked"`
	Likes LikesDTO `json:"likes"`
}

// IdeaStatisticsResponse is the moderation dashboard payload
type IdeaStatisticsResponse struct {
	CountByMonth  []int64          `json:"countByMonth"`
	CountByStatus map[string]int64 `json:"countByStatus"`
}

// ToIdeaDTO converts an Idea model to IdeaDTO
func ToIdeaDTO(idea models.Idea) IdeaDTO {
	users := make([]string, len(idea.Likes))
	for i, like := range idea.Likes {
		users[i] = like.UserID
	}

	dto := IdeaDTO{
		ID:               idea.ID,
		Title:            idea.Title,
		Description:      idea.Description,
		ShortDescription: idea.ShortDescription,
		Tags:             nonNil(idea.Tags),
		Images:           nonNil(idea.Images),
		Status:           idea.Status,
		State:            idea.State,
		Remarks:          idea.Remarks,
		OwnerID:          idea.OwnerID,
		StatusUpdatedBy:  idea.StatusUpdatedByID,
		RemarkUpdatedBy:  idea.RemarkUpdatedByID,
		Likes: LikesDTO{
			Count: idea.LikesCount,
			Users: users,
		},
		CreatedAt: idea.CreatedAt,
		UpdatedAt: idea.UpdatedAt,
	}

	// Include owner if preloaded
	if idea.Owner.ID != "" {
		owner := ToOwnerDTO(idea.Owner)
		dto.Owner = &owner
	}

	return dto
}

// ToIdeaDTOs converts a slice of ideas
func ToIdeaDTOs(ideas []models.Idea) []IdeaDTO {
	items := make([]IdeaDTO, len(ideas))
	for i, idea := range ideas {
		items[i] = ToIdeaDTO(idea)
	}
	return items
}

// ToIdeaListResponse converts a page of ideas to IdeaListResponse
func ToIdeaListResponse(ideas []models.Idea, params utils.PaginationParams, totalCount int64) IdeaListResponse {
	return IdeaListResponse{
		Ideas:      ToIdeaDTOs(ideas),
		Pagination: utils.NewPaginationResponse(params, totalCount),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

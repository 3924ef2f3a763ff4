package dto

import (
	"time"

	"github.com/ideaboard/ideaboard-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	IsAdmin    bool      `json:"isAdmin"`
	Ideas      []string  `json:"ideas"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// OwnerDTO is the populated owner reference on an idea
type OwnerDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginResponse is returned by a successful login or token refresh
type LoginResponse struct {
	User         UserDTO `json:"user"`
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
}

// ToUserDTO converts a User model to UserDTO. Ideas lists the ids of the
// owned ideas when the relation is preloaded.
func ToUserDTO(user models.User) UserDTO {
	ideas := make([]string, len(user.Ideas))
	for i, idea := range user.Ideas {
		ideas[i] = idea.ID
	}

	return UserDTO{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		Avatar:     user.Avatar,
		CoverImage: user.CoverImage,
		IsAdmin:    user.IsAdmin,
		Ideas:      ideas,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

// ToOwnerDTO converts a User model to OwnerDTO
func ToOwnerDTO(user models.User) OwnerDTO {
	return OwnerDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type IdeaStatus string

const (
	IdeaStatusPending  IdeaStatus = "Pending"
	IdeaStatusApproved IdeaStatus = "Approved"
	IdeaStatusRejected IdeaStatus = "Rejected"
)

// IdeaStatuses lists the moderation outcomes in their canonical order.
var IdeaStatuses = []IdeaStatus{IdeaStatusPending, IdeaStatusApproved, IdeaStatusRejected}

func (s IdeaStatus) Valid() bool {
	for _, status := range IdeaStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type IdeaState string

const (
	IdeaStateTodo       IdeaState = "Todo"
	IdeaStateInprogress IdeaState = "Inprogress"
	IdeaStateCompleted  IdeaState = "Completed"
)

var IdeaStates = []IdeaState{IdeaStateTodo, IdeaStateInprogress, IdeaStateCompleted}

func (s IdeaState) Valid() bool {
	for _, state := range IdeaStates {
		if s == state {
			return true
		}
	}
	return false
}

type Idea struct {
	ID                string                      `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title             string                      `gorm:"type:varchar(255);not null" json:"title"`
	Description       string                      `gorm:"type:text;not null" json:"description"`
	ShortDescription  string                      `gorm:"type:text;not null" json:"shortDescription"`
	Tags              datatypes.JSONSlice[string] `json:"tags"`
	Images            datatypes.JSONSlice[string] `json:"images"`
	Status            IdeaStatus                  `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	State             IdeaState                   `gorm:"type:varchar(20);not null;default:'Todo';index" json:"state"`
	Remarks           string                      `gorm:"type:text" json:"remarks"`
	OwnerID           string                      `gorm:"type:varchar(36);not null;index" json:"ownerId"`
	StatusUpdatedByID *string                     `gorm:"type:varchar(36)" json:"statusUpdatedBy"`
	RemarkUpdatedByID *string                     `gorm:"type:varchar(36)" json:"remarkUpdatedBy"`
	LikesCount        int64                       `gorm:"not null;default:0;index" json:"likesCount"`
	CreatedAt         time.Time                   `gorm:"index" json:"createdAt"`
	UpdatedAt         time.Time                   `json:"updatedAt"`

	// Relations
	Owner User       `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Likes []IdeaLike `gorm:"foreignKey:IdeaID" json:"-"`
}

func (i *Idea) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	// JSON columns are never NULL
	if i.Tags == nil {
		i.Tags = datatypes.JSONSlice[string]{}
	}
	if i.Images == nil {
		i.Images = datatypes.JSONSlice[string]{}
	}
	return nil
}

// IdeaLike is one member of an idea's set of likers. The composite key keeps
// a user in the set at most once.
type IdeaLike struct {
	IdeaID    string    `gorm:"type:varchar(36);primaryKey" json:"ideaId"`
	UserID    string    `gorm:"type:varchar(36);primaryKey" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

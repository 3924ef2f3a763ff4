package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment belongs to an idea and optionally replies to another comment.
// References are plain ids; nothing enforces that they resolve.
type Comment struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	IdeaID    string    `gorm:"type:varchar(36);not null;index" json:"ideaId"`
	ParentID  *string   `gorm:"type:varchar(36);index" json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

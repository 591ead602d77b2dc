package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is one persisted chat exchange. Only the synthesized text
// is stored; the structured recipe payload lives for a single request.
type Conversation struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	UserID      string         `gorm:"size:64;not null;index" json:"user_id"`
	UserMessage string         `gorm:"type:text;not null" json:"user_message"`
	BotResponse string         `gorm:"type:text" json:"bot_response"`
}

// TableName returns the table name for the Conversation model
func (Conversation) TableName() string {
	return "conversations"
}

// BeforeCreate assigns the primary key when the caller did not
func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ChatMessage is a direct message between two users. Body is stored as a
// fieldcodec token; rows written before encryption was introduced hold
// plaintext and still read back correctly.
type ChatMessage struct {
	MessageID   uuid.UUID      `gorm:"column:message_id;type:uuid;primaryKey" json:"message_id"`
	SenderID    uuid.UUID      `gorm:"column:sender_id;type:uuid;not null;index:idx_chat_pair" json:"sender_id"`
	RecipientID uuid.UUID      `gorm:"column:recipient_id;type:uuid;not null;index:idx_chat_pair" json:"recipient_id"`
	Body        string         `gorm:"column:body;type:text;not null" json:"body"`
	Attachment  datatypes.JSON `gorm:"column:attachment;type:jsonb" json:"attachment,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ChatMessage) TableName() string {
	return "ChatMessages"
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.MessageID == uuid.Nil {
		m.MessageID = uuid.New()
	}
	return nil
}

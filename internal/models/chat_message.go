// internal/models/chat_message.go
package models

import "github.com/google/uuid"

// ChatMessage is one chatbot exchange: the user's question together with
// the generated answer. Rows are append-only and never updated.
type ChatMessage struct {
	BaseModel
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	UserMessage string    `json:"user_message" gorm:"type:text;not null"`
	AIResponse  string    `json:"ai_response" gorm:"type:text;not null"`

	// Relationships
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

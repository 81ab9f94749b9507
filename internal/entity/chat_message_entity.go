package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage lives in a partitioned MongoDB collection keyed by session.
// Type is constant.MessageTypeUser or constant.MessageTypeAssistant.
type ChatMessage struct {
	Id        uuid.UUID `bson:"_id"`
	ChatId    uuid.UUID `bson:"chat_id"`
	Type      int       `bson:"type"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
}

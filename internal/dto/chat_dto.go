package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateChatRequest struct {
	ProjectId uuid.UUID `json:"project_id" validate:"required"`
	UserId    int64     `json:"user_id" validate:"required"`
	Title     string    `json:"title"`
}

type CreateChatResponse struct {
	Id uuid.UUID `json:"id"`
}

type ChatSessionResponse struct {
	Id        uuid.UUID `json:"id"`
	ProjectId uuid.UUID `json:"project_id"`
	UserId    int64     `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateChatRequest struct {
	Id        uuid.UUID
	ProjectId uuid.UUID `json:"project_id" validate:"required"`
	Title     string    `json:"title" validate:"required"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Type      int       `json:"type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	ProjectId uuid.UUID `json:"project_id" validate:"required"`
	ChatId    uuid.UUID `json:"chat_id" validate:"required"`
	Content   string    `json:"content" validate:"required"`
}

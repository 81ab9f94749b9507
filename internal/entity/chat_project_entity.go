package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatProject binds a tenant to its model provider and retrieval strategy.
type ChatProject struct {
	Id         uuid.UUID
	Name       string
	ModelType  string
	Strategy   string
	PromptTmpl string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}

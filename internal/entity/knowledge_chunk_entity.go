package entity

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeChunk struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	ProjectId      uuid.UUID
	KnowledgeId    uuid.UUID
	ChunkIndex     int
	FileName       string
	Keywords       []string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}

package dto

import (
	"github.com/google/uuid"
)

type IngestKnowledgeRequest struct {
	ProjectId uuid.UUID `json:"project_id" validate:"required"`
	FileName  string    `json:"file_name" validate:"required"`
	Content   string    `json:"content" validate:"required"`
}

type IngestKnowledgeResponse struct {
	KnowledgeId uuid.UUID `json:"knowledge_id"`
}

// DeleteVectorsRequest removes chunks by source document. With no ids the
// delete widens to everything in the project.
type DeleteVectorsRequest struct {
	ProjectId    uuid.UUID   `json:"project_id" validate:"required"`
	KnowledgeIds []uuid.UUID `json:"knowledge_ids"`
}

// IngestKnowledgeMessage is the payload published to the ingest pipeline.
type IngestKnowledgeMessage struct {
	KnowledgeId uuid.UUID `json:"knowledge_id"`
	ProjectId   uuid.UUID `json:"project_id"`
	FileName    string    `json:"file_name"`
	Content     string    `json:"content"`
}

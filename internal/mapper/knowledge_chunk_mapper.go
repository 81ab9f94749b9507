package mapper

import (
	"encoding/json"
	"time"

	"admissions-ai-be/internal/entity"
	"admissions-ai-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type KnowledgeChunkMapper struct{}

func NewKnowledgeChunkMapper() *KnowledgeChunkMapper {
	return &KnowledgeChunkMapper{}
}

// chunkMetadata is the jsonb payload on knowledge_chunks. Keywords come from
// the best-effort enrichment pass during ingestion.
type chunkMetadata struct {
	FileName string   `json:"file_name,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

func (m *KnowledgeChunkMapper) ToEntity(e *model.KnowledgeChunk) *entity.KnowledgeChunk {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	var meta chunkMetadata
	if len(e.Metadata) > 0 {
		// Malformed metadata degrades to no keywords rather than failing the read.
		_ = json.Unmarshal(e.Metadata, &meta)
	}

	return &entity.KnowledgeChunk{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		ProjectId:      e.ProjectId,
		KnowledgeId:    e.KnowledgeId,
		ChunkIndex:     e.ChunkIndex,
		FileName:       meta.FileName,
		Keywords:       meta.Keywords,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      e.DeletedAt.Valid,
	}
}

func (m *KnowledgeChunkMapper) ToModel(e *entity.KnowledgeChunk) *model.KnowledgeChunk {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	var meta datatypes.JSON
	if len(e.Keywords) > 0 || e.FileName != "" {
		raw, err := json.Marshal(chunkMetadata{FileName: e.FileName, Keywords: e.Keywords})
		if err == nil {
			meta = datatypes.JSON(raw)
		}
	}

	return &model.KnowledgeChunk{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		ProjectId:      e.ProjectId,
		KnowledgeId:    e.KnowledgeId,
		ChunkIndex:     e.ChunkIndex,
		Metadata:       meta,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

package mapper

import (
	"time"

	"admissions-ai-be/internal/entity"
	"admissions-ai-be/internal/model"

	"gorm.io/gorm"
)

type ChatProjectMapper struct{}

func NewChatProjectMapper() *ChatProjectMapper {
	return &ChatProjectMapper{}
}

func (m *ChatProjectMapper) ToEntity(e *model.ChatProject) *entity.ChatProject {
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

	return &entity.ChatProject{
		Id:         e.Id,
		Name:       e.Name,
		ModelType:  e.ModelType,
		Strategy:   e.Strategy,
		PromptTmpl: e.PromptTmpl,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  e.DeletedAt.Valid,
	}
}

func (m *ChatProjectMapper) ToModel(e *entity.ChatProject) *model.ChatProject {
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

	return &model.ChatProject{
		Id:         e.Id,
		Name:       e.Name,
		ModelType:  e.ModelType,
		Strategy:   e.Strategy,
		PromptTmpl: e.PromptTmpl,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

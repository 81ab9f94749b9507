package contract

import (
	"context"

	"admissions-ai-be/internal/entity"
	"admissions-ai-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatProjectRepository interface {
	Create(ctx context.Context, project *entity.ChatProject) error
	Update(ctx context.Context, project *entity.ChatProject) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.ChatProject, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatProject, error)
}

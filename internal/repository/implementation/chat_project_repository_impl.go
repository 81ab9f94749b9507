package implementation

import (
	"context"
	"errors"

	"admissions-ai-be/internal/entity"
	"admissions-ai-be/internal/mapper"
	"admissions-ai-be/internal/model"
	"admissions-ai-be/internal/repository/contract"
	"admissions-ai-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatProjectRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatProjectMapper
}

func NewChatProjectRepository(db *gorm.DB) contract.ChatProjectRepository {
	return &ChatProjectRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatProjectMapper(),
	}
}

func (r *ChatProjectRepositoryImpl) Create(ctx context.Context, project *entity.ChatProject) error {
	m := r.mapper.ToModel(project)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*project = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatProjectRepositoryImpl) Update(ctx context.Context, project *entity.ChatProject) error {
	m := r.mapper.ToModel(project)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*project = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatProjectRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ChatProject{}, id).Error
}

func (r *ChatProjectRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.ChatProject, error) {
	var m model.ChatProject
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChatProjectRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatProject, error) {
	var models []*model.ChatProject
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ChatProject, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

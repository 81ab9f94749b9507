package service

import (
	"context"
	"encoding/json"

	"admissions-ai-be/internal/dto"
	"admissions-ai-be/internal/pkg/logger"
	"admissions-ai-be/internal/pkg/serverutils"
	"admissions-ai-be/internal/repository/contract"

	"github.com/google/uuid"
)

type IKnowledgeService interface {
	Ingest(ctx context.Context, req *dto.IngestKnowledgeRequest) (*dto.IngestKnowledgeResponse, error)
	DeleteVectors(ctx context.Context, req *dto.DeleteVectorsRequest) error
}

type knowledgeService struct {
	projects         contract.ChatProjectRepository
	chunks           contract.KnowledgeChunkRepository
	publisherService IPublisherService
	ingestTopic      string
	logger           logger.ILogger
}

func NewKnowledgeService(
	projects contract.ChatProjectRepository,
	chunks contract.KnowledgeChunkRepository,
	publisherService IPublisherService,
	ingestTopic string,
	log logger.ILogger,
) IKnowledgeService {
	return &knowledgeService{
		projects:         projects,
		chunks:           chunks,
		publisherService: publisherService,
		ingestTopic:      ingestTopic,
		logger:           log,
	}
}

// Ingest validates and enqueues; the heavy lifting (chunking, enrichment,
// embedding) happens in the consumer so the HTTP call returns fast.
func (s *knowledgeService) Ingest(ctx context.Context, req *dto.IngestKnowledgeRequest) (*dto.IngestKnowledgeResponse, error) {
	project, err := s.projects.FindById(ctx, req.ProjectId)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, serverutils.NewNotFoundError("project not found")
	}

	knowledgeId := uuid.Must(uuid.NewV7())
	payload := dto.IngestKnowledgeMessage{
		KnowledgeId: knowledgeId,
		ProjectId:   req.ProjectId,
		FileName:    req.FileName,
		Content:     req.Content,
	}
	msgJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(s.ingestTopic, msgJson); err != nil {
		return nil, err
	}

	s.logger.Info("knowledge", "queued document for ingestion", map[string]interface{}{
		"knowledge_id": knowledgeId.String(),
		"project_id":   req.ProjectId.String(),
		"file_name":    req.FileName,
	})
	return &dto.IngestKnowledgeResponse{KnowledgeId: knowledgeId}, nil
}

// DeleteVectors removes chunks by source document id. Without ids the delete
// widens to everything under the project.
func (s *knowledgeService) DeleteVectors(ctx context.Context, req *dto.DeleteVectorsRequest) error {
	if len(req.KnowledgeIds) > 0 {
		return s.chunks.DeleteByKnowledgeIds(ctx, req.ProjectId, req.KnowledgeIds)
	}
	return s.chunks.DeleteByProjectId(ctx, req.ProjectId)
}

package service

import (
	"context"
	"encoding/json"

	"admissions-ai-be/internal/dto"
	"admissions-ai-be/internal/entity"
	"admissions-ai-be/internal/pkg/logger"
	"admissions-ai-be/internal/repository/contract"
	"admissions-ai-be/pkg/embedding"
	"admissions-ai-be/pkg/retrieval"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IIngestConsumerService interface {
	Consume(ctx context.Context) error
}

// ingestConsumerService runs the async ingestion pipeline: chunk the
// document, enrich each chunk with keywords, embed, bulk-insert.
type ingestConsumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	chunks            contract.KnowledgeChunkRepository
	embeddingProvider embedding.EmbeddingProvider
	chunker           *retrieval.Chunker
	enricher          *retrieval.KeywordEnricher
	logger            logger.ILogger
}

func NewIngestConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	chunks contract.KnowledgeChunkRepository,
	embeddingProvider embedding.EmbeddingProvider,
	chunker *retrieval.Chunker,
	enricher *retrieval.KeywordEnricher,
	log logger.ILogger,
) IIngestConsumerService {
	return &ingestConsumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		chunks:            chunks,
		embeddingProvider: embeddingProvider,
		chunker:           chunker,
		enricher:          enricher,
		logger:            log,
	}
}

func (cs *ingestConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *ingestConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IngestKnowledgeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ingest", "invalid message payload", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed messages never become valid, do not retry
		return
	}

	parts := cs.chunker.Split(payload.Content)
	if len(parts) == 0 {
		cs.logger.Warn("ingest", "document produced no chunks", map[string]interface{}{
			"knowledge_id": payload.KnowledgeId.String(),
			"file_name":    payload.FileName,
		})
		msg.Ack()
		return
	}

	chunks := make([]*entity.KnowledgeChunk, 0, len(parts))
	for i, part := range parts {
		resp, err := cs.embeddingProvider.Generate(ctx, part, "retrieval_document")
		if err != nil {
			cs.logger.Error("ingest", "embedding failed", map[string]interface{}{
				"knowledge_id": payload.KnowledgeId.String(),
				"chunk_index":  i,
				"error":        err.Error(),
			})
			msg.Nack() // embedding backend may recover, retry the document
			return
		}

		chunks = append(chunks, &entity.KnowledgeChunk{
			Document:       part,
			EmbeddingValue: resp.Embedding.Values,
			ProjectId:      payload.ProjectId,
			KnowledgeId:    payload.KnowledgeId,
			ChunkIndex:     i,
			FileName:       payload.FileName,
			Keywords:       cs.enricher.Extract(ctx, part),
		})
	}

	if err := cs.chunks.CreateBulk(ctx, chunks); err != nil {
		cs.logger.Error("ingest", "bulk insert failed", map[string]interface{}{
			"knowledge_id": payload.KnowledgeId.String(),
			"error":        err.Error(),
		})
		msg.Nack()
		return
	}

	cs.logger.Info("ingest", "document ingested", map[string]interface{}{
		"knowledge_id": payload.KnowledgeId.String(),
		"project_id":   payload.ProjectId.String(),
		"chunks":       len(chunks),
	})
	msg.Ack()
}

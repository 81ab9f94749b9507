package retrieval

import (
	"context"
	"fmt"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/internal/entity"
	"admissions-ai-be/internal/repository/contract"
	"admissions-ai-be/pkg/embedding"

	"github.com/google/uuid"
)

// ChunkSearcher is the slice of the chunk repository the strategies need.
type ChunkSearcher interface {
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, projectId uuid.UUID, threshold float64) ([]*contract.ScoredKnowledgeChunk, error)
}

// PreciseStrategy is the conservative default: embed the query as-is and take
// the few nearest chunks. Tight topK keeps the prompt lean for projects with
// well-curated knowledge bases.
type PreciseStrategy struct {
	chunks   ChunkSearcher
	embedder embedding.EmbeddingProvider
}

func NewPreciseStrategy(chunks ChunkSearcher, embedder embedding.EmbeddingProvider) *PreciseStrategy {
	return &PreciseStrategy{chunks: chunks, embedder: embedder}
}

func (s *PreciseStrategy) Name() string {
	return constant.StrategyPrecise
}

func (s *PreciseStrategy) Retrieve(ctx context.Context, projectId uuid.UUID, query string) ([]*entity.KnowledgeChunk, error) {
	resp, err := s.embedder.Generate(ctx, query, "retrieval_query")
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := s.chunks.SearchSimilarWithScore(ctx, resp.Embedding.Values, constant.PreciseTopK, projectId, 0)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	results := make([]*entity.KnowledgeChunk, len(scored))
	for i, sc := range scored {
		results[i] = sc.Chunk
	}
	return results, nil
}

package retrieval

import (
	"context"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/internal/entity"
	"admissions-ai-be/pkg/embedding"
	"admissions-ai-be/pkg/llm"

	"github.com/google/uuid"
)

// Strategy retrieves context documents for a query within one project.
// Implementations must never return an error for an empty result set; no
// matches is a valid outcome the caller turns into a canned answer.
type Strategy interface {
	Name() string
	Retrieve(ctx context.Context, projectId uuid.UUID, query string) ([]*entity.KnowledgeChunk, error)
}

// Strategies is the explicit strategy table keyed by the project's configured
// strategy name. Unknown names fall back to the precise strategy.
type Strategies struct {
	table    map[string]Strategy
	fallback Strategy
}

func NewStrategies(chunks ChunkSearcher, embedder embedding.EmbeddingProvider, rewriter llm.LLMProvider) *Strategies {
	precise := NewPreciseStrategy(chunks, embedder)
	recall := NewRecallStrategy(chunks, embedder, rewriter)
	return &Strategies{
		table: map[string]Strategy{
			constant.StrategyPrecise: precise,
			constant.StrategyRecall:  recall,
		},
		fallback: precise,
	}
}

func (s *Strategies) Get(name string) Strategy {
	if strat, ok := s.table[name]; ok {
		return strat
	}
	return s.fallback
}

package retrieval

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/internal/entity"
	"admissions-ai-be/internal/repository/contract"
	"admissions-ai-be/pkg/embedding"
	"admissions-ai-be/pkg/llm"

	"github.com/google/uuid"
)

// RecallStrategy trades precision for coverage: the query is first rewritten
// by a model into a fuller retrieval query, the search casts a wide net with a
// low similarity floor, and the candidates are reranked by keyword overlap
// with the original question.
type RecallStrategy struct {
	chunks   ChunkSearcher
	embedder embedding.EmbeddingProvider
	rewriter llm.LLMProvider
}

func NewRecallStrategy(chunks ChunkSearcher, embedder embedding.EmbeddingProvider, rewriter llm.LLMProvider) *RecallStrategy {
	return &RecallStrategy{chunks: chunks, embedder: embedder, rewriter: rewriter}
}

func (s *RecallStrategy) Name() string {
	return constant.StrategyRecall
}

func (s *RecallStrategy) Retrieve(ctx context.Context, projectId uuid.UUID, query string) ([]*entity.KnowledgeChunk, error) {
	searchQuery := s.rewriteQuery(ctx, query)

	resp, err := s.embedder.Generate(ctx, searchQuery, "retrieval_query")
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := s.chunks.SearchSimilarWithScore(ctx, resp.Embedding.Values,
		constant.RecallTopK, projectId, constant.RecallSimilarityThreshold)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	return rerank(query, scored), nil
}

// rewriteQuery expands the question for better recall. Any failure degrades
// to searching with the original query.
func (s *RecallStrategy) rewriteQuery(ctx context.Context, query string) string {
	prompt := fmt.Sprintf(constant.QueryRewritePrompt, query)
	rewritten, err := s.rewriter.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		return query
	}
	rewritten = strings.TrimSpace(rewritten)
	if rewritten == "" {
		return query
	}
	return rewritten
}

// rerank orders candidates by keyword overlap with the original question
// first, similarity second. Overlap with what the user literally asked beats
// raw vector proximity to a rewritten query.
func rerank(query string, scored []*contract.ScoredKnowledgeChunk) []*entity.KnowledgeChunk {
	queryTokens := Tokenize(query)

	type candidate struct {
		chunk      *entity.KnowledgeChunk
		overlap    int
		similarity float64
	}
	candidates := make([]candidate, len(scored))
	for i, sc := range scored {
		candidates[i] = candidate{
			chunk:      sc.Chunk,
			overlap:    OverlapScore(queryTokens, sc.Chunk.Document),
			similarity: sc.Similarity,
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].overlap != candidates[j].overlap {
			return candidates[i].overlap > candidates[j].overlap
		}
		return candidates[i].similarity > candidates[j].similarity
	})

	results := make([]*entity.KnowledgeChunk, len(candidates))
	for i, c := range candidates {
		results[i] = c.chunk
	}
	return results
}

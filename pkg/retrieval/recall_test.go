package retrieval

import (
	"context"
	"errors"
	"testing"

	"admissions-ai-be/internal/entity"
	"admissions-ai-be/internal/repository/contract"
	"admissions-ai-be/pkg/embedding"
	"admissions-ai-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeSearcher struct {
	scored    []*contract.ScoredKnowledgeChunk
	gotLimit  int
	gotFloor  float64
	gotVector []float32
}

func (f *fakeSearcher) SearchSimilarWithScore(ctx context.Context, emb []float32, limit int, projectId uuid.UUID, threshold float64) ([]*contract.ScoredKnowledgeChunk, error) {
	f.gotVector = emb
	f.gotLimit = limit
	f.gotFloor = threshold
	return f.scored, nil
}

type fakeEmbedder struct {
	gotText string
}

func (f *fakeEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	f.gotText = text
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2}},
	}, nil
}

type fakeLLM struct {
	generateOut string
	generateErr error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.generateOut, f.generateErr
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.generateOut, f.generateErr
}

func (f *fakeLLM) ChatStream(ctx context.Context, history []llm.Message, opts ...llm.Option) (<-chan llm.StreamChunk, error) {
	out := make(chan llm.StreamChunk, 1)
	if f.generateErr != nil {
		close(out)
		return out, f.generateErr
	}
	out <- llm.StreamChunk{Content: f.generateOut}
	close(out)
	return out, nil
}

func scoredChunk(doc string, similarity float64) *contract.ScoredKnowledgeChunk {
	return &contract.ScoredKnowledgeChunk{
		Chunk:      &entity.KnowledgeChunk{Id: uuid.New(), Document: doc},
		Similarity: similarity,
	}
}

func TestRecallRerankOrdering(t *testing.T) {
	// The closest-by-vector candidate has no keyword overlap with the
	// question; the overlapping one must still win.
	searcher := &fakeSearcher{scored: []*contract.ScoredKnowledgeChunk{
		scoredChunk("食堂每周更新菜单，欢迎品尝", 0.95),
		scoredChunk("计算机专业的就业方向包括软件开发", 0.60),
		scoredChunk("宿舍条件介绍", 0.80),
	}}
	strategy := NewRecallStrategy(searcher, &fakeEmbedder{}, &fakeLLM{generateOut: "计算机专业 就业方向"})

	results, err := strategy.Retrieve(context.Background(), uuid.New(), "计算机专业的就业方向怎么样")
	assert.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Contains(t, results[0].Document, "计算机专业")
}

func TestRecallTieBreakBySimilarity(t *testing.T) {
	// Zero overlap everywhere: similarity decides.
	searcher := &fakeSearcher{scored: []*contract.ScoredKnowledgeChunk{
		scoredChunk("alpha", 0.3),
		scoredChunk("beta", 0.9),
		scoredChunk("gamma", 0.6),
	}}
	strategy := NewRecallStrategy(searcher, &fakeEmbedder{}, &fakeLLM{generateOut: "完全无关的问题改写"})

	results, err := strategy.Retrieve(context.Background(), uuid.New(), "完全无关的问题")
	assert.NoError(t, err)
	assert.Equal(t, "beta", results[0].Document)
	assert.Equal(t, "gamma", results[1].Document)
	assert.Equal(t, "alpha", results[2].Document)
}

func TestRecallSearchParameters(t *testing.T) {
	searcher := &fakeSearcher{}
	strategy := NewRecallStrategy(searcher, &fakeEmbedder{}, &fakeLLM{generateOut: "改写后的查询"})

	_, err := strategy.Retrieve(context.Background(), uuid.New(), "原始问题")
	assert.NoError(t, err)
	assert.Equal(t, 10, searcher.gotLimit)
	assert.InDelta(t, 0.2, searcher.gotFloor, 1e-9)
}

func TestRecallRewriteFailureFallsBackToRawQuery(t *testing.T) {
	embedder := &fakeEmbedder{}
	strategy := NewRecallStrategy(&fakeSearcher{}, embedder, &fakeLLM{generateErr: errors.New("model down")})

	_, err := strategy.Retrieve(context.Background(), uuid.New(), "原始问题")
	assert.NoError(t, err)
	assert.Equal(t, "原始问题", embedder.gotText)
}

func TestPreciseSearchParameters(t *testing.T) {
	searcher := &fakeSearcher{scored: []*contract.ScoredKnowledgeChunk{scoredChunk("doc", 0.9)}}
	embedder := &fakeEmbedder{}
	strategy := NewPreciseStrategy(searcher, embedder)

	results, err := strategy.Retrieve(context.Background(), uuid.New(), "有哪些专业")
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 3, searcher.gotLimit)
	assert.Equal(t, float64(0), searcher.gotFloor)
	assert.Equal(t, "有哪些专业", embedder.gotText)
}

func TestStrategiesFallback(t *testing.T) {
	strategies := NewStrategies(&fakeSearcher{}, &fakeEmbedder{}, &fakeLLM{})

	assert.Equal(t, "precise", strategies.Get("precise").Name())
	assert.Equal(t, "recall", strategies.Get("recall").Name())
	assert.Equal(t, "precise", strategies.Get("unknown").Name())
}

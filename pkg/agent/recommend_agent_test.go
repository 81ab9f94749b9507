package agent

import (
	"context"
	"testing"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/internal/entity"
	"admissions-ai-be/internal/repository/contract"
	"admissions-ai-be/pkg/embedding"
	"admissions-ai-be/pkg/llm"
	"admissions-ai-be/pkg/llm/factory"
	"admissions-ai-be/pkg/retrieval"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeChunkSearcher struct {
	scored []*contract.ScoredKnowledgeChunk
}

func (f *fakeChunkSearcher) SearchSimilarWithScore(ctx context.Context, emb []float32, limit int, projectId uuid.UUID, threshold float64) ([]*contract.ScoredKnowledgeChunk, error) {
	return f.scored, nil
}

type fixedEmbedder struct{}

func (fixedEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.5}},
	}, nil
}

func recommendSetup(provider *fakeProvider, searcher *fakeChunkSearcher) (*RecommendAgent, *Request) {
	providers := factory.Providers{constant.ModelTypeOllama: provider}
	strategies := retrieval.NewStrategies(searcher, fixedEmbedder{}, provider)
	a := NewRecommendAgent(providers, strategies, nopLogger{})
	req := &Request{
		ProjectId: uuid.New(),
		Question:  "有哪些专业？",
		History:   []llm.Message{{Role: "user", Content: "有哪些专业？"}},
		ModelType: constant.ModelTypeOllama,
		Strategy:  constant.StrategyPrecise,
	}
	return a, req
}

func TestRecommendEmptyContextBypassesModel(t *testing.T) {
	provider := &fakeProvider{chunks: []string{"不应该被调用"}}
	a, req := recommendSetup(provider, &fakeChunkSearcher{})

	stream, err := a.Stream(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, constant.EmptyContextAnswer, drain(t, stream))
}

func TestRecommendStripsLeakedLabel(t *testing.T) {
	provider := &fakeProvider{chunks: []string{"RECOMMEND: 推荐", "计算机专业，", "该专业就业前景良好，课程设置完善。"}}
	searcher := &fakeChunkSearcher{scored: []*contract.ScoredKnowledgeChunk{{
		Chunk:      &entity.KnowledgeChunk{Id: uuid.New(), Document: "计算机专业介绍"},
		Similarity: 0.9,
	}}}
	a, req := recommendSetup(provider, searcher)

	stream, err := a.Stream(context.Background(), req)
	assert.NoError(t, err)

	answer := drain(t, stream)
	assert.False(t, len(answer) == 0)
	assert.NotContains(t, answer, "RECOMMEND")
	assert.Contains(t, answer, "推荐计算机专业")
}

func TestStripLeadingLabelPreservesOrder(t *testing.T) {
	in := make(chan llm.StreamChunk, 4)
	in <- llm.StreamChunk{Content: "第一段内容比较长，足以越过缓冲窗口，"}
	in <- llm.StreamChunk{Content: "第二段"}
	in <- llm.StreamChunk{Content: "第三段"}
	close(in)

	var got string
	for chunk := range stripLeadingLabel(context.Background(), in) {
		got += chunk.Content
	}
	assert.Equal(t, "第一段内容比较长，足以越过缓冲窗口，第二段第三段", got)
}

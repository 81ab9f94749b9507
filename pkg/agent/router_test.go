package agent

import (
	"context"
	"errors"
	"testing"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

func classify(t *testing.T, provider llm.LLMProvider) constant.AgentLabel {
	t.Helper()
	router := NewRouter(provider, nopLogger{})
	return router.Classify(context.Background(), &Request{
		Question: "有哪些专业？",
		History:  []llm.Message{{Role: "user", Content: "有哪些专业？"}},
	})
}

func TestRouterBuffersFullStreamBeforeMatching(t *testing.T) {
	// The label arrives split across chunks. Only a fully buffered read can
	// match it; inspecting partial tokens would classify this as DEFAULT.
	provider := &fakeProvider{chunks: []string{"RECOM", "MEND"}}
	assert.Equal(t, constant.LabelRecommend, classify(t, provider))
}

func TestRouterTrimsWhitespace(t *testing.T) {
	provider := &fakeProvider{chunks: []string{"  RESERVATION\n"}}
	assert.Equal(t, constant.LabelReservation, classify(t, provider))
}

func TestRouterFreeTextFallsBackToDefault(t *testing.T) {
	provider := &fakeProvider{chunks: []string{"用户想了解", "专业信息，建议推荐"}}
	assert.Equal(t, constant.LabelDefault, classify(t, provider))
}

func TestRouterRouteLabelFallsBackToDefault(t *testing.T) {
	provider := &fakeProvider{chunks: []string{"ROUTE"}}
	assert.Equal(t, constant.LabelDefault, classify(t, provider))
}

func TestRouterCallFailureFallsBackToDefault(t *testing.T) {
	provider := &fakeProvider{streamErr: errors.New("model unreachable")}
	assert.Equal(t, constant.LabelDefault, classify(t, provider))
}

func TestBoundedHistoryKeepsNewestTurns(t *testing.T) {
	history := make([]llm.Message, 10)
	for i := range history {
		history[i] = llm.Message{Role: "user", Content: string(rune('a' + i))}
	}

	bounded := boundedHistory(history, 6)
	assert.Len(t, bounded, 6)
	assert.Equal(t, "e", bounded[0].Content)
	assert.Equal(t, "j", bounded[5].Content)
}

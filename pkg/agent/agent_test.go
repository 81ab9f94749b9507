package agent

import (
	"context"
	"testing"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

// nopLogger satisfies logger.ILogger for tests.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// fakeProvider streams its chunks verbatim and answers Generate with a fixed
// string.
type fakeProvider struct {
	chunks      []string
	generateOut string
	generateErr error
	streamErr   error
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return f.generateOut, f.generateErr
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.generateOut, f.generateErr
}

func (f *fakeProvider) ChatStream(ctx context.Context, history []llm.Message, opts ...llm.Option) (<-chan llm.StreamChunk, error) {
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	out := make(chan llm.StreamChunk)
	go func() {
		defer close(out)
		for _, c := range f.chunks {
			out <- llm.StreamChunk{Content: c}
		}
	}()
	return out, nil
}

type stubAgent struct {
	label constant.AgentLabel
}

func (s *stubAgent) Label() constant.AgentLabel { return s.label }
func (s *stubAgent) Stream(ctx context.Context, req *Request) (<-chan llm.StreamChunk, error) {
	return singleChunkStream("stub"), nil
}

func TestStripLabelPrefix(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no label untouched", "推荐以下专业：计算机", "推荐以下专业：计算机"},
		{"bare label with colon", "RECOMMEND: 推荐以下专业", "推荐以下专业"},
		{"label with cjk colon", "RECOMMEND：推荐以下专业", "推荐以下专业"},
		{"label on own line", "SCHOOL_QUERY\n校区如下", "校区如下"},
		{"leading whitespace before label", "  MAPS_QUERY: 距离约3公里", "距离约3公里"},
		{"label as part of a word stays", "RECOMMENDATION list follows", "RECOMMENDATION list follows"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripLabelPrefix(tt.input))
		})
	}
}

func TestRegistryFallsBackToDefault(t *testing.T) {
	def := &stubAgent{label: constant.LabelDefault}
	maps := &stubAgent{label: constant.LabelMapsQuery}
	registry := NewRegistry(def, maps)

	assert.Equal(t, maps, registry.Get(constant.LabelMapsQuery))
	assert.Equal(t, def, registry.Get(constant.LabelReservation))
	assert.Equal(t, def, registry.Get(constant.LabelDefault))
}

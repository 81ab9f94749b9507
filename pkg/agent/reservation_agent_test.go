package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/pkg/llm"
	"admissions-ai-be/pkg/llm/factory"

	"github.com/stretchr/testify/assert"
)

type fakeToolCaller struct {
	result string
	err    error
	calls  []string
	args   map[string]interface{}
}

func (f *fakeToolCaller) CallTool(ctx context.Context, name string, arguments map[string]interface{}) (string, error) {
	f.calls = append(f.calls, name)
	f.args = arguments
	return f.result, f.err
}

func drain(t *testing.T, stream <-chan llm.StreamChunk) string {
	t.Helper()
	var sb strings.Builder
	for chunk := range stream {
		assert.NoError(t, chunk.Err)
		sb.WriteString(chunk.Content)
	}
	return sb.String()
}

func reservationSetup(extraction string, extractionErr error, tools *fakeToolCaller) (*ReservationAgent, *Request) {
	provider := &fakeProvider{generateOut: extraction, generateErr: extractionErr}
	providers := factory.Providers{constant.ModelTypeOllama: provider}
	a := NewReservationAgent(providers, tools, nopLogger{})
	req := &Request{
		Question:  "我想预约咨询",
		ModelType: constant.ModelTypeOllama,
	}
	return a, req
}

func TestReservationMissingFieldsNeverWrites(t *testing.T) {
	tools := &fakeToolCaller{}
	a, req := reservationSetup(`{"name": "张三", "phone": "", "campus": ""}`, nil, tools)

	stream, err := a.Stream(context.Background(), req)
	assert.NoError(t, err)

	answer := drain(t, stream)
	assert.Empty(t, tools.calls, "write tool must not be called with missing fields")
	assert.Contains(t, answer, "联系方式")
	assert.Contains(t, answer, "校区")
	assert.NotContains(t, answer, "姓名")
}

func TestReservationExtractionFailureAsksForEverything(t *testing.T) {
	tools := &fakeToolCaller{}
	a, req := reservationSetup("", errors.New("model down"), tools)

	stream, err := a.Stream(context.Background(), req)
	assert.NoError(t, err)

	answer := drain(t, stream)
	assert.Empty(t, tools.calls)
	assert.Contains(t, answer, "姓名")
	assert.Contains(t, answer, "联系方式")
	assert.Contains(t, answer, "校区")
}

func TestReservationCompleteFieldsWrite(t *testing.T) {
	tools := &fakeToolCaller{result: "ok"}
	a, req := reservationSetup("```json\n{\"name\": \"张三\", \"phone\": \"13800000000\", \"campus\": \"东校区\"}\n```", nil, tools)

	stream, err := a.Stream(context.Background(), req)
	assert.NoError(t, err)

	answer := drain(t, stream)
	assert.Equal(t, []string{constant.ToolReservationWrite}, tools.calls)
	assert.Equal(t, "张三", tools.args["name"])
	assert.Equal(t, "13800000000", tools.args["phone"])
	assert.Equal(t, "东校区", tools.args["campus"])
	assert.Contains(t, answer, "预约成功")
}

func TestReservationWriteFailureDegradesSoftly(t *testing.T) {
	tools := &fakeToolCaller{err: errors.New("gateway exhausted retries")}
	a, req := reservationSetup(`{"name": "张三", "phone": "13800000000", "campus": "东校区"}`, nil, tools)

	stream, err := a.Stream(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, constant.ToolUnavailableAnswer, drain(t, stream))
}

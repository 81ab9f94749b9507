package agent

import (
	"context"
	"strings"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/internal/pkg/logger"
	"admissions-ai-be/pkg/llm"
)

// maxRouterHistory bounds how much conversation the classifier sees. The
// most recent turns carry the intent; older ones only add noise and tokens.
const maxRouterHistory = 6

// Router classifies a turn into an agent label. The classification stream is
// fully buffered before inspection because partial tokens are never valid
// labels.
type Router struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewRouter(provider llm.LLMProvider, log logger.ILogger) *Router {
	return &Router{provider: provider, logger: log}
}

func (r *Router) Classify(ctx context.Context, req *Request) constant.AgentLabel {
	history := boundedHistory(req.History, maxRouterHistory)

	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{Role: "system", Content: constant.RouteAgentPrompt})
	messages = append(messages, history...)

	stream, err := r.provider.ChatStream(ctx, messages, llm.WithTemperature(0))
	if err != nil {
		r.logger.Warn("router", "classification call failed, using default agent", map[string]interface{}{
			"error": err.Error(),
		})
		return constant.LabelDefault
	}

	// Buffer everything before looking at it.
	var sb strings.Builder
	for chunk := range stream {
		if chunk.Err != nil {
			r.logger.Warn("router", "classification stream failed, using default agent", map[string]interface{}{
				"error": chunk.Err.Error(),
			})
			return constant.LabelDefault
		}
		sb.WriteString(chunk.Content)
	}

	label := constant.ParseAgentLabel(strings.TrimSpace(sb.String()))
	r.logger.Debug("router", "classified turn", map[string]interface{}{
		"label": string(label),
	})
	return label
}

// boundedHistory keeps the newest max entries in their original order.
func boundedHistory(history []llm.Message, max int) []llm.Message {
	if len(history) <= max {
		return history
	}
	return history[len(history)-max:]
}

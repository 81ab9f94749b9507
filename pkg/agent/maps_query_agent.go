package agent

import (
	"context"
	"fmt"
	"strings"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/internal/pkg/logger"
	"admissions-ai-be/pkg/llm"
	"admissions-ai-be/pkg/llm/factory"
)

// MapsQueryAgent grounds travel answers in the maps tool subset. Route and
// distance questions hit the direction tool, everything else the text search.
type MapsQueryAgent struct {
	providers factory.Providers
	gateway   ToolCaller
	logger    logger.ILogger
}

func NewMapsQueryAgent(providers factory.Providers, gateway ToolCaller, log logger.ILogger) *MapsQueryAgent {
	return &MapsQueryAgent{providers: providers, gateway: gateway, logger: log}
}

func (a *MapsQueryAgent) Label() constant.AgentLabel {
	return constant.LabelMapsQuery
}

func (a *MapsQueryAgent) Stream(ctx context.Context, req *Request) (<-chan llm.StreamChunk, error) {
	provider, err := a.providers.Get(req.ModelType)
	if err != nil {
		return nil, err
	}

	tool := constant.ToolMapsTextSearch
	if isRouteQuestion(req.Question) {
		tool = constant.ToolMapsDirection
	}

	result, err := a.gateway.CallTool(ctx, tool, map[string]interface{}{
		"query": req.Question,
	})
	if err != nil {
		a.logger.Warn("agent", "maps tool unavailable", map[string]interface{}{
			"tool":  tool,
			"error": err.Error(),
		})
		return singleChunkStream(constant.ToolUnavailableAnswer), nil
	}

	systemPrompt := fmt.Sprintf("%s\n\n## 地图工具结果\n%s", constant.MapsQueryAgentPrompt, result)

	messages := make([]llm.Message, 0, len(req.History)+1)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	messages = append(messages, req.History...)

	return provider.ChatStream(ctx, messages)
}

func isRouteQuestion(question string) bool {
	for _, marker := range []string{"路线", "怎么去", "怎么走", "多远", "距离", "导航"} {
		if strings.Contains(question, marker) {
			return true
		}
	}
	return false
}

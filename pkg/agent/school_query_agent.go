package agent

import (
	"context"
	"fmt"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/internal/pkg/logger"
	"admissions-ai-be/pkg/llm"
	"admissions-ai-be/pkg/llm/factory"
)

// SchoolQueryAgent answers campus questions from live tool data. It never
// answers from model memory: the campus list comes from the gateway or the
// user gets the soft degradation message.
type SchoolQueryAgent struct {
	providers factory.Providers
	gateway   ToolCaller
	logger    logger.ILogger
}

func NewSchoolQueryAgent(providers factory.Providers, gateway ToolCaller, log logger.ILogger) *SchoolQueryAgent {
	return &SchoolQueryAgent{providers: providers, gateway: gateway, logger: log}
}

func (a *SchoolQueryAgent) Label() constant.AgentLabel {
	return constant.LabelSchoolQuery
}

func (a *SchoolQueryAgent) Stream(ctx context.Context, req *Request) (<-chan llm.StreamChunk, error) {
	provider, err := a.providers.Get(req.ModelType)
	if err != nil {
		return nil, err
	}

	campuses, err := a.gateway.CallTool(ctx, constant.ToolCampusLookup, map[string]interface{}{
		"query": req.Question,
	})
	if err != nil {
		a.logger.Warn("agent", "campus lookup unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return singleChunkStream(constant.ToolUnavailableAnswer), nil
	}

	systemPrompt := fmt.Sprintf("%s\n\n## 校区查询结果\n%s", constant.SchoolQueryAgentPrompt, campuses)

	messages := make([]llm.Message, 0, len(req.History)+1)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	messages = append(messages, req.History...)

	return provider.ChatStream(ctx, messages)
}

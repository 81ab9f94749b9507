package agent

import (
	"context"
	"fmt"
	"strings"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/internal/pkg/logger"
	"admissions-ai-be/pkg/llm"
	"admissions-ai-be/pkg/llm/factory"
	"admissions-ai-be/pkg/retrieval"
)

// RecommendAgent is the retrieval-augmented answer path and the DEFAULT
// dispatch target. It grounds every answer in the project's knowledge base;
// when retrieval finds nothing the model is bypassed entirely so it cannot
// invent one.
type RecommendAgent struct {
	providers  factory.Providers
	strategies *retrieval.Strategies
	logger     logger.ILogger
}

func NewRecommendAgent(providers factory.Providers, strategies *retrieval.Strategies, log logger.ILogger) *RecommendAgent {
	return &RecommendAgent{providers: providers, strategies: strategies, logger: log}
}

func (a *RecommendAgent) Label() constant.AgentLabel {
	return constant.LabelDefault
}

func (a *RecommendAgent) Stream(ctx context.Context, req *Request) (<-chan llm.StreamChunk, error) {
	provider, err := a.providers.Get(req.ModelType)
	if err != nil {
		return nil, err
	}

	strategy := a.strategies.Get(req.Strategy)
	chunks, err := strategy.Retrieve(ctx, req.ProjectId, req.Question)
	if err != nil {
		// Retrieval failures degrade to the no-context answer rather than
		// surfacing an internal error mid-conversation.
		a.logger.Warn("agent", "retrieval failed", map[string]interface{}{
			"project_id": req.ProjectId.String(),
			"strategy":   strategy.Name(),
			"error":      err.Error(),
		})
		return singleChunkStream(constant.EmptyContextAnswer), nil
	}
	if len(chunks) == 0 {
		return singleChunkStream(constant.EmptyContextAnswer), nil
	}

	var sb strings.Builder
	for i, chunk := range chunks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(chunk.Document)
	}

	systemPrompt := fmt.Sprintf("%s\n\n## 知识库内容\n%s", constant.RecommendAgentPrompt, sb.String())

	messages := make([]llm.Message, 0, len(req.History)+1)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	messages = append(messages, req.History...)

	stream, err := provider.ChatStream(ctx, messages)
	if err != nil {
		return nil, err
	}
	return stripLeadingLabel(ctx, stream), nil
}

// stripLeadingLabel holds back the first emission until enough text has
// arrived to decide whether a classification tag leaked into the answer.
func stripLeadingLabel(ctx context.Context, in <-chan llm.StreamChunk) <-chan llm.StreamChunk {
	out := make(chan llm.StreamChunk)
	go func() {
		defer close(out)

		var head strings.Builder
		buffering := true
		for chunk := range in {
			if chunk.Err != nil {
				select {
				case out <- chunk:
				case <-ctx.Done():
				}
				return
			}
			if buffering {
				head.WriteString(chunk.Content)
				// Longest label plus separator fits well inside 32 runes.
				if len([]rune(head.String())) < 32 {
					continue
				}
				buffering = false
				select {
				case out <- llm.StreamChunk{Content: StripLabelPrefix(head.String())}:
				case <-ctx.Done():
					return
				}
				continue
			}
			select {
			case out <- chunk:
			case <-ctx.Done():
				return
			}
		}
		if buffering && head.Len() > 0 {
			select {
			case out <- llm.StreamChunk{Content: StripLabelPrefix(head.String())}:
			case <-ctx.Done():
			}
		}
	}()
	return out
}

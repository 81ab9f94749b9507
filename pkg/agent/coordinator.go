package agent

import (
	"context"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/internal/entity"
	"admissions-ai-be/internal/pkg/logger"
	"admissions-ai-be/internal/pkg/serverutils"
	"admissions-ai-be/internal/repository/mongodb"
	"admissions-ai-be/pkg/llm"
	"admissions-ai-be/pkg/safety"

	"github.com/google/uuid"
)

// Coordinator runs one conversation turn end to end: safety check, user
// message persistence, classification, and dispatch. From dispatch onward it
// is a pure pass-through; the agent's stream reaches the caller verbatim and
// is never fed back into the router.
type Coordinator struct {
	filter   *safety.Filter
	messages mongodb.MessageRepository
	router   *Router
	registry *Registry
	logger   logger.ILogger
}

func NewCoordinator(filter *safety.Filter, messages mongodb.MessageRepository, router *Router, registry *Registry, log logger.ILogger) *Coordinator {
	return &Coordinator{
		filter:   filter,
		messages: messages,
		router:   router,
		registry: registry,
		logger:   log,
	}
}

func (c *Coordinator) Coordinate(ctx context.Context, req *Request) (<-chan llm.StreamChunk, error) {
	// Banned content rejects the whole turn before anything is persisted.
	if term := c.filter.Match(req.Question); term != "" {
		c.logger.Info("coordinator", "turn rejected by safety filter", map[string]interface{}{
			"session_id": req.SessionId.String(),
		})
		return nil, serverutils.NewValidationError(constant.BannedContentAnswer)
	}

	userMessage := &entity.ChatMessage{
		Id:      uuid.Must(uuid.NewV7()),
		ChatId:  req.SessionId,
		Type:    constant.MessageTypeUser,
		Content: req.Question,
	}
	if err := c.messages.Append(ctx, userMessage); err != nil {
		return nil, serverutils.NewInternalError(err)
	}

	label := c.router.Classify(ctx, req)
	a := c.registry.Get(label)

	c.logger.Info("coordinator", "dispatching turn", map[string]interface{}{
		"session_id": req.SessionId.String(),
		"agent":      string(a.Label()),
	})

	return a.Stream(ctx, req)
}

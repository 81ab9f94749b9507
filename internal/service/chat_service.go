package service

import (
	"context"
	"strings"
	"time"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/internal/dto"
	"admissions-ai-be/internal/entity"
	"admissions-ai-be/internal/pkg/logger"
	"admissions-ai-be/internal/pkg/serverutils"
	"admissions-ai-be/internal/repository/contract"
	"admissions-ai-be/internal/repository/mongodb"
	"admissions-ai-be/pkg/agent"
	"admissions-ai-be/pkg/llm"
	"admissions-ai-be/pkg/safety"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

type IChatService interface {
	Create(ctx context.Context, req *dto.CreateChatRequest) (*dto.CreateChatResponse, error)
	List(ctx context.Context, projectId uuid.UUID, userId int64) ([]*dto.ChatSessionResponse, error)
	Update(ctx context.Context, req *dto.UpdateChatRequest) error
	Delete(ctx context.Context, projectId uuid.UUID, chatId uuid.UUID) error
	ListMessages(ctx context.Context, chatId uuid.UUID) ([]*dto.ChatMessageResponse, error)
	SendMessage(ctx context.Context, req *dto.SendMessageRequest) (<-chan llm.StreamChunk, error)
}

type chatService struct {
	chats       mongodb.ChatRepository
	messages    mongodb.MessageRepository
	projects    contract.ChatProjectRepository
	coordinator *agent.Coordinator
	filter      *safety.Filter
	logger      logger.ILogger

	projectCache         *gocache.Cache
	persistPartialOnStop bool
}

func NewChatService(
	chats mongodb.ChatRepository,
	messages mongodb.MessageRepository,
	projects contract.ChatProjectRepository,
	coordinator *agent.Coordinator,
	filter *safety.Filter,
	log logger.ILogger,
	persistPartialOnStop bool,
) IChatService {
	return &chatService{
		chats:                chats,
		messages:             messages,
		projects:             projects,
		coordinator:          coordinator,
		filter:               filter,
		logger:               log,
		projectCache:         gocache.New(5*time.Minute, 10*time.Minute),
		persistPartialOnStop: persistPartialOnStop,
	}
}

// getProject reads through the cache. Project config changes rarely; a short
// TTL keeps the hot send path off Postgres.
func (s *chatService) getProject(ctx context.Context, projectId uuid.UUID) (*entity.ChatProject, error) {
	key := projectId.String()
	if cached, found := s.projectCache.Get(key); found {
		return cached.(*entity.ChatProject), nil
	}

	project, err := s.projects.FindById(ctx, projectId)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, serverutils.NewNotFoundError("project not found")
	}
	s.projectCache.Set(key, project, gocache.DefaultExpiration)
	return project, nil
}

func (s *chatService) Create(ctx context.Context, req *dto.CreateChatRequest) (*dto.CreateChatResponse, error) {
	if _, err := s.getProject(ctx, req.ProjectId); err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = "新对话"
	}

	session := &entity.ChatSession{
		Id:        uuid.Must(uuid.NewV7()),
		ProjectId: req.ProjectId,
		UserId:    req.UserId,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.chats.Create(ctx, session); err != nil {
		return nil, err
	}
	return &dto.CreateChatResponse{Id: session.Id}, nil
}

// List returns the sessions of one user within one project. User scoping is a
// filter, not an auth check; the caller supplies the user identifier.
func (s *chatService) List(ctx context.Context, projectId uuid.UUID, userId int64) ([]*dto.ChatSessionResponse, error) {
	sessions, err := s.chats.FindAllByProjectAndUser(ctx, projectId, userId)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.ChatSessionResponse, len(sessions))
	for i, session := range sessions {
		result[i] = &dto.ChatSessionResponse{
			Id:        session.Id,
			ProjectId: session.ProjectId,
			UserId:    session.UserId,
			Title:     session.Title,
			CreatedAt: session.CreatedAt,
		}
	}
	return result, nil
}

func (s *chatService) Update(ctx context.Context, req *dto.UpdateChatRequest) error {
	session, err := s.chats.FindById(ctx, req.ProjectId, req.Id)
	if err != nil {
		return err
	}
	if session == nil {
		return serverutils.NewNotFoundError("chat session not found")
	}
	return s.chats.UpdateTitle(ctx, req.ProjectId, req.Id, req.Title)
}

// Delete removes the session and all of its messages. The message partition
// is derived from the chat id, so the cleanup stays in one collection.
func (s *chatService) Delete(ctx context.Context, projectId uuid.UUID, chatId uuid.UUID) error {
	session, err := s.chats.FindById(ctx, projectId, chatId)
	if err != nil {
		return err
	}
	if session == nil {
		return serverutils.NewNotFoundError("chat session not found")
	}
	if err := s.messages.DeleteByChatId(ctx, chatId); err != nil {
		return err
	}
	return s.chats.Delete(ctx, projectId, chatId)
}

func (s *chatService) ListMessages(ctx context.Context, chatId uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	messages, err := s.messages.FindAllByChatId(ctx, chatId)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.ChatMessageResponse, len(messages))
	for i, msg := range messages {
		result[i] = &dto.ChatMessageResponse{
			Id:        msg.Id,
			Type:      msg.Type,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		}
	}
	return result, nil
}

// SendMessage runs a full conversation turn. The returned stream relays the
// agent's chunks verbatim; once the stream completes the assistant message is
// persisted and the post-answer policy hook runs.
func (s *chatService) SendMessage(ctx context.Context, req *dto.SendMessageRequest) (<-chan llm.StreamChunk, error) {
	project, err := s.getProject(ctx, req.ProjectId)
	if err != nil {
		return nil, err
	}

	session, err := s.chats.FindById(ctx, req.ProjectId, req.ChatId)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewNotFoundError("chat session not found")
	}

	stored, err := s.messages.FindAllByChatId(ctx, req.ChatId)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(stored)+1)
	for _, msg := range stored {
		role := "user"
		if msg.Type == constant.MessageTypeAssistant {
			role = "assistant"
		}
		history = append(history, llm.Message{Role: role, Content: msg.Content})
	}
	history = append(history, llm.Message{Role: "user", Content: req.Content})

	agentReq := &agent.Request{
		ProjectId: req.ProjectId,
		SessionId: req.ChatId,
		Question:  req.Content,
		History:   history,
		ModelType: project.ModelType,
		Strategy:  project.Strategy,
	}

	stream, err := s.coordinator.Coordinate(ctx, agentReq)
	if err != nil {
		return nil, err
	}

	out := make(chan llm.StreamChunk)
	go s.relay(ctx, req.ChatId, stream, out)
	return out, nil
}

// relay forwards chunks to the caller while accumulating the full answer for
// persistence. Chunk order is preserved; nothing is inspected mid-flight.
func (s *chatService) relay(ctx context.Context, chatId uuid.UUID, in <-chan llm.StreamChunk, out chan<- llm.StreamChunk) {
	defer close(out)

	var full strings.Builder
	cancelled := false

	for chunk := range in {
		full.WriteString(chunk.Content)
		select {
		case out <- chunk:
		case <-ctx.Done():
			cancelled = true
		}
		if cancelled {
			break
		}
	}
	if cancelled {
		// Drain so the producer can finish and release its resources.
		for range in {
		}
	}

	answer := full.String()
	if answer == "" {
		return
	}
	if cancelled && !s.persistPartialOnStop {
		s.logger.Info("chat", "discarding partial answer after cancel", map[string]interface{}{
			"chat_id": chatId.String(),
		})
		return
	}

	// Persistence survives the request context.
	persistCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	assistantMessage := &entity.ChatMessage{
		Id:      uuid.Must(uuid.NewV7()),
		ChatId:  chatId,
		Type:    constant.MessageTypeAssistant,
		Content: answer,
	}
	if err := s.messages.Append(persistCtx, assistantMessage); err != nil {
		s.logger.Error("chat", "failed to persist assistant message", map[string]interface{}{
			"chat_id": chatId.String(),
			"error":   err.Error(),
		})
		return
	}

	s.applyAnswerPolicy(persistCtx, chatId, answer)
}

// applyAnswerPolicy inspects the completed answer. A banned term in the
// output rolls the whole turn back: the user question and the answer are both
// removed so the violation never becomes part of future model context.
func (s *chatService) applyAnswerPolicy(ctx context.Context, chatId uuid.UUID, answer string) {
	term := s.filter.Match(answer)
	if term == "" {
		return
	}
	s.logger.Warn("chat", "answer violated content policy, rolling back turn", map[string]interface{}{
		"chat_id": chatId.String(),
	})
	if err := s.messages.DeleteLastN(ctx, chatId, constant.RollbackMessageCount); err != nil {
		s.logger.Error("chat", "rollback failed", map[string]interface{}{
			"chat_id": chatId.String(),
			"error":   err.Error(),
		})
	}
}

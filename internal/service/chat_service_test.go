package service

import (
	"context"
	"sync"
	"testing"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/internal/dto"
	"admissions-ai-be/internal/entity"
	"admissions-ai-be/internal/pkg/serverutils"
	"admissions-ai-be/internal/repository/specification"
	"admissions-ai-be/pkg/agent"
	"admissions-ai-be/pkg/llm"
	"admissions-ai-be/pkg/safety"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// memMessageRepo is an in-memory stand-in for the partitioned message store.
type memMessageRepo struct {
	mu       sync.Mutex
	messages []*entity.ChatMessage
}

func (r *memMessageRepo) Append(ctx context.Context, message *entity.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
	return nil
}

func (r *memMessageRepo) FindAllByChatId(ctx context.Context, chatId uuid.UUID) ([]*entity.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.ChatMessage
	for _, m := range r.messages {
		if m.ChatId == chatId {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *memMessageRepo) DeleteLastN(ctx context.Context, chatId uuid.UUID, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for n > 0 && len(r.messages) > 0 {
		r.messages = r.messages[:len(r.messages)-1]
		n--
	}
	return nil
}

func (r *memMessageRepo) DeleteByChatId(ctx context.Context, chatId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*entity.ChatMessage
	for _, m := range r.messages {
		if m.ChatId != chatId {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

func (r *memMessageRepo) snapshot() []*entity.ChatMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.ChatMessage(nil), r.messages...)
}

type memChatRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.ChatSession
}

func newMemChatRepo() *memChatRepo {
	return &memChatRepo{sessions: make(map[uuid.UUID]*entity.ChatSession)}
}

func (r *memChatRepo) Create(ctx context.Context, session *entity.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Id] = session
	return nil
}

func (r *memChatRepo) FindById(ctx context.Context, projectId uuid.UUID, chatId uuid.UUID) (*entity.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[chatId]
	if !ok || session.ProjectId != projectId {
		return nil, nil
	}
	return session, nil
}

func (r *memChatRepo) FindAllByProjectAndUser(ctx context.Context, projectId uuid.UUID, userId int64) ([]*entity.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.ChatSession
	for _, s := range r.sessions {
		if s.ProjectId == projectId && s.UserId == userId {
			result = append(result, s)
		}
	}
	return result, nil
}

func (r *memChatRepo) UpdateTitle(ctx context.Context, projectId uuid.UUID, chatId uuid.UUID, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[chatId]; ok {
		s.Title = title
	}
	return nil
}

func (r *memChatRepo) Delete(ctx context.Context, projectId uuid.UUID, chatId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, chatId)
	return nil
}

type memProjectRepo struct {
	project *entity.ChatProject
}

func (r *memProjectRepo) Create(ctx context.Context, project *entity.ChatProject) error { return nil }
func (r *memProjectRepo) Update(ctx context.Context, project *entity.ChatProject) error { return nil }
func (r *memProjectRepo) Delete(ctx context.Context, id uuid.UUID) error                { return nil }
func (r *memProjectRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.ChatProject, error) {
	if r.project != nil && r.project.Id == id {
		return r.project, nil
	}
	return nil, nil
}
func (r *memProjectRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatProject, error) {
	return nil, nil
}

// labelProvider answers every stream with a fixed classification label.
type labelProvider struct {
	label string
}

func (p *labelProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return p.label, nil
}
func (p *labelProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.label, nil
}
func (p *labelProvider) ChatStream(ctx context.Context, history []llm.Message, opts ...llm.Option) (<-chan llm.StreamChunk, error) {
	out := make(chan llm.StreamChunk, 1)
	out <- llm.StreamChunk{Content: p.label}
	close(out)
	return out, nil
}

// chunkAgent streams fixed chunks as the default agent.
type chunkAgent struct {
	chunks []string
}

func (a *chunkAgent) Label() constant.AgentLabel { return constant.LabelDefault }
func (a *chunkAgent) Stream(ctx context.Context, req *agent.Request) (<-chan llm.StreamChunk, error) {
	out := make(chan llm.StreamChunk)
	go func() {
		defer close(out)
		for _, c := range a.chunks {
			select {
			case out <- llm.StreamChunk{Content: c}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

type fixture struct {
	service  IChatService
	messages *memMessageRepo
	chats    *memChatRepo
	project  *entity.ChatProject
	session  *entity.ChatSession
}

func newFixture(t *testing.T, answerChunks []string, bannedTerms []string) *fixture {
	t.Helper()

	project := &entity.ChatProject{
		Id:        uuid.New(),
		Name:      "测试项目",
		ModelType: constant.ModelTypeOllama,
		Strategy:  constant.StrategyPrecise,
	}
	session := &entity.ChatSession{
		Id:        uuid.New(),
		ProjectId: project.Id,
		UserId:    1001,
		Title:     "测试会话",
	}

	messages := &memMessageRepo{}
	chats := newMemChatRepo()
	_ = chats.Create(context.Background(), session)

	filter := safety.NewFilter(bannedTerms)
	router := agent.NewRouter(&labelProvider{label: "DEFAULT"}, nopLogger{})
	registry := agent.NewRegistry(&chunkAgent{chunks: answerChunks})
	coordinator := agent.NewCoordinator(filter, messages, router, registry, nopLogger{})

	svc := NewChatService(
		chats,
		messages,
		&memProjectRepo{project: project},
		coordinator,
		filter,
		nopLogger{},
		false,
	)

	return &fixture{
		service:  svc,
		messages: messages,
		chats:    chats,
		project:  project,
		session:  session,
	}
}

func (f *fixture) send(t *testing.T, content string) (string, error) {
	t.Helper()
	stream, err := f.service.SendMessage(context.Background(), &dto.SendMessageRequest{
		ProjectId: f.project.Id,
		ChatId:    f.session.Id,
		Content:   content,
	})
	if err != nil {
		return "", err
	}
	var answer string
	for chunk := range stream {
		assert.NoError(t, chunk.Err)
		answer += chunk.Content
	}
	return answer, nil
}

func TestSendMessagePersistsFullTurn(t *testing.T) {
	f := newFixture(t, []string{"你好，", "有什么可以帮您？"}, nil)

	answer, err := f.send(t, "在吗")
	assert.NoError(t, err)
	assert.Equal(t, "你好，有什么可以帮您？", answer)

	stored := f.messages.snapshot()
	assert.Len(t, stored, 2)
	assert.Equal(t, constant.MessageTypeUser, stored[0].Type)
	assert.Equal(t, "在吗", stored[0].Content)
	assert.Equal(t, constant.MessageTypeAssistant, stored[1].Type)
	assert.Equal(t, "你好，有什么可以帮您？", stored[1].Content)
}

func TestSendMessageRollsBackPolicyViolation(t *testing.T) {
	f := newFixture(t, []string{"这个回答里有违禁词存在"}, []string{"违禁词"})

	answer, err := f.send(t, "随便问问")
	assert.NoError(t, err)
	assert.NotEmpty(t, answer)

	// Both the question and the offending answer must be gone.
	assert.Empty(t, f.messages.snapshot())
}

func TestSendMessageBannedQuestionPersistsNothing(t *testing.T) {
	f := newFixture(t, []string{"不应该产生回答"}, []string{"敏感内容"})

	_, err := f.send(t, "这里有敏感内容")
	assert.Error(t, err)

	var appErr *serverutils.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Empty(t, f.messages.snapshot())
}

func TestSendMessageUnknownSession(t *testing.T) {
	f := newFixture(t, []string{"回答"}, nil)

	_, err := f.service.SendMessage(context.Background(), &dto.SendMessageRequest{
		ProjectId: f.project.Id,
		ChatId:    uuid.New(),
		Content:   "在吗",
	})

	var appErr *serverutils.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestSendMessageUnknownProject(t *testing.T) {
	f := newFixture(t, []string{"回答"}, nil)

	_, err := f.service.SendMessage(context.Background(), &dto.SendMessageRequest{
		ProjectId: uuid.New(),
		ChatId:    f.session.Id,
		Content:   "在吗",
	})

	var appErr *serverutils.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestListSessionsScopedToUser(t *testing.T) {
	f := newFixture(t, []string{"回答"}, nil)

	// Two more sessions in the same project, one for the fixture user and one
	// for somebody else.
	for _, s := range []*entity.ChatSession{
		{Id: uuid.New(), ProjectId: f.project.Id, UserId: f.session.UserId, Title: "同一用户"},
		{Id: uuid.New(), ProjectId: f.project.Id, UserId: 2002, Title: "其他用户"},
	} {
		_, err := f.service.Create(context.Background(), &dto.CreateChatRequest{
			ProjectId: s.ProjectId,
			UserId:    s.UserId,
			Title:     s.Title,
		})
		assert.NoError(t, err)
	}

	mine, err := f.service.List(context.Background(), f.project.Id, f.session.UserId)
	assert.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, s := range mine {
		assert.Equal(t, f.session.UserId, s.UserId)
	}

	theirs, err := f.service.List(context.Background(), f.project.Id, 2002)
	assert.NoError(t, err)
	assert.Len(t, theirs, 1)
	assert.Equal(t, "其他用户", theirs[0].Title)
}

func TestConcurrentStreamsAreIsolated(t *testing.T) {
	f := newFixture(t, []string{"第一段", "第二段", "第三段"}, nil)

	second := &entity.ChatSession{
		Id:        uuid.New(),
		ProjectId: f.project.Id,
		UserId:    1001,
		Title:     "第二个会话",
	}
	_ = f.chats.Create(context.Background(), second)

	var wg sync.WaitGroup
	answers := make([]string, 2)
	for i, chatId := range []uuid.UUID{f.session.Id, second.Id} {
		wg.Add(1)
		go func(i int, chatId uuid.UUID) {
			defer wg.Done()
			stream, err := f.service.SendMessage(context.Background(), &dto.SendMessageRequest{
				ProjectId: f.project.Id,
				ChatId:    chatId,
				Content:   "在吗",
			})
			assert.NoError(t, err)
			for chunk := range stream {
				assert.NoError(t, chunk.Err)
				answers[i] += chunk.Content
			}
		}(i, chatId)
	}
	wg.Wait()

	// Each stream must carry one complete, untangled answer.
	assert.Equal(t, "第一段第二段第三段", answers[0])
	assert.Equal(t, "第一段第二段第三段", answers[1])

	for _, chatId := range []uuid.UUID{f.session.Id, second.Id} {
		stored, err := f.messages.FindAllByChatId(context.Background(), chatId)
		assert.NoError(t, err)
		assert.Len(t, stored, 2)
	}
}

func TestDeleteSessionRemovesMessages(t *testing.T) {
	f := newFixture(t, []string{"回答"}, nil)

	_, err := f.send(t, "在吗")
	assert.NoError(t, err)
	assert.NotEmpty(t, f.messages.snapshot())

	err = f.service.Delete(context.Background(), f.project.Id, f.session.Id)
	assert.NoError(t, err)
	assert.Empty(t, f.messages.snapshot())

	sessions, err := f.chats.FindAllByProjectAndUser(context.Background(), f.project.Id, f.session.UserId)
	assert.NoError(t, err)
	assert.Empty(t, sessions)
}

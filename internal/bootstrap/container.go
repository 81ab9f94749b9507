package bootstrap

import (
	"log"

	"admissions-ai-be/internal/config"
	"admissions-ai-be/internal/constant"
	"admissions-ai-be/internal/controller"
	"admissions-ai-be/internal/pkg/logger"
	"admissions-ai-be/internal/repository/implementation"
	"admissions-ai-be/internal/repository/mongodb"
	"admissions-ai-be/internal/service"
	"admissions-ai-be/pkg/agent"
	"admissions-ai-be/pkg/embedding"
	"admissions-ai-be/pkg/llm/factory"
	"admissions-ai-be/pkg/retrieval"
	"admissions-ai-be/pkg/safety"
	"admissions-ai-be/pkg/toolgw"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	KnowledgeController controller.IKnowledgeController
	ToolsController     controller.IToolsController

	// Background services (main.go runs these)
	IngestConsumerService service.IIngestConsumerService
	ToolGateway           *toolgw.Gateway

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Event bus for the async ingest pipeline
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Embedding provider
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "openai" {
		embeddingProvider = embedding.NewOpenAIProvider(
			cfg.Ai.OpenAIBaseURL,
			cfg.Ai.OpenAIAPIKey,
			cfg.Ai.OpenAIEmbdModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.OpenAIEmbdModel)
	} else {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbdModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbdModel)
	}

	// LLM providers, one per model type a project may select
	providers := factory.Providers{}
	for _, modelType := range []string{constant.ModelTypeOllama, constant.ModelTypeOpenAI} {
		model := cfg.Ai.OllamaModel
		if modelType == constant.ModelTypeOpenAI {
			model = cfg.Ai.OpenAIModel
		}
		provider, err := factory.New(modelType, model, cfg.Ai.OllamaBaseURL, cfg.Ai.OpenAIBaseURL, cfg.Ai.OpenAIAPIKey)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize LLM provider %s: %v", modelType, err)
		}
		providers[modelType] = provider
	}

	// The router and the query rewriter run on the local model by default; a
	// dedicated ROUTER_MODEL overrides the model name, not the backend.
	routerProvider := providers[constant.ModelTypeOllama]
	if cfg.Ai.RouterModel != "" {
		var err error
		routerProvider, err = factory.New(constant.ModelTypeOllama, cfg.Ai.RouterModel, cfg.Ai.OllamaBaseURL, "", "")
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize router model: %v", err)
		}
	}

	// Repositories
	chunkRepo := implementation.NewKnowledgeChunkRepository(db)
	projectRepo := implementation.NewChatProjectRepository(db)
	chatRepo := mongodb.NewChatRepository(mongoDB)
	messageRepo := mongodb.NewMessageRepository(mongoDB)

	// Safety filter
	filter, err := safety.NewFilterFromFile(cfg.Safety.BannedTermsFile)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load banned terms: %v", err)
	}
	log.Printf("[INFO] Safety filter loaded with %d terms", filter.TermCount())

	// Tool gateway
	gateway := toolgw.NewGateway(toolgw.Config{
		Endpoint:      cfg.Tools.McpEndpoint,
		CallTimeout:   cfg.Tools.CallTimeout,
		RetryBase:     cfg.Tools.RetryBaseDelay,
		MaxAttempts:   cfg.Tools.MaxAttempts,
		ProbeInterval: cfg.Tools.ProbeInterval,
	}, sysLogger)

	// Retrieval strategies
	strategies := retrieval.NewStrategies(chunkRepo, embeddingProvider, routerProvider)

	// Agents
	registry := agent.NewRegistry(
		agent.NewRecommendAgent(providers, strategies, sysLogger),
		agent.NewSchoolQueryAgent(providers, gateway, sysLogger),
		agent.NewMapsQueryAgent(providers, gateway, sysLogger),
		agent.NewReservationAgent(providers, gateway, sysLogger),
	)
	router := agent.NewRouter(routerProvider, sysLogger)
	coordinator := agent.NewCoordinator(filter, messageRepo, router, registry, sysLogger)

	// Services
	publisherService := service.NewPublisherService(pubSub)
	chatService := service.NewChatService(
		chatRepo,
		messageRepo,
		projectRepo,
		coordinator,
		filter,
		sysLogger,
		cfg.App.PersistPartialOnCancel,
	)
	knowledgeService := service.NewKnowledgeService(
		projectRepo,
		chunkRepo,
		publisherService,
		cfg.Ai.IngestTopic,
		sysLogger,
	)
	ingestConsumer := service.NewIngestConsumerService(
		pubSub,
		cfg.Ai.IngestTopic,
		chunkRepo,
		embeddingProvider,
		retrieval.NewChunker(
			constant.ChunkSize,
			constant.ChunkOverlap,
			constant.ChunkMinChars,
			constant.ChunkMaxChars,
		),
		retrieval.NewKeywordEnricher(routerProvider),
		sysLogger,
	)

	return &Container{
		ChatController:        controller.NewChatController(chatService, sysLogger),
		KnowledgeController:   controller.NewKnowledgeController(knowledgeService),
		ToolsController:       controller.NewToolsController(gateway),
		IngestConsumerService: ingestConsumer,
		ToolGateway:           gateway,
		Logger:                sysLogger,
	}
}

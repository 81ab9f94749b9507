package constant

const (
	MessageTypeUser      = 0
	MessageTypeAssistant = 1

	// Collection partitioning. Counts are deployment-time constants: an
	// entity's partition is computed once from its key and never moves.
	ChatCollectionPrefix  = "chat_"
	MsgCollectionPrefix   = "message_"
	ChatCollectionCount   = 100
	MsgCollectionCount    = 1000

	// Model types a project may be configured with.
	ModelTypeOpenAI = "openai"
	ModelTypeOllama = "ollama"

	// Retrieval strategies a project may be configured with.
	StrategyPrecise = "precise"
	StrategyRecall  = "recall"

	// Strategy A: exact filter, fixed top-K, no floor.
	PreciseTopK = 3

	// Strategy B: wider net, lower floor, reranked afterwards.
	RecallTopK                = 10
	RecallSimilarityThreshold = 0.2

	// Ingestion chunking bounds. Overlap is strictly positive so boundary
	// context is never lost between adjacent chunks.
	ChunkSize     = 500
	ChunkOverlap  = 100
	ChunkMinChars = 10
	ChunkMaxChars = 5000

	// Number of keywords the enricher asks the model for per chunk.
	EnrichKeywordCount = 8

	// Rollback depth for the post-stream policy check: the user question and
	// the assistant answer of the offending turn.
	RollbackMessageCount = 2
)

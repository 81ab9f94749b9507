package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Ai       AIConfig
	Tools    ToolsConfig
	Safety   SafetyConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	// Whether a partially streamed assistant message is persisted when the
	// client disconnects mid-stream. Explicit policy, not a hidden default.
	PersistPartialOnCancel bool
}

type DatabaseConfig struct {
	Connection string
}

type MongoConfig struct {
	URI      string
	Database string
}

type AIConfig struct {
	// EmbeddingProvider selects the embedding backend: "ollama" or "openai".
	EmbeddingProvider string

	OllamaBaseURL   string
	OllamaModel     string
	OllamaEmbdModel string
	OpenAIBaseURL   string
	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIEmbdModel string
	RouterModel     string
	IngestTopic     string
}

type ToolsConfig struct {
	McpEndpoint    string
	CallTimeout    time.Duration
	ProbeInterval  time.Duration
	RetryBaseDelay time.Duration
	MaxAttempts    int
}

type SafetyConfig struct {
	BannedTermsFile string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:                   getEnv("APP_PORT", "3000"),
			Environment:            getEnv("GO_ENV", "development"),
			LogFilePath:            getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins:     getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			PersistPartialOnCancel: getEnvAsBool("PERSIST_PARTIAL_ON_CANCEL", false),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "admissions_chat"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),

			OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:     getEnv("OLLAMA_MODEL", "qwen2.5"),
			OllamaEmbdModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			OpenAIEmbdModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
			RouterModel:     getEnv("ROUTER_MODEL", ""),
			IngestTopic:     getEnv("INGEST_KNOWLEDGE_TOPIC_NAME", "INGEST_KNOWLEDGE"),
		},
		Tools: ToolsConfig{
			McpEndpoint:    getEnv("MCP_ENDPOINT", ""),
			CallTimeout:    getEnvAsDuration("MCP_CALL_TIMEOUT", 15*time.Second),
			ProbeInterval:  getEnvAsDuration("MCP_PROBE_INTERVAL", 30*time.Second),
			RetryBaseDelay: getEnvAsDuration("MCP_RETRY_BASE_DELAY", 2*time.Second),
			MaxAttempts:    getEnvAsInt("MCP_MAX_ATTEMPTS", 3),
		},
		Safety: SafetyConfig{
			BannedTermsFile: getEnv("BANNED_TERMS_FILE", "config/banned_terms.txt"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

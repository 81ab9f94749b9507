package factory

import (
	"fmt"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/pkg/llm"
	"admissions-ai-be/pkg/llm/ollama"
	"admissions-ai-be/pkg/llm/openai"
)

// Providers is the explicit model-type -> provider table built once at
// startup. Projects select their backend through this table; there is no
// runtime discovery.
type Providers map[string]llm.LLMProvider

// New constructs a provider for a single model type.
func New(modelType, model, ollamaBaseURL, openAIBaseURL, openAIKey string) (llm.LLMProvider, error) {
	switch modelType {
	case constant.ModelTypeOllama:
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, model), nil
	case constant.ModelTypeOpenAI:
		return openai.NewOpenAIProvider(openAIBaseURL, openAIKey, model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", modelType)
	}
}

// Get resolves a project's model type to its provider.
func (p Providers) Get(modelType string) (llm.LLMProvider, error) {
	provider, ok := p[modelType]
	if !ok {
		return nil, fmt.Errorf("no provider registered for model type %q", modelType)
	}
	return provider, nil
}

package retrieval

import (
	"context"
	"fmt"
	"strings"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/pkg/llm"
)

// KeywordEnricher tags chunks with keywords during ingestion. Enrichment is
// best-effort: when the model call fails the local tokenizer supplies the
// keywords instead, and ingestion never blocks on it.
type KeywordEnricher struct {
	provider llm.LLMProvider
	maxCount int
}

func NewKeywordEnricher(provider llm.LLMProvider) *KeywordEnricher {
	return &KeywordEnricher{
		provider: provider,
		maxCount: constant.EnrichKeywordCount,
	}
}

func (e *KeywordEnricher) Extract(ctx context.Context, document string) []string {
	prompt := fmt.Sprintf(constant.KeywordExtractionPrompt, e.maxCount, document)
	raw, err := e.provider.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		return Keywords(document, e.maxCount)
	}

	var keywords []string
	for _, part := range strings.Split(raw, ",") {
		kw := strings.TrimSpace(part)
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		return Keywords(document, e.maxCount)
	}
	if len(keywords) > e.maxCount {
		keywords = keywords[:e.maxCount]
	}
	return keywords
}

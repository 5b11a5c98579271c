// Package llm provides text generation behind a provider-agnostic interface.
package llm

import (
	"context"
	"fmt"

	"github.com/recapkit/recap/internal/config"
)

// Result is one completed generation.
type Result struct {
	Text         string
	Model        string
	InputTokens  int
	OutputTokens int
}

// Generator produces text from a system instruction and a user prompt.
// Generation is deterministic (temperature 0).
type Generator interface {
	Generate(ctx context.Context, system, user string, maxTokens int) (*Result, error)
	Model() string
}

// New creates a Generator for the configured provider.
func New(cfg config.LLMConfig) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderAnthropic, config.ProviderOpenAI, config.ProviderOllama:
		return newLangchainGenerator(cfg)
	case config.ProviderGemini:
		return newGeminiGenerator(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

package llm

import (
	"context"
	"fmt"

	"github.com/recapkit/recap/internal/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

type langchainGenerator struct {
	llm       llms.Model
	modelName string
}

var _ Generator = (*langchainGenerator)(nil)

func newLangchainGenerator(cfg config.LLMConfig) (*langchainGenerator, error) {
	var model llms.Model
	var err error

	switch cfg.Provider {
	case config.ProviderOllama:
		model, err = ollama.New(
			ollama.WithModel(cfg.Model),
			ollama.WithServerURL(cfg.OllamaHost),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}

	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		model, err = openai.New(
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}

	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("Anthropic API key required")
		}
		model, err = anthropic.New(
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create anthropic model: %w", err)
		}

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	return &langchainGenerator{
		llm:       model,
		modelName: cfg.Model,
	}, nil
}

func (g *langchainGenerator) Generate(ctx context.Context, system, user string, maxTokens int) (*Result, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}
	if system != "" {
		messages = append([]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, system),
		}, messages...)
	}

	response, err := g.llm.GenerateContent(ctx, messages,
		llms.WithTemperature(0),
		llms.WithMaxTokens(maxTokens),
	)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no response choices")
	}

	choice := response.Choices[0]
	return &Result{
		Text:         choice.Content,
		Model:        g.modelName,
		InputTokens:  tokenCount(choice.GenerationInfo, "InputTokens", "PromptTokens"),
		OutputTokens: tokenCount(choice.GenerationInfo, "OutputTokens", "CompletionTokens"),
	}, nil
}

func (g *langchainGenerator) Model() string {
	return g.modelName
}

// tokenCount pulls a usage figure out of GenerationInfo. Providers disagree
// on key names and integer widths.
func tokenCount(info map[string]any, keys ...string) int {
	for _, key := range keys {
		switch v := info[key].(type) {
		case int:
			return v
		case int32:
			return int(v)
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return 0
}

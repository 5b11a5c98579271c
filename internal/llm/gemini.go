package llm

import (
	"context"
	"fmt"

	"github.com/recapkit/recap/internal/config"
	"google.golang.org/genai"
)

type geminiGenerator struct {
	apiKey    string
	modelName string
}

var _ Generator = (*geminiGenerator)(nil)

func newGeminiGenerator(cfg config.LLMConfig) (*geminiGenerator, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("Gemini API key required")
	}
	return &geminiGenerator{
		apiKey:    cfg.GeminiAPIKey,
		modelName: cfg.Model,
	}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, system, user string, maxTokens int) (*Result, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0),
		MaxOutputTokens: int32(maxTokens),
	}
	if system != "" {
		genCfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	result, err := client.Models.GenerateContent(ctx, g.modelName, genai.Text(user), genCfg)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	res := &Result{
		Text:  text,
		Model: g.modelName,
	}
	if result.UsageMetadata != nil {
		res.InputTokens = int(result.UsageMetadata.PromptTokenCount)
		res.OutputTokens = int(result.UsageMetadata.CandidatesTokenCount)
	}

	return res, nil
}

func (g *geminiGenerator) Model() string {
	return g.modelName
}

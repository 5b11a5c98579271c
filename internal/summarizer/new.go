package summarizer

import (
	"github.com/recapkit/recap/internal/llm"
	"github.com/recapkit/recap/internal/logger"
)

type implSummarizer struct {
	generator llm.Generator
	logger    logger.Logger
}

// New creates a Summarizer using the given generator.
func New(gen llm.Generator, log logger.Logger) Summarizer {
	return &implSummarizer{
		generator: gen,
		logger:    log,
	}
}

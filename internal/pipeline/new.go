package pipeline

import (
	"github.com/recapkit/recap/internal/logger"
	"github.com/recapkit/recap/internal/summarizer"
	"github.com/recapkit/recap/internal/whisper"
	"github.com/recapkit/recap/pkg/executor"
)

type implPipeline struct {
	executor   executor.Executor
	engine     whisper.Engine
	summarizer summarizer.Summarizer
	logger     logger.Logger
}

// New creates a Pipeline instance.
func New(exec executor.Executor, engine whisper.Engine, sum summarizer.Summarizer, log logger.Logger) Pipeline {
	return &implPipeline{
		executor:   exec,
		engine:     engine,
		summarizer: sum,
		logger:     log,
	}
}

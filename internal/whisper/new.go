package whisper

import (
	"github.com/recapkit/recap/internal/config"
	"github.com/recapkit/recap/internal/logger"
	"github.com/recapkit/recap/pkg/executor"
)

type implEngine struct {
	cfg      config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates an Engine backed by the whisper.cpp CLI.
func New(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) Engine {
	return &implEngine{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}

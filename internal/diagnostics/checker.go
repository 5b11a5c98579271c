// Package diagnostics validates external tools, models, credentials, and
// filesystem paths before the pipeline runs.
package diagnostics

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/recapkit/recap/internal/config"
	"github.com/recapkit/recap/internal/whisper"
)

// Status of one diagnostic check.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// Item is the outcome of one check.
type Item struct {
	Name    string
	Status  Status
	Message string
	Hint    string
}

// Report combines every check outcome.
type Report struct {
	Items       []Item
	HasFailures bool
}

// Checker runs environment checks with injectable OS dependencies.
type Checker struct {
	lookPath   func(string) (string, error)
	stat       func(string) (os.FileInfo, error)
	mkdirAll   func(string, os.FileMode) error
	createTemp func(string, string) (*os.File, error)
	remove     func(string) error
}

// NewChecker builds a checker using real OS dependencies.
func NewChecker() *Checker {
	return &Checker{
		lookPath:   exec.LookPath,
		stat:       os.Stat,
		mkdirAll:   os.MkdirAll,
		createTemp: os.CreateTemp,
		remove:     os.Remove,
	}
}

// NewCheckerForTests creates a checker with injectable dependencies.
func NewCheckerForTests(
	lookPath func(string) (string, error),
	stat func(string) (os.FileInfo, error),
	mkdirAll func(string, os.FileMode) error,
	createTemp func(string, string) (*os.File, error),
	remove func(string) error,
) *Checker {
	return &Checker{
		lookPath:   lookPath,
		stat:       stat,
		mkdirAll:   mkdirAll,
		createTemp: createTemp,
		remove:     remove,
	}
}

// Run executes the full doctor check set.
func (c *Checker) Run(cfg *config.Config) Report {
	items := []Item{
		c.checkTool("ffmpeg"),
		c.checkTool(cfg.Whisper.BinaryPath),
		c.checkModel(cfg.Whisper.ModelDir, cfg.Whisper.Model),
		c.checkCredential(cfg),
		c.checkOutputDir(cfg.Paths.Output),
	}

	report := Report{Items: items}
	for _, item := range items {
		if item.Status == StatusFail {
			report.HasFailures = true
			break
		}
	}
	return report
}

// GateIssues returns the missing prerequisites checked before a job runs:
// ffmpeg for extraction and the provider credential for summarization. The
// gate is bypassed entirely when both of those stages are skipped.
func (c *Checker) GateIssues(cfg *config.Config, skipExtraction, skipSummary bool) []string {
	if skipExtraction && skipSummary {
		return nil
	}

	var issues []string
	if _, err := c.lookPath("ffmpeg"); err != nil {
		issues = append(issues, "ffmpeg is not installed. See README for installation instructions")
	}
	if env := cfg.CredentialEnv(); env != "" && cfg.APIKey() == "" {
		issues = append(issues, fmt.Sprintf("%s not set in environment or .env file", env))
	}
	return issues
}

func (c *Checker) checkTool(name string) Item {
	path, err := c.lookPath(name)
	if err != nil {
		return Item{
			Name:    name,
			Status:  StatusFail,
			Message: fmt.Sprintf("not found in PATH: %s", name),
			Hint:    "Install it and ensure the binary is available on PATH.",
		}
	}
	return Item{
		Name:    name,
		Status:  StatusPass,
		Message: fmt.Sprintf("found at %s", path),
	}
}

func (c *Checker) checkModel(modelDir, size string) Item {
	item := Item{Name: "whisper model"}

	opt, ok := whisper.LookupModel(size)
	if !ok {
		item.Status = StatusFail
		item.Message = fmt.Sprintf("unknown model size: %s", size)
		return item
	}

	path := filepath.Join(modelDir, opt.FileName)
	if _, err := c.stat(path); err != nil {
		item.Status = StatusFail
		item.Message = fmt.Sprintf("model %s not found at %s", size, path)
		item.Hint = fmt.Sprintf("Download it from %s", opt.URL)
		return item
	}

	item.Status = StatusPass
	item.Message = fmt.Sprintf("model file found: %s", path)
	return item
}

func (c *Checker) checkCredential(cfg *config.Config) Item {
	item := Item{Name: "llm credential"}

	env := cfg.CredentialEnv()
	if env == "" {
		item.Status = StatusPass
		item.Message = fmt.Sprintf("provider %s needs no credential", cfg.LLM.Provider)
		return item
	}

	if cfg.APIKey() == "" {
		item.Status = StatusFail
		item.Message = fmt.Sprintf("%s is not set", env)
		item.Hint = fmt.Sprintf("Export %s or add it to .env.", env)
		return item
	}

	item.Status = StatusPass
	item.Message = fmt.Sprintf("%s is set", env)
	return item
}

func (c *Checker) checkOutputDir(outputDir string) Item {
	item := Item{Name: "output directory"}

	if err := c.mkdirAll(outputDir, 0o755); err != nil {
		item.Status = StatusFail
		item.Message = fmt.Sprintf("cannot create output directory: %s", outputDir)
		item.Hint = "Choose a writable location or adjust permissions."
		return item
	}

	tmpFile, err := c.createTemp(outputDir, ".write-check-*")
	if err != nil {
		item.Status = StatusFail
		item.Message = fmt.Sprintf("output directory is not writable: %s", outputDir)
		item.Hint = "Choose a writable directory."
		return item
	}

	tmpPath := tmpFile.Name()
	_ = tmpFile.Close()
	_ = c.remove(tmpPath)

	item.Status = StatusPass
	item.Message = fmt.Sprintf("writable directory: %s", outputDir)
	return item
}

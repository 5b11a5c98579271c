package pipeline

import "context"

// Disposition is how the orchestrator resolved a stage.
type Disposition string

const (
	// DispositionRun: the stage's external collaborator was invoked.
	DispositionRun Disposition = "run"
	// DispositionSkipped: an explicit skip flag suppressed the stage.
	DispositionSkipped Disposition = "skipped"
	// DispositionReused: the stage's artifact already existed and was
	// loaded instead of re-produced.
	DispositionReused Disposition = "reused"
)

// Job is one pipeline invocation for one input video.
type Job struct {
	VideoPath  string
	OutputBase string
	// Language is an ISO code, or empty to let the engine detect.
	Language string
	// Context is optional free text passed to summarization.
	Context string
	Force   bool

	SkipExtraction    bool
	SkipTranscription bool
	SkipSummary       bool

	// OnStage, when set, observes each stage as it is resolved.
	OnStage func(stage Stage, disposition Disposition)
}

// Pipeline runs the extraction, transcription, and summarization stages for
// one job.
type Pipeline interface {
	Run(ctx context.Context, job Job) (*Report, error)
}

package pipeline

import "fmt"

// Stage identifies one pipeline phase.
type Stage string

const (
	StageExtraction    Stage = "extraction"
	StageTranscription Stage = "transcription"
	StageSummarization Stage = "summarization"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// KindPrecondition: a required input file is missing for a stage that
	// is about to run or was told to be skipped.
	KindPrecondition Kind = iota
	// KindPrerequisite: a required external tool or credential is absent.
	KindPrerequisite
	// KindExternal: an external collaborator failed; the error carries its
	// diagnostic output.
	KindExternal
	// KindInternal: everything else (I/O, serialization).
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindPrerequisite:
		return "prerequisite"
	case KindExternal:
		return "external"
	default:
		return "internal"
	}
}

// Error is a stage-aware pipeline failure. Callers match on Kind and Stage
// with errors.As.
type Error struct {
	Kind    Kind
	Stage   Stage
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func preconditionErr(stage Stage, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    KindPrecondition,
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
	}
}

func externalErr(stage Stage, message string, err error) *Error {
	return &Error{
		Kind:    KindExternal,
		Stage:   stage,
		Message: message,
		Err:     err,
	}
}

func internalErr(stage Stage, message string, err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Stage:   stage,
		Message: message,
		Err:     err,
	}
}

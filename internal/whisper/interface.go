package whisper

import (
	"context"

	"github.com/recapkit/recap/internal/transcript"
)

// Engine defines the interface for speech-to-text transcription.
// language is an ISO code, or empty to let the engine detect.
type Engine interface {
	Transcribe(ctx context.Context, audioPath, language string) (*transcript.Record, error)
}

package summarizer

import "context"

// Summarizer turns a meeting transcript into a narrative summary plus a
// structured extraction.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, meetingContext string) (*Record, error)
}

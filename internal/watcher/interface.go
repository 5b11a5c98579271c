package watcher

import "context"

// Watcher monitors a directory for newly dropped video files and dispatches
// them to a handler with bounded concurrency.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// JobHandler processes one detected video. jobID is unique per detection and
// appears in every log line for the job.
type JobHandler func(ctx context.Context, jobID, videoPath string) error

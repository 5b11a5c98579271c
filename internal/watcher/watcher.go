package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/recapkit/recap/internal/logger"
)

var videoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v", ".flv"}

type implWatcher struct {
	inputDir      string
	handler       JobHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// Start blocks until ctx is cancelled, dispatching a job for every video
// file created in the watched directory. In-flight jobs are drained before
// Start returns.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching %s for new videos (max concurrent: %d)", w.inputDir, w.maxConcurrent)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(videoExtensions, ", "))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for in-flight jobs to finish...")
			w.wg.Wait()
			w.logger.Info(ctx, "Watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isVideoFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-video file: %s", event.Name)
				continue
			}
			if err := w.dispatch(ctx, event.Name); err != nil {
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) dispatch(ctx context.Context, videoPath string) error {
	jobID := uuid.NewString()
	w.logger.Info(ctx, "[%s] New video detected: %s", jobID, videoPath)

	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-w.semaphore }()

		if err := waitUntilStable(ctx, videoPath); err != nil {
			w.logger.Error(ctx, "[%s] File never settled: %v", jobID, err)
			return
		}
		if err := w.handler(ctx, jobID, videoPath); err != nil {
			w.logger.Error(ctx, "[%s] Failed to process %s: %v", jobID, videoPath, err)
			return
		}
		w.logger.Info(ctx, "[%s] Processed %s", jobID, videoPath)
	}()

	return nil
}

// Stop closes the underlying fsnotify watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// waitUntilStable polls the file size until two consecutive reads agree, so
// a video still being copied into the directory is not picked up half-written.
func waitUntilStable(ctx context.Context, path string) error {
	const interval = 500 * time.Millisecond

	var lastSize int64 = -1
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if info.Size() == lastSize {
			return nil
		}
		lastSize = info.Size()
	}
}

func isVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, v := range videoExtensions {
		if ext == v {
			return true
		}
	}
	return false
}

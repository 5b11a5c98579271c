package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/recapkit/recap/internal/logger"
)

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"meeting.mp4", true},
		{"Meeting.MKV", true},
		{"clip.webm", true},
		{"notes.txt", false},
		{"meeting.mp4.part", false},
		{"noext", false},
	}

	for _, tt := range tests {
		if got := isVideoFile(tt.path); got != tt.want {
			t.Errorf("isVideoFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherDispatchesNewVideo(t *testing.T) {
	dir := t.TempDir()

	var (
		mu   sync.Mutex
		got  []string
		ids  []string
		seen = make(chan struct{}, 8)
	)
	handler := func(ctx context.Context, jobID, videoPath string) error {
		mu.Lock()
		got = append(got, videoPath)
		ids = append(ids, jobID)
		mu.Unlock()
		seen <- struct{}{}
		return nil
	}

	w, err := New(dir, handler, logger.New("error"), 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	videoPath := filepath.Join(dir, "standup.mp4")
	if err := os.WriteFile(videoPath, []byte("bytes"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-seen:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not invoked for the new video")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Start() returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != videoPath {
		t.Errorf("handled = %v, want [%s]", got, videoPath)
	}
	if len(ids) != 1 || ids[0] == "" {
		t.Errorf("job ids = %v, want one non-empty id", ids)
	}
}

func TestWaitUntilStableCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := waitUntilStable(ctx, filepath.Join(t.TempDir(), "missing.mp4"))
	if err != context.Canceled {
		t.Errorf("waitUntilStable() = %v, want context.Canceled", err)
	}
}

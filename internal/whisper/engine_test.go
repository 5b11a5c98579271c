package whisper

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/recapkit/recap/internal/config"
	"github.com/recapkit/recap/internal/logger"
)

// fakeExecutor simulates external command execution.
type fakeExecutor struct {
	execute func(ctx context.Context, name string, args ...string) (string, error)
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	if f.execute == nil {
		return "", nil
	}
	return f.execute(ctx, name, args...)
}

func (f *fakeExecutor) LookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

func TestParseOutput(t *testing.T) {
	data := []byte(`{
  "result": {"language": "en"},
  "transcription": [
    {
      "offsets": {"from": 0, "to": 2500},
      "text": " Hello",
      "tokens": [
        {"text": "[_BEG_]", "offsets": {"from": 0, "to": 0}, "p": 0.5},
        {"text": " Hello", "offsets": {"from": 0, "to": 2500}, "p": 0.98}
      ]
    },
    {
      "offsets": {"from": 2500, "to": 5000},
      "text": " world.",
      "tokens": []
    }
  ]
}`)

	rec, err := parseOutput(data, "")
	if err != nil {
		t.Fatalf("parseOutput() error = %v", err)
	}

	if rec.Language != "en" {
		t.Errorf("Language = %q, want en", rec.Language)
	}
	if rec.Duration != 5.0 {
		t.Errorf("Duration = %v, want 5.0", rec.Duration)
	}
	if rec.FullTranscript != "Hello world." {
		t.Errorf("FullTranscript = %q, want %q", rec.FullTranscript, "Hello world.")
	}

	if len(rec.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(rec.Segments))
	}
	words := rec.Segments[0].Words
	if len(words) != 1 || words[0].Word != "Hello" || words[0].Probability != 0.98 {
		t.Errorf("segment 0 words = %+v, want single Hello", words)
	}
	if len(rec.Segments[1].Words) != 0 {
		t.Errorf("segment 1 words = %+v, want empty", rec.Segments[1].Words)
	}
}

func TestParseOutputNoSegments(t *testing.T) {
	rec, err := parseOutput([]byte(`{"result": {"language": "en"}, "transcription": []}`), "en")
	if err != nil {
		t.Fatalf("parseOutput() error = %v", err)
	}
	if rec.Duration != 0 {
		t.Errorf("Duration = %v, want 0", rec.Duration)
	}
}

func TestParseOutputInvalid(t *testing.T) {
	if _, err := parseOutput([]byte("not json"), "en"); err == nil {
		t.Error("parseOutput() should fail on malformed JSON")
	}
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name     string
		language string
		threads  int
		wantLang string
		wantT    bool
	}{
		{"fixed language", "en", 8, "en", true},
		{"detection", "", 0, "auto", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := buildArgs("models/ggml-medium.bin", "audio.wav", "out", tt.language, tt.threads)

			if got := argValue(args, "-l"); got != tt.wantLang {
				t.Errorf("-l = %q, want %q", got, tt.wantLang)
			}
			if hasArg(args, "-t") != tt.wantT {
				t.Errorf("-t present = %v, want %v", hasArg(args, "-t"), tt.wantT)
			}
			if !hasArg(args, "-ojf") {
				t.Errorf("args missing -ojf: %v", args)
			}
		})
	}
}

func TestTranscribe(t *testing.T) {
	dir := t.TempDir()
	modelDir := filepath.Join(dir, "models")
	if err := os.MkdirAll(modelDir, 0755); err != nil {
		t.Fatal(err)
	}
	mustWriteFile(t, filepath.Join(modelDir, "ggml-medium.bin"), "model")

	exec := &fakeExecutor{
		execute: func(ctx context.Context, name string, args ...string) (string, error) {
			if name != "whisper-cli" {
				t.Fatalf("command = %q, want whisper-cli", name)
			}
			prefix := argValue(args, "--output-file")
			mustWriteFile(t, prefix+".json", `{
  "result": {"language": "en"},
  "transcription": [{"offsets": {"from": 0, "to": 1000}, "text": " hi", "tokens": []}]
}`)
			return "", nil
		},
	}

	engine := New(config.WhisperConfig{
		Model:      "medium",
		BinaryPath: "whisper-cli",
		ModelDir:   modelDir,
	}, exec, logger.New("error"))

	rec, err := engine.Transcribe(context.Background(), filepath.Join(dir, "a.wav"), "en")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if rec.FullTranscript != "hi" {
		t.Errorf("FullTranscript = %q, want hi", rec.FullTranscript)
	}
}

func TestTranscribeMissingModel(t *testing.T) {
	engine := New(config.WhisperConfig{
		Model:      "medium",
		BinaryPath: "whisper-cli",
		ModelDir:   t.TempDir(),
	}, &fakeExecutor{}, logger.New("error"))

	if _, err := engine.Transcribe(context.Background(), "a.wav", "en"); err == nil {
		t.Error("Transcribe() should fail when the model file is absent")
	}
}

func TestResolveModelPath(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "ggml-tiny.bin"), "model")

	path, err := ResolveModelPath(dir, "tiny")
	if err != nil {
		t.Fatalf("ResolveModelPath() error = %v", err)
	}
	if path != filepath.Join(dir, "ggml-tiny.bin") {
		t.Errorf("path = %q", path)
	}

	if _, err := ResolveModelPath(dir, "medium"); err == nil {
		t.Error("ResolveModelPath() should fail when file is missing")
	}
	if _, err := ResolveModelPath(dir, "enormous"); err == nil {
		t.Error("ResolveModelPath() should fail on unknown size")
	}
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func argValue(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func hasArg(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

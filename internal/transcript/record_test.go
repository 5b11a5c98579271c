package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRecord(t *testing.T) {
	rec := NewRecord("en", []Segment{
		{Start: 0, End: 2.5, Text: " Hello "},
		{Start: 2.5, End: 5.0, Text: "world."},
	})

	if rec.FullTranscript != "Hello world." {
		t.Errorf("FullTranscript = %q, want %q", rec.FullTranscript, "Hello world.")
	}
	if rec.Duration != 5.0 {
		t.Errorf("Duration = %v, want 5.0", rec.Duration)
	}
	if rec.Language != "en" {
		t.Errorf("Language = %q, want en", rec.Language)
	}
	if rec.Segments[0].Text != "Hello" {
		t.Errorf("segment text not trimmed: %q", rec.Segments[0].Text)
	}
}

func TestNewRecordEmpty(t *testing.T) {
	rec := NewRecord("en", nil)

	if rec.Duration != 0 {
		t.Errorf("Duration = %v, want 0", rec.Duration)
	}
	if rec.FullTranscript != "" {
		t.Errorf("FullTranscript = %q, want empty", rec.FullTranscript)
	}
}

func TestNewRecordNoWords(t *testing.T) {
	rec := NewRecord("en", []Segment{{Start: 0, End: 1, Text: "hi"}})

	if rec.Segments[0].Words == nil {
		t.Error("Words should be an empty slice, not nil")
	}
	if len(rec.Segments[0].Words) != 0 {
		t.Errorf("Words = %v, want empty", rec.Segments[0].Words)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "demo_transcript.json")

	rec := NewRecord("en", []Segment{
		{Start: 0, End: 2.5, Text: "Hello", Words: []Word{{Word: "Hello", Start: 0, End: 2.5, Probability: 0.98}}},
	})
	if err := rec.SaveJSON(jsonPath); err != nil {
		t.Fatalf("SaveJSON() error = %v", err)
	}

	loaded, err := Load(jsonPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.FullTranscript != rec.FullTranscript {
		t.Errorf("FullTranscript = %q, want %q", loaded.FullTranscript, rec.FullTranscript)
	}
	if len(loaded.Segments) != 1 || len(loaded.Segments[0].Words) != 1 {
		t.Errorf("segments not round-tripped: %+v", loaded.Segments)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "  \"language\"") {
		t.Error("JSON should be indented with two spaces")
	}
}

func TestSaveText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo_transcript.txt")
	rec := NewRecord("en", []Segment{{Start: 0, End: 1, Text: "Hello"}, {Start: 1, End: 2, Text: "world."}})

	if err := rec.SaveText(path); err != nil {
		t.Fatalf("SaveText() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Hello world." {
		t.Errorf("text artifact = %q, want %q", string(data), "Hello world.")
	}
}

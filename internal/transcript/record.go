// Package transcript holds the timestamped transcription record and its
// serialized renderings.
package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Word is one recognized word with its timing and confidence.
type Word struct {
	Word        string  `json:"word"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Probability float64 `json:"probability"`
}

// Segment is one contiguous speech interval. Words may be empty when the
// engine produced no word-level data for the interval.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words"`
}

// Record is the full transcription result for one audio file.
type Record struct {
	Language       string    `json:"language"`
	Duration       float64   `json:"duration"`
	FullTranscript string    `json:"full_transcript"`
	Segments       []Segment `json:"segments"`
}

// NewRecord builds a Record from engine segments, deriving the duration from
// the final segment's end time and the full transcript from the trimmed,
// space-joined segment texts. Segment order is preserved.
func NewRecord(language string, segments []Segment) *Record {
	texts := make([]string, 0, len(segments))
	for i := range segments {
		segments[i].Text = strings.TrimSpace(segments[i].Text)
		if segments[i].Words == nil {
			segments[i].Words = []Word{}
		}
		texts = append(texts, segments[i].Text)
	}

	var duration float64
	if len(segments) > 0 {
		duration = segments[len(segments)-1].End
	}

	return &Record{
		Language:       language,
		Duration:       duration,
		FullTranscript: strings.Join(texts, " "),
		Segments:       segments,
	}
}

// Load reads a previously saved JSON transcript.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse transcript: %w", err)
	}
	return &rec, nil
}

// SaveJSON writes the record as indented JSON.
func (r *Record) SaveJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// SaveText writes the full transcript text verbatim.
func (r *Record) SaveText(path string) error {
	if err := os.WriteFile(path, []byte(r.FullTranscript), 0644); err != nil {
		return fmt.Errorf("write transcript text: %w", err)
	}
	return nil
}

// SaveSRT writes the subtitle rendering of the segments.
func (r *Record) SaveSRT(path string) error {
	if err := os.WriteFile(path, []byte(RenderSRT(r.Segments)), 0644); err != nil {
		return fmt.Errorf("write subtitles: %w", err)
	}
	return nil
}

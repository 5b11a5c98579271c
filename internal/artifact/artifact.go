// Package artifact derives the canonical on-disk paths for every pipeline
// stage's output. Paths are pure functions of the output base; nothing here
// creates files.
package artifact

import (
	"os"
	"path/filepath"
	"sort"
)

// Suffixes appended to the output base, one per artifact.
const (
	SuffixAudio          = "_audio.wav"
	SuffixTranscriptJSON = "_transcript.json"
	SuffixTranscriptText = "_transcript.txt"
	SuffixTranscriptSRT  = "_transcript.srt"
	SuffixSummaryJSON    = "_summary.json"
	SuffixSummaryMD      = "_summary.md"
	SuffixSummaryDocx    = "_summary.docx"
)

// Set resolves artifact paths for one output base. Two jobs sharing a base
// would race on these paths; callers are expected to keep bases distinct.
type Set struct {
	base string
}

// NewSet creates a Set for the given output base path.
func NewSet(base string) Set {
	return Set{base: base}
}

// Base returns the output base path the Set was built from.
func (s Set) Base() string { return s.base }

func (s Set) Audio() string          { return s.base + SuffixAudio }
func (s Set) TranscriptJSON() string { return s.base + SuffixTranscriptJSON }
func (s Set) TranscriptText() string { return s.base + SuffixTranscriptText }
func (s Set) TranscriptSRT() string  { return s.base + SuffixTranscriptSRT }
func (s Set) SummaryJSON() string    { return s.base + SuffixSummaryJSON }
func (s Set) SummaryMarkdown() string { return s.base + SuffixSummaryMD }
func (s Set) SummaryDocx() string    { return s.base + SuffixSummaryDocx }

// Exists reports whether the file at path is present.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// List returns every file whose name starts with the output base, sorted by
// name. Used for the completion report.
func (s Set) List() ([]string, error) {
	matches, err := filepath.Glob(s.base + "*")
	if err != nil {
		return nil, err
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}

	sort.Strings(files)
	return files, nil
}

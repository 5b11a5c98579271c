package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/recapkit/recap/internal/transcript"
)

// whisperOutput mirrors the JSON written by whisper.cpp with -ojf.
// Offsets are milliseconds from the start of the audio.
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []whisperSegment `json:"transcription"`
}

type whisperSegment struct {
	Offsets whisperOffsets `json:"offsets"`
	Text    string         `json:"text"`
	Tokens  []whisperToken `json:"tokens"`
}

type whisperToken struct {
	Text    string         `json:"text"`
	Offsets whisperOffsets `json:"offsets"`
	P       float64        `json:"p"`
}

type whisperOffsets struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// Transcribe runs whisper.cpp on the audio file and returns the parsed
// record. The engine's own JSON output lands in a temp dir and is removed
// after parsing.
func (e *implEngine) Transcribe(ctx context.Context, audioPath, language string) (*transcript.Record, error) {
	modelPath, err := ResolveModelPath(e.cfg.ModelDir, e.cfg.Model)
	if err != nil {
		return nil, err
	}

	tempDir, err := os.MkdirTemp("", "recap-whisper-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	outputPrefix := filepath.Join(tempDir, "transcript")
	args := buildArgs(modelPath, audioPath, outputPrefix, language, e.cfg.Threads)

	e.logger.Info(ctx, "Transcribing %s with model %s", audioPath, e.cfg.Model)

	if _, err := e.executor.Execute(ctx, e.cfg.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := os.ReadFile(outputPrefix + ".json")
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	rec, err := parseOutput(data, language)
	if err != nil {
		return nil, err
	}

	e.logger.Info(ctx, "Transcription complete: %d segments, %.1f seconds", len(rec.Segments), rec.Duration)
	return rec, nil
}

// buildArgs assembles whisper.cpp CLI arguments for full-JSON output.
// An empty language requests detection.
func buildArgs(modelPath, audioPath, outputPrefix, language string, threads int) []string {
	args := []string{
		"-m", modelPath,
		"-f", audioPath,
		"-ojf",
		"--output-file", outputPrefix,
	}

	if language == "" {
		args = append(args, "-l", "auto")
	} else {
		args = append(args, "-l", language)
	}

	if threads > 0 {
		args = append(args, "-t", strconv.Itoa(threads))
	}

	return args
}

// parseOutput converts whisper.cpp full JSON into a transcript record.
// Tokens become word entries; special markers like [_BEG_] are dropped, and
// segments without usable tokens keep an empty word list.
func parseOutput(data []byte, requestedLanguage string) (*transcript.Record, error) {
	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	segments := make([]transcript.Segment, 0, len(out.Transcription))
	for _, ws := range out.Transcription {
		seg := transcript.Segment{
			Start: float64(ws.Offsets.From) / 1000,
			End:   float64(ws.Offsets.To) / 1000,
			Text:  ws.Text,
		}
		for _, tok := range ws.Tokens {
			word := strings.TrimSpace(tok.Text)
			if word == "" || strings.HasPrefix(word, "[_") {
				continue
			}
			seg.Words = append(seg.Words, transcript.Word{
				Word:        word,
				Start:       float64(tok.Offsets.From) / 1000,
				End:         float64(tok.Offsets.To) / 1000,
				Probability: tok.P,
			})
		}
		segments = append(segments, seg)
	}

	language := out.Result.Language
	if language == "" {
		language = requestedLanguage
	}

	return transcript.NewRecord(language, segments), nil
}

// Package pipeline sequences the extraction, transcription, and
// summarization stages with idempotent-resume semantics: a stage whose
// artifact already exists is skipped and the artifact reloaded, unless the
// job forces a re-run. Stages communicate only through the canonical
// artifact paths.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/recapkit/recap/internal/artifact"
	"github.com/recapkit/recap/internal/summarizer"
	"github.com/recapkit/recap/internal/transcript"
)

// Run resolves the three stages in fixed order. The first stage error
// aborts the job; no later stage runs.
func (p *implPipeline) Run(ctx context.Context, job Job) (*Report, error) {
	start := time.Now()
	arts := artifact.NewSet(job.OutputBase)

	if dir := filepath.Dir(job.OutputBase); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, internalErr(StageExtraction, "create output directory", err)
		}
	}

	if err := p.runExtraction(ctx, job, arts); err != nil {
		return nil, err
	}

	rec, err := p.runTranscription(ctx, job, arts)
	if err != nil {
		return nil, err
	}

	if err := p.runSummarization(ctx, job, arts, rec); err != nil {
		return nil, err
	}

	report, err := buildReport(arts, time.Since(start))
	if err != nil {
		return nil, internalErr(StageSummarization, "build completion report", err)
	}
	return report, nil
}

func (p *implPipeline) runExtraction(ctx context.Context, job Job, arts artifact.Set) error {
	audioPath := arts.Audio()

	switch {
	case job.SkipExtraction:
		job.emit(StageExtraction, DispositionSkipped)
		p.logger.Info(ctx, "Skipping audio extraction (flag)")
		if !artifact.Exists(audioPath) {
			return preconditionErr(StageExtraction, "audio file not found: %s", audioPath)
		}
		return nil

	case !job.Force && artifact.Exists(audioPath):
		job.emit(StageExtraction, DispositionReused)
		p.logger.Info(ctx, "Skipping audio extraction (artifact exists): %s", audioPath)
		return nil

	default:
		job.emit(StageExtraction, DispositionRun)
		return p.extractAudio(ctx, job.VideoPath, audioPath)
	}
}

func (p *implPipeline) runTranscription(ctx context.Context, job Job, arts artifact.Set) (*transcript.Record, error) {
	jsonPath := arts.TranscriptJSON()

	switch {
	case job.SkipTranscription:
		job.emit(StageTranscription, DispositionSkipped)
		p.logger.Info(ctx, "Skipping transcription (flag)")
		if !artifact.Exists(jsonPath) {
			return nil, preconditionErr(StageTranscription, "transcript file not found: %s", jsonPath)
		}
		return p.loadTranscript(jsonPath)

	case !job.Force && artifact.Exists(jsonPath):
		job.emit(StageTranscription, DispositionReused)
		p.logger.Info(ctx, "Skipping transcription (artifact exists): %s", jsonPath)
		return p.loadTranscript(jsonPath)

	default:
		job.emit(StageTranscription, DispositionRun)

		// Transcription reads the canonical audio path regardless of how
		// extraction was resolved.
		audioPath := arts.Audio()
		if !artifact.Exists(audioPath) {
			return nil, preconditionErr(StageTranscription, "audio file not found: %s", audioPath)
		}

		rec, err := p.engine.Transcribe(ctx, audioPath, job.Language)
		if err != nil {
			return nil, externalErr(StageTranscription, "transcription failed", err)
		}

		if err := rec.SaveJSON(jsonPath); err != nil {
			return nil, internalErr(StageTranscription, "save transcript", err)
		}
		if err := rec.SaveText(arts.TranscriptText()); err != nil {
			return nil, internalErr(StageTranscription, "save transcript text", err)
		}
		if err := rec.SaveSRT(arts.TranscriptSRT()); err != nil {
			return nil, internalErr(StageTranscription, "save subtitles", err)
		}

		return rec, nil
	}
}

func (p *implPipeline) runSummarization(ctx context.Context, job Job, arts artifact.Set, rec *transcript.Record) error {
	switch {
	case job.SkipSummary:
		// Summary is terminal; skipping it requires no artifact.
		job.emit(StageSummarization, DispositionSkipped)
		p.logger.Info(ctx, "Skipping summarization (flag)")
		return nil

	case !job.Force && artifact.Exists(arts.SummaryJSON()):
		job.emit(StageSummarization, DispositionReused)
		p.logger.Info(ctx, "Skipping summarization (artifact exists): %s", arts.SummaryJSON())
		return nil

	default:
		job.emit(StageSummarization, DispositionRun)

		record, err := p.summarizer.Summarize(ctx, rec.FullTranscript, job.Context)
		if err != nil {
			return externalErr(StageSummarization, "summarization failed", err)
		}

		if err := record.SaveJSON(arts.SummaryJSON()); err != nil {
			return internalErr(StageSummarization, "save summary", err)
		}
		if err := record.SaveMarkdown(arts.SummaryMarkdown()); err != nil {
			return internalErr(StageSummarization, "save summary markdown", err)
		}

		// The docx rendering is a convenience artifact; failing to produce
		// it does not fail the stage.
		if err := summarizer.WriteDocx(record, arts.SummaryDocx()); err != nil {
			p.logger.Warn(ctx, "Could not write docx summary: %v", err)
		}

		return nil
	}
}

func (p *implPipeline) loadTranscript(path string) (*transcript.Record, error) {
	rec, err := transcript.Load(path)
	if err != nil {
		return nil, internalErr(StageTranscription, fmt.Sprintf("load transcript %s", path), err)
	}
	return rec, nil
}

func (j Job) emit(stage Stage, d Disposition) {
	if j.OnStage != nil {
		j.OnStage(stage, d)
	}
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/recapkit/recap/internal/artifact"
	"github.com/recapkit/recap/internal/logger"
	"github.com/recapkit/recap/internal/summarizer"
	"github.com/recapkit/recap/internal/transcript"
)

// fakeExecutor stands in for ffmpeg invocations.
type fakeExecutor struct {
	calls   int
	execute func(ctx context.Context, name string, args ...string) (string, error)
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls++
	if f.execute == nil {
		return "", nil
	}
	return f.execute(ctx, name, args...)
}

func (f *fakeExecutor) LookPath(name string) (string, error) { return "/usr/bin/" + name, nil }

// fakeEngine stands in for the whisper engine.
type fakeEngine struct {
	calls      int
	transcribe func(ctx context.Context, audioPath, language string) (*transcript.Record, error)
}

func (f *fakeEngine) Transcribe(ctx context.Context, audioPath, language string) (*transcript.Record, error) {
	f.calls++
	if f.transcribe == nil {
		return transcript.NewRecord("en", []transcript.Segment{{Start: 0, End: 2.5, Text: "Hello"}}), nil
	}
	return f.transcribe(ctx, audioPath, language)
}

// fakeSummarizer stands in for the LLM summarizer.
type fakeSummarizer struct {
	calls     int
	summarize func(ctx context.Context, transcriptText, meetingContext string) (*summarizer.Record, error)
}

func (f *fakeSummarizer) Summarize(ctx context.Context, transcriptText, meetingContext string) (*summarizer.Record, error) {
	f.calls++
	if f.summarize == nil {
		return &summarizer.Record{Summary: "a summary", ModelUsed: "fake-model"}, nil
	}
	return f.summarize(ctx, transcriptText, meetingContext)
}

type fixture struct {
	exec   *fakeExecutor
	engine *fakeEngine
	sum    *fakeSummarizer
	pipe   Pipeline
	base   string
	video  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	f := &fixture{
		engine: &fakeEngine{},
		sum:    &fakeSummarizer{},
		base:   filepath.Join(dir, "out", "demo"),
		video:  filepath.Join(dir, "demo.mkv"),
	}
	f.exec = &fakeExecutor{
		execute: func(ctx context.Context, name string, args ...string) (string, error) {
			// ffmpeg writes its output file (the last argument).
			return "", os.WriteFile(args[len(args)-1], []byte("RIFFwav"), 0644)
		},
	}
	f.pipe = New(f.exec, f.engine, f.sum, logger.New("error"))

	mustWriteFile(t, f.video, "video-bytes")
	return f
}

func (f *fixture) job() Job {
	return Job{VideoPath: f.video, OutputBase: f.base, Language: "en"}
}

func (f *fixture) arts() artifact.Set { return artifact.NewSet(f.base) }

func (f *fixture) collaboratorCalls() int {
	return f.exec.calls + f.engine.calls + f.sum.calls
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRunFullPipeline(t *testing.T) {
	f := newFixture(t)

	var stages []string
	job := f.job()
	job.OnStage = func(s Stage, d Disposition) {
		stages = append(stages, fmt.Sprintf("%s:%s", s, d))
	}

	report, err := f.pipe.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"extraction:run", "transcription:run", "summarization:run"}
	if len(stages) != 3 {
		t.Fatalf("stages = %v, want %v", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Errorf("stage %d = %q, want %q", i, stages[i], want[i])
		}
	}

	arts := f.arts()
	for _, path := range []string{
		arts.Audio(), arts.TranscriptJSON(), arts.TranscriptText(),
		arts.TranscriptSRT(), arts.SummaryJSON(), arts.SummaryMarkdown(),
	} {
		if !artifact.Exists(path) {
			t.Errorf("artifact missing: %s", path)
		}
	}

	if len(report.Files) < 6 {
		t.Errorf("report files = %d, want at least 6", len(report.Files))
	}
	if report.SummaryPath != arts.SummaryMarkdown() {
		t.Errorf("SummaryPath = %q", report.SummaryPath)
	}
}

func TestRunResumeSkipsEverything(t *testing.T) {
	f := newFixture(t)

	if _, err := f.pipe.Run(context.Background(), f.job()); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	firstCalls := f.collaboratorCalls()

	var dispositions []Disposition
	job := f.job()
	job.OnStage = func(s Stage, d Disposition) { dispositions = append(dispositions, d) }

	report, err := f.pipe.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if got := f.collaboratorCalls(); got != firstCalls {
		t.Errorf("second run made %d collaborator calls, want 0", got-firstCalls)
	}
	for i, d := range dispositions {
		if d != DispositionReused {
			t.Errorf("stage %d disposition = %q, want reused", i, d)
		}
	}
	if len(report.Files) < 6 {
		t.Errorf("report should list pre-existing files, got %d", len(report.Files))
	}
}

func TestRunForceRerunsEverything(t *testing.T) {
	f := newFixture(t)

	if _, err := f.pipe.Run(context.Background(), f.job()); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	firstCalls := f.collaboratorCalls()

	job := f.job()
	job.Force = true
	if _, err := f.pipe.Run(context.Background(), job); err != nil {
		t.Fatalf("forced Run() error = %v", err)
	}

	if got := f.collaboratorCalls() - firstCalls; got != 3 {
		t.Errorf("forced run made %d collaborator calls, want 3", got)
	}
}

func TestRunSkipExtractionRequiresAudio(t *testing.T) {
	f := newFixture(t)

	job := f.job()
	job.SkipExtraction = true

	_, err := f.pipe.Run(context.Background(), job)
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindPrecondition || perr.Stage != StageExtraction {
		t.Fatalf("Run() error = %v, want extraction precondition", err)
	}
	if f.collaboratorCalls() != 0 {
		t.Errorf("collaborators called %d times before precondition failure", f.collaboratorCalls())
	}
}

func TestRunSkipExtractionWithAudioPresent(t *testing.T) {
	f := newFixture(t)
	mustWriteFile(t, f.arts().Audio(), "RIFFwav")

	job := f.job()
	job.SkipExtraction = true

	if _, err := f.pipe.Run(context.Background(), job); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if f.exec.calls != 0 {
		t.Errorf("ffmpeg called %d times despite skip", f.exec.calls)
	}
	if f.engine.calls != 1 || f.sum.calls != 1 {
		t.Errorf("downstream stages should run: engine=%d sum=%d", f.engine.calls, f.sum.calls)
	}
}

func TestRunSkipTranscriptionRequiresTranscript(t *testing.T) {
	f := newFixture(t)

	job := f.job()
	job.SkipTranscription = true

	_, err := f.pipe.Run(context.Background(), job)
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindPrecondition || perr.Stage != StageTranscription {
		t.Fatalf("Run() error = %v, want transcription precondition", err)
	}
	if f.engine.calls != 0 || f.sum.calls != 0 {
		t.Error("no collaborator may run after a precondition failure")
	}
}

func TestRunSkipTranscriptionReloadsTranscript(t *testing.T) {
	f := newFixture(t)

	rec := transcript.NewRecord("en", []transcript.Segment{{Start: 0, End: 1, Text: "reloaded text"}})
	if err := os.MkdirAll(filepath.Dir(f.arts().TranscriptJSON()), 0755); err != nil {
		t.Fatal(err)
	}
	if err := rec.SaveJSON(f.arts().TranscriptJSON()); err != nil {
		t.Fatal(err)
	}

	var gotTranscript string
	f.sum.summarize = func(ctx context.Context, transcriptText, meetingContext string) (*summarizer.Record, error) {
		gotTranscript = transcriptText
		return &summarizer.Record{Summary: "s", ModelUsed: "m"}, nil
	}

	job := f.job()
	job.SkipTranscription = true

	if _, err := f.pipe.Run(context.Background(), job); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if f.engine.calls != 0 {
		t.Errorf("engine called %d times despite skip", f.engine.calls)
	}
	if gotTranscript != "reloaded text" {
		t.Errorf("summarizer got %q, want reloaded transcript", gotTranscript)
	}
}

func TestRunSkipSummaryNeverRequiresArtifact(t *testing.T) {
	f := newFixture(t)

	job := f.job()
	job.SkipSummary = true

	if _, err := f.pipe.Run(context.Background(), job); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if f.sum.calls != 0 {
		t.Errorf("summarizer called %d times despite skip", f.sum.calls)
	}
	if artifact.Exists(f.arts().SummaryJSON()) {
		t.Error("no summary artifact expected")
	}
}

func TestRunTranscriptionReadsCanonicalAudioPath(t *testing.T) {
	f := newFixture(t)

	var gotAudioPath string
	f.engine.transcribe = func(ctx context.Context, audioPath, language string) (*transcript.Record, error) {
		gotAudioPath = audioPath
		return transcript.NewRecord("en", nil), nil
	}

	if _, err := f.pipe.Run(context.Background(), f.job()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if gotAudioPath != f.arts().Audio() {
		t.Errorf("engine read %q, want canonical path %q", gotAudioPath, f.arts().Audio())
	}
}

func TestRunMissingVideoIsPrecondition(t *testing.T) {
	f := newFixture(t)

	job := f.job()
	job.VideoPath = filepath.Join(t.TempDir(), "absent.mkv")

	_, err := f.pipe.Run(context.Background(), job)
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindPrecondition || perr.Stage != StageExtraction {
		t.Fatalf("Run() error = %v, want extraction precondition", err)
	}
}

func TestRunExtractionFailureAbortsJob(t *testing.T) {
	f := newFixture(t)
	f.exec.execute = func(ctx context.Context, name string, args ...string) (string, error) {
		return "", errors.New("command 'ffmpeg' failed: exit status 1\nstderr: Invalid data found")
	}

	_, err := f.pipe.Run(context.Background(), f.job())
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindExternal || perr.Stage != StageExtraction {
		t.Fatalf("Run() error = %v, want extraction external failure", err)
	}
	if perr.Err == nil || !errors.Is(err, perr.Err) {
		t.Error("error should wrap the tool diagnostic")
	}
	if f.engine.calls != 0 || f.sum.calls != 0 {
		t.Error("no later stage may run after a failure")
	}
}

func TestRunTranscriptionFailureAbortsJob(t *testing.T) {
	f := newFixture(t)
	f.engine.transcribe = func(ctx context.Context, audioPath, language string) (*transcript.Record, error) {
		return nil, errors.New("model load failed")
	}

	_, err := f.pipe.Run(context.Background(), f.job())
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindExternal || perr.Stage != StageTranscription {
		t.Fatalf("Run() error = %v, want transcription external failure", err)
	}
	if f.sum.calls != 0 {
		t.Error("summarizer must not run after transcription failure")
	}
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 bytes"},
		{512, "512 bytes"},
		{1023, "1023 bytes"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1024 * 1024, "1.0 MB"},
		{3 * 1024 * 1024 / 2, "1.5 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := HumanSize(tt.n); got != tt.want {
				t.Errorf("HumanSize(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	err := preconditionErr(StageExtraction, "video file not found: %s", "a.mkv")
	if err.Error() != "extraction: video file not found: a.mkv" {
		t.Errorf("Error() = %q", err.Error())
	}

	wrapped := externalErr(StageSummarization, "summarization failed", errors.New("429"))
	if !errors.Is(wrapped, wrapped.Err) {
		t.Error("Unwrap should expose the cause")
	}
	if wrapped.Kind.String() != "external" {
		t.Errorf("Kind.String() = %q", wrapped.Kind.String())
	}
}

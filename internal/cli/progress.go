package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/recapkit/recap/internal/pipeline"
)

// useProgressUI reports whether the interactive stage display should run.
func useProgressUI() bool {
	return !noProgress && term.IsTerminal(int(os.Stdout.Fd()))
}

var stageLabels = map[pipeline.Stage]string{
	pipeline.StageExtraction:    "Extracting audio",
	pipeline.StageTranscription: "Transcribing",
	pipeline.StageSummarization: "Summarizing",
}

// stageMsg reports one stage disposition from the running pipeline.
type stageMsg struct {
	stage       pipeline.Stage
	disposition pipeline.Disposition
}

// pipelineDoneMsg carries the pipeline's final outcome.
type pipelineDoneMsg struct {
	report *pipeline.Report
	err    error
}

type stageEntry struct {
	stage       pipeline.Stage
	disposition pipeline.Disposition
}

// progressModel is the bubbletea model for the live stage display.
type progressModel struct {
	spinner     spinner.Model
	stages      []stageEntry
	start       time.Time
	cancel      context.CancelFunc
	done        bool
	interrupted bool
	err         error
}

func newProgressModel(cancel context.CancelFunc) progressModel {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	return progressModel{
		spinner: sp,
		start:   time.Now(),
		cancel:  cancel,
	}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			m.interrupted = true
			m.cancel()
			return m, nil
		}

	case stageMsg:
		m.stages = append(m.stages, stageEntry{stage: msg.stage, disposition: msg.disposition})
		return m, nil

	case pipelineDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m progressModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m progressModel) renderContent() string {
	var b strings.Builder

	for i, entry := range m.stages {
		label := stageLabels[entry.stage]
		running := !m.done && i == len(m.stages)-1 && entry.disposition == pipeline.DispositionRun

		switch {
		case running:
			fmt.Fprintf(&b, "%s %s... %s\n",
				m.spinner.View(),
				statusStyle.Render(label),
				hintStyle.Render(time.Since(m.start).Round(time.Second).String()))
		case entry.disposition == pipeline.DispositionReused:
			fmt.Fprintf(&b, "%s %s\n", successStyle.Render("↷"), label+" (reused existing artifact)")
		case entry.disposition == pipeline.DispositionSkipped:
			fmt.Fprintf(&b, "%s %s\n", hintStyle.Render("-"), label+" (skipped)")
		default:
			fmt.Fprintf(&b, "%s %s\n", successStyle.Render("✓"), label)
		}
	}

	if m.interrupted && !m.done {
		b.WriteString(errorStyle.Render("Cancelling...") + "\n")
	} else if !m.done {
		b.WriteString(hintStyle.Render("Press Ctrl+C to cancel") + "\n")
	}

	return b.String()
}

// runWithProgress executes the pipeline under the interactive display. The
// pipeline runs in its own goroutine and feeds the program stage and
// completion messages.
func runWithProgress(ctx context.Context, pipe pipeline.Pipeline, job pipeline.Job) (*pipeline.Report, error) {
	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newProgressModel(cancel), tea.WithContext(ctx))

	job.OnStage = func(stage pipeline.Stage, d pipeline.Disposition) {
		p.Send(stageMsg{stage: stage, disposition: d})
	}

	var (
		report *pipeline.Report
		runErr error
	)
	go func() {
		report, runErr = pipe.Run(jobCtx, job)
		p.Send(pipelineDoneMsg{report: report, err: runErr})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress display: %w", err)
	}

	if m, ok := finalModel.(progressModel); ok && m.interrupted {
		return nil, context.Canceled
	}
	return report, runErr
}

// Package cli provides the command-line interface for recap.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/recapkit/recap/internal/config"
	"github.com/recapkit/recap/internal/diagnostics"
	"github.com/recapkit/recap/internal/llm"
	"github.com/recapkit/recap/internal/logger"
	"github.com/recapkit/recap/internal/pipeline"
	"github.com/recapkit/recap/internal/summarizer"
	"github.com/recapkit/recap/internal/whisper"
	"github.com/recapkit/recap/pkg/executor"
)

// Version is set at build time.
var Version = "0.1.0"

// Exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitInterrupted = 130
)

var (
	configPath string
	noProgress bool

	flagModel      string
	flagLanguage   string
	flagOutput     string
	flagContext    string
	flagProvider   string
	skipExtraction bool
	skipTranscribe bool
	skipSummary    bool
	force          bool
)

var rootCmd = &cobra.Command{
	Use:   "recap <video>",
	Short: "Turn a meeting recording into a transcript and an actionable summary",
	Long: `Recap runs a recorded meeting through three resumable stages:
audio extraction (ffmpeg), transcription (whisper.cpp), and summarization
(an LLM provider). Each stage writes its artifact next to the others under
one output base; re-running reuses what already exists unless --force.`,
	Version:       Version,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runProcess(cmd.Context(), cfg, args[0])
	},
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	// Missing .env is fine; the environment alone may carry everything.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "\nInterrupted.")
		return exitInterrupted
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return exitError
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable the interactive progress display")

	rootCmd.Flags().StringVarP(&flagModel, "model", "m", "", fmt.Sprintf("whisper model size (%s)", strings.Join(config.WhisperModelSizes, ", ")))
	rootCmd.Flags().StringVarP(&flagLanguage, "language", "l", "en", `transcript language code, or "auto" to detect`)
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output directory or base path")
	rootCmd.Flags().StringVarP(&flagContext, "context", "c", "", "meeting context passed to the summarizer")
	rootCmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (anthropic, openai, ollama, gemini)")
	rootCmd.Flags().BoolVar(&skipExtraction, "skip-extraction", false, "reuse an existing audio artifact")
	rootCmd.Flags().BoolVar(&skipTranscribe, "skip-transcription", false, "reuse an existing transcript artifact")
	rootCmd.Flags().BoolVar(&skipSummary, "skip-summary", false, "stop after transcription")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "re-run every stage even when artifacts exist")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig builds the effective configuration: defaults, optional YAML
// file, environment, then any flags the user set on this command.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		if !config.IsValidWhisperModel(flagModel) {
			return nil, fmt.Errorf("invalid model %q, expected one of %s", flagModel, strings.Join(config.WhisperModelSizes, ", "))
		}
		cfg.Whisper.Model = flagModel
	}
	if flags.Changed("provider") {
		cfg.LLM.Provider = strings.ToLower(flagProvider)
		cfg.LLM.Model = ""
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if flags.Changed("output") {
		cfg.Paths.Output = flagOutput
	}

	return cfg, nil
}

func runProcess(ctx context.Context, cfg *config.Config, videoPath string) error {
	log := logger.New(cfg.Logging.Level)

	if issues := diagnostics.NewChecker().GateIssues(cfg, skipExtraction, skipSummary); len(issues) > 0 {
		fmt.Fprintln(os.Stderr, "Missing prerequisites:")
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "  - %s\n", issue)
		}
		return fmt.Errorf("prerequisites not met")
	}

	pipe, err := buildPipeline(cfg, log)
	if err != nil {
		return err
	}

	job := pipeline.Job{
		VideoPath:         videoPath,
		OutputBase:        deriveOutputBase(cfg.Paths.Output, videoPath),
		Language:          normalizeLanguage(flagLanguage),
		Context:           flagContext,
		Force:             force,
		SkipExtraction:    skipExtraction,
		SkipTranscription: skipTranscribe,
		SkipSummary:       skipSummary,
	}

	printBanner(videoPath, job.OutputBase, cfg)

	report, err := runJob(ctx, pipe, job, log)
	if err != nil {
		if ctx.Err() != nil {
			return context.Canceled
		}
		return err
	}

	printReport(report, skipSummary)
	return nil
}

// buildPipeline wires the collaborators behind the orchestrator.
func buildPipeline(cfg *config.Config, log logger.Logger) (pipeline.Pipeline, error) {
	exec := executor.New()

	gen, err := llm.New(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("configure llm provider: %w", err)
	}

	engine := whisper.New(cfg.Whisper, exec, log)
	sum := summarizer.New(gen, log)

	return pipeline.New(exec, engine, sum, log), nil
}

// runJob executes the pipeline, with the interactive progress display when
// stdout is a terminal.
func runJob(ctx context.Context, pipe pipeline.Pipeline, job pipeline.Job, log logger.Logger) (*pipeline.Report, error) {
	if useProgressUI() {
		return runWithProgress(ctx, pipe, job)
	}

	job.OnStage = func(stage pipeline.Stage, d pipeline.Disposition) {
		log.Info(ctx, "Stage %s: %s", stage, d)
	}
	return pipe.Run(ctx, job)
}

// deriveOutputBase resolves the --output value: an existing directory means
// "<dir>/<video stem>"; anything else is the base path itself.
func deriveOutputBase(output, videoPath string) string {
	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))

	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, stem)
	}
	if strings.HasSuffix(output, string(os.PathSeparator)) || strings.HasSuffix(output, "/") {
		return filepath.Join(output, stem)
	}

	// Default output dirs may not exist yet; treat them as directories.
	switch output {
	case "./output", "output":
		return filepath.Join(output, stem)
	}
	return output
}

// normalizeLanguage maps the CLI's "auto" to the engine's empty-string
// detect mode.
func normalizeLanguage(lang string) string {
	if strings.EqualFold(lang, "auto") {
		return ""
	}
	return lang
}

func printBanner(videoPath, outputBase string, cfg *config.Config) {
	fmt.Println(titleStyle.Render("recap " + Version))
	fmt.Printf("  Video:    %s\n", videoPath)
	fmt.Printf("  Output:   %s*\n", outputBase)
	fmt.Printf("  Whisper:  %s\n", cfg.Whisper.Model)
	fmt.Printf("  LLM:      %s (%s)\n", cfg.LLM.Provider, cfg.LLM.Model)
	fmt.Println()
}

func printReport(report *pipeline.Report, skippedSummary bool) {
	fmt.Println()
	fmt.Println(successStyle.Render("Done") + fmt.Sprintf(" in %s", report.Elapsed.Round(10*time.Millisecond)))
	fmt.Println("Generated files:")
	for _, f := range report.Files {
		fmt.Printf("  %s (%s)\n", f.Path, pipeline.HumanSize(f.Size))
	}
	if !skippedSummary {
		fmt.Printf("\nView the summary: %s\n", report.SummaryPath)
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/recapkit/recap/internal/config"
	"github.com/recapkit/recap/internal/diagnostics"
	"github.com/recapkit/recap/internal/logger"
	"github.com/recapkit/recap/internal/pipeline"
	"github.com/recapkit/recap/internal/watcher"
)

var (
	watchInput         string
	watchMaxConcurrent int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a directory and process every new video dropped into it",
	Long: `Watch monitors an input directory and runs the full pipeline for each
new video file, writing artifacts under the output directory using the
video's file stem. Jobs run concurrently up to the configured limit;
a failed job is logged and does not stop the watcher.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if watchInput != "" {
			cfg.Watch.Input = watchInput
		}
		if watchMaxConcurrent > 0 {
			cfg.Watch.MaxConcurrent = watchMaxConcurrent
		}
		if cfg.Watch.Input == "" {
			return fmt.Errorf("no input directory: pass --input or set watch.input in the config file")
		}
		return runWatch(cmd.Context(), cfg)
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchInput, "input", "i", "", "directory to watch for new videos")
	watchCmd.Flags().IntVar(&watchMaxConcurrent, "max-concurrent", 0, "maximum videos processed at once")
}

func runWatch(ctx context.Context, cfg *config.Config) error {
	log := logger.New(cfg.Logging.Level)

	if issues := diagnostics.NewChecker().GateIssues(cfg, false, false); len(issues) > 0 {
		for _, issue := range issues {
			fmt.Println("  - " + issue)
		}
		return fmt.Errorf("prerequisites not met")
	}

	pipe, err := buildPipeline(cfg, log)
	if err != nil {
		return err
	}

	handler := func(ctx context.Context, jobID, videoPath string) error {
		stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
		job := pipeline.Job{
			VideoPath:  videoPath,
			OutputBase: filepath.Join(cfg.Paths.Output, stem),
			OnStage: func(stage pipeline.Stage, d pipeline.Disposition) {
				log.Info(ctx, "[%s] Stage %s: %s", jobID, stage, d)
			},
		}

		report, err := pipe.Run(ctx, job)
		if err != nil {
			return err
		}
		log.Info(ctx, "[%s] Summary: %s (%s)", jobID, report.SummaryPath, report.Elapsed.Round(time.Second))
		return nil
	}

	w, err := watcher.New(cfg.Watch.Input, handler, log, cfg.Watch.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	err = w.Start(ctx)
	if errors.Is(err, context.Canceled) {
		// A clean shutdown, not a watch failure.
		return context.Canceled
	}
	return err
}

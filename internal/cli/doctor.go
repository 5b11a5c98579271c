package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recapkit/recap/internal/diagnostics"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check external tools, models, and credentials",
	Long: `Doctor verifies everything the pipeline needs: ffmpeg, the whisper.cpp
binary, the configured model file, the LLM provider credential, and a
writable output directory. Exits 1 when any check fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		report := diagnostics.NewChecker().Run(cfg)
		for _, item := range report.Items {
			if item.Status == diagnostics.StatusPass {
				fmt.Printf("%s %s: %s\n", successStyle.Render("✓"), item.Name, item.Message)
				continue
			}
			fmt.Printf("%s %s: %s\n", errorStyle.Render("✗"), item.Name, item.Message)
			if item.Hint != "" {
				fmt.Printf("  %s\n", hintStyle.Render(item.Hint))
			}
		}

		if report.HasFailures {
			return fmt.Errorf("some checks failed")
		}
		fmt.Println("\nAll checks passed.")
		return nil
	},
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/recapkit/recap/internal/artifact"
	"github.com/recapkit/recap/internal/whisper"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List supported whisper models and their install state",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MODEL\tFILE\tSIZE\tINSTALLED")
		for _, opt := range whisper.Catalog {
			installed := "-"
			if artifact.Exists(filepath.Join(cfg.Whisper.ModelDir, opt.FileName)) {
				installed = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", opt.ID, opt.FileName, opt.SizeLabel, installed)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\nModel directory: %s\n", cfg.Whisper.ModelDir)
		fmt.Println(hintStyle.Render("Download missing models from https://huggingface.co/ggerganov/whisper.cpp"))
		return nil
	},
}

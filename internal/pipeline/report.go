package pipeline

import (
	"fmt"
	"os"
	"time"

	"github.com/recapkit/recap/internal/artifact"
)

// ReportFile is one produced (or pre-existing) artifact on disk.
type ReportFile struct {
	Path string
	Size int64
}

// Report enumerates every file under the output base after a successful run.
type Report struct {
	Files       []ReportFile
	Elapsed     time.Duration
	SummaryPath string
}

func buildReport(arts artifact.Set, elapsed time.Duration) (*Report, error) {
	paths, err := arts.List()
	if err != nil {
		return nil, err
	}

	report := &Report{
		Elapsed:     elapsed,
		SummaryPath: arts.SummaryMarkdown(),
	}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		report.Files = append(report.Files, ReportFile{Path: path, Size: info.Size()})
	}
	return report, nil
}

// HumanSize formats a byte count: plain bytes below 1 KB, one-decimal KB
// below 1 MB, one-decimal MB above.
func HumanSize(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

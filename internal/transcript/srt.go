package transcript

import (
	"fmt"
	"strings"
)

// RenderSRT formats segments as SRT subtitle blocks: 1-based sequence
// number, timestamp range, segment text, blank separator line.
func RenderSRT(segments []Segment) string {
	var b strings.Builder
	for i, seg := range segments {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", FormatTimestamp(seg.Start), FormatTimestamp(seg.End))
		fmt.Fprintf(&b, "%s\n\n", seg.Text)
	}
	return b.String()
}

// FormatTimestamp converts seconds to the SRT HH:MM:SS,mmm form.
// Milliseconds are truncated, not rounded.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}

	total := int64(seconds * 1000)
	hours := total / 3600000
	minutes := (total % 3600000) / 60000
	secs := (total % 60000) / 1000
	millis := total % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

package summarizer

import (
	"fmt"
	"strings"
)

// RenderMarkdown formats the record as the human-readable report: title,
// narrative, structured-data sections (only the non-empty ones), and a
// metadata footer.
func RenderMarkdown(r *Record) string {
	var b strings.Builder

	b.WriteString("# Meeting Summary\n\n")
	b.WriteString(r.Summary)
	b.WriteString("\n\n---\n\n## Structured Data\n\n")

	s := r.StructuredData

	if len(s.ActionItems) > 0 {
		b.WriteString("### Action Items\n\n")
		for _, item := range s.ActionItems {
			owner := ""
			if item.Owner != "" {
				owner = fmt.Sprintf(" (%s)", item.Owner)
			}
			deadline := ""
			if item.Deadline != "" {
				deadline = fmt.Sprintf(" - Due: %s", item.Deadline)
			}
			fmt.Fprintf(&b, "- %s%s%s\n", item.Task, owner, deadline)
		}
		b.WriteString("\n")
	}

	if len(s.Decisions) > 0 {
		b.WriteString("### Decisions Made\n\n")
		for _, d := range s.Decisions {
			fmt.Fprintf(&b, "- **%s**\n", d.Decision)
			if d.Context != "" {
				fmt.Fprintf(&b, "  - %s\n", d.Context)
			}
		}
		b.WriteString("\n")
	}

	if len(s.KeyDates) > 0 {
		b.WriteString("### Key Dates\n\n")
		for _, kd := range s.KeyDates {
			fmt.Fprintf(&b, "- %s: %s\n", kd.Date, kd.Event)
		}
		b.WriteString("\n")
	}

	if len(s.OpenQuestions) > 0 {
		b.WriteString("### Open Questions\n\n")
		for _, q := range s.OpenQuestions {
			fmt.Fprintf(&b, "- %s\n", q)
		}
		b.WriteString("\n")
	}

	if len(s.TechnicalDetails) > 0 {
		b.WriteString("### Technical Details\n\n")
		for _, d := range s.TechnicalDetails {
			fmt.Fprintf(&b, "- %s\n", d)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n---\n\n## Analysis Metadata\n\n")
	fmt.Fprintf(&b, "- Model: %s\n", r.ModelUsed)
	fmt.Fprintf(&b, "- Tokens: %d input, %d output\n", r.TokensUsed.Input, r.TokensUsed.Output)

	return b.String()
}

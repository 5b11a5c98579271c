package summarizer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseStructuredData decodes the extraction call's response. The model may
// wrap the JSON in a fenced code block, with or without a language tag, or
// return it bare; all three forms are accepted. Any decode failure is
// returned to the caller, which treats it as non-fatal.
func parseStructuredData(response string) (StructuredData, error) {
	var data StructuredData
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &data); err != nil {
		return StructuredData{}, fmt.Errorf("parse structured data: %w", err)
	}
	data.normalize()
	return data, nil
}

// stripCodeFence extracts the content of the first fenced code block, if
// any. Without a fence the whole trimmed text is returned; without a closing
// fence everything after the opening fence is.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)

	start := strings.Index(trimmed, "```")
	if start < 0 {
		return trimmed
	}

	rest := trimmed[start+3:]
	// Drop the language tag, when present, with the rest of the fence line.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	} else {
		return ""
	}

	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

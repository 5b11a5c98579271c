package summarizer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ActionItem is one task extracted from the meeting.
type ActionItem struct {
	Task     string `json:"task"`
	Owner    string `json:"owner,omitempty"`
	Deadline string `json:"deadline,omitempty"`
}

// Decision is one decision with its surrounding context.
type Decision struct {
	Decision string `json:"decision"`
	Context  string `json:"context,omitempty"`
}

// KeyDate is one date mentioned in the meeting.
type KeyDate struct {
	Date  string `json:"date"`
	Event string `json:"event"`
}

// StructuredData is the machine-readable extraction from the narrative
// summary. Fields with no data are empty lists, never null.
type StructuredData struct {
	ActionItems           []ActionItem `json:"action_items"`
	Decisions             []Decision   `json:"decisions"`
	KeyDates              []KeyDate    `json:"key_dates"`
	ParticipantsMentioned []string     `json:"participants_mentioned"`
	TechnicalDetails      []string     `json:"technical_details"`
	OpenQuestions         []string     `json:"open_questions"`
}

// normalize replaces nil slices with empty ones so the JSON artifact never
// carries null fields.
func (s *StructuredData) normalize() {
	if s.ActionItems == nil {
		s.ActionItems = []ActionItem{}
	}
	if s.Decisions == nil {
		s.Decisions = []Decision{}
	}
	if s.KeyDates == nil {
		s.KeyDates = []KeyDate{}
	}
	if s.ParticipantsMentioned == nil {
		s.ParticipantsMentioned = []string{}
	}
	if s.TechnicalDetails == nil {
		s.TechnicalDetails = []string{}
	}
	if s.OpenQuestions == nil {
		s.OpenQuestions = []string{}
	}
}

// emptyStructuredData is the degraded result when extraction fails.
func emptyStructuredData() StructuredData {
	var s StructuredData
	s.normalize()
	return s
}

// TokenUsage records generation cost for the narrative call.
type TokenUsage struct {
	Input  int `json:"input"`
	Output int `json:"output"`
}

// Record is the complete summarization result for one transcript.
type Record struct {
	Summary        string         `json:"summary"`
	StructuredData StructuredData `json:"structured_data"`
	ModelUsed      string         `json:"model_used"`
	TokensUsed     TokenUsage     `json:"tokens_used"`
}

// SaveJSON writes the record as indented JSON.
func (r *Record) SaveJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// SaveMarkdown writes the human-readable report.
func (r *Record) SaveMarkdown(path string) error {
	if err := os.WriteFile(path, []byte(RenderMarkdown(r)), 0644); err != nil {
		return fmt.Errorf("write summary markdown: %w", err)
	}
	return nil
}

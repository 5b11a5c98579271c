package summarizer

import (
	"context"
	"fmt"
)

const (
	narrativeMaxTokens  = 4000
	extractionMaxTokens = 2000
)

const analystSystemPrompt = `You are an expert meeting analyst. Your task is to analyze meeting transcripts
and extract ALL important information without missing any details. You should be thorough and comprehensive.

Your analysis should include:
1. Executive Summary - Brief overview of the meeting
2. Key Discussion Points - All topics discussed with details
3. Decisions Made - Any decisions or conclusions reached
4. Action Items - Tasks, assignments, or next steps mentioned
5. Important Details - Specific numbers, dates, deadlines, names, or technical details
6. Questions Raised - Any open questions or concerns
7. Follow-up Needed - Items that need further discussion

Be meticulous and ensure you capture every important point, even minor details.`

const extractionPromptFormat = `Based on this meeting summary, extract structured data in JSON format.

Summary:
%s

Extract and format as JSON with these fields:
{
  "action_items": [
    {"task": "description", "owner": "person if mentioned", "deadline": "if mentioned"}
  ],
  "decisions": [
    {"decision": "what was decided", "context": "why/how"}
  ],
  "key_dates": [
    {"date": "date mentioned", "event": "what it's for"}
  ],
  "participants_mentioned": ["list of people mentioned"],
  "technical_details": ["specific technical points, numbers, or specifications"],
  "open_questions": ["any unresolved questions or concerns"]
}

Only include fields that have actual data. If a field has no data, use an empty array.`

// Summarize runs two sequential generation calls: a narrative analysis of
// the transcript, then a structured extraction over that narrative. A failed
// narrative call fails the stage; a failed extraction degrades to empty
// structured data.
func (s *implSummarizer) Summarize(ctx context.Context, transcript, meetingContext string) (*Record, error) {
	s.logger.Info(ctx, "Analyzing transcript with %s", s.generator.Model())

	userPrompt := buildNarrativePrompt(transcript, meetingContext)

	narrative, err := s.generator.Generate(ctx, analystSystemPrompt, userPrompt, narrativeMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("generate summary: %w", err)
	}

	s.logger.Info(ctx, "Summary generated: %d input / %d output tokens",
		narrative.InputTokens, narrative.OutputTokens)

	record := &Record{
		Summary:        narrative.Text,
		StructuredData: s.extractStructuredData(ctx, narrative.Text),
		ModelUsed:      narrative.Model,
		TokensUsed: TokenUsage{
			Input:  narrative.InputTokens,
			Output: narrative.OutputTokens,
		},
	}

	return record, nil
}

// extractStructuredData runs the second generation call. Any failure here is
// non-fatal; the narrative result stands on its own.
func (s *implSummarizer) extractStructuredData(ctx context.Context, narrative string) StructuredData {
	prompt := fmt.Sprintf(extractionPromptFormat, narrative)

	result, err := s.generator.Generate(ctx, "", prompt, extractionMaxTokens)
	if err != nil {
		s.logger.Warn(ctx, "Could not extract structured data: %v", err)
		return emptyStructuredData()
	}

	data, err := parseStructuredData(result.Text)
	if err != nil {
		s.logger.Warn(ctx, "Could not extract structured data: %v", err)
		return emptyStructuredData()
	}

	return data
}

func buildNarrativePrompt(transcript, meetingContext string) string {
	contextLine := ""
	if meetingContext != "" {
		contextLine = fmt.Sprintf("Meeting Context: %s\n\n", meetingContext)
	}

	return fmt.Sprintf(`Please analyze this meeting transcript and provide a comprehensive summary.

%sTranscript:
%s

Provide your analysis in a structured format with clear sections. Ensure you capture ALL details discussed.`,
		contextLine, transcript)
}

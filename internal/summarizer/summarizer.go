package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"studyflow/internal/models"
	"studyflow/internal/segmenter"
	"studyflow/internal/stage"
)

const systemPrompt = `You are an expert study-material analyst. You read one segment of a lecture transcript and produce a structured summary for exam preparation. Respond with a single JSON object and nothing else.`

const userPromptTemplate = `Summarize the transcript segment below for a student preparing an exam.

Return a JSON object with exactly these keys:
- "title": short segment title
- "summary": 2-4 sentence summary of the segment
- "key_points": array of the most important points, in order of appearance
- "workflows": array of {"name", "steps", "notes"} for any procedures explained step by step
- "definitions": array of {"term", "definition"} for terms the segment defines
- "examples": array of concrete examples mentioned
- "exam_pointers": array of things the speaker flags as exam-relevant
- "confidence": "high", "medium" or "low" reflecting how well the segment supports the summary

Segment title: %s

Transcript segment:
---
%s
---`

// SummarizeChunk produces the ChunkSummary for one chunk. The external
// call is paced by the limiter and absorbed by the fallback policy, so
// the only error this returns is a cancelled context.
func (s *implSummarizer) SummarizeChunk(ctx context.Context, meter *stage.Meter, chunk models.TextChunk) (stage.Result[models.ChunkSummary], error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return stage.Result[models.ChunkSummary]{}, err
	}

	text := segmenter.TruncateToTokenBudget(chunk.Text, s.tokenBudget)
	userPrompt := fmt.Sprintf(userPromptTemplate, chunk.Title, text)

	return stage.Run(ctx, s.gateway, s.logger, meter, systemPrompt, userPrompt,
		func(raw string) (models.ChunkSummary, error) {
			return parseSummary(raw, chunk)
		},
		func() models.ChunkSummary {
			return FallbackSummary(chunk)
		},
	)
}

// llmSummary is the shape the model is asked to return. ChunkID is
// filled in locally; the model never sees or invents it.
type llmSummary struct {
	Title        string              `json:"title"`
	Summary      string              `json:"summary"`
	KeyPoints    []string            `json:"key_points"`
	Workflows    []models.Workflow   `json:"workflows"`
	Definitions  []models.Definition `json:"definitions"`
	Examples     []string            `json:"examples"`
	ExamPointers []string            `json:"exam_pointers"`
	Confidence   string              `json:"confidence"`
}

func parseSummary(raw string, chunk models.TextChunk) (models.ChunkSummary, error) {
	cleaned := stripCodeFence(raw)

	var parsed llmSummary
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return models.ChunkSummary{}, fmt.Errorf("decode summary JSON: %w", err)
	}
	if strings.TrimSpace(parsed.Summary) == "" {
		return models.ChunkSummary{}, fmt.Errorf("summary field is empty")
	}

	title := strings.TrimSpace(parsed.Title)
	if title == "" {
		title = chunk.Title
	}

	confidence := models.Confidence(strings.ToLower(strings.TrimSpace(parsed.Confidence)))
	if !confidence.IsValid() {
		confidence = models.ConfidenceMedium
	}

	return models.ChunkSummary{
		ChunkID:      chunk.ChunkID,
		Title:        title,
		Summary:      strings.TrimSpace(parsed.Summary),
		KeyPoints:    parsed.KeyPoints,
		Workflows:    parsed.Workflows,
		Definitions:  parsed.Definitions,
		Examples:     parsed.Examples,
		ExamPointers: parsed.ExamPointers,
		Confidence:   confidence,
	}, nil
}

// stripCodeFence removes a surrounding markdown code fence, which models
// add around JSON output even when told not to.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

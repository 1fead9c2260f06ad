package assembler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"studyflow/internal/models"
	"studyflow/internal/segmenter"
	"studyflow/internal/stage"
)

const assemblerSystemPrompt = `You are an expert exam-preparation author. You receive structured per-segment summaries of one lecture and compose polished study material from them. Prioritize content from high-confidence segments; treat low-confidence segments with care.`

const masterNotesPrompt = `Write comprehensive master notes in markdown for the lesson "%s" from the segment summaries below. Organize by topic, merge duplicated points across segments, keep every definition and workflow.

%s`

const quickRevisionPrompt = `Write a one-page quick revision sheet in markdown for the lesson "%s" from the segment summaries below: the essential facts, definitions and formulas only, as terse bullet points.

%s`

const flashcardsPrompt = `Create flashcards for the lesson "%s" from the segment summaries below. Return a JSON array of objects with keys "front" and "back". Cover every definition and each major key point once.

%s`

const practiceQuestionsPrompt = `Write practice questions in markdown for the lesson "%s" from the segment summaries below. Produce exactly: a "## Multiple Choice" section with 6 questions (options A-D, answer marked), a "## Short Answer" section with 6 questions with model answers, and a "## Long Form" section with 2 essay questions each followed by a grading rubric.

%s`

func (a *implAssembler) MasterNotes(ctx context.Context, meter *stage.Meter, lesson string, summaries []models.ChunkSummary) (stage.Result[string], error) {
	return a.textArtifact(ctx, meter, masterNotesPrompt, lesson, summaries, func() string {
		return FallbackMasterNotes(lesson, summaries)
	})
}

func (a *implAssembler) QuickRevision(ctx context.Context, meter *stage.Meter, lesson string, summaries []models.ChunkSummary) (stage.Result[string], error) {
	return a.textArtifact(ctx, meter, quickRevisionPrompt, lesson, summaries, func() string {
		return FallbackQuickRevision(lesson, summaries)
	})
}

func (a *implAssembler) PracticeQuestions(ctx context.Context, meter *stage.Meter, lesson string, summaries []models.ChunkSummary) (stage.Result[string], error) {
	return a.textArtifact(ctx, meter, practiceQuestionsPrompt, lesson, summaries, func() string {
		return FallbackPracticeQuestions(lesson, summaries)
	})
}

func (a *implAssembler) Flashcards(ctx context.Context, meter *stage.Meter, lesson string, summaries []models.ChunkSummary) (stage.Result[[]Flashcard], error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return stage.Result[[]Flashcard]{}, err
	}

	payload := segmenter.TruncateToTokenBudget(buildPayload(summaries), a.tokenBudget)
	userPrompt := fmt.Sprintf(flashcardsPrompt, lesson, payload)

	return stage.Run(ctx, a.gateway, a.logger, meter, assemblerSystemPrompt, userPrompt,
		parseFlashcards,
		func() []Flashcard {
			return FallbackFlashcards(summaries)
		},
	)
}

// textArtifact runs one markdown artifact through the fallback policy.
func (a *implAssembler) textArtifact(ctx context.Context, meter *stage.Meter, promptTemplate, lesson string,
	summaries []models.ChunkSummary, fallback func() string) (stage.Result[string], error) {

	if err := a.limiter.Wait(ctx); err != nil {
		return stage.Result[string]{}, err
	}

	payload := segmenter.TruncateToTokenBudget(buildPayload(summaries), a.tokenBudget)
	userPrompt := fmt.Sprintf(promptTemplate, lesson, payload)

	return stage.Run(ctx, a.gateway, a.logger, meter, assemblerSystemPrompt, userPrompt,
		func(raw string) (string, error) {
			out := strings.TrimSpace(raw)
			if out == "" {
				return "", fmt.Errorf("empty artifact")
			}
			return out, nil
		},
		fallback,
	)
}

func parseFlashcards(raw string) ([]Flashcard, error) {
	cleaned := strings.TrimSpace(raw)
	if idx := strings.Index(cleaned, "["); idx > 0 {
		cleaned = cleaned[idx:]
	}
	if idx := strings.LastIndex(cleaned, "]"); idx >= 0 {
		cleaned = cleaned[:idx+1]
	}

	var cards []Flashcard
	if err := json.Unmarshal([]byte(cleaned), &cards); err != nil {
		return nil, fmt.Errorf("decode flashcards JSON: %w", err)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("no flashcards in response")
	}
	for _, c := range cards {
		if strings.TrimSpace(c.Front) == "" {
			return nil, fmt.Errorf("flashcard with empty front")
		}
	}
	return cards, nil
}

package assembler

import (
	"context"

	"studyflow/internal/models"
	"studyflow/internal/stage"
)

// Flashcard is one front/back study card.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Assembler composes the per-chunk summaries of one lesson into the
// final artifact set. Each artifact goes through the fallback policy
// independently, so one failed call degrades one artifact, not all four.
type Assembler interface {
	MasterNotes(ctx context.Context, meter *stage.Meter, lesson string, summaries []models.ChunkSummary) (stage.Result[string], error)
	QuickRevision(ctx context.Context, meter *stage.Meter, lesson string, summaries []models.ChunkSummary) (stage.Result[string], error)
	Flashcards(ctx context.Context, meter *stage.Meter, lesson string, summaries []models.ChunkSummary) (stage.Result[[]Flashcard], error)
	PracticeQuestions(ctx context.Context, meter *stage.Meter, lesson string, summaries []models.ChunkSummary) (stage.Result[string], error)
}

package summarizer

import (
	"context"

	"studyflow/internal/models"
	"studyflow/internal/stage"
)

// Summarizer turns one TextChunk into one ChunkSummary, degrading to a
// deterministic local summary when the generation service fails.
type Summarizer interface {
	SummarizeChunk(ctx context.Context, meter *stage.Meter, chunk models.TextChunk) (stage.Result[models.ChunkSummary], error)
}

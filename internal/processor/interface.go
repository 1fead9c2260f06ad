package processor

import (
	"context"

	"studyflow/internal/batch"
)

// Processor drives the four-stage pipeline for transcript files:
// chunking, summarization, consolidation, exam materials. Every stage
// transition is persisted, so an interrupted run resumes from the first
// unfinished stage of each lesson.
type Processor interface {
	// ProcessAll runs the pipeline over every transcript in the input
	// directory and returns the aggregated batch result.
	ProcessAll(ctx context.Context) (*batch.BatchResult, error)

	// Process runs the pipeline for a single transcript file.
	Process(ctx context.Context, filePath string) (batch.FileResult, error)
}

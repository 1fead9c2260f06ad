package segmenter

import (
	"fmt"

	"studyflow/internal/models"
)

type implSegmenter struct {
	targetSize int
	overlap    int
}

// New creates a Segmenter for the given target chunk size and overlap,
// both in estimated tokens. Overlap must be smaller than the target
// size; anything else would loop instead of making progress.
func New(targetSize, overlap int) (Segmenter, error) {
	if targetSize <= 0 {
		return nil, &models.ValidationError{Field: "target_size", Reason: "must be positive"}
	}
	if overlap < 0 {
		return nil, &models.ValidationError{Field: "overlap", Reason: "must not be negative"}
	}
	if overlap >= targetSize {
		return nil, &models.ValidationError{
			Field:  "overlap",
			Reason: fmt.Sprintf("overlap (%d) must be smaller than target_size (%d)", overlap, targetSize),
		}
	}

	return &implSegmenter{
		targetSize: targetSize,
		overlap:    overlap,
	}, nil
}

package segmenter

import "studyflow/internal/models"

// Segmenter splits a normalized transcript into ordered, topic-bounded
// chunks of bounded estimated size with controlled overlap.
type Segmenter interface {
	Segment(document, sourceFile string) ([]models.TextChunk, error)
}

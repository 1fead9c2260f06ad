package models

// Confidence is the quality signal on a chunk summary. Low also marks
// fallback-generated content so a reviewer can find degraded output.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// IsValid checks if the Confidence is a valid value
func (c Confidence) IsValid() bool {
	return c == ConfidenceHigh || c == ConfidenceMedium || c == ConfidenceLow
}

// Workflow is a named procedure extracted from a chunk.
type Workflow struct {
	Name  string   `json:"name"`
	Steps []string `json:"steps"`
	Notes string   `json:"notes,omitempty"`
}

// Definition is a term/definition pair extracted from a chunk.
type Definition struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// ChunkSummary is the structured summary of one TextChunk. Exactly one
// is produced per chunk; a low-confidence fallback stands in when the
// generation service fails or returns unusable content.
type ChunkSummary struct {
	ChunkID      string       `json:"chunk_id"`
	Title        string       `json:"title"`
	Summary      string       `json:"summary"`
	KeyPoints    []string     `json:"key_points"`
	Workflows    []Workflow   `json:"workflows,omitempty"`
	Definitions  []Definition `json:"definitions,omitempty"`
	Examples     []string     `json:"examples,omitempty"`
	ExamPointers []string     `json:"exam_pointers,omitempty"`
	Confidence   Confidence   `json:"confidence"`
}

package models

// TextChunk is a topic-bounded slice of a lesson's transcript, the unit
// of summarization. Chunks are immutable once produced by the segmenter.
type TextChunk struct {
	ChunkID    string `json:"chunk_id"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	SourceFile string `json:"source_file"`
	StartLine  int    `json:"start_line,omitempty"`
	EndLine    int    `json:"end_line,omitempty"`
}

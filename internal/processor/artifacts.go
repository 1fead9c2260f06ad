package processor

import (
	"encoding/json"
	"os"
	"path/filepath"

	"studyflow/internal/models"
)

// lessonDir is where all artifacts of one lesson live:
//
//	<output>/<lesson>/chunks.json
//	<output>/<lesson>/summaries/<chunk_id>.json
//	<output>/<lesson>/master_notes.md
//	<output>/<lesson>/quick_revision.md
//	<output>/<lesson>/flashcards.csv
//	<output>/<lesson>/practice_questions.md
func (p *implProcessor) lessonDir(key string) string {
	return filepath.Join(p.cfg.Paths.Output, key)
}

func (p *implProcessor) chunksPath(key string) string {
	return filepath.Join(p.lessonDir(key), "chunks.json")
}

func (p *implProcessor) summariesDir(key string) string {
	return filepath.Join(p.lessonDir(key), "summaries")
}

func (p *implProcessor) summaryPath(key, chunkID string) string {
	return filepath.Join(p.summariesDir(key), chunkID+".json")
}

func (p *implProcessor) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &models.IOError{Op: "encode", Path: path, Err: err}
	}
	return p.writeBytes(path, data)
}

func (p *implProcessor) writeText(path, content string) error {
	return p.writeBytes(path, []byte(content))
}

func (p *implProcessor) writeBytes(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &models.IOError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &models.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func (p *implProcessor) readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &models.IOError{Op: "read", Path: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &models.IOError{Op: "decode", Path: path, Err: err}
	}
	return nil
}

func (p *implProcessor) loadChunks(key string) ([]models.TextChunk, error) {
	var chunks []models.TextChunk
	if err := p.readJSON(p.chunksPath(key), &chunks); err != nil {
		return nil, err
	}
	return chunks, nil
}

// loadSummaries reads the per-chunk summary files back in chunk order.
func (p *implProcessor) loadSummaries(key string, chunks []models.TextChunk) ([]models.ChunkSummary, error) {
	summaries := make([]models.ChunkSummary, 0, len(chunks))
	for _, chunk := range chunks {
		var summary models.ChunkSummary
		if err := p.readJSON(p.summaryPath(key, chunk.ChunkID), &summary); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"studyflow/internal/assembler"
	"studyflow/internal/export"
	"studyflow/internal/models"
	"studyflow/internal/stage"
	"studyflow/internal/state"
)

func (p *implProcessor) runStage(
	ctx context.Context,
	st *state.PipelineState,
	lesson *state.LessonState,
	key, filePath string,
	stg state.Stage,
	meter *stage.Meter,
	counts *runCounts,
) error {
	switch stg {
	case state.StageChunking:
		return p.runChunking(ctx, lesson, key, filePath, counts)
	case state.StageSummarization:
		return p.runSummarization(ctx, lesson, key, meter, counts)
	case state.StageConsolidation:
		return p.runConsolidation(ctx, lesson, key, meter, counts)
	case state.StageExamMaterials:
		return p.runExamMaterials(ctx, lesson, key, meter, counts)
	}
	return fmt.Errorf("unknown stage %s", stg)
}

// runChunking reads the transcript, normalizes it and writes the
// ordered chunk list. Re-running it overwrites chunks.json wholesale,
// so a retried chunking stage never mixes old and new chunks.
func (p *implProcessor) runChunking(ctx context.Context, lesson *state.LessonState, key, filePath string, counts *runCounts) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return &models.IOError{Op: "read", Path: filePath, Err: err}
	}

	document := normalizeTranscript(string(data), filepath.Ext(filePath))

	chunks, err := p.segmenter.Segment(document, lesson.Filename)
	if err != nil {
		return err
	}

	if err := p.writeJSON(p.chunksPath(key), chunks); err != nil {
		return err
	}
	lesson.SetArtifact("chunks", p.chunksPath(key))
	counts.chunks = len(chunks)

	p.logger.Debug(ctx, "[%s] segmented into %d chunk(s)", key, len(chunks))
	return nil
}

// runSummarization summarizes each chunk into its own summary file.
// Chunks whose summary file already exists are skipped, so a stage
// interrupted halfway redoes only the missing chunks on resume.
func (p *implProcessor) runSummarization(ctx context.Context, lesson *state.LessonState, key string, meter *stage.Meter, counts *runCounts) error {
	chunks, err := p.loadChunks(key)
	if err != nil {
		return err
	}
	counts.chunks = len(chunks)

	for _, chunk := range chunks {
		path := p.summaryPath(key, chunk.ChunkID)
		if _, err := os.Stat(path); err == nil {
			p.logger.Debug(ctx, "[%s] chunk %s already summarized, skipping", key, chunk.ChunkID)
			continue
		}

		result, err := p.summarizer.SummarizeChunk(ctx, meter, chunk)
		if err != nil {
			return err
		}
		if result.Degraded {
			p.logger.Warn(ctx, "[%s] chunk %s degraded to local summary: %s", key, chunk.ChunkID, result.Reason)
		}

		if err := p.writeJSON(path, result.Output); err != nil {
			return err
		}
	}

	lesson.SetArtifact("summaries", p.summariesDir(key))
	counts.summaries = len(chunks)
	return nil
}

// runConsolidation merges the chunk summaries into the master notes.
func (p *implProcessor) runConsolidation(ctx context.Context, lesson *state.LessonState, key string, meter *stage.Meter, counts *runCounts) error {
	summaries, err := p.loadLessonSummaries(key, counts)
	if err != nil {
		return err
	}

	result, err := p.assembler.MasterNotes(ctx, meter, key, summaries)
	if err != nil {
		return err
	}
	if result.Degraded {
		p.logger.Warn(ctx, "[%s] master notes degraded: %s", key, result.Reason)
	}

	path := filepath.Join(p.lessonDir(key), "master_notes.md")
	if err := p.writeText(path, result.Output); err != nil {
		return err
	}
	lesson.SetArtifact("master_notes", path)
	counts.outputs = append(counts.outputs, path)

	if p.cfg.Export.Docx {
		docxPath := filepath.Join(p.lessonDir(key), "master_notes.docx")
		if err := export.MarkdownToDocx(key, result.Output, docxPath); err != nil {
			p.logger.Warn(ctx, "[%s] docx export failed: %v", key, err)
		} else {
			lesson.SetArtifact("master_notes_docx", docxPath)
			counts.outputs = append(counts.outputs, docxPath)
		}
	}

	return nil
}

// runExamMaterials produces the revision sheet, the flashcard deck and
// the practice questions. Each artifact degrades independently.
func (p *implProcessor) runExamMaterials(ctx context.Context, lesson *state.LessonState, key string, meter *stage.Meter, counts *runCounts) error {
	summaries, err := p.loadLessonSummaries(key, counts)
	if err != nil {
		return err
	}

	revision, err := p.assembler.QuickRevision(ctx, meter, key, summaries)
	if err != nil {
		return err
	}
	if revision.Degraded {
		p.logger.Warn(ctx, "[%s] quick revision degraded: %s", key, revision.Reason)
	}
	revisionPath := filepath.Join(p.lessonDir(key), "quick_revision.md")
	if err := p.writeText(revisionPath, revision.Output); err != nil {
		return err
	}
	lesson.SetArtifact("quick_revision", revisionPath)
	counts.outputs = append(counts.outputs, revisionPath)

	if p.cfg.Export.HTML {
		page, err := export.MarkdownToHTML(key, revision.Output)
		if err != nil {
			p.logger.Warn(ctx, "[%s] html export failed: %v", key, err)
		} else {
			htmlPath := filepath.Join(p.lessonDir(key), "quick_revision.html")
			if err := p.writeText(htmlPath, page); err != nil {
				return err
			}
			lesson.SetArtifact("quick_revision_html", htmlPath)
			counts.outputs = append(counts.outputs, htmlPath)
		}
	}

	cards, err := p.assembler.Flashcards(ctx, meter, key, summaries)
	if err != nil {
		return err
	}
	if cards.Degraded {
		p.logger.Warn(ctx, "[%s] flashcards degraded: %s", key, cards.Reason)
	}
	cardsPath := filepath.Join(p.lessonDir(key), "flashcards.csv")
	if err := p.writeText(cardsPath, assembler.RenderFlashcards(cards.Output)); err != nil {
		return err
	}
	lesson.SetArtifact("flashcards", cardsPath)
	counts.outputs = append(counts.outputs, cardsPath)

	questions, err := p.assembler.PracticeQuestions(ctx, meter, key, summaries)
	if err != nil {
		return err
	}
	if questions.Degraded {
		p.logger.Warn(ctx, "[%s] practice questions degraded: %s", key, questions.Reason)
	}
	questionsPath := filepath.Join(p.lessonDir(key), "practice_questions.md")
	if err := p.writeText(questionsPath, questions.Output); err != nil {
		return err
	}
	lesson.SetArtifact("practice_questions", questionsPath)
	counts.outputs = append(counts.outputs, questionsPath)

	return nil
}

// loadLessonSummaries reloads chunks and summaries from disk so a
// resumed run works from persisted artifacts, not in-memory leftovers.
func (p *implProcessor) loadLessonSummaries(key string, counts *runCounts) ([]models.ChunkSummary, error) {
	chunks, err := p.loadChunks(key)
	if err != nil {
		return nil, err
	}
	if counts.chunks == 0 {
		counts.chunks = len(chunks)
	}

	summaries, err := p.loadSummaries(key, chunks)
	if err != nil {
		return nil, err
	}
	if counts.summaries == 0 {
		counts.summaries = len(summaries)
	}
	return summaries, nil
}

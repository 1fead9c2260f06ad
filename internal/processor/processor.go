package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"studyflow/internal/batch"
	"studyflow/internal/stage"
	"studyflow/internal/state"
)

// ProcessAll runs the pipeline over every transcript in the input
// directory, one file at a time, and writes the batch reports next to
// the lesson outputs. A single failed file is recorded and the batch
// continues; only cancellation stops the run early.
func (p *implProcessor) ProcessAll(ctx context.Context) (*batch.BatchResult, error) {
	st, err := p.store.Load()
	if err != nil {
		return nil, err
	}

	files, err := p.discoverTranscripts()
	if err != nil {
		return nil, err
	}

	agg := batch.New()
	agg.Start()

	st.BatchID = agg.Result().BatchID
	st.OverallStatus = state.OverallInProgress
	if err := p.store.Save(st); err != nil {
		return nil, err
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting batch %s: %d transcript(s) in %s", st.BatchID, len(files), p.cfg.Paths.Input)
	p.logger.Info(ctx, "========================================")

	succeeded, failed := 0, 0
	for _, file := range files {
		result, err := p.processLesson(ctx, st, file)
		if err != nil {
			if ctx.Err() != nil {
				// The in-flight stage stays IN_PROGRESS so the next run
				// resumes it.
				p.logger.Warn(ctx, "Batch interrupted: %v", ctx.Err())
				p.saveState(ctx, st)
				agg.Complete()
				return agg.Result(), ctx.Err()
			}
			failed++
			p.logger.Error(ctx, "Failed to process %s: %v", filepath.Base(file), err)
			st.LogError(fmt.Sprintf("%s: %v", filepath.Base(file), err))
			agg.RecordFailure(filepath.Base(file), err)
			continue
		}
		succeeded++
		agg.RecordSuccess(result)
	}

	if failed > 0 && succeeded == 0 && len(files) > 0 {
		st.OverallStatus = state.OverallFailed
	} else {
		st.OverallStatus = state.OverallCompleted
	}
	p.saveState(ctx, st)

	if err := agg.Complete(); err != nil {
		return nil, err
	}

	p.writeReports(ctx, agg.Result())
	return agg.Result(), nil
}

// Process runs the pipeline for one transcript, used by watch mode.
func (p *implProcessor) Process(ctx context.Context, filePath string) (batch.FileResult, error) {
	st, err := p.store.Load()
	if err != nil {
		return batch.FileResult{}, err
	}
	return p.processLesson(ctx, st, filePath)
}

type runCounts struct {
	chunks    int
	summaries int
	outputs   []string
}

// processLesson runs the stage loop for one transcript. The lesson key
// is the filename without extension; artifacts for the lesson live in
// an output subdirectory of the same name.
func (p *implProcessor) processLesson(ctx context.Context, st *state.PipelineState, filePath string) (batch.FileResult, error) {
	filename := filepath.Base(filePath)
	key := strings.TrimSuffix(filename, filepath.Ext(filename))
	lesson := st.Lesson(key, filename)

	if next := state.NextStage(lesson); next == state.StageNone {
		p.logger.Info(ctx, "Skipping %s: all stages completed", filename)
		return batch.FileResult{Filename: filename}, nil
	} else if state.CanResume(lesson) {
		p.logger.Info(ctx, "Resuming %s from stage %s", filename, next)
	} else {
		p.logger.Info(ctx, "Processing %s", filename)
	}

	start := time.Now()
	meter := &stage.Meter{Pricing: p.pricing()}
	var counts runCounts

	for stg := state.NextStage(lesson); stg != state.StageNone; stg = state.NextStage(lesson) {
		if lesson.Status(stg) != state.StatusInProgress {
			if err := lesson.Transition(stg, state.StatusInProgress); err != nil {
				return batch.FileResult{Filename: filename}, err
			}
			if err := p.store.Save(st); err != nil {
				return batch.FileResult{Filename: filename}, err
			}
		}

		p.logger.Info(ctx, "[%s] stage %s started", key, stg)

		if err := p.runStage(ctx, st, lesson, key, filePath, stg, meter, &counts); err != nil {
			if ctx.Err() != nil {
				// Leave the stage IN_PROGRESS for resume.
				p.saveState(ctx, st)
				return batch.FileResult{Filename: filename}, err
			}
			lesson.Transition(stg, state.StatusFailed)
			lesson.ErrorMessage = err.Error()
			p.saveState(ctx, st)
			return batch.FileResult{Filename: filename}, fmt.Errorf("stage %s: %w", stg, err)
		}

		if err := lesson.Transition(stg, state.StatusCompleted); err != nil {
			return batch.FileResult{Filename: filename}, err
		}
		lesson.ErrorMessage = ""
		if err := p.store.Save(st); err != nil {
			return batch.FileResult{Filename: filename}, err
		}

		p.logger.Info(ctx, "[%s] stage %s completed", key, stg)
	}

	result := batch.FileResult{
		Filename:         filename,
		Duration:         time.Since(start),
		Cost:             meter.Cost,
		ChunksCreated:    counts.chunks,
		SummariesCreated: counts.summaries,
		OutputsGenerated: counts.outputs,
	}

	p.logger.Info(ctx, "[%s] done in %s (%d chunks, %d summaries, $%.4f)",
		key, result.Duration.Round(time.Millisecond), result.ChunksCreated, result.SummariesCreated, result.Cost)

	return result, nil
}

// discoverTranscripts lists .txt and .srt files in the input directory,
// sorted by name for a stable processing order.
func (p *implProcessor) discoverTranscripts() ([]string, error) {
	entries, err := os.ReadDir(p.cfg.Paths.Input)
	if err != nil {
		return nil, fmt.Errorf("read input dir %s: %w", p.cfg.Paths.Input, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".txt", ".srt":
			files = append(files, filepath.Join(p.cfg.Paths.Input, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

func (p *implProcessor) saveState(ctx context.Context, st *state.PipelineState) {
	if err := p.store.Save(st); err != nil {
		p.logger.Error(ctx, "Failed to save pipeline state: %v", err)
	}
}

func (p *implProcessor) writeReports(ctx context.Context, result *batch.BatchResult) {
	textPath := filepath.Join(p.cfg.Paths.Output, "report.txt")
	if err := os.WriteFile(textPath, []byte(batch.TextReport(result)), 0644); err != nil {
		p.logger.Warn(ctx, "Failed to write %s: %v", textPath, err)
	}

	csvPath := filepath.Join(p.cfg.Paths.Output, "report.csv")
	if err := os.WriteFile(csvPath, []byte(batch.CSVReport(result)), 0644); err != nil {
		p.logger.Warn(ctx, "Failed to write %s: %v", csvPath, err)
	}
}

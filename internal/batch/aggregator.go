package batch

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type implAggregator struct {
	result    BatchResult
	completed bool
}

// New creates an Aggregator for a fresh batch run.
func New() Aggregator {
	return &implAggregator{
		result: BatchResult{
			BatchID: uuid.NewString(),
		},
	}
}

func (a *implAggregator) Start() {
	a.result.BatchStartTime = time.Now()
}

// RecordSuccess appends a success and adds its cost to the running total.
func (a *implAggregator) RecordSuccess(result FileResult) error {
	if a.completed {
		return fmt.Errorf("record after Complete() on batch %s", a.result.BatchID)
	}
	result.Status = "success"
	a.result.Successful = append(a.result.Successful, result)
	a.result.TotalCost += result.Cost
	return nil
}

// RecordFailure appends a minimal failure record carrying only the
// error's message, never the error value itself.
func (a *implAggregator) RecordFailure(filename string, err error) error {
	if a.completed {
		return fmt.Errorf("record after Complete() on batch %s", a.result.BatchID)
	}
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	a.result.Failed = append(a.result.Failed, FileResult{
		Filename:     filename,
		Status:       "failed",
		ErrorMessage: msg,
	})
	return nil
}

// Complete fixes the totals. It must be called exactly once, at batch end.
func (a *implAggregator) Complete() error {
	if a.completed {
		return fmt.Errorf("batch %s already completed", a.result.BatchID)
	}
	a.completed = true
	a.result.BatchEndTime = time.Now()
	a.result.TotalFiles = len(a.result.Successful) + len(a.result.Failed)
	a.result.TotalDuration = a.result.BatchEndTime.Sub(a.result.BatchStartTime)
	return nil
}

// SuccessRate returns the percentage of files that succeeded, 0.0 for
// an empty batch.
func (a *implAggregator) SuccessRate() float64 {
	total := len(a.result.Successful) + len(a.result.Failed)
	if total == 0 {
		return 0.0
	}
	return 100 * float64(len(a.result.Successful)) / float64(total)
}

func (a *implAggregator) Result() *BatchResult {
	return &a.result
}

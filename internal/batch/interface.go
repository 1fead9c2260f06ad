package batch

import "time"

// FileResult is the per-file outcome of one batch run.
type FileResult struct {
	Filename         string        `json:"filename"`
	Status           string        `json:"status"`
	Duration         time.Duration `json:"duration"`
	Cost             float64       `json:"cost"`
	ErrorMessage     string        `json:"error_message,omitempty"`
	ChunksCreated    int           `json:"chunks_created"`
	SummariesCreated int           `json:"summaries_created"`
	OutputsGenerated []string      `json:"outputs_generated,omitempty"`
}

// BatchResult aggregates one run over a set of lesson files. It is
// mutated through an Aggregator until Complete fixes the totals; after
// that it is read-only input for the report projections.
type BatchResult struct {
	BatchID        string        `json:"batch_id"`
	BatchStartTime time.Time     `json:"batch_start_time"`
	BatchEndTime   time.Time     `json:"batch_end_time"`
	TotalFiles     int           `json:"total_files"`
	Successful     []FileResult  `json:"successful"`
	Failed         []FileResult  `json:"failed"`
	TotalCost      float64       `json:"total_cost"`
	TotalDuration  time.Duration `json:"total_duration"`
}

// Aggregator collects per-file outcomes, cost and timing across a batch.
type Aggregator interface {
	Start()
	RecordSuccess(result FileResult) error
	RecordFailure(filename string, err error) error
	Complete() error
	SuccessRate() float64
	Result() *BatchResult
}

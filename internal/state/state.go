package state

import (
	"fmt"
	"time"
)

// Stage is one step of the fixed pipeline order.
type Stage string

const (
	StageChunking      Stage = "chunking"
	StageSummarization Stage = "summarization"
	StageConsolidation Stage = "consolidation"
	StageExamMaterials Stage = "exam_materials"

	// StageNone means a lesson has no remaining work.
	StageNone Stage = "none"
)

// StageOrder is the fixed processing order for every lesson.
var StageOrder = []Stage{StageChunking, StageSummarization, StageConsolidation, StageExamMaterials}

// StageStatus tracks one stage of one lesson. Transitions only move
// forward, except the FAILED -> IN_PROGRESS retry edge and an explicit
// reset.
type StageStatus string

const (
	StatusNotStarted StageStatus = "NOT_STARTED"
	StatusInProgress StageStatus = "IN_PROGRESS"
	StatusCompleted  StageStatus = "COMPLETED"
	StatusFailed     StageStatus = "FAILED"
)

// OverallStatus summarizes a whole pipeline run.
type OverallStatus string

const (
	OverallPending    OverallStatus = "pending"
	OverallInProgress OverallStatus = "in_progress"
	OverallCompleted  OverallStatus = "completed"
	OverallFailed     OverallStatus = "failed"
)

// LessonState is the per-source-file record. The four stage fields are
// independent: a stale or partial combination stays inspectable as-is
// instead of being re-derived from a single status.
type LessonState struct {
	Filename       string            `json:"filename"`
	Chunking       StageStatus       `json:"chunking"`
	Summarization  StageStatus       `json:"summarization"`
	Consolidation  StageStatus       `json:"consolidation"`
	ExamMaterials  StageStatus       `json:"exam_materials"`
	Artifacts      map[string]string `json:"artifacts,omitempty"`
	LastUpdated    time.Time         `json:"last_updated"`
	ErrorMessage   string            `json:"error_message,omitempty"`
	LegacyStatus   string            `json:"status,omitempty"`
}

// PipelineState is the process-wide record persisted between runs.
type PipelineState struct {
	SchemaVersion int                     `json:"schema_version"`
	BatchID       string                  `json:"batch_id,omitempty"`
	Timestamp     time.Time               `json:"timestamp"`
	OverallStatus OverallStatus           `json:"overall_status"`
	Lessons       map[string]*LessonState `json:"lessons"`
	ErrorLog      []string                `json:"error_log,omitempty"`
}

// CurrentSchemaVersion is bumped whenever the persisted shape changes.
// Version 1 carried a single legacy string status per lesson; version 2
// stores one enum status per stage.
const CurrentSchemaVersion = 2

// NewPipelineState creates an empty state for a fresh run.
func NewPipelineState() *PipelineState {
	return &PipelineState{
		SchemaVersion: CurrentSchemaVersion,
		Timestamp:     time.Now(),
		OverallStatus: OverallPending,
		Lessons:       make(map[string]*LessonState),
	}
}

// Lesson returns the state record for a lesson key, creating it on
// first use.
func (p *PipelineState) Lesson(key, filename string) *LessonState {
	if p.Lessons == nil {
		p.Lessons = make(map[string]*LessonState)
	}
	if l, ok := p.Lessons[key]; ok {
		return l
	}
	l := newLessonState(filename)
	p.Lessons[key] = l
	return l
}

// LogError appends a message to the pipeline error log.
func (p *PipelineState) LogError(msg string) {
	p.ErrorLog = append(p.ErrorLog, msg)
}

func newLessonState(filename string) *LessonState {
	return &LessonState{
		Filename:      filename,
		Chunking:      StatusNotStarted,
		Summarization: StatusNotStarted,
		Consolidation: StatusNotStarted,
		ExamMaterials: StatusNotStarted,
		LastUpdated:   time.Now(),
	}
}

// Status returns the status of the given stage.
func (l *LessonState) Status(stage Stage) StageStatus {
	switch stage {
	case StageChunking:
		return l.Chunking
	case StageSummarization:
		return l.Summarization
	case StageConsolidation:
		return l.Consolidation
	case StageExamMaterials:
		return l.ExamMaterials
	}
	return StatusNotStarted
}

func (l *LessonState) setStatus(stage Stage, status StageStatus) {
	switch stage {
	case StageChunking:
		l.Chunking = status
	case StageSummarization:
		l.Summarization = status
	case StageConsolidation:
		l.Consolidation = status
	case StageExamMaterials:
		l.ExamMaterials = status
	}
	l.LastUpdated = time.Now()
}

// Transition moves a stage to the given status, enforcing the forward-
// only rules: NOT_STARTED -> IN_PROGRESS -> {COMPLETED, FAILED}, plus
// the FAILED -> IN_PROGRESS retry edge. COMPLETED is terminal; use
// Reset to reprocess a completed stage.
func (l *LessonState) Transition(stage Stage, status StageStatus) error {
	from := l.Status(stage)

	allowed := false
	switch from {
	case StatusNotStarted:
		allowed = status == StatusInProgress
	case StatusInProgress:
		allowed = status == StatusCompleted || status == StatusFailed
	case StatusFailed:
		allowed = status == StatusInProgress
	case StatusCompleted:
		allowed = false
	}

	if !allowed {
		return fmt.Errorf("illegal %s transition: %s -> %s", stage, from, status)
	}

	l.setStatus(stage, status)
	return nil
}

// Reset returns a stage to NOT_STARTED so it can be reprocessed.
func (l *LessonState) Reset(stage Stage) {
	l.setStatus(stage, StatusNotStarted)
	l.ErrorMessage = ""
}

// SetArtifact records the path of a produced artifact under a stable key.
func (l *LessonState) SetArtifact(name, path string) {
	if l.Artifacts == nil {
		l.Artifacts = make(map[string]string)
	}
	l.Artifacts[name] = path
	l.LastUpdated = time.Now()
}

// NextStage returns the first stage in pipeline order whose status is
// not COMPLETED, or StageNone when the lesson is fully done.
func NextStage(l *LessonState) Stage {
	for _, stage := range StageOrder {
		if l.Status(stage) != StatusCompleted {
			return stage
		}
	}
	return StageNone
}

// CanResume reports whether a lesson is partially done: at least one
// stage COMPLETED but not all of them. Used to decide between printing
// a resuming notice and starting fresh.
func CanResume(l *LessonState) bool {
	completed := 0
	for _, stage := range StageOrder {
		if l.Status(stage) == StatusCompleted {
			completed++
		}
	}
	return completed > 0 && completed < len(StageOrder)
}

// normalize fills unknown or missing statuses with NOT_STARTED so that
// partially written or older state files load instead of failing.
func (l *LessonState) normalize() {
	for _, stage := range StageOrder {
		switch l.Status(stage) {
		case StatusNotStarted, StatusInProgress, StatusCompleted, StatusFailed:
		default:
			l.setStatus(stage, StatusNotStarted)
		}
	}
}

package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ResumabilityError marks a persisted state file that exists but cannot
// be read back. The caller decides whether to start fresh or abort; the
// store never discards unreadable state on its own.
type ResumabilityError struct {
	Path string
	Err  error
}

func (e *ResumabilityError) Error() string {
	return fmt.Sprintf("unreadable pipeline state %s: %v", e.Path, e.Err)
}

func (e *ResumabilityError) Unwrap() error {
	return e.Err
}

// Store persists PipelineState between runs.
type Store interface {
	Load() (*PipelineState, error)
	Save(*PipelineState) error
}

type implStore struct {
	path string
}

// NewStore creates a Store backed by a JSON file at path.
func NewStore(path string) Store {
	return &implStore{path: path}
}

// Load reads the state file. A missing file yields a fresh state; a
// file that exists but cannot be parsed yields a ResumabilityError.
// Older schema versions are migrated in place on load.
func (s *implStore) Load() (*PipelineState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewPipelineState(), nil
		}
		return nil, &ResumabilityError{Path: s.path, Err: err}
	}

	var st PipelineState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, &ResumabilityError{Path: s.path, Err: err}
	}

	migrate(&st)
	return &st, nil
}

// Save writes the state atomically: temp file in the same directory,
// then rename over the target.
func (s *implStore) Save(st *PipelineState) error {
	st.SchemaVersion = CurrentSchemaVersion
	st.Timestamp = time.Now()

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal pipeline state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close state file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace state file: %w", err)
	}

	return nil
}

// migrate upgrades older persisted shapes to the current schema.
// Version 1 tracked a single legacy string status per lesson; it is
// mapped onto per-stage enum statuses once, here. When both shapes are
// present the enum statuses win and the legacy string is dropped.
func migrate(st *PipelineState) {
	if st.Lessons == nil {
		st.Lessons = make(map[string]*LessonState)
	}
	if st.OverallStatus == "" {
		st.OverallStatus = OverallPending
	}

	for _, lesson := range st.Lessons {
		if st.SchemaVersion < CurrentSchemaVersion && lesson.LegacyStatus != "" && !hasEnumStatuses(lesson) {
			applyLegacyStatus(lesson)
		}
		lesson.LegacyStatus = ""
		lesson.normalize()
	}

	st.SchemaVersion = CurrentSchemaVersion
}

func hasEnumStatuses(l *LessonState) bool {
	for _, stage := range StageOrder {
		switch l.Status(stage) {
		case StatusInProgress, StatusCompleted, StatusFailed:
			return true
		}
	}
	return false
}

// applyLegacyStatus maps a v1 milestone string onto per-stage statuses:
// each milestone means every stage up to and including it completed.
func applyLegacyStatus(l *LessonState) {
	completedThrough := map[string]int{
		"chunked":      1,
		"summarized":   2,
		"consolidated": 3,
		"completed":    4,
	}

	n, ok := completedThrough[l.LegacyStatus]
	if !ok {
		return
	}
	for i := 0; i < n && i < len(StageOrder); i++ {
		l.setStatus(StageOrder[i], StatusCompleted)
	}
}

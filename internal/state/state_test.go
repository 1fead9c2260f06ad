package state

import (
	"testing"
	"time"
)

func TestTransitionRules(t *testing.T) {
	tests := []struct {
		name    string
		from    StageStatus
		to      StageStatus
		wantErr bool
	}{
		{"not started to in progress", StatusNotStarted, StatusInProgress, false},
		{"not started to completed", StatusNotStarted, StatusCompleted, true},
		{"not started to failed", StatusNotStarted, StatusFailed, true},
		{"in progress to completed", StatusInProgress, StatusCompleted, false},
		{"in progress to failed", StatusInProgress, StatusFailed, false},
		{"in progress to not started", StatusInProgress, StatusNotStarted, true},
		{"failed to in progress retry", StatusFailed, StatusInProgress, false},
		{"failed to completed", StatusFailed, StatusCompleted, true},
		{"completed is terminal", StatusCompleted, StatusInProgress, true},
		{"completed to failed", StatusCompleted, StatusFailed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLessonState("lesson.txt")
			l.setStatus(StageSummarization, tt.from)

			err := l.Transition(StageSummarization, tt.to)
			if (err != nil) != tt.wantErr {
				t.Errorf("Transition(%s -> %s) error = %v, wantErr %v", tt.from, tt.to, err, tt.wantErr)
			}
			if err == nil && l.Status(StageSummarization) != tt.to {
				t.Errorf("status = %s, want %s", l.Status(StageSummarization), tt.to)
			}
			if err != nil && l.Status(StageSummarization) != tt.from {
				t.Errorf("failed transition must not mutate status")
			}
		})
	}
}

func TestTransitionUpdatesLastUpdated(t *testing.T) {
	l := newLessonState("lesson.txt")
	before := l.LastUpdated

	time.Sleep(time.Millisecond)
	if err := l.Transition(StageChunking, StatusInProgress); err != nil {
		t.Fatal(err)
	}

	if !l.LastUpdated.After(before) {
		t.Error("Transition did not advance LastUpdated")
	}
}

func TestResetAllowsReprocessing(t *testing.T) {
	l := newLessonState("lesson.txt")
	mustTransition(t, l, StageChunking, StatusInProgress, StatusCompleted)

	l.Reset(StageChunking)
	if l.Status(StageChunking) != StatusNotStarted {
		t.Fatalf("status after reset = %s", l.Status(StageChunking))
	}
	if err := l.Transition(StageChunking, StatusInProgress); err != nil {
		t.Errorf("Transition after reset error = %v", err)
	}
}

func TestNextStage(t *testing.T) {
	tests := []struct {
		name     string
		statuses [4]StageStatus
		want     Stage
	}{
		{"fresh lesson", [4]StageStatus{StatusNotStarted, StatusNotStarted, StatusNotStarted, StatusNotStarted}, StageChunking},
		{"chunked", [4]StageStatus{StatusCompleted, StatusNotStarted, StatusNotStarted, StatusNotStarted}, StageSummarization},
		{"summarized", [4]StageStatus{StatusCompleted, StatusCompleted, StatusNotStarted, StatusNotStarted}, StageConsolidation},
		{"consolidated", [4]StageStatus{StatusCompleted, StatusCompleted, StatusCompleted, StatusNotStarted}, StageExamMaterials},
		{"all done", [4]StageStatus{StatusCompleted, StatusCompleted, StatusCompleted, StatusCompleted}, StageNone},
		{"failed stage comes first", [4]StageStatus{StatusCompleted, StatusFailed, StatusNotStarted, StatusNotStarted}, StageSummarization},
		{"in-flight stage comes first", [4]StageStatus{StatusCompleted, StatusInProgress, StatusNotStarted, StatusNotStarted}, StageSummarization},
		{"gap in the middle", [4]StageStatus{StatusCompleted, StatusNotStarted, StatusCompleted, StatusCompleted}, StageSummarization},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLessonState("lesson.txt")
			for i, stage := range StageOrder {
				l.setStatus(stage, tt.statuses[i])
			}
			if got := NextStage(l); got != tt.want {
				t.Errorf("NextStage() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCanResume(t *testing.T) {
	tests := []struct {
		name     string
		statuses [4]StageStatus
		want     bool
	}{
		{"fresh", [4]StageStatus{StatusNotStarted, StatusNotStarted, StatusNotStarted, StatusNotStarted}, false},
		{"partial", [4]StageStatus{StatusCompleted, StatusNotStarted, StatusNotStarted, StatusNotStarted}, true},
		{"mostly done", [4]StageStatus{StatusCompleted, StatusCompleted, StatusCompleted, StatusNotStarted}, true},
		{"fully done", [4]StageStatus{StatusCompleted, StatusCompleted, StatusCompleted, StatusCompleted}, false},
		{"only failures", [4]StageStatus{StatusFailed, StatusNotStarted, StatusNotStarted, StatusNotStarted}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLessonState("lesson.txt")
			for i, stage := range StageOrder {
				l.setStatus(stage, tt.statuses[i])
			}
			if got := CanResume(l); got != tt.want {
				t.Errorf("CanResume() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLessonGetOrCreate(t *testing.T) {
	p := NewPipelineState()

	a := p.Lesson("lesson01", "lesson01.txt")
	b := p.Lesson("lesson01", "lesson01.txt")
	if a != b {
		t.Error("Lesson() must return the same record for the same key")
	}
	if a.Filename != "lesson01.txt" {
		t.Errorf("Filename = %q", a.Filename)
	}
	if NextStage(a) != StageChunking {
		t.Errorf("fresh lesson NextStage = %s", NextStage(a))
	}
}

func mustTransition(t *testing.T, l *LessonState, stage Stage, statuses ...StageStatus) {
	t.Helper()
	for _, st := range statuses {
		if err := l.Transition(stage, st); err != nil {
			t.Fatalf("Transition(%s, %s) error = %v", stage, st, err)
		}
	}
}

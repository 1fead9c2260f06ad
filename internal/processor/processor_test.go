package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"studyflow/internal/assembler"
	"studyflow/internal/config"
	"studyflow/internal/gateway"
	"studyflow/internal/logger"
	"studyflow/internal/models"
	"studyflow/internal/segmenter"
	"studyflow/internal/state"
	"studyflow/internal/summarizer"
	"studyflow/pkg/ratelimit"
)

const summaryReply = `{"title":"Segment","summary":"A fine summary of the segment.","key_points":["remember this"],"confidence":"high"}`

// fakeGateway answers summarization prompts with a fixed valid summary
// and everything else with plain markdown. It can be scripted to fail
// specific summarization calls or to cancel the run mid-flight.
type fakeGateway struct {
	summarizeCalls int
	failSummarize  func(userPrompt string) bool
	cancel         context.CancelFunc
	cancelOnCall   int
}

func (f *fakeGateway) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if strings.Contains(systemPrompt, "study-material analyst") {
		f.summarizeCalls++
		if f.cancel != nil && f.summarizeCalls == f.cancelOnCall {
			f.cancel()
			return "", ctx.Err()
		}
		if f.failSummarize != nil && f.failSummarize(userPrompt) {
			return "", &gateway.ServiceError{Message: "quota exhausted"}
		}
		return summaryReply, nil
	}
	if strings.Contains(userPrompt, "flashcards") {
		return `[{"front":"Define: routing","back":"selecting a path for traffic"}]`, nil
	}
	return "# Generated notes\n\n- point one\n", nil
}

// twelveParagraphs segments into exactly 3 chunks at target 40/overlap 5:
// four 10-token paragraphs per chunk.
func twelveParagraphs() string {
	var b strings.Builder
	for i := 1; i <= 12; i++ {
		fmt.Fprintf(&b, "para%02d one two three four five six seven eight nine\n\n", i)
	}
	return b.String()
}

func newTestProcessor(t *testing.T, gw gateway.Gateway, input, output, stateFile string) Processor {
	t.Helper()

	cfg := &config.Config{}
	cfg.Paths.Input = input
	cfg.Paths.Output = output
	cfg.Paths.StateFile = stateFile
	cfg.Segmenter.TargetSize = 40
	cfg.Segmenter.Overlap = 5
	cfg.Generation.InputPricePer1K = 0.001
	cfg.Generation.OutputPricePer1K = 0.002

	seg, err := segmenter.New(cfg.Segmenter.TargetSize, cfg.Segmenter.Overlap)
	if err != nil {
		t.Fatal(err)
	}

	log := logger.New("error")
	limiter := ratelimit.New(0)
	summ := summarizer.New(gw, limiter, log, 1000)
	asm := assembler.New(gw, limiter, log, 1000)
	store := state.NewStore(stateFile)

	return New(cfg, seg, summ, asm, store, log)
}

func readSummaries(t *testing.T, output, key string, n int) []models.ChunkSummary {
	t.Helper()

	summaries := make([]models.ChunkSummary, 0, n)
	for i := 1; i <= n; i++ {
		path := filepath.Join(output, key, "summaries", fmt.Sprintf("%d.json", i))
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read summary %d: %v", i, err)
		}
		var s models.ChunkSummary
		if err := json.Unmarshal(data, &s); err != nil {
			t.Fatalf("decode summary %d: %v", i, err)
		}
		summaries = append(summaries, s)
	}
	return summaries
}

func TestProcessAllEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input")
	output := filepath.Join(dir, "output")
	os.MkdirAll(input, 0755)
	if err := os.WriteFile(filepath.Join(input, "lesson01.txt"), []byte(twelveParagraphs()), 0644); err != nil {
		t.Fatal(err)
	}

	// para05 appears only in the second chunk's own text.
	gw := &fakeGateway{
		failSummarize: func(userPrompt string) bool {
			return strings.Contains(userPrompt, "para05")
		},
	}
	proc := newTestProcessor(t, gw, input, output, filepath.Join(dir, "state.json"))

	result, err := proc.ProcessAll(context.Background())
	if err != nil {
		t.Fatalf("ProcessAll() error = %v", err)
	}

	if result.TotalFiles != 1 || len(result.Successful) != 1 {
		t.Fatalf("got %d total, %d successful, want 1/1", result.TotalFiles, len(result.Successful))
	}
	got := result.Successful[0]
	if got.ChunksCreated != 3 || got.SummariesCreated != 3 {
		t.Errorf("chunks=%d summaries=%d, want 3/3", got.ChunksCreated, got.SummariesCreated)
	}
	if got.Cost <= 0 {
		t.Error("successful calls must accumulate cost")
	}

	summaries := readSummaries(t, output, "lesson01", 3)
	low := 0
	for _, s := range summaries {
		if s.Confidence == models.ConfidenceLow {
			low++
		}
	}
	if low != 1 {
		t.Errorf("low-confidence summaries = %d, want exactly 1", low)
	}
	if summaries[1].Confidence != models.ConfidenceLow {
		t.Errorf("chunk 2 confidence = %s, want low", summaries[1].Confidence)
	}

	for _, name := range []string{
		"lesson01/chunks.json",
		"lesson01/master_notes.md",
		"lesson01/quick_revision.md",
		"lesson01/flashcards.csv",
		"lesson01/practice_questions.md",
		"report.txt",
		"report.csv",
	} {
		if _, err := os.Stat(filepath.Join(output, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}

	st, err := state.NewStore(filepath.Join(dir, "state.json")).Load()
	if err != nil {
		t.Fatal(err)
	}
	lesson := st.Lessons["lesson01"]
	if lesson == nil {
		t.Fatal("lesson01 missing from state")
	}
	for _, stg := range state.StageOrder {
		if lesson.Status(stg) != state.StatusCompleted {
			t.Errorf("stage %s = %s, want COMPLETED", stg, lesson.Status(stg))
		}
	}
	if st.OverallStatus != state.OverallCompleted {
		t.Errorf("overall status = %s, want completed", st.OverallStatus)
	}
}

func TestProcessAllRecordsFailedFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input")
	os.MkdirAll(input, 0755)
	if err := os.WriteFile(filepath.Join(input, "lesson01.txt"), []byte(twelveParagraphs()), 0644); err != nil {
		t.Fatal(err)
	}

	// The output path is an existing file, so creating the lesson
	// directory fails and chunking cannot write its artifact.
	output := filepath.Join(dir, "output")
	if err := os.WriteFile(output, []byte("in the way"), 0644); err != nil {
		t.Fatal(err)
	}

	proc := newTestProcessor(t, &fakeGateway{}, input, output, filepath.Join(dir, "state.json"))

	result, err := proc.ProcessAll(context.Background())
	if err != nil {
		t.Fatalf("a failed file must not fail the batch: %v", err)
	}
	if len(result.Failed) != 1 || len(result.Successful) != 0 {
		t.Fatalf("got %d failed, %d successful, want 1/0", len(result.Failed), len(result.Successful))
	}
	if !strings.Contains(result.Failed[0].ErrorMessage, "chunking") {
		t.Errorf("error message %q does not name the failed stage", result.Failed[0].ErrorMessage)
	}

	st, err := state.NewStore(filepath.Join(dir, "state.json")).Load()
	if err != nil {
		t.Fatal(err)
	}
	lesson := st.Lessons["lesson01"]
	if lesson.Chunking != state.StatusFailed {
		t.Errorf("chunking = %s, want FAILED", lesson.Chunking)
	}
	if lesson.ErrorMessage == "" {
		t.Error("lesson must record its error message")
	}
	if st.OverallStatus != state.OverallFailed {
		t.Errorf("overall status = %s, want failed", st.OverallStatus)
	}
	if len(st.ErrorLog) != 1 {
		t.Errorf("error log has %d entries, want 1", len(st.ErrorLog))
	}
}

func TestResumeAfterCancellation(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input")
	output := filepath.Join(dir, "output")
	statePath := filepath.Join(dir, "state.json")
	os.MkdirAll(input, 0755)
	if err := os.WriteFile(filepath.Join(input, "lesson01.txt"), []byte(twelveParagraphs()), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	gw := &fakeGateway{cancel: cancel, cancelOnCall: 2}
	proc := newTestProcessor(t, gw, input, output, statePath)

	if _, err := proc.ProcessAll(ctx); err == nil {
		t.Fatal("interrupted run must return the cancellation error")
	}

	st, err := state.NewStore(statePath).Load()
	if err != nil {
		t.Fatal(err)
	}
	lesson := st.Lessons["lesson01"]
	if lesson.Chunking != state.StatusCompleted {
		t.Errorf("chunking = %s, want COMPLETED", lesson.Chunking)
	}
	if lesson.Summarization != state.StatusInProgress {
		t.Errorf("summarization = %s, want IN_PROGRESS after cancellation", lesson.Summarization)
	}

	// Second run resumes from summarization and redoes only the chunks
	// whose summary file is missing.
	gw2 := &fakeGateway{}
	proc2 := newTestProcessor(t, gw2, input, output, statePath)
	result, err := proc2.ProcessAll(context.Background())
	if err != nil {
		t.Fatalf("resumed run error = %v", err)
	}
	if len(result.Successful) != 1 {
		t.Fatalf("resumed run: %d successful, want 1", len(result.Successful))
	}
	if gw2.summarizeCalls != 2 {
		t.Errorf("resumed run made %d summarize calls, want 2", gw2.summarizeCalls)
	}

	st, err = state.NewStore(statePath).Load()
	if err != nil {
		t.Fatal(err)
	}
	lesson = st.Lessons["lesson01"]
	for _, stg := range state.StageOrder {
		if lesson.Status(stg) != state.StatusCompleted {
			t.Errorf("stage %s = %s, want COMPLETED", stg, lesson.Status(stg))
		}
	}
}

func TestProcessAllSkipsCompletedLessons(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input")
	output := filepath.Join(dir, "output")
	statePath := filepath.Join(dir, "state.json")
	os.MkdirAll(input, 0755)
	if err := os.WriteFile(filepath.Join(input, "lesson01.txt"), []byte(twelveParagraphs()), 0644); err != nil {
		t.Fatal(err)
	}

	gw := &fakeGateway{}
	proc := newTestProcessor(t, gw, input, output, statePath)
	if _, err := proc.ProcessAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	firstCalls := gw.summarizeCalls

	if _, err := proc.ProcessAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gw.summarizeCalls != firstCalls {
		t.Errorf("second run made %d extra summarize calls, want 0", gw.summarizeCalls-firstCalls)
	}
}

func TestDiscoverTranscriptsOrderAndFilter(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input")
	os.MkdirAll(filepath.Join(input, "nested"), 0755)
	for _, name := range []string{"b.txt", "a.srt", "notes.pdf", "c.TXT"} {
		if err := os.WriteFile(filepath.Join(input, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := &config.Config{}
	cfg.Paths.Input = input
	p := &implProcessor{cfg: cfg}

	files, err := p.discoverTranscripts()
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	want := []string{"a.srt", "b.txt", "c.TXT"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("files[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestNormalizeTranscriptSRT(t *testing.T) {
	srt := "1\r\n00:00:01,000 --> 00:00:03,000\r\nWelcome to the course.\r\n\r\n2\r\n00:00:03,000 --> 00:00:05,000\r\nWelcome to the course.\r\n\r\n3\r\n00:00:05,000 --> 00:00:08,000\r\nToday we cover routing.\r\n"

	got := normalizeTranscript(srt, ".srt")
	want := "Welcome to the course.\n\nToday we cover routing."
	if got != want {
		t.Errorf("normalizeTranscript() = %q, want %q", got, want)
	}
}

func TestNormalizeTranscriptPlainText(t *testing.T) {
	got := normalizeTranscript("line one\r\nline two\n", ".txt")
	if got != "line one\nline two\n" {
		t.Errorf("plain text must only normalize line endings, got %q", got)
	}
}

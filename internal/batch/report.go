package batch

import (
	"fmt"
	"strings"
	"time"
)

const banner = "========================================"

// TextReport renders the human-readable batch summary. It and CSVReport
// are independent projections of the same BatchResult, so the numbers
// they show can never disagree.
func TextReport(r *BatchResult) string {
	var b strings.Builder

	b.WriteString(banner + "\n")
	fmt.Fprintf(&b, "Batch Report  %s\n", r.BatchID)
	b.WriteString(banner + "\n")
	fmt.Fprintf(&b, "Started:  %s\n", r.BatchStartTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Finished: %s\n", r.BatchEndTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Duration: %s\n", r.TotalDuration.Round(time.Millisecond))

	rate := 0.0
	if r.TotalFiles > 0 {
		rate = 100 * float64(len(r.Successful)) / float64(r.TotalFiles)
	}
	fmt.Fprintf(&b, "Files: %d total, %d succeeded, %d failed (%.1f%% success)\n",
		r.TotalFiles, len(r.Successful), len(r.Failed), rate)
	fmt.Fprintf(&b, "Total cost: $%.4f\n", r.TotalCost)
	b.WriteString("----------------------------------------\n")

	for _, f := range r.Successful {
		fmt.Fprintf(&b, "[OK]   %s  (%s, $%.4f, %d chunks, %d summaries)\n",
			f.Filename, f.Duration.Round(time.Millisecond), f.Cost, f.ChunksCreated, f.SummariesCreated)
	}
	for _, f := range r.Failed {
		fmt.Fprintf(&b, "[FAIL] %s  %s\n", f.Filename, f.ErrorMessage)
	}

	b.WriteString(banner + "\n")
	return b.String()
}

// CSVReport renders one row per file. Failed files carry zeroed numeric
// fields and a quoted, quote-doubled error message.
func CSVReport(r *BatchResult) string {
	var b strings.Builder
	b.WriteString("Filename,Status,Duration(ms),Cost($),Chunks,Summaries,Error\n")

	for _, f := range r.Successful {
		fmt.Fprintf(&b, "%s,success,%d,%.4f,%d,%d,\n",
			f.Filename, f.Duration.Milliseconds(), f.Cost, f.ChunksCreated, f.SummariesCreated)
	}
	for _, f := range r.Failed {
		fmt.Fprintf(&b, "%s,failed,0,0.0000,0,0,%s\n", f.Filename, quoteCSV(f.ErrorMessage))
	}

	return b.String()
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

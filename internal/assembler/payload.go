package assembler

import (
	"fmt"
	"strings"

	"studyflow/internal/models"
)

// buildPayload renders the consolidation request: one block per chunk
// with id, title, summary, confidence, key points and definitions.
// Workflows are carried but rendered as a separate trailing section so
// prompts can reference them independently.
func buildPayload(summaries []models.ChunkSummary) string {
	var b strings.Builder

	for _, s := range summaries {
		fmt.Fprintf(&b, "### Chunk %s: %s [confidence: %s]\n", s.ChunkID, s.Title, s.Confidence)
		fmt.Fprintf(&b, "Summary: %s\n", s.Summary)

		if len(s.KeyPoints) > 0 {
			b.WriteString("Key points:\n")
			for _, p := range s.KeyPoints {
				fmt.Fprintf(&b, "- %s\n", p)
			}
		}
		if len(s.Definitions) > 0 {
			b.WriteString("Definitions:\n")
			for _, d := range s.Definitions {
				fmt.Fprintf(&b, "- %s: %s\n", d.Term, d.Definition)
			}
		}
		b.WriteString("\n")
	}

	if wf := renderWorkflows(summaries); wf != "" {
		b.WriteString("### Workflows across chunks\n")
		b.WriteString(wf)
	}

	return b.String()
}

func renderWorkflows(summaries []models.ChunkSummary) string {
	var b strings.Builder
	for _, s := range summaries {
		for _, w := range s.Workflows {
			fmt.Fprintf(&b, "%s (chunk %s):\n", w.Name, s.ChunkID)
			for i, step := range w.Steps {
				fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
			}
			if w.Notes != "" {
				fmt.Fprintf(&b, "  Note: %s\n", w.Notes)
			}
		}
	}
	return b.String()
}

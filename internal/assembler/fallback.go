package assembler

import (
	"fmt"
	"strings"

	"studyflow/internal/models"
)

const degradedBanner = "> REVIEW THIS: generated locally without the model because the generation service was unavailable.\n"

// FallbackMasterNotes concatenates the per-chunk titles, summaries, key
// points and definitions in input order. Purely derived from the
// summaries, so repeated invocations on the same input are
// byte-identical.
func FallbackMasterNotes(lesson string, summaries []models.ChunkSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Master Notes: %s\n\n", lesson)
	b.WriteString(degradedBanner)

	for _, s := range summaries {
		fmt.Fprintf(&b, "\n## %s. %s\n\n", s.ChunkID, s.Title)
		if s.Confidence == models.ConfidenceLow {
			b.WriteString("> Low-confidence segment.\n\n")
		}
		fmt.Fprintf(&b, "%s\n", s.Summary)

		if len(s.KeyPoints) > 0 {
			b.WriteString("\nKey points:\n\n")
			for _, p := range s.KeyPoints {
				fmt.Fprintf(&b, "- %s\n", p)
			}
		}
		if len(s.Definitions) > 0 {
			b.WriteString("\nDefinitions:\n\n")
			for _, d := range s.Definitions {
				fmt.Fprintf(&b, "- **%s**: %s\n", d.Term, d.Definition)
			}
		}
		if len(s.Workflows) > 0 {
			b.WriteString("\nWorkflows:\n\n")
			for _, w := range s.Workflows {
				fmt.Fprintf(&b, "- **%s**\n", w.Name)
				for i, step := range w.Steps {
					fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
				}
			}
		}
	}

	return b.String()
}

// FallbackQuickRevision condenses key points and definitions into a
// single bullet sheet.
func FallbackQuickRevision(lesson string, summaries []models.ChunkSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Quick Revision: %s\n\n", lesson)
	b.WriteString(degradedBanner)

	b.WriteString("\n## Key Points\n\n")
	for _, s := range summaries {
		for _, p := range s.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}

	b.WriteString("\n## Definitions\n\n")
	for _, s := range summaries {
		for _, d := range s.Definitions {
			fmt.Fprintf(&b, "- **%s**: %s\n", d.Term, d.Definition)
		}
	}

	return b.String()
}

// FallbackFlashcards derives cards from definitions first, then key
// points, in input order.
func FallbackFlashcards(summaries []models.ChunkSummary) []Flashcard {
	var cards []Flashcard
	for _, s := range summaries {
		for _, d := range s.Definitions {
			cards = append(cards, Flashcard{
				Front: fmt.Sprintf("Define: %s", d.Term),
				Back:  d.Definition,
			})
		}
	}
	for _, s := range summaries {
		for _, p := range s.KeyPoints {
			cards = append(cards, Flashcard{
				Front: fmt.Sprintf("[%s] What should you remember about: %s?", s.Title, firstWords(p, 8)),
				Back:  p,
			})
		}
	}
	return cards
}

// FallbackPracticeQuestions emits the fixed question-paper shape with
// locally derived questions where the summaries allow and clearly
// labeled placeholders where they do not.
func FallbackPracticeQuestions(lesson string, summaries []models.ChunkSummary) string {
	var defs []models.Definition
	var points []string
	for _, s := range summaries {
		defs = append(defs, s.Definitions...)
		points = append(points, s.KeyPoints...)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Practice Questions: %s\n\n", lesson)
	b.WriteString(degradedBanner)

	b.WriteString("\n## Multiple Choice\n\n")
	for i := 0; i < 6; i++ {
		if i < len(defs) {
			fmt.Fprintf(&b, "%d. Which statement best describes **%s**? (REVIEW THIS: write distractors)\n", i+1, defs[i].Term)
			fmt.Fprintf(&b, "   - A. %s (correct)\n   - B. …\n   - C. …\n   - D. …\n\n", defs[i].Definition)
		} else {
			fmt.Fprintf(&b, "%d. (REVIEW THIS: placeholder question)\n\n", i+1)
		}
	}

	b.WriteString("## Short Answer\n\n")
	for i := 0; i < 6; i++ {
		if i < len(points) {
			fmt.Fprintf(&b, "%d. Explain: %s\n\n", i+1, points[i])
		} else {
			fmt.Fprintf(&b, "%d. (REVIEW THIS: placeholder question)\n\n", i+1)
		}
	}

	b.WriteString("## Long Form\n\n")
	for i := 0; i < 2; i++ {
		if i < len(summaries) {
			fmt.Fprintf(&b, "%d. Discuss in depth: %s.\n", i+1, summaries[i].Title)
			b.WriteString("   Rubric: coverage of the key points listed for this topic, correct use of its definitions, concrete examples. (REVIEW THIS: refine rubric)\n\n")
		} else {
			fmt.Fprintf(&b, "%d. (REVIEW THIS: placeholder essay question)\n\n", i+1)
		}
	}

	return b.String()
}

func firstWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}

package summarizer

import (
	"regexp"
	"strings"

	"studyflow/internal/models"
	"studyflow/internal/segmenter"
)

var (
	reBulletPrefix = regexp.MustCompile(`^([\-\*•]|\d+\.|#{1,6})\s+`)
	reDefinition   = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9 /\-']{0,60}):\s+(\S.*)$`)
)

// FallbackSummary builds a ChunkSummary from the chunk text alone, with
// no external call: lead sentences as the summary, paragraph openers as
// key points, "Term: definition" lines as definitions. The same chunk
// always yields the same summary. Confidence is low so a reviewer can
// find and redo degraded chunks.
func FallbackSummary(chunk models.TextChunk) models.ChunkSummary {
	return models.ChunkSummary{
		ChunkID:     chunk.ChunkID,
		Title:       chunk.Title,
		Summary:     leadSentences(chunk.Text),
		KeyPoints:   paragraphOpeners(chunk.Text, 5),
		Definitions: scanDefinitions(chunk.Text, 5),
		Confidence:  models.ConfidenceLow,
	}
}

// leadSentences returns the first two sentences of the text, capped at
// roughly sixty tokens.
func leadSentences(text string) string {
	flat := strings.Join(strings.Fields(text), " ")
	if flat == "" {
		return "(empty segment)"
	}

	sentences := strings.SplitAfterN(flat, ". ", 3)
	lead := flat
	if len(sentences) >= 2 {
		lead = strings.TrimSpace(sentences[0] + sentences[1])
	}
	return segmenter.TruncateToTokenBudget(lead, 60)
}

// paragraphOpeners collects the first line of each paragraph, stripped
// of bullet and heading markers.
func paragraphOpeners(text string, limit int) []string {
	var points []string
	for _, block := range strings.Split(text, "\n\n") {
		for _, line := range strings.Split(block, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			point := reBulletPrefix.ReplaceAllString(trimmed, "")
			points = append(points, segmenter.TruncateToTokenBudget(point, 25))
			break
		}
		if len(points) == limit {
			break
		}
	}
	return points
}

func scanDefinitions(text string, limit int) []models.Definition {
	var defs []models.Definition
	for _, line := range strings.Split(text, "\n") {
		m := reDefinition.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		defs = append(defs, models.Definition{
			Term:       strings.TrimSpace(m[1]),
			Definition: strings.TrimSpace(m[2]),
		})
		if len(defs) == limit {
			break
		}
	}
	return defs
}

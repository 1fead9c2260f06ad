package segmenter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"studyflow/internal/models"
)

var reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// paragraph is a blank-line-delimited run of lines. Paragraphs partition
// the document by byte offset: each one's end is the next one's start,
// with trailing separators attached to the preceding paragraph. That
// partition is what guarantees every character lands in some chunk.
type paragraph struct {
	start, end         int
	startLine, endLine int
	heading            bool
	title              string
	tokens             int
}

// Segment splits the document into ordered chunks. Headings start a new
// chunk once the current one is at least half full; otherwise paragraphs
// accumulate until the estimated token count reaches the target size.
// Each chunk after the first begins with the overlap tail of the
// previous chunk's own region so cross-chunk context is preserved.
func (s *implSegmenter) Segment(document, sourceFile string) ([]models.TextChunk, error) {
	paras := splitParagraphs(document)
	if len(paras) == 0 {
		return []models.TextChunk{{
			ChunkID:    "1",
			Title:      "Part 1",
			Text:       document,
			SourceFile: sourceFile,
			StartLine:  1,
			EndLine:    1,
		}}, nil
	}

	var chunks []models.TextChunk
	prevBody := ""
	i := 0

	for i < len(paras) {
		prefix := ""
		if len(chunks) > 0 {
			prefix = OverlapTail(prevBody, s.overlap)
		}

		startPara := i
		tokens := EstimateTokens(prefix)
		for i < len(paras) {
			p := paras[i]
			if i > startPara && p.heading && tokens >= s.targetSize/2 {
				break
			}
			tokens += p.tokens
			i++
			if tokens >= s.targetSize {
				break
			}
		}

		body := document[paras[startPara].start:paras[i-1].end]
		text := body
		if prefix != "" {
			text = prefix + "\n\n" + body
		}

		title := ""
		for j := startPara; j < i; j++ {
			if paras[j].heading {
				title = paras[j].title
				break
			}
		}
		if title == "" {
			title = fmt.Sprintf("Part %d", len(chunks)+1)
		}

		chunks = append(chunks, models.TextChunk{
			ChunkID:    strconv.Itoa(len(chunks) + 1),
			Title:      title,
			Text:       text,
			SourceFile: sourceFile,
			StartLine:  paras[startPara].startLine,
			EndLine:    paras[i-1].endLine,
		})
		prevBody = body
	}

	return chunks, nil
}

func splitParagraphs(doc string) []paragraph {
	lines := strings.SplitAfter(doc, "\n")

	var paras []paragraph
	var cur *paragraph
	offset := 0
	prevBlank := false

	for idx, line := range lines {
		lineNo := idx + 1
		blank := strings.TrimSpace(line) == ""

		if !blank {
			if cur != nil && prevBlank {
				cur.end = offset
				paras = append(paras, *cur)
				cur = nil
			}
			if cur == nil {
				start := offset
				if len(paras) == 0 {
					start = 0 // leading blank lines belong to the first paragraph
				}
				cur = &paragraph{start: start, startLine: lineNo}
				if m := reHeading.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
					cur.heading = true
					cur.title = m[2]
				}
			}
			cur.endLine = lineNo
		}

		prevBlank = blank
		offset += len(line)
	}

	if cur != nil {
		cur.end = len(doc)
		paras = append(paras, *cur)
	}

	for j := range paras {
		paras[j].tokens = EstimateTokens(doc[paras[j].start:paras[j].end])
	}

	return paras
}

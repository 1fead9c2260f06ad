package segmenter

import (
	"strings"
	"unicode"
)

// EstimateTokens approximates the token count of text as the number of
// whitespace-delimited fields. It is deliberately a rough, deterministic
// approximation rather than a match for any model's tokenizer: the same
// input always yields the same count, which is all chunk sizing and
// budget enforcement need.
func EstimateTokens(text string) int {
	return len(strings.Fields(text))
}

// TruncateToTokenBudget keeps a prefix of text whose estimated token
// count fits maxTokens. Whole tokens are kept; the cut never lands
// inside a token, so re-truncating the result is a no-op.
func TruncateToTokenBudget(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return ""
	}

	inToken := false
	count := 0
	for idx, r := range text {
		if unicode.IsSpace(r) {
			inToken = false
			continue
		}
		if !inToken {
			inToken = true
			count++
			if count > maxTokens {
				return strings.TrimRightFunc(text[:idx], unicode.IsSpace)
			}
		}
	}

	return text
}

// OverlapTail returns the last n estimated tokens of text joined by
// single spaces. It is the context carried from one chunk into the next.
func OverlapTail(text string, n int) string {
	if n <= 0 {
		return ""
	}
	fields := strings.Fields(text)
	if len(fields) > n {
		fields = fields[len(fields)-n:]
	}
	return strings.Join(fields, " ")
}

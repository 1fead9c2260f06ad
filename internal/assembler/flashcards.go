package assembler

import "strings"

// RenderFlashcards writes cards as delimited two-field records with a
// header row. Every field is quoted; embedded quotes are escaped by
// doubling, so the file stays parseable by any CSV reader.
func RenderFlashcards(cards []Flashcard) string {
	var b strings.Builder
	b.WriteString(`"Front","Back"` + "\n")
	for _, c := range cards {
		b.WriteString(quoteField(c.Front))
		b.WriteString(",")
		b.WriteString(quoteField(c.Back))
		b.WriteString("\n")
	}
	return b.String()
}

func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

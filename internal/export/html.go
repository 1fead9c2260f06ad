package export

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

const htmlPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
body { font-family: Georgia, serif; max-width: 46em; margin: 2em auto; padding: 0 1em; line-height: 1.5; }
blockquote { color: #a00; border-left: 3px solid #a00; padding-left: 1em; }
</style>
</head>
<body>
%s</body>
</html>
`

// MarkdownToHTML renders a markdown artifact as a standalone HTML page,
// handy for reading revision sheets on a phone.
func MarkdownToHTML(title, markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return fmt.Sprintf(htmlPage, title, buf.String()), nil
}

package processor

import (
	"regexp"
	"strings"
)

var (
	reSrtIndex = regexp.MustCompile(`^\d+$`)
	reSrtTime  = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}`)
)

// normalizeTranscript prepares raw transcript text for segmentation.
// Plain text passes through with line endings normalized; SRT subtitle
// files are stripped down to their caption text.
func normalizeTranscript(content, ext string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if strings.EqualFold(ext, ".srt") {
		return srtToText(content)
	}
	return content
}

// srtToText drops cue indexes and timestamp lines and collapses
// consecutive duplicate captions, which transcription tools emit when a
// caption spans several cues. Each surviving caption becomes its own
// paragraph so the segmenter can split between captions.
func srtToText(content string) string {
	var captions []string
	last := ""

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || reSrtIndex.MatchString(line) || reSrtTime.MatchString(line) {
			continue
		}
		if line == last {
			continue
		}
		captions = append(captions, line)
		last = line
	}

	return strings.Join(captions, "\n\n")
}

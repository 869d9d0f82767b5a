package extract

import (
	"regexp"
	"strings"
)

var (
	// RE2 \s is ASCII only; \p{Z} covers NBSP and the other Unicode spaces
	blankLines  = regexp.MustCompile(`\n[\s\p{Z}]*\n`)
	hyphenBreak = regexp.MustCompile(`([\p{L}\p{N}_]+)-[\s\p{Z}]*\n[\s\p{Z}]*([\p{L}\p{N}_]+)`)
	spaceRuns   = regexp.MustCompile(` +`)
)

// CleanText normalizes extracted text: runs of blank lines become one blank line,
// words hyphenated across a line wrap are rejoined, and runs of spaces collapse.
func CleanText(s string) string {
	s = blankLines.ReplaceAllString(s, "\n\n")
	s = hyphenBreak.ReplaceAllString(s, "${1}${2}")
	s = spaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

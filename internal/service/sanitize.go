package service

import (
	"html"
	"regexp"
	"strings"
)

var (
	brTagRe      = regexp.MustCompile(`(?i)<br\s*/?>`)
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	blankLinesRe = regexp.MustCompile(`\n\s+\n`)
	sentenceRe   = regexp.MustCompile(`([.!?])\s+`)
)

// StripHTML converts upstream rich-text fields to plain text: entities
// decoded, <br> variants turned into newlines, remaining tags dropped and
// runs of blank lines collapsed. Normalizing already-plain text is a no-op.
func StripHTML(text string) string {
	if text == "" {
		return ""
	}
	t := html.UnescapeString(text)
	t = brTagRe.ReplaceAllString(t, "\n")
	t = htmlTagRe.ReplaceAllString(t, "")
	t = blankLinesRe.ReplaceAllString(t, "\n\n")
	return strings.TrimSpace(t)
}

// SplitSentences breaks a flat instructions string into individual steps
// at sentence boundaries (after ., ! or ? followed by whitespace),
// discarding empty fragments.
func SplitSentences(text string) []string {
	marked := sentenceRe.ReplaceAllString(text, "$1\x00")
	var out []string
	for _, part := range strings.Split(marked, "\x00") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

package aitext

import (
	"regexp"
	"strings"
)

var (
	codeFenceRe  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`([^`]+)`")
	boldRe       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe     = regexp.MustCompile(`\*(.*?)\*`)
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	bulletRe     = regexp.MustCompile(`(?m)^\s*[-+]\s+`)
	ordinalRe    = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
)

// SanitizeMarkdown removes residual Markdown markup from display text.
// Purely cosmetic and independent of tag extraction: fences and inline
// code keep their content, emphasis markers are dropped, headings are
// flattened, and list markers are normalized to a bullet glyph.
func SanitizeMarkdown(text string) string {
	if text == "" {
		return ""
	}
	cleaned := text
	cleaned = codeFenceRe.ReplaceAllStringFunc(cleaned, func(block string) string {
		return strings.ReplaceAll(block, "```", "")
	})
	cleaned = inlineCodeRe.ReplaceAllString(cleaned, "$1")
	cleaned = boldRe.ReplaceAllString(cleaned, "$1")
	cleaned = italicRe.ReplaceAllString(cleaned, "$1")
	cleaned = headingRe.ReplaceAllString(cleaned, "")
	cleaned = bulletRe.ReplaceAllString(cleaned, "• ")
	cleaned = ordinalRe.ReplaceAllStringFunc(cleaned, func(m string) string {
		return strings.TrimSpace(m) + " "
	})
	cleaned = strings.ReplaceAll(cleaned, "\r", "")
	cleaned = blankRunRe.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}

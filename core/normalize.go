package core

import (
	"regexp"
	"strings"
)

// Delimiter families stripped during normalization, applied in order.
// Stripping a family that does not occur is a no-op, so normalization does
// not need to know which language produced the comment. Order matters: block
// openers go before the line markers they contain.
var delimiterPatterns = []*regexp.Regexp{
	regexp.MustCompile(`<!--|-->`),
	regexp.MustCompile(`--\[\[|\]\]`),
	regexp.MustCompile(`/\*+|\*+/`),
	regexp.MustCompile(`(?m)^\s*\*+`), // doc-block continuation asterisks
	regexp.MustCompile(`//+`),
	regexp.MustCompile(`#+`),
	regexp.MustCompile(`(?m)^\s*--`),
	regexp.MustCompile(`(?m)^=begin|^=end`),
	regexp.MustCompile(`"""|'''`),
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeComment strips comment delimiters, collapses whitespace runs
// (including newlines) to single spaces, trims, and lowercases. Every
// text-shape rule matches against this form; the raw text is kept separately
// for duplicate detection and reporting.
func NormalizeComment(raw string) string {
	s := raw
	for _, re := range delimiterPatterns {
		s = re.ReplaceAllString(s, " ")
	}
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

var wordToken = regexp.MustCompile(`[a-z0-9_]+`)

// wordTokens returns the word tokens of already-normalized text.
func wordTokens(norm string) []string {
	return wordToken.FindAllString(norm, -1)
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

var nonAlpha = regexp.MustCompile(`[^a-z]+`)

// alphaOnly lowercases s and drops every non-alphabetic character. Used to
// compare a comment against an identifier it might be repeating.
func alphaOnly(s string) string {
	return nonAlpha.ReplaceAllString(strings.ToLower(s), "")
}

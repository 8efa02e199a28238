package core

import (
	"strings"

	"commentsweep/models"
)

// redundancySynonyms maps a comment verb to code identifiers that express the
// same action. A synonym hit contributes a partial overlap weight.
var redundancySynonyms = map[string][]string{
	"get":    {"fetch", "retrieve", "obtain"},
	"set":    {"assign", "update", "change"},
	"create": {"make", "build", "generate", "new"},
	"delete": {"remove", "destroy", "clear"},
	"check":  {"validate", "verify", "test"},
	"start":  {"begin", "init", "initialize"},
	"end":    {"finish", "complete", "stop"},
}

const (
	exactTokenWeight     = 1.0
	substringTokenWeight = 0.7
	synonymTokenWeight   = 0.5
	redundancyCap        = 0.95
)

// RedundancyScore measures how much of a normalized comment is restated by
// the next non-blank line of code. Returns 0 when the comment is shorter than
// 3 characters, when no following code line exists, or when either side has
// no usable tokens; otherwise the mean per-token overlap weight, capped at
// 0.95 so redundancy never outranks the critical rule's confidence.
func RedundancyScore(norm string, ctx models.CommentContext) float64 {
	if len(norm) < 3 || strings.TrimSpace(ctx.NextNonEmptyLineText) == "" {
		return 0
	}
	commentTokens := significantTokens(wordTokens(norm))
	if len(commentTokens) == 0 {
		return 0
	}
	code := codeTokens(ctx.NextNonEmptyLineText)
	if len(code) == 0 {
		return 0
	}

	var total float64
	for _, token := range commentTokens {
		total += tokenOverlap(token, code)
	}
	score := total / float64(len(commentTokens))
	if score > redundancyCap {
		score = redundancyCap
	}
	return score
}

// tokenOverlap returns the strongest overlap weight between one comment token
// and the code tokens: exact match, substring containment either way, then
// the synonym table.
func tokenOverlap(token string, code []string) float64 {
	best := 0.0
	for _, cd := range code {
		if token == cd {
			return exactTokenWeight
		}
		if best < substringTokenWeight && (strings.Contains(cd, token) || strings.Contains(token, cd)) {
			best = substringTokenWeight
		}
	}
	if best < synonymTokenWeight {
		for _, syn := range redundancySynonyms[token] {
			for _, cd := range code {
				if cd == syn {
					return synonymTokenWeight
				}
			}
		}
	}
	return best
}

// codeTokens tokenizes a line of code for comparison: lowercased, punctuation
// and underscores replaced by spaces, tokens of length <= 2 dropped.
func codeTokens(line string) []string {
	cleaned := nonAlnum.ReplaceAllString(strings.ToLower(line), " ")
	return significantTokens(strings.Fields(cleaned))
}

func significantTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if len(t) > 2 {
			out = append(out, t)
		}
	}
	return out
}

package core

import (
	"fmt"
	"regexp"
	"strings"

	"commentsweep/models"
)

// ruleInput carries the precomputed facts one comment is judged on. The
// normalized text and whitespace tokens are computed once per comment.
type ruleInput struct {
	comment models.Comment
	norm    string
	tokens  []string
	profile *Profile
	docText string
}

type classifierRule struct {
	category     models.Category
	shouldRemove bool
	match        func(in *ruleInput) (bool, float64, []string)
}

// criticalMarkers are substrings that mark a comment as load-bearing: tool
// directives, doc annotations, tracking markers, preprocessor guards, and
// legal text. Any hit keeps the comment. Matched against normalized text, so
// the '#' of preprocessor lines is already stripped.
var criticalMarkers = []string{
	"eslint-disable", "eslint-enable", "tslint:", "@ts-ignore", "@ts-nocheck", "@ts-expect-error",
	"noqa", "type: ignore", "pylint:", "mypy:", "nolint", "go:build", "go:generate",
	"prettier-ignore", "istanbul ignore", "rubocop:",
	"license", "copyright", "spdx", "all rights reserved",
	"todo", "fixme", "hack", "note", "warning", "danger", "important", "bug", "issue", "ticket",
	"@param", "@return", "@throws", "@exception", "@deprecated", "@see", "@author", "@since", "@link",
	"ifdef", "ifndef", "endif", "pragma",
	"do not remove", "do not delete", "do not edit", "keep this",
	"security", "performance", "critical", "thread-safe",
}

// documentationWords suggest a comment is explaining rather than restating.
var documentationWords = []string{
	"explains", "explanation", "describes", "algorithm", "implementation",
	"purpose", "overview", "summary", "usage", "example", "returns",
	"handles", "responsible for", "in order to",
}

// discourseWords mark connected prose; only consulted for long comments.
var discourseWords = []string{"because", "however", "therefore", "algorithm", "implementation"}

// declarationStarters are matched against the lowercased next non-blank code
// line to detect a comment sitting above a declaration.
var declarationStarters = []string{
	"function", "class", "def ", "public ", "private ", "protected ",
	"func ", "fn ", "interface", "struct", "static ", "void ",
}

var (
	codeSymbolPattern  = regexp.MustCompile(`===|==|!==|!=|&&|\|\||\+\+|--|[{}()\[\];=]`)
	assignmentPattern  = regexp.MustCompile(`\b\w+\s*=\s*\w+`)
	callPattern        = regexp.MustCompile(`\b\w+\([^)]*\)`)
	controlFlowPattern = regexp.MustCompile(`\b(if|for|while|try)\s*\(`)
)

// noisePlaceholders are throwaway words that fire only on exact equality with
// the whole normalized text.
var noisePlaceholders = map[string]bool{
	"test": true, "testing": true, "tmp": true, "temp": true, "old": true, "new": true,
	"fix": true, "fixes": true, "fixed": true, "update": true, "updated": true,
	"change": true, "changes": true, "changed": true,
	"asdf": true, "asdfasdf": true, "foo": true, "bar": true, "baz": true, "qwerty": true,
	"stuff": true, "misc": true, "things": true, "here": true, "done": true,
	"ok": true, "yes": true, "no": true, "aaa": true, "xxx": true,
}

var (
	decorativeRunPattern = regexp.MustCompile(`^[-=*._]{3,}$`)
	bareVersionPattern   = regexp.MustCompile(`^v?\d+(\.\d+)*$`)
)

var outdatedMarkers = []string{
	"old version", "deprecated", "obsolete", "no longer", "will be removed",
	"workaround", "legacy", "unused", "not needed", "replaced by",
	"out of date", "outdated",
}

// trivialShapes are obvious-statement forms that add nothing over the code.
var trivialShapes = []*regexp.Regexp{
	regexp.MustCompile(`^(increment|decrement)s? \w+$`),
	regexp.MustCompile(`^set \w+ to .+$`),
	regexp.MustCompile(`^(get|gets|return|returns) (the )?\w+$`),
	regexp.MustCompile(`^(initialize|init|create|creates|make|open|opens|close|closes|call|calls) (a |an |the )?\w+$`),
	regexp.MustCompile(`^loop (over|through) (the )?\w+$`),
	regexp.MustCompile(`^(default )?constructor$`),
	regexp.MustCompile(`^destructor$`),
	regexp.MustCompile(`^main (function|method|entry point)$`),
	regexp.MustCompile(`^end (of )?\w+$`),
	regexp.MustCompile(`^add \w+$`),
}

var debugShapes = []*regexp.Regexp{
	regexp.MustCompile(`^(console\.log|console\.debug|print|println|debug|debugging|trace)\b`),
	regexp.MustCompile(`^(wip|placeholder|stub)\b`),
	regexp.MustCompile(`^(remove|delete) (this|me|later|before)\b`),
	regexp.MustCompile(`^(uncomment|comment out)\b`),
}

// classifierRules is the ordered rule chain. The first matching rule decides
// the category; the final rule matches everything, so classification is total.
var classifierRules = []classifierRule{
	{
		category: models.CategoryDocumentation, shouldRemove: false,
		match: func(in *ruleInput) (bool, float64, []string) {
			if in.comment.Kind != models.CommentKindDocBlock {
				return false, 0, nil
			}
			return true, 0.9, []string{"structured documentation block"}
		},
	},
	{
		category: models.CategoryCritical, shouldRemove: false,
		match: func(in *ruleInput) (bool, float64, []string) {
			for _, marker := range criticalMarkers {
				if strings.Contains(in.norm, marker) {
					return true, 0.95, []string{fmt.Sprintf("contains critical marker %q", marker)}
				}
			}
			return false, 0, nil
		},
	},
	{
		category: models.CategoryDocumentation, shouldRemove: false,
		match: func(in *ruleInput) (bool, float64, []string) {
			n := len(in.norm)
			if n >= 10 {
				for _, w := range documentationWords {
					if strings.Contains(in.norm, w) {
						return true, 0.85, []string{fmt.Sprintf("explanatory wording %q", w)}
					}
				}
			}
			if n > 20 {
				next := strings.ToLower(in.comment.Context.NextNonEmptyLineText)
				for _, s := range declarationStarters {
					if strings.Contains(next, s) {
						return true, 0.85, []string{"substantial comment above a declaration"}
					}
				}
			}
			if n > 50 {
				for _, w := range discourseWords {
					if strings.Contains(in.norm, w) {
						return true, 0.85, []string{fmt.Sprintf("long prose with %q", w)}
					}
				}
			}
			return false, 0, nil
		},
	},
	{
		category: models.CategoryCommentedCode, shouldRemove: true,
		match: func(in *ruleInput) (bool, float64, []string) {
			// Separator runs ("-----", "======") are symbol-dense but are
			// not code; the decorative noise shape claims them.
			if len(in.norm) < 3 || decorativeRunPattern.MatchString(in.norm) {
				return false, 0, nil
			}
			var reasons []string
			if n := len(codeSymbolPattern.FindAllString(in.norm, -1)); n >= 3 {
				reasons = append(reasons, fmt.Sprintf("contains %d code symbols", n))
			}
			if n := in.keywordHits(); n >= 2 {
				reasons = append(reasons, fmt.Sprintf("contains %d language keywords", n))
			}
			if assignmentPattern.MatchString(in.norm) {
				reasons = append(reasons, "matches assignment shape")
			}
			if callPattern.MatchString(in.norm) {
				reasons = append(reasons, "matches function-call shape")
			}
			if controlFlowPattern.MatchString(in.norm) {
				reasons = append(reasons, "matches control-flow shape")
			}
			if len(reasons) == 0 {
				return false, 0, nil
			}
			return true, 0.9, reasons
		},
	},
	{
		category: models.CategoryRedundant, shouldRemove: true,
		match: func(in *ruleInput) (bool, float64, []string) {
			score := RedundancyScore(in.norm, in.comment.Context)
			if score <= 0.5 {
				return false, 0, nil
			}
			return true, score, []string{fmt.Sprintf("restates the following code (overlap %.2f)", score)}
		},
	},
	{
		category: models.CategoryNoise, shouldRemove: true,
		match: func(in *ruleInput) (bool, float64, []string) {
			switch {
			case noisePlaceholders[in.norm]:
				return true, 0.8, []string{fmt.Sprintf("placeholder word %q", in.norm)}
			case decorativeRunPattern.MatchString(in.norm):
				return true, 0.8, []string{"decorative separator"}
			case bareVersionPattern.MatchString(in.norm):
				return true, 0.8, []string{"bare number or version"}
			case len(in.tokens) <= 3 && len(in.norm) < 10:
				return true, 0.8, []string{"too short to carry meaning"}
			case len(in.norm) <= 2:
				return true, 0.8, []string{"too short to carry meaning"}
			}
			return false, 0, nil
		},
	},
	{
		category: models.CategoryOutdated, shouldRemove: true,
		match: func(in *ruleInput) (bool, float64, []string) {
			for _, marker := range outdatedMarkers {
				if strings.Contains(in.norm, marker) {
					return true, 0.7, []string{fmt.Sprintf("references stale state (%q)", marker)}
				}
			}
			return false, 0, nil
		},
	},
	{
		category: models.CategoryTrivial, shouldRemove: true,
		match: func(in *ruleInput) (bool, float64, []string) {
			for _, shape := range trivialShapes {
				if shape.MatchString(in.norm) {
					return true, 0.75, []string{"obvious statement shape"}
				}
			}
			next := in.comment.Context.NextNonEmptyLineText
			if key := alphaOnly(in.norm); key != "" && key == alphaOnly(next) {
				return true, 0.75, []string{"repeats the following identifier"}
			}
			return false, 0, nil
		},
	},
	{
		category: models.CategoryEmpty, shouldRemove: true,
		match: func(in *ruleInput) (bool, float64, []string) {
			wordChars := 0
			for _, t := range wordTokens(in.norm) {
				wordChars += len(t)
			}
			if wordChars >= 2 {
				return false, 0, nil
			}
			return true, 0.95, []string{"no meaningful content"}
		},
	},
	{
		category: models.CategoryDuplicate, shouldRemove: true,
		match: func(in *ruleInput) (bool, float64, []string) {
			if len(in.norm) < 5 {
				return false, 0, nil
			}
			if n := strings.Count(in.docText, in.comment.RawText); n > 1 {
				return true, 0.8, []string{fmt.Sprintf("identical comment appears %d times", n)}
			}
			return false, 0, nil
		},
	},
	{
		category: models.CategoryDebug, shouldRemove: true,
		match: func(in *ruleInput) (bool, float64, []string) {
			for _, shape := range debugShapes {
				if shape.MatchString(in.norm) {
					return true, 0.85, []string{"leftover debug note"}
				}
			}
			return false, 0, nil
		},
	},
	{
		category: models.CategoryRegular, shouldRemove: false,
		match: func(in *ruleInput) (bool, float64, []string) {
			return true, 0.3, []string{"no removal heuristic matched"}
		},
	},
}

// keywordHits counts distinct profile keywords appearing as whole words in
// the normalized text.
func (in *ruleInput) keywordHits() int {
	if len(in.profile.Keywords) == 0 {
		return 0
	}
	seen := make(map[string]bool)
	for _, t := range wordTokens(in.norm) {
		if in.profile.Keywords[t] && !seen[t] {
			seen[t] = true
		}
	}
	return len(seen)
}

// ClassifyComment runs one comment through the rule chain and returns the
// first matching rule's outcome. Classification depends only on the comment,
// its captured context, the profile, and the document text, so identical
// inputs always produce identical results.
func ClassifyComment(comment models.Comment, profile *Profile, docText string) models.Classification {
	in := &ruleInput{
		comment: comment,
		norm:    NormalizeComment(comment.RawText),
		profile: profile,
		docText: docText,
	}
	in.tokens = strings.Fields(in.norm)

	for _, r := range classifierRules {
		if ok, confidence, reasons := r.match(in); ok {
			return models.Classification{
				Category:     r.category,
				ShouldRemove: r.shouldRemove,
				Confidence:   confidence,
				Reasons:      reasons,
			}
		}
	}
	// Unreachable: the final rule matches everything.
	return models.Classification{Category: models.CategoryRegular, Confidence: 0.3, Reasons: []string{"no removal heuristic matched"}}
}

package core

import (
	"regexp"
	"strings"

	"commentsweep/logger"
	"commentsweep/models"
)

// ExtractComments runs the profile's patterns over the whole document and
// returns every comment span found. Patterns run in order doc-block,
// multi-line, single-line; a later match whose span exactly equals an
// already-reported span is dropped, so a doc block is reported once even
// though the multi-line pattern also matches it. Partially overlapping
// matches are all reported.
func ExtractComments(doc *Document, profile *Profile) []models.Comment {
	var comments []models.Comment
	seen := make(map[[2]int]bool)

	collect := func(re *regexp.Regexp, kind models.CommentKind) {
		if re == nil {
			return
		}
		for _, m := range re.FindAllStringIndex(doc.Text(), -1) {
			span := [2]int{m[0], m[1]}
			if seen[span] {
				continue
			}
			seen[span] = true
			comments = append(comments, buildComment(doc, kind, m[0], m[1]))
		}
	}

	collect(profile.DocBlock, models.CommentKindDocBlock)
	collect(profile.MultiLine, models.CommentKindMultiLine)
	collect(profile.SingleLine, models.CommentKindSingleLine)

	logger.ScanDebug("ExtractComments: found %d comment(s) for language %s", len(comments), profile.ID)
	return comments
}

func buildComment(doc *Document, kind models.CommentKind, start, end int) models.Comment {
	pos := doc.PositionAt(start)
	lineText := doc.LineText(pos.Line)
	prefix := lineText
	if pos.Column <= len(lineText) {
		prefix = lineText[:pos.Column]
	}
	return models.Comment{
		Kind:        kind,
		RawText:     doc.Text()[start:end],
		StartOffset: start,
		EndOffset:   end,
		LineNumber:  pos.Line,
		IsInline:    strings.TrimSpace(prefix) != "",
		Context:     BuildContext(doc, pos.Line),
	}
}

// BuildContext captures the surrounding lines for a comment starting on the
// given line. The snapshot is taken once at extraction; classification never
// goes back to the document.
func BuildContext(doc *Document, line int) models.CommentContext {
	current := doc.LineText(line)
	ctx := models.CommentContext{
		CurrentLineText: current,
		IndentLevel:     indentLevel(current),
	}
	if line > 0 {
		ctx.PreviousLineText = doc.LineText(line - 1)
	}
	if line+1 < doc.LineCount() {
		ctx.NextLineText = doc.LineText(line + 1)
	}
	for i := line + 1; i < doc.LineCount(); i++ {
		if !isBlank(doc.LineText(i)) {
			ctx.NextNonEmptyLineText = doc.LineText(i)
			break
		}
	}
	return ctx
}

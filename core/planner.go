package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"commentsweep/models"
)

// ErrInvalidDeletion is returned when a plan does not fit the text it is
// applied to, typically because the text changed after planning. Callers must
// re-analyze the current text; plans are never patched up in place.
var ErrInvalidDeletion = errors.New("deletion range does not fit document")

// PlanRemoval turns the selected comments into an ordered deletion plan.
// Ranges are sorted by descending start offset, so applying them front to
// back never shifts a range that is still pending. Overlapping or duplicate
// ranges (single-line and multi-line patterns can match the same region) are
// coalesced first, so every byte is deleted at most once.
func PlanRemoval(doc *Document, selected []models.ClassifiedComment) []models.Deletion {
	dels := make([]models.Deletion, 0, len(selected))
	for _, cc := range selected {
		dels = append(dels, deletionFor(doc, cc))
	}
	dels = coalesce(dels)
	sort.Slice(dels, func(i, j int) bool { return dels[i].StartOffset > dels[j].StartOffset })
	return dels
}

// deletionFor picks whole-line or span deletion for one comment. The whole
// line (or lines, for block comments) goes only when the comment is the only
// content there: whitespace before it on its first line and after it on its
// last. Whole-line ranges include the trailing terminator.
func deletionFor(doc *Document, cc models.ClassifiedComment) models.Deletion {
	c := cc.Comment
	startPos := doc.PositionAt(c.StartOffset)
	endPos := doc.PositionAt(c.EndOffset)

	startLineText := doc.LineText(startPos.Line)
	col := startPos.Column
	if col > len(startLineText) {
		col = len(startLineText)
	}
	prefixBlank := strings.TrimSpace(startLineText[:col]) == ""

	endLineText := doc.LineText(endPos.Line)
	endCol := endPos.Column
	if endCol > len(endLineText) {
		endCol = len(endLineText)
	}
	suffixBlank := strings.TrimSpace(endLineText[endCol:]) == ""

	if prefixBlank && suffixBlank {
		start := doc.LineStart(startPos.Line)
		_, end := doc.LineRange(endPos.Line)
		return models.Deletion{
			StartOffset: start,
			EndOffset:   end,
			LineNumber:  startPos.Line,
			WholeLine:   true,
			Category:    cc.Classification.Category,
		}
	}
	return models.Deletion{
		StartOffset: c.StartOffset,
		EndOffset:   c.EndOffset,
		LineNumber:  startPos.Line,
		WholeLine:   false,
		Category:    cc.Classification.Category,
	}
}

// coalesce merges overlapping or adjacent ranges. Output is ascending by
// start offset; PlanRemoval re-sorts afterwards.
func coalesce(dels []models.Deletion) []models.Deletion {
	if len(dels) <= 1 {
		return dels
	}
	sort.Slice(dels, func(i, j int) bool {
		if dels[i].StartOffset != dels[j].StartOffset {
			return dels[i].StartOffset < dels[j].StartOffset
		}
		return dels[i].EndOffset < dels[j].EndOffset
	})
	out := dels[:1]
	for _, d := range dels[1:] {
		last := &out[len(out)-1]
		if d.StartOffset <= last.EndOffset {
			if d.EndOffset > last.EndOffset {
				last.EndOffset = d.EndOffset
			}
			last.WholeLine = last.WholeLine || d.WholeLine
			continue
		}
		out = append(out, d)
	}
	return out
}

// ApplyDeletions applies a plan to text and returns the edited result. The
// plan must be ordered by descending start offset with non-overlapping
// ranges, as produced by PlanRemoval. A range that does not fit the text
// aborts the whole application; partial edits are never returned.
func ApplyDeletions(text string, dels []models.Deletion) (string, error) {
	for i, d := range dels {
		if d.StartOffset < 0 || d.EndOffset > len(text) || d.StartOffset > d.EndOffset {
			return "", fmt.Errorf("%w: [%d,%d) against %d bytes", ErrInvalidDeletion, d.StartOffset, d.EndOffset, len(text))
		}
		if i > 0 && dels[i-1].StartOffset < d.EndOffset {
			return "", fmt.Errorf("%w: ranges out of order or overlapping", ErrInvalidDeletion)
		}
		text = text[:d.StartOffset] + text[d.EndOffset:]
	}
	return text, nil
}

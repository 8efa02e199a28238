package core

import (
	"sort"
	"strings"
)

// Position is a zero-based line/column pair. Column counts bytes from the
// line start, matching the offsets used everywhere else.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Document is an immutable text snapshot with line/offset conversion. All
// offsets are byte offsets into Text. Lines are split on '\n'; a trailing
// '\n' yields a final empty line, and "\r\n" terminators are handled by
// stripping the '\r' from line text.
type Document struct {
	text       string
	languageID string
	lineStarts []int
}

// NewDocument builds a Document for the given text and language identifier.
// The language is recorded as given; resolution against the profile registry
// happens at analysis time.
func NewDocument(text, languageID string) *Document {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Document{text: text, languageID: languageID, lineStarts: starts}
}

func (d *Document) Text() string       { return d.text }
func (d *Document) LanguageID() string { return d.languageID }
func (d *Document) LineCount() int     { return len(d.lineStarts) }

// LineStart returns the byte offset of the first character of the given line.
// Out-of-range lines are clamped.
func (d *Document) LineStart(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(d.lineStarts) {
		return len(d.text)
	}
	return d.lineStarts[line]
}

// lineContentEnd returns the offset one past the last content character of
// the line, excluding any '\r' or '\n' terminator.
func (d *Document) lineContentEnd(line int) int {
	end := len(d.text)
	if line+1 < len(d.lineStarts) {
		end = d.lineStarts[line+1] - 1 // drop the '\n'
	}
	if end > 0 && end-1 >= d.LineStart(line) && d.text[end-1] == '\r' {
		end--
	}
	return end
}

// LineText returns the content of the given line without its terminator.
// Out-of-range lines return "".
func (d *Document) LineText(line int) string {
	if line < 0 || line >= len(d.lineStarts) {
		return ""
	}
	return d.text[d.lineStarts[line]:d.lineContentEnd(line)]
}

// LineRange returns the byte range of the given line including its
// terminator, suitable for whole-line deletion.
func (d *Document) LineRange(line int) (start, end int) {
	start = d.LineStart(line)
	if line+1 < len(d.lineStarts) {
		return start, d.lineStarts[line+1]
	}
	return start, len(d.text)
}

// PositionAt converts a byte offset to a Position. Offsets are clamped to the
// document bounds.
func (d *Document) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.text) {
		offset = len(d.text)
	}
	// Greatest line start <= offset.
	line := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	}) - 1
	return Position{Line: line, Column: offset - d.lineStarts[line]}
}

// OffsetAt converts a Position back to a byte offset, clamping the column to
// the line's content length (terminator excluded).
func (d *Document) OffsetAt(pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	if pos.Line >= len(d.lineStarts) {
		return len(d.text)
	}
	start := d.lineStarts[pos.Line]
	max := d.lineContentEnd(pos.Line) - start
	col := pos.Column
	if col < 0 {
		col = 0
	}
	if col > max {
		col = max
	}
	return start + col
}

// indentLevel counts the leading whitespace characters of a line. Tabs and
// spaces each count as one.
func indentLevel(lineText string) int {
	for i := 0; i < len(lineText); i++ {
		if lineText[i] != ' ' && lineText[i] != '\t' {
			return i
		}
	}
	return len(lineText)
}

// isBlank reports whether a line contains only whitespace.
func isBlank(lineText string) bool {
	return strings.TrimSpace(lineText) == ""
}

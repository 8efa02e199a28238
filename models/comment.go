package models

// CommentKind identifies which profile pattern produced a comment.
type CommentKind string

const (
	CommentKindSingleLine CommentKind = "single-line"
	CommentKindMultiLine  CommentKind = "multi-line"
	CommentKindDocBlock   CommentKind = "doc-block"
)

// CommentContext captures the lines around a comment at extraction time.
// Classification reads only this snapshot, never the live document.
type CommentContext struct {
	PreviousLineText     string `json:"previous_line_text,omitempty"`
	CurrentLineText      string `json:"current_line_text"`
	NextLineText         string `json:"next_line_text,omitempty"`
	NextNonEmptyLineText string `json:"next_non_empty_line_text,omitempty"` // First following line with non-whitespace content; empty if none.
	IndentLevel          int    `json:"indent_level"`                       // Leading whitespace characters on the comment's line.
}

// Comment represents a single comment span found in a document, delimiters included.
type Comment struct {
	Kind        CommentKind    `json:"kind" example:"single-line"`
	RawText     string         `json:"raw_text" example:"// fetch the user data"`
	StartOffset int            `json:"start_offset" example:"120"` // Byte offset of the first delimiter character.
	EndOffset   int            `json:"end_offset" example:"143"`   // Byte offset one past the last character of the comment.
	LineNumber  int            `json:"line_number" example:"4"`    // Zero-based line of StartOffset.
	IsInline    bool           `json:"is_inline" example:"false"`  // True when code precedes the comment on its line.
	Context     CommentContext `json:"context"`
}

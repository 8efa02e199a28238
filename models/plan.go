package models

// Deletion is one range scheduled for removal from a document. Ranges in a
// plan are non-overlapping and ordered by descending StartOffset so earlier
// deletions never shift the offsets of later ones.
type Deletion struct {
	StartOffset int      `json:"start_offset" example:"120"`
	EndOffset   int      `json:"end_offset" example:"144"`
	LineNumber  int      `json:"line_number" example:"4"`   // Zero-based line the deletion starts on.
	WholeLine   bool     `json:"whole_line" example:"true"` // True when the range covers full lines including terminators.
	Category    Category `json:"category" example:"commented_code"`
}

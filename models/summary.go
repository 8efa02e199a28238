package models

// CategorySummary aggregates the classifications of one category.
type CategorySummary struct {
	Count             int     `json:"count" example:"12"`
	RemovableCount    int     `json:"removable_count" example:"9"` // Classifications flagged for removal, before thresholding.
	AverageConfidence float64 `json:"average_confidence" example:"0.82"`
}

// FileSummary is the per-file rollup produced by a scan.
type FileSummary struct {
	Path           string                       `json:"path" example:"src/app.js"`
	LanguageID     string                       `json:"language_id" example:"javascript"`
	CommentCount   int                          `json:"comment_count" example:"34"`
	SelectedCount  int                          `json:"selected_count" example:"11"` // Comments passing category and threshold filters.
	ByCategory     map[Category]CategorySummary `json:"by_category"`
	SkippedReason  string                       `json:"skipped_reason,omitempty"` // Set when the file was not analyzed (unsupported, too large, binary).
	AnalysisFailed bool                         `json:"analysis_failed,omitempty"`
}

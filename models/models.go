package models

import (
	"database/sql"
)

// NullString is a helper function to create a sql.NullString from a string.
// If the input string is empty, it returns a NullString with Valid set to false.
// Otherwise, it returns a NullString with the given string and Valid set to true.
func NullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{String: "", Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

// AnalyzeRequest is the body for POST /api/analyze.
type AnalyzeRequest struct {
	Content    string   `json:"content" binding:"required"`                    // Document text to analyze.
	LanguageID string   `json:"language_id" example:"javascript" binding:"required"` // Language identifier or registered alias.
	Threshold  *float64 `json:"threshold,omitempty" example:"0.6"`             // Overrides the configured confidence threshold when set.
	Categories []string `json:"categories,omitempty" example:"redundant"`      // Restricts removal selection to these categories when non-empty.
	ScanID     string   `json:"scan_id,omitempty"`                             // Attach results to an existing scan instead of creating none.
	FilePath   string   `json:"file_path,omitempty"`                           // Recorded with the comments when scan_id is set.
}

// AnalyzeResponse is the body returned by POST /api/analyze.
type AnalyzeResponse struct {
	Supported  bool                         `json:"supported" example:"true"` // False when the language has no registered profile.
	LanguageID string                       `json:"language_id" example:"javascript"`
	Threshold  float64                      `json:"threshold" example:"0.6"`
	Comments   []ClassifiedComment          `json:"comments"`
	Selected   []ClassifiedComment          `json:"selected"` // Subset of Comments passing removal filters.
	Summary    map[Category]CategorySummary `json:"summary"`
}

// PlanRequest is the body for POST /api/plan.
type PlanRequest struct {
	Content    string   `json:"content" binding:"required"`
	LanguageID string   `json:"language_id" example:"javascript" binding:"required"`
	Threshold  *float64 `json:"threshold,omitempty" example:"0.6"`
	Categories []string `json:"categories,omitempty"`
}

// PlanResponse is the body returned by POST /api/plan.
type PlanResponse struct {
	Supported      bool       `json:"supported" example:"true"`
	LanguageID     string     `json:"language_id" example:"javascript"`
	Threshold      float64    `json:"threshold" example:"0.6"`
	Deletions      []Deletion `json:"deletions"` // Ordered by descending start offset.
	CleanedContent string     `json:"cleaned_content"`
	RemovedCount   int        `json:"removed_count" example:"7"`
}

// LanguageInfo describes one registered language profile for the API and CLI.
type LanguageInfo struct {
	ID           string   `json:"id" example:"javascript"`
	Aliases      []string `json:"aliases,omitempty" example:"js"`
	HasDocBlock  bool     `json:"has_doc_block" example:"true"`
	HasMulti     bool     `json:"has_multi_line" example:"true"`
	KeywordCount int      `json:"keyword_count" example:"23"`
}

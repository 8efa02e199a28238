package models

import "time"

// Scan is one recorded analysis run over a directory tree or a single
// submitted document.
type Scan struct {
	ID                  string    `json:"id" example:"3f2a7c1e-9b4d-4e2f-8c5a-1d2e3f4a5b6c" readOnly:"true"`
	RootPath            string    `json:"root_path,omitempty" example:"/home/user/project"` // Empty for API-submitted single documents.
	FileCount           int       `json:"file_count" example:"42"`
	CommentCount        int       `json:"comment_count" example:"317"`
	SelectedCount       int       `json:"selected_count" example:"88"`
	ConfidenceThreshold float64   `json:"confidence_threshold" example:"0.6"`
	CreatedAt           time.Time `json:"created_at" readOnly:"true"`
}

// ScanComment is one classified comment persisted under a scan.
type ScanComment struct {
	ID           int64    `json:"id" readOnly:"true"`
	ScanID       string   `json:"scan_id" example:"3f2a7c1e-9b4d-4e2f-8c5a-1d2e3f4a5b6c"`
	FilePath     string   `json:"file_path" example:"src/app.js"`
	LanguageID   string   `json:"language_id" example:"javascript"`
	LineNumber   int      `json:"line_number" example:"4"`
	Kind         string   `json:"kind" example:"single-line"`
	IsInline     bool     `json:"is_inline" example:"false"`
	Category     string   `json:"category" example:"redundant"`
	Confidence   float64  `json:"confidence" example:"0.8"`
	ShouldRemove bool     `json:"should_remove" example:"true"`
	Selected     bool     `json:"selected" example:"true"` // Passed the threshold and category filters at scan time.
	Reasons      []string `json:"reasons"`
	RawText      string   `json:"raw_text" example:"// fetch the user data"`
	StartOffset  int      `json:"start_offset" example:"120"`
	EndOffset    int      `json:"end_offset" example:"143"`
}

// ScanCommentFilters defines parameters for filtering persisted scan comments.
type ScanCommentFilters struct {
	ScanID     string `json:"scan_id"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	SortBy     string `json:"sort_by"`
	SortOrder  string `json:"sort_order"`
	Category   string `json:"category,omitempty"`
	FilePath   string `json:"file_path,omitempty"`
	OnlyRemove bool   `json:"only_removable,omitempty"`
}

// PaginatedResponse is a generic structure for paginated API responses.
type PaginatedResponse struct {
	Page         int         `json:"page"`
	Limit        int         `json:"limit"`
	TotalRecords int         `json:"total_records"`
	TotalPages   int         `json:"total_pages"`
	Records      interface{} `json:"records"` // Can hold any type of record slice.
}

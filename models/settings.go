package models

// AnalyzerSettings holds the persisted, user-tunable analysis knobs. Stored as
// one JSON document under AnalyzerSettingsKey in app_settings.
type AnalyzerSettings struct {
	ConfidenceThreshold float64  `json:"confidence_threshold" example:"0.6"`    // Minimum confidence for a removable comment to be selected.
	EnabledCategories   []string `json:"enabled_categories"`                    // Categories eligible for removal; empty means all removable categories.
	MaxFileSizeBytes    int64    `json:"max_file_size_bytes" example:"1048576"` // Files larger than this are skipped during scans.
}

// AnalyzerSettingsKey is the key used in app_settings for storing analyzer settings.
const AnalyzerSettingsKey = "analyzer_settings"

// LastScanIDKey is the key used in app_settings for the most recent scan ID.
const LastScanIDKey = "last_scan_id"

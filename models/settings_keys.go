package models

// DefaultConfidenceThreshold is the removal threshold used when no setting,
// flag, or editor override is present.
const DefaultConfidenceThreshold = 0.6

// DefaultMaxFileSizeBytes is the scan size cap used when no setting overrides it.
const DefaultMaxFileSizeBytes = 1 << 20

// DefaultAnalyzerSettings returns the settings document seeded on first run.
func DefaultAnalyzerSettings() AnalyzerSettings {
	categories := make([]string, 0, len(AllCategories))
	for _, c := range AllCategories {
		categories = append(categories, string(c))
	}
	return AnalyzerSettings{
		ConfidenceThreshold: DefaultConfidenceThreshold,
		EnabledCategories:   categories,
		MaxFileSizeBytes:    DefaultMaxFileSizeBytes,
	}
}

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"commentsweep/database"
	"commentsweep/logger"
	"commentsweep/models"
)

// GetAnalyzerSettingsHandler godoc
// @Summary Get the persisted analyzer settings
// @Tags Settings
// @Produce json
// @Success 200 {object} models.AnalyzerSettings
// @Failure 500 {string} string "Failed to retrieve analyzer settings"
// @Router /settings/analyzer [get]
func GetAnalyzerSettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := database.GetAnalyzerSettings()
	if err != nil {
		logger.Error("GetAnalyzerSettingsHandler: Error getting analyzer settings: %v", err)
		http.Error(w, "Failed to retrieve analyzer settings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

// UpdateAnalyzerSettingsHandler godoc
// @Summary Update the persisted analyzer settings
// @Description Replaces the stored confidence threshold, enabled categories, and file size cap used as defaults by analyses and scans.
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body models.AnalyzerSettings true "New analyzer settings"
// @Success 200 {object} models.AnalyzerSettings
// @Failure 400 {string} string "Invalid settings"
// @Failure 500 {string} string "Failed to save analyzer settings"
// @Router /settings/analyzer [put]
func UpdateAnalyzerSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var settings models.AnalyzerSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		logger.Error("UpdateAnalyzerSettingsHandler: Error decoding request body: %v", err)
		http.Error(w, "Invalid request payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if settings.ConfidenceThreshold < 0 || settings.ConfidenceThreshold > 1 {
		logger.Error("UpdateAnalyzerSettingsHandler: Threshold %v out of range", settings.ConfidenceThreshold)
		http.Error(w, fmt.Sprintf("confidence_threshold must be between 0 and 1, got %v", settings.ConfidenceThreshold), http.StatusBadRequest)
		return
	}
	for _, cat := range settings.EnabledCategories {
		if !models.IsValidCategory(cat) {
			logger.Error("UpdateAnalyzerSettingsHandler: Unknown category %q", cat)
			http.Error(w, fmt.Sprintf("Unknown category %q", cat), http.StatusBadRequest)
			return
		}
	}
	if settings.MaxFileSizeBytes < 0 {
		logger.Error("UpdateAnalyzerSettingsHandler: Negative max_file_size_bytes %d", settings.MaxFileSizeBytes)
		http.Error(w, "max_file_size_bytes must not be negative", http.StatusBadRequest)
		return
	}
	if settings.ConfidenceThreshold == 0 {
		settings.ConfidenceThreshold = models.DefaultConfidenceThreshold
	}
	if settings.MaxFileSizeBytes == 0 {
		settings.MaxFileSizeBytes = models.DefaultMaxFileSizeBytes
	}

	if err := database.SetAnalyzerSettings(settings); err != nil {
		logger.Error("UpdateAnalyzerSettingsHandler: Error saving analyzer settings: %v", err)
		http.Error(w, "Failed to save analyzer settings", http.StatusInternalServerError)
		return
	}

	logger.Info("Analyzer settings updated: threshold=%.2f categories=%v max_file_size=%d",
		settings.ConfidenceThreshold, settings.EnabledCategories, settings.MaxFileSizeBytes)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

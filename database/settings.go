package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"commentsweep/logger"
	"commentsweep/models"
)

// GetSetting retrieves a specific setting value from the app_settings table.
func GetSetting(key string) (string, error) {
	var value string
	err := DB.QueryRow("SELECT value FROM app_settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil // Return empty string if not found, not an error
		}
		return "", fmt.Errorf("failed to get setting '%s': %w", key, err)
	}
	return value, nil
}

// SetSetting saves or updates a specific setting value in the app_settings table.
func SetSetting(key, value string) error {
	stmt, err := DB.Prepare("INSERT OR REPLACE INTO app_settings (key, value) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare set setting statement for key '%s': %w", key, err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(key, value)
	if err != nil {
		return fmt.Errorf("failed to execute set setting for key '%s': %w", key, err)
	}
	return nil
}

// GetAnalyzerSettings retrieves the stored analyzer settings.
func GetAnalyzerSettings() (models.AnalyzerSettings, error) {
	settingsJSON, err := GetSetting(models.AnalyzerSettingsKey)
	if err != nil {
		return models.AnalyzerSettings{}, fmt.Errorf("failed to get analyzer settings: %w", err)
	}

	if settingsJSON == "" {
		// Nothing stored yet, fall back to the defaults.
		return models.DefaultAnalyzerSettings(), nil
	}

	var settings models.AnalyzerSettings
	if err := json.Unmarshal([]byte(settingsJSON), &settings); err != nil {
		logger.Error("GetAnalyzerSettings: Error unmarshalling settings JSON: %v. Stored value: %s", err, settingsJSON)
		return models.AnalyzerSettings{}, fmt.Errorf("failed to unmarshal analyzer settings: %w", err)
	}
	return settings, nil
}

// SetAnalyzerSettings saves the analyzer settings.
func SetAnalyzerSettings(settings models.AnalyzerSettings) error {
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal analyzer settings to JSON: %w", err)
	}

	if err := SetSetting(models.AnalyzerSettingsKey, string(settingsJSON)); err != nil {
		return fmt.Errorf("failed to save analyzer settings: %w", err)
	}
	return nil
}

// GetLastScanID returns the ID of the most recently recorded scan, or "" when
// none has been recorded.
func GetLastScanID() (string, error) {
	return GetSetting(models.LastScanIDKey)
}

// SetLastScanID records the most recent scan ID.
func SetLastScanID(scanID string) error {
	return SetSetting(models.LastScanIDKey, scanID)
}

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commentsweep/database"
	"commentsweep/models"
)

func TestGetAnalyzerSettingsHandler(t *testing.T) {
	r := httptest.NewRequest("GET", "/settings/analyzer", nil)
	w := httptest.NewRecorder()
	GetAnalyzerSettingsHandler(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var settings models.AnalyzerSettings
	decodeJSON(t, w, &settings)
	assert.Equal(t, models.DefaultConfidenceThreshold, settings.ConfidenceThreshold)
	assert.Equal(t, int64(models.DefaultMaxFileSizeBytes), settings.MaxFileSizeBytes)
}

func TestUpdateAnalyzerSettingsHandler(t *testing.T) {
	defer database.SetAnalyzerSettings(models.DefaultAnalyzerSettings())

	w := postJSON(t, UpdateAnalyzerSettingsHandler, "/settings/analyzer", models.AnalyzerSettings{
		ConfidenceThreshold: 0.75,
		EnabledCategories:   []string{"noise", "debug"},
		MaxFileSizeBytes:    2048,
	})
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := database.GetAnalyzerSettings()
	require.NoError(t, err)
	assert.Equal(t, 0.75, stored.ConfidenceThreshold)
	assert.Equal(t, []string{"noise", "debug"}, stored.EnabledCategories)
	assert.Equal(t, int64(2048), stored.MaxFileSizeBytes)
}

func TestUpdateAnalyzerSettingsZeroesFillDefaults(t *testing.T) {
	defer database.SetAnalyzerSettings(models.DefaultAnalyzerSettings())

	w := postJSON(t, UpdateAnalyzerSettingsHandler, "/settings/analyzer", models.AnalyzerSettings{})
	require.Equal(t, http.StatusOK, w.Code)

	var saved models.AnalyzerSettings
	decodeJSON(t, w, &saved)
	assert.Equal(t, models.DefaultConfidenceThreshold, saved.ConfidenceThreshold)
	assert.Equal(t, int64(models.DefaultMaxFileSizeBytes), saved.MaxFileSizeBytes)
}

func TestUpdateAnalyzerSettingsValidation(t *testing.T) {
	cases := []struct {
		name     string
		settings models.AnalyzerSettings
	}{
		{"threshold above one", models.AnalyzerSettings{ConfidenceThreshold: 1.5}},
		{"negative threshold", models.AnalyzerSettings{ConfidenceThreshold: -0.1}},
		{"unknown category", models.AnalyzerSettings{EnabledCategories: []string{"sparkles"}}},
		{"negative size cap", models.AnalyzerSettings{MaxFileSizeBytes: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, UpdateAnalyzerSettingsHandler, "/settings/analyzer", tc.settings)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

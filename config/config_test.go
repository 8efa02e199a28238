package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commentsweep/models"
)

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandTilde("~/notes/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "notes", "config.yaml"), got)

	got, err = expandTilde("/absolute/path.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/absolute/path.yaml", got)

	got, err = expandTilde("relative/path.yaml")
	require.NoError(t, err)
	assert.Equal(t, "relative/path.yaml", got)
}

func TestNormalizeScannerSettings(t *testing.T) {
	old := AppConfig
	defer func() { AppConfig = old }()

	AppConfig.Scanner.Threshold = 1.7
	AppConfig.Scanner.MaxFileSizeBytes = -5
	AppConfig.Scanner.Workers = -2
	AppConfig.Scanner.WatchIntervalSeconds = 0
	normalizeScannerSettings()

	assert.Equal(t, models.DefaultConfidenceThreshold, AppConfig.Scanner.Threshold)
	assert.Equal(t, int64(models.DefaultMaxFileSizeBytes), AppConfig.Scanner.MaxFileSizeBytes)
	assert.Equal(t, 0, AppConfig.Scanner.Workers)
	assert.Equal(t, 30, AppConfig.Scanner.WatchIntervalSeconds)

	AppConfig.Scanner.Threshold = 0.82
	normalizeScannerSettings()
	assert.Equal(t, 0.82, AppConfig.Scanner.Threshold, "in-range threshold kept")
}

func TestApplyEditorSettings(t *testing.T) {
	old := AppConfig
	defer func() { AppConfig = old }()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	content := `{
  "editor.formatOnSave": true,
  "commentsweep.confidenceThreshold": 0.75,
  "commentsweep.enabledCategories": ["noise", "debug", ""],
  "commentsweep.maxFileSizeBytes": 4096
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	AppConfig.Scanner.Threshold = 0.6
	applyEditorSettings(path)

	assert.Equal(t, 0.75, AppConfig.Scanner.Threshold)
	assert.Equal(t, []string{"noise", "debug"}, AppConfig.Scanner.Categories)
	assert.Equal(t, int64(4096), AppConfig.Scanner.MaxFileSizeBytes)
}

func TestApplyEditorSettingsIgnoresBadValues(t *testing.T) {
	old := AppConfig
	defer func() { AppConfig = old }()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"commentsweep.confidenceThreshold": 3.5}`), 0644))

	AppConfig.Scanner.Threshold = 0.6
	applyEditorSettings(path)
	assert.Equal(t, 0.6, AppConfig.Scanner.Threshold, "out-of-range editor threshold ignored")
}

func TestApplyEditorSettingsMissingFile(t *testing.T) {
	old := AppConfig
	defer func() { AppConfig = old }()

	AppConfig.Scanner.Threshold = 0.6
	applyEditorSettings(filepath.Join(t.TempDir(), "absent.json"))
	assert.Equal(t, 0.6, AppConfig.Scanner.Threshold)
}

func TestApplyEditorSettingsMalformedJSON(t *testing.T) {
	old := AppConfig
	defer func() { AppConfig = old }()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{oops"), 0644))

	AppConfig.Scanner.Threshold = 0.6
	applyEditorSettings(path)
	assert.Equal(t, 0.6, AppConfig.Scanner.Threshold)
}

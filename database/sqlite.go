package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"commentsweep/logger"
	"commentsweep/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

func InitDB(dataSourceName string) error {
	var err error
	dbDir := filepath.Dir(dataSourceName)
	if dbDir != "." && dbDir != "" {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			logger.Error("Failed to create database directory %s: %v", dbDir, err)
			return fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
		}
	}

	DB, err = sql.Open("sqlite3", dataSourceName+"?_foreign_keys=on")
	if err != nil {
		logger.Error("Failed to open database: %v", err)
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err = DB.Ping(); err != nil {
		logger.Error("Failed to connect to database: %v", err)
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	migrationsPath := "file://database/migrations"
	m, err := migrate.New(
		migrationsPath,
		fmt.Sprintf("sqlite3://%s", dataSourceName+"?_foreign_keys=on"),
	)
	if err != nil {
		logger.Error("Failed to initialize migrations: %v (path: %s)", err, migrationsPath)
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}

	logger.Info("Applying database migrations...")
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations: %v", err)
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.Info("Database migrations applied successfully (or no changes).")
	return seedDefaultSettings()
}

// seedDefaultSettings writes the default analyzer settings on first run so the
// settings API always has a row to return. Existing values are left alone.
func seedDefaultSettings() error {
	existing, err := GetSetting(models.AnalyzerSettingsKey)
	if err != nil {
		return fmt.Errorf("checking for existing analyzer settings: %w", err)
	}
	if existing != "" {
		return nil
	}

	defaults := models.DefaultAnalyzerSettings()
	payload, err := json.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("marshalling default analyzer settings: %w", err)
	}
	if err := SetSetting(models.AnalyzerSettingsKey, string(payload)); err != nil {
		return fmt.Errorf("seeding default analyzer settings: %w", err)
	}
	logger.Info("Seeded default analyzer settings.")
	return nil
}

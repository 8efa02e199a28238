package handlers

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"commentsweep/database"
)

// TestMain points the package-level database at a throwaway sqlite file with
// the real migration schema applied, so handlers run against the same tables
// they see in production.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "handlers-test-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, "test.db")+"?_foreign_keys=on")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open test database: %v\n", err)
		os.Exit(1)
	}

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "database", "migrations", "000001_create_initial_tables.up.sql"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read migration schema: %v\n", err)
		os.Exit(1)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		fmt.Fprintf(os.Stderr, "failed to apply migration schema: %v\n", err)
		os.Exit(1)
	}
	database.DB = db

	code := m.Run()

	db.Close()
	os.RemoveAll(dir)
	os.Exit(code)
}

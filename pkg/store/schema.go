package store

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// CreateSchema creates the database schema if it doesn't exist.
func CreateSchema(db *sql.DB) error {
	if err := createSchemaVersionTable(db); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	if err := createDecisionsTable(db); err != nil {
		return fmt.Errorf("creating decisions table: %w", err)
	}

	if err := createQuotationsTable(db); err != nil {
		return fmt.Errorf("creating quotations table: %w", err)
	}

	return nil
}

func createSchemaVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Insert version if table is empty
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count)
	if err != nil {
		return err
	}

	if count == 0 {
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion)
		return err
	}

	return nil
}

func createDecisionsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS decisions (
			id INTEGER PRIMARY KEY NOT NULL,
			name TEXT NOT NULL,
			cite TEXT,
			decision_date TEXT,
			data_json TEXT NOT NULL
		)
	`)
	return err
}

func createQuotationsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS quotations (
			id TEXT PRIMARY KEY NOT NULL,
			key TEXT NOT NULL UNIQUE,
			decision_id INTEGER NOT NULL,
			decision TEXT,
			opinion_type TEXT NOT NULL,
			author TEXT,
			text_id TEXT NOT NULL,
			phrase TEXT,
			selection_json TEXT NOT NULL,
			passage TEXT NOT NULL,
			note TEXT,
			created_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create index for efficient quotation lookup by decision
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_quotations_decision_id ON quotations(decision_id)
	`)
	return err
}

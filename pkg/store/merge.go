package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// MergeConfig configures the merge operation.
type MergeConfig struct {
	// SourcePaths are the database files to merge from.
	SourcePaths []string
	// DestPath is the destination database file.
	DestPath string
}

// MergeStats tracks merge operation statistics.
type MergeStats struct {
	DecisionsMerged  int
	QuotationsMerged int
	SourcesProcessed int
}

// Merge combines multiple research databases into one.
// Deduplication is handled via INSERT OR IGNORE on the decision ID and the
// quotation key, so the first source to supply a record wins.
func Merge(cfg MergeConfig) (*MergeStats, error) {
	if len(cfg.SourcePaths) == 0 {
		return nil, fmt.Errorf("no source databases specified")
	}
	if cfg.DestPath == "" {
		return nil, fmt.Errorf("destination path is required")
	}

	// Open/create destination database
	destDB, err := sql.Open("sqlite", cfg.DestPath)
	if err != nil {
		return nil, fmt.Errorf("opening destination database: %w", err)
	}
	defer destDB.Close()

	// Initialize schema on destination
	if err := CreateSchema(destDB); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	stats := &MergeStats{}

	for _, sourcePath := range cfg.SourcePaths {
		sourceStats, err := mergeFrom(destDB, sourcePath)
		if err != nil {
			return stats, fmt.Errorf("merging from %s: %w", sourcePath, err)
		}
		stats.DecisionsMerged += sourceStats.DecisionsMerged
		stats.QuotationsMerged += sourceStats.QuotationsMerged
		stats.SourcesProcessed++
	}

	return stats, nil
}

// mergeFrom copies data from a source database to the destination.
func mergeFrom(destDB *sql.DB, sourcePath string) (*MergeStats, error) {
	sourceDB, err := sql.Open("sqlite", sourcePath)
	if err != nil {
		return nil, fmt.Errorf("opening source database: %w", err)
	}
	defer sourceDB.Close()

	stats := &MergeStats{}

	// Start transaction for efficiency
	tx, err := destDB.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stats.DecisionsMerged, err = mergeTable(tx, sourceDB, "decisions", "id, name, cite, decision_date, data_json")
	if err != nil {
		return nil, fmt.Errorf("merging decisions: %w", err)
	}

	stats.QuotationsMerged, err = mergeTable(tx, sourceDB, "quotations", quotationColumns)
	if err != nil {
		return nil, fmt.Errorf("merging quotations: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return stats, nil
}

// mergeTable copies columns of every row of table, returning the number
// of rows the destination did not already have.
func mergeTable(tx *sql.Tx, sourceDB *sql.DB, table, columns string) (int, error) {
	rows, err := sourceDB.Query("SELECT " + columns + " FROM " + table + " ORDER BY rowid")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	n := len(strings.Split(columns, ","))
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
	stmt, err := tx.Prepare("INSERT OR IGNORE INTO " + table + " (" + columns + ") VALUES (" + placeholders + ")")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	values := make([]any, n)
	dest := make([]any, n)
	for i := range values {
		dest[i] = &values[i]
	}

	count := 0
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return count, err
		}
		result, err := stmt.Exec(values...)
		if err != nil {
			return count, err
		}
		affected, _ := result.RowsAffected()
		if affected > 0 {
			count++
		}
	}
	return count, rows.Err()
}

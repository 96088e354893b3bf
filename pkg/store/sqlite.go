package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/justopinion/justopinion/pkg/types"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-based store.
// Use ":memory:" for in-memory database (useful for testing).
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A ":memory:" database exists per connection.
	db.SetMaxOpenConns(1)

	// Initialize schema
	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// AddDecision stores a decision, replacing any earlier copy.
func (s *SQLiteStore) AddDecision(ctx context.Context, d *types.Decision) error {
	if d.ID == 0 {
		return fmt.Errorf("decision %s has no ID", d)
	}
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshaling decision: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO decisions (id, name, cite, decision_date, data_json)
		VALUES (?, ?, ?, ?, ?)
	`,
		d.ID,
		decisionName(d),
		decisionCite(d),
		d.DecisionDate.String(),
		string(data),
	)
	if err != nil {
		return fmt.Errorf("inserting decision: %w", err)
	}
	return nil
}

// GetDecision retrieves a decision by ID.
func (s *SQLiteStore) GetDecision(ctx context.Context, id int64) (*types.Decision, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data_json FROM decisions WHERE id = ?", id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("decision %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying decision: %w", err)
	}
	return decodeDecision(data)
}

// DecisionExists checks if a decision has already been downloaded.
func (s *SQLiteStore) DecisionExists(ctx context.Context, id int64) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM decisions WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking decision existence: %w", err)
	}
	return count > 0, nil
}

// ListDecisions retrieves all decisions, ordered by ID.
func (s *SQLiteStore) ListDecisions(ctx context.Context) ([]*types.Decision, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT data_json FROM decisions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying decisions: %w", err)
	}
	defer rows.Close()

	var decisions []*types.Decision
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning decision: %w", err)
		}
		d, err := decodeDecision(data)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating decisions: %w", err)
	}

	return decisions, nil
}

// AddQuotation stores a quotation (deduplicated).
func (s *SQLiteStore) AddQuotation(ctx context.Context, q *types.Quotation) error {
	prepareQuotation(q)
	selectionJSON, err := json.Marshal(q.Selection)
	if err != nil {
		return fmt.Errorf("marshaling selection: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO quotations (id, key, decision_id, decision, opinion_type, author, text_id, phrase, selection_json, passage, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		q.ID,
		q.Key,
		q.DecisionID,
		q.Decision,
		q.OpinionType,
		q.Author,
		q.TextID.Hex(),
		q.Phrase,
		string(selectionJSON),
		q.Passage,
		q.Note,
		q.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting quotation: %w", err)
	}

	if n, _ := result.RowsAffected(); n > 0 {
		return nil
	}

	// Deduplicate - already exists
	var id string
	err = s.db.QueryRowContext(ctx, "SELECT id FROM quotations WHERE key = ?", q.Key).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("quotation %s already exists with a different key", q.ID)
	}
	if err != nil {
		return fmt.Errorf("querying quotation key: %w", err)
	}
	q.ID = id
	return nil
}

// GetQuotation retrieves a quotation by ID.
func (s *SQLiteStore) GetQuotation(ctx context.Context, id string) (*types.Quotation, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+quotationColumns+" FROM quotations WHERE id = ?", id)
	q, err := scanSQLiteQuotation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("quotation %s: %w", id, ErrNotFound)
	}
	return q, err
}

// GetQuotations retrieves the quotations from one decision.
func (s *SQLiteStore) GetQuotations(ctx context.Context, decisionID int64) ([]*types.Quotation, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+quotationColumns+" FROM quotations WHERE decision_id = ? ORDER BY rowid", decisionID)
	if err != nil {
		return nil, fmt.Errorf("querying quotations: %w", err)
	}
	return collectSQLiteQuotations(rows)
}

// GetAllQuotations retrieves all quotations (for export).
func (s *SQLiteStore) GetAllQuotations(ctx context.Context) ([]*types.Quotation, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+quotationColumns+" FROM quotations ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("querying quotations: %w", err)
	}
	return collectSQLiteQuotations(rows)
}

// QuotationExists checks if a quotation with this key exists.
func (s *SQLiteStore) QuotationExists(ctx context.Context, key string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM quotations WHERE key = ?", key).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking quotation existence: %w", err)
	}
	return count > 0, nil
}

// DeleteQuotation removes a quotation.
func (s *SQLiteStore) DeleteQuotation(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM quotations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting quotation: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("quotation %s: %w", id, ErrNotFound)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func collectSQLiteQuotations(rows *sql.Rows) ([]*types.Quotation, error) {
	defer rows.Close()

	quotations := []*types.Quotation{}
	for rows.Next() {
		q, err := scanSQLiteQuotation(rows)
		if err != nil {
			return nil, err
		}
		quotations = append(quotations, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quotations: %w", err)
	}

	return quotations, nil
}

func scanSQLiteQuotation(row scanner) (*types.Quotation, error) {
	var q types.Quotation
	var textID, selectionJSON, createdAt string

	err := row.Scan(
		&q.ID,
		&q.Key,
		&q.DecisionID,
		&q.Decision,
		&q.OpinionType,
		&q.Author,
		&textID,
		&q.Phrase,
		&selectionJSON,
		&q.Passage,
		&q.Note,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning quotation: %w", err)
	}

	q.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if err := decodeQuotation(&q, textID, selectionJSON); err != nil {
		return nil, err
	}
	return &q, nil
}

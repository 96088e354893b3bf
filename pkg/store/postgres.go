package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/justopinion/justopinion/pkg/types"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS decisions (
    id BIGINT PRIMARY KEY,
    name TEXT NOT NULL,
    cite TEXT,
    decision_date TEXT,
    data JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS quotations (
    id TEXT PRIMARY KEY,
    key TEXT NOT NULL UNIQUE,
    decision_id BIGINT NOT NULL,
    decision TEXT NOT NULL DEFAULT '',
    opinion_type TEXT NOT NULL,
    author TEXT NOT NULL DEFAULT '',
    text_id TEXT NOT NULL,
    phrase TEXT NOT NULL DEFAULT '',
    selection_json JSONB NOT NULL,
    passage TEXT NOT NULL,
    note TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quotations_decision_id ON quotations(decision_id);
`

// PostgresStore implements Store using a PostgreSQL connection pool.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgres connects to connString and creates the schema.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &PostgresStore{db: pool}, nil
}

func (r *PostgresStore) AddDecision(ctx context.Context, d *types.Decision) error {
	if d.ID == 0 {
		return fmt.Errorf("decision %s has no ID", d)
	}
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshaling decision: %w", err)
	}

	query := `
		INSERT INTO decisions (id, name, cite, decision_date, data)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			cite = EXCLUDED.cite,
			decision_date = EXCLUDED.decision_date,
			data = EXCLUDED.data
	`
	_, err = r.db.Exec(ctx, query, d.ID, decisionName(d), decisionCite(d), d.DecisionDate.String(), string(data))
	if err != nil {
		return fmt.Errorf("inserting decision: %w", err)
	}
	return nil
}

func (r *PostgresStore) GetDecision(ctx context.Context, id int64) (*types.Decision, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT data FROM decisions WHERE id = $1`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("decision %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying decision: %w", err)
	}
	return decodeDecision(string(data))
}

func (r *PostgresStore) DecisionExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM decisions WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking decision existence: %w", err)
	}
	return exists, nil
}

func (r *PostgresStore) ListDecisions(ctx context.Context) ([]*types.Decision, error) {
	rows, err := r.db.Query(ctx, `SELECT data FROM decisions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying decisions: %w", err)
	}
	defer rows.Close()

	var decisions []*types.Decision
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning decision: %w", err)
		}
		d, err := decodeDecision(string(data))
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

func (r *PostgresStore) AddQuotation(ctx context.Context, q *types.Quotation) error {
	prepareQuotation(q)
	selectionJSON, err := json.Marshal(q.Selection)
	if err != nil {
		return fmt.Errorf("marshaling selection: %w", err)
	}

	query := `
		INSERT INTO quotations (` + quotationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (key) DO NOTHING
		RETURNING id
	`
	var id string
	err = r.db.QueryRow(ctx, query,
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
		q.CreatedAt,
	).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("inserting quotation: %w", err)
	}

	// Deduplicate - already exists
	err = r.db.QueryRow(ctx, `SELECT id FROM quotations WHERE key = $1`, q.Key).Scan(&id)
	if err != nil {
		return fmt.Errorf("querying quotation key: %w", err)
	}
	q.ID = id
	return nil
}

func (r *PostgresStore) GetQuotation(ctx context.Context, id string) (*types.Quotation, error) {
	row := r.db.QueryRow(ctx, `SELECT `+quotationColumns+` FROM quotations WHERE id = $1`, id)
	q, err := scanPostgresQuotation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("quotation %s: %w", id, ErrNotFound)
	}
	return q, err
}

func (r *PostgresStore) GetQuotations(ctx context.Context, decisionID int64) ([]*types.Quotation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+quotationColumns+` FROM quotations WHERE decision_id = $1 ORDER BY created_at, id`, decisionID)
	if err != nil {
		return nil, fmt.Errorf("querying quotations: %w", err)
	}
	return collectPostgresQuotations(rows)
}

func (r *PostgresStore) GetAllQuotations(ctx context.Context) ([]*types.Quotation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+quotationColumns+` FROM quotations ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("querying quotations: %w", err)
	}
	return collectPostgresQuotations(rows)
}

func (r *PostgresStore) QuotationExists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM quotations WHERE key = $1)`, key).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking quotation existence: %w", err)
	}
	return exists, nil
}

func (r *PostgresStore) DeleteQuotation(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM quotations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting quotation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("quotation %s: %w", id, ErrNotFound)
	}
	return nil
}

// Close releases every pooled connection.
func (r *PostgresStore) Close() error {
	r.db.Close()
	return nil
}

func collectPostgresQuotations(rows pgx.Rows) ([]*types.Quotation, error) {
	defer rows.Close()

	quotations := []*types.Quotation{}
	for rows.Next() {
		q, err := scanPostgresQuotation(rows)
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

func scanPostgresQuotation(row scanner) (*types.Quotation, error) {
	var q types.Quotation
	var textID string
	var selectionJSON []byte

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
		&q.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning quotation: %w", err)
	}
	q.CreatedAt = q.CreatedAt.UTC()

	if err := decodeQuotation(&q, textID, string(selectionJSON)); err != nil {
		return nil, err
	}
	return &q, nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/justopinion/justopinion/pkg/types"
)

// ErrNotFound is returned when a requested record doesn't exist.
var ErrNotFound = errors.New("not found")

// Store provides persistence for downloaded decisions and saved quotations.
// This interface abstracts the underlying storage implementation,
// allowing for different backends (memory, SQLite, PostgreSQL).
type Store interface {
	// AddDecision stores a decision, replacing any earlier copy with the same ID.
	AddDecision(ctx context.Context, d *types.Decision) error

	// GetDecision retrieves a decision by ID.
	GetDecision(ctx context.Context, id int64) (*types.Decision, error)

	// DecisionExists checks if a decision has already been downloaded.
	DecisionExists(ctx context.Context, id int64) (bool, error)

	// ListDecisions retrieves all decisions, ordered by ID.
	ListDecisions(ctx context.Context) ([]*types.Decision, error)

	// AddQuotation stores a quotation (deduplicated by Key). A new
	// quotation is assigned an ID; a duplicate takes the stored ID.
	AddQuotation(ctx context.Context, q *types.Quotation) error

	// GetQuotation retrieves a quotation by ID.
	GetQuotation(ctx context.Context, id string) (*types.Quotation, error)

	// GetQuotations retrieves the quotations from one decision.
	GetQuotations(ctx context.Context, decisionID int64) ([]*types.Quotation, error)

	// GetAllQuotations retrieves all quotations (for export).
	GetAllQuotations(ctx context.Context) ([]*types.Quotation, error)

	// QuotationExists checks if a quotation with this key exists.
	QuotationExists(ctx context.Context, key string) (bool, error)

	// DeleteQuotation removes a quotation.
	DeleteQuotation(ctx context.Context, id string) error

	// Close closes the database connection.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path or a PostgreSQL connection URL.
	// Use ":memory:" for an in-memory store (useful for testing).
	Path string
}

// New creates a Store for cfg.Path: a MemoryStore for ":memory:", a
// PostgresStore for postgres:// URLs, and a SQLiteStore otherwise.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch {
	case cfg.Path == "":
		return nil, fmt.Errorf("path is required")
	case cfg.Path == ":memory:":
		return NewMemory(), nil
	case strings.HasPrefix(cfg.Path, "postgres://"), strings.HasPrefix(cfg.Path, "postgresql://"):
		return NewPostgres(ctx, cfg.Path)
	default:
		return NewSQLite(cfg.Path)
	}
}

// prepareQuotation fills in the fields a store assigns.
func prepareQuotation(q *types.Quotation) {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.Key == "" {
		q.Key = types.ComputeQuotationKey(q.TextID, q.Selection)
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now()
	}
}

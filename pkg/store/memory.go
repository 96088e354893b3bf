package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/justopinion/justopinion/pkg/types"
)

// now is replaced in tests.
var now = func() time.Time { return time.Now().UTC().Truncate(time.Second) }

// MemoryStore implements Store using in-memory data structures.
type MemoryStore struct {
	mu         sync.RWMutex
	decisions  map[int64]*types.Decision
	quotations map[string]*types.Quotation // keyed by ID
	keys       map[string]string           // quotation key -> ID
	order      []string                    // quotation IDs in insertion order
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		decisions:  make(map[int64]*types.Decision),
		quotations: make(map[string]*types.Quotation),
		keys:       make(map[string]string),
	}
}

// AddDecision stores a decision.
func (m *MemoryStore) AddDecision(ctx context.Context, d *types.Decision) error {
	if d.ID == 0 {
		return fmt.Errorf("decision %s has no ID", d)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.decisions[d.ID] = d
	return nil
}

// GetDecision retrieves a decision by ID.
func (m *MemoryStore) GetDecision(ctx context.Context, id int64) (*types.Decision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.decisions[id]
	if !ok {
		return nil, fmt.Errorf("decision %d: %w", id, ErrNotFound)
	}
	return d, nil
}

// DecisionExists checks if a decision has already been downloaded.
func (m *MemoryStore) DecisionExists(ctx context.Context, id int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.decisions[id]
	return exists, nil
}

// ListDecisions retrieves all decisions, ordered by ID.
func (m *MemoryStore) ListDecisions(ctx context.Context) ([]*types.Decision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*types.Decision, 0, len(m.decisions))
	for _, d := range m.decisions {
		result = append(result, d)
	}
	slices.SortFunc(result, func(a, b *types.Decision) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return result, nil
}

// AddQuotation stores a quotation (deduplicated).
func (m *MemoryStore) AddQuotation(ctx context.Context, q *types.Quotation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prepareQuotation(q)
	if id, exists := m.keys[q.Key]; exists {
		// Deduplicate - already exists
		q.ID = id
		return nil
	}

	m.quotations[q.ID] = q
	m.keys[q.Key] = q.ID
	m.order = append(m.order, q.ID)
	return nil
}

// GetQuotation retrieves a quotation by ID.
func (m *MemoryStore) GetQuotation(ctx context.Context, id string) (*types.Quotation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q, ok := m.quotations[id]
	if !ok {
		return nil, fmt.Errorf("quotation %s: %w", id, ErrNotFound)
	}
	return q, nil
}

// GetQuotations retrieves the quotations from one decision.
func (m *MemoryStore) GetQuotations(ctx context.Context, decisionID int64) ([]*types.Quotation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []*types.Quotation{}
	for _, id := range m.order {
		if q := m.quotations[id]; q.DecisionID == decisionID {
			result = append(result, q)
		}
	}
	return result, nil
}

// GetAllQuotations retrieves all quotations in the order they were added.
func (m *MemoryStore) GetAllQuotations(ctx context.Context) ([]*types.Quotation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*types.Quotation, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.quotations[id])
	}
	return result, nil
}

// QuotationExists checks if a quotation with this key exists.
func (m *MemoryStore) QuotationExists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.keys[key]
	return exists, nil
}

// DeleteQuotation removes a quotation.
func (m *MemoryStore) DeleteQuotation(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	q, ok := m.quotations[id]
	if !ok {
		return fmt.Errorf("quotation %s: %w", id, ErrNotFound)
	}
	delete(m.quotations, id)
	delete(m.keys, q.Key)
	m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == id })
	return nil
}

// Close closes the database connection.
// For in-memory store, this is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

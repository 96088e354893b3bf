package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemory(t *testing.T) {
	// Act
	store := NewMemory()

	// Assert
	require.NotNil(t, store)
	require.NotNil(t, store.decisions)
	require.NotNil(t, store.quotations)
	require.NotNil(t, store.keys)
}

func TestMemory_GetAllQuotations_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	first := testQuotation(t, 1, [2]int{126, 138})
	second := testQuotation(t, 1, [2]int{57, 66})
	require.NoError(t, store.AddQuotation(ctx, first))
	require.NoError(t, store.AddQuotation(ctx, second))

	all, err := store.GetAllQuotations(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q := testQuotation(t, int64(i%2+1), [2]int{i, i + 1})
			assert.NoError(t, store.AddQuotation(ctx, q))
			assert.NoError(t, store.AddDecision(ctx, testDecision(int64(i+1))))
		}()
	}
	wg.Wait()

	all, err := store.GetAllQuotations(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 20)

	decisions, err := store.ListDecisions(ctx)
	require.NoError(t, err)
	assert.Len(t, decisions, 20)
}

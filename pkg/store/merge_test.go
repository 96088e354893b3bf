package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_EmptySources(t *testing.T) {
	_, err := Merge(MergeConfig{
		SourcePaths: []string{},
		DestPath:    filepath.Join(t.TempDir(), "dest.db"),
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no source databases")
}

func TestMerge_NoDestination(t *testing.T) {
	_, err := Merge(MergeConfig{
		SourcePaths: []string{"source.db"},
		DestPath:    "",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "destination path is required")
}

// newSource writes a research database holding one decision and the
// quotations selected by each range set.
func newSource(t *testing.T, path string, decisionID int64, selections ...[][2]int) {
	t.Helper()
	ctx := context.Background()
	s, err := NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.AddDecision(ctx, testDecision(decisionID)))
	for _, ranges := range selections {
		require.NoError(t, s.AddQuotation(ctx, testQuotation(t, decisionID, ranges...)))
	}
}

func TestMerge_SingleSource(t *testing.T) {
	tmpDir := t.TempDir()
	sourcePath := filepath.Join(tmpDir, "source.db")
	newSource(t, sourcePath, 1, [][2]int{{85, 104}})

	destPath := filepath.Join(tmpDir, "dest.db")
	stats, err := Merge(MergeConfig{
		SourcePaths: []string{sourcePath},
		DestPath:    destPath,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.DecisionsMerged)
	assert.Equal(t, 1, stats.QuotationsMerged)
	assert.Equal(t, 1, stats.SourcesProcessed)

	dest, err := NewSQLite(destPath)
	require.NoError(t, err)
	defer dest.Close()

	quotations, err := dest.GetQuotations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, quotations, 1)
	assert.Equal(t, "…method of operation…", quotations[0].Passage)
}

func TestMerge_MultipleSources(t *testing.T) {
	tmpDir := t.TempDir()
	source1Path := filepath.Join(tmpDir, "source1.db")
	newSource(t, source1Path, 1, [][2]int{{85, 104}})
	source2Path := filepath.Join(tmpDir, "source2.db")
	newSource(t, source2Path, 2, [][2]int{{57, 66}}, [][2]int{{126, 138}})

	destPath := filepath.Join(tmpDir, "merged.db")
	stats, err := Merge(MergeConfig{
		SourcePaths: []string{source1Path, source2Path},
		DestPath:    destPath,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.DecisionsMerged)
	assert.Equal(t, 3, stats.QuotationsMerged)
	assert.Equal(t, 2, stats.SourcesProcessed)

	dest, err := NewSQLite(destPath)
	require.NoError(t, err)
	defer dest.Close()

	decisions, err := dest.ListDecisions(context.Background())
	require.NoError(t, err)
	assert.Len(t, decisions, 2)
}

func TestMerge_Deduplication(t *testing.T) {
	tmpDir := t.TempDir()

	// Two researchers saved the same passage of the same decision.
	source1Path := filepath.Join(tmpDir, "source1.db")
	newSource(t, source1Path, 1, [][2]int{{85, 104}})
	source2Path := filepath.Join(tmpDir, "source2.db")
	newSource(t, source2Path, 1, [][2]int{{85, 104}})

	stats, err := Merge(MergeConfig{
		SourcePaths: []string{source1Path, source2Path},
		DestPath:    filepath.Join(tmpDir, "merged.db"),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.DecisionsMerged, "should only merge 1 unique decision")
	assert.Equal(t, 1, stats.QuotationsMerged, "should only merge 1 unique quotation")
	assert.Equal(t, 2, stats.SourcesProcessed)
}

func TestMerge_MissingSource(t *testing.T) {
	tmpDir := t.TempDir()
	_, err := Merge(MergeConfig{
		SourcePaths: []string{filepath.Join(tmpDir, "missing", "source.db")},
		DestPath:    filepath.Join(tmpDir, "merged.db"),
	})
	assert.Error(t, err)
}

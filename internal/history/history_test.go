package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "bughound.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndAggregate(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Record("python", "high", 2, 10))
	require.NoError(t, store.Record("python", "low", 0, 3))
	require.NoError(t, store.Record("javascript", "medium", 1, 1))

	stats, err := store.Aggregate()
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalAnalyses)
	assert.Equal(t, int64(3), stats.TotalIssues)
	assert.Equal(t, int64(2), stats.ByLanguage["python"])
	assert.Equal(t, int64(1), stats.ByLanguage["javascript"])
	assert.Equal(t, int64(1), stats.BySeverity["high"])
	assert.Equal(t, int64(1), stats.BySeverity["medium"])
	assert.Equal(t, int64(1), stats.BySeverity["low"])
}

func TestAggregateEmptyStore(t *testing.T) {
	store := newTestStore(t)

	stats, err := store.Aggregate()
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.TotalAnalyses)
	assert.Equal(t, int64(0), stats.TotalIssues)
	assert.Empty(t, stats.ByLanguage)
	assert.Empty(t, stats.BySeverity)
}

func TestRecent(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Record("python", "low", 0, 1))
	require.NoError(t, store.Record("python", "high", 3, 2))
	require.NoError(t, store.Record("go", "medium", 1, 5))

	entries, err := store.Recent(2)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	// newest first
	assert.Equal(t, "go", entries[0].Language)
	assert.Equal(t, "python", entries[1].Language)
	assert.Equal(t, "high", entries[1].Severity)
}

func TestRecentDefaultLimit(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Record("python", "low", 0, 1))

	entries, err := store.Recent(0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

package storage

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linktidy/linktidy/internal/bookmark"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "linktidy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

func TestOpenCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "linktidy.db")
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestSaveAndLoadValidations(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	records := []bookmark.Record{
		{URL: "https://alive.example.com", Valid: boolPtr(true), StatusCode: intPtr(http.StatusOK)},
		{URL: "https://dead.example.com", Valid: boolPtr(false)},
		{URL: "https://unchecked.example.com"},
	}

	require.NoError(t, store.SaveValidations(ctx, records))

	results, err := store.LoadValidations(ctx, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)

	alive := results["https://alive.example.com"]
	assert.True(t, alive.Valid)
	require.NotNil(t, alive.StatusCode)
	assert.Equal(t, http.StatusOK, *alive.StatusCode)
	assert.WithinDuration(t, time.Now().UTC(), alive.CheckedAt, time.Minute)

	dead := results["https://dead.example.com"]
	assert.False(t, dead.Valid)
	assert.Nil(t, dead.StatusCode)

	_, ok := results["https://unchecked.example.com"]
	assert.False(t, ok)
}

func TestSaveValidationsUpserts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	records := []bookmark.Record{
		{URL: "https://example.com", Valid: boolPtr(false), StatusCode: intPtr(http.StatusNotFound)},
	}
	require.NoError(t, store.SaveValidations(ctx, records))

	records[0].Valid = boolPtr(true)
	records[0].StatusCode = intPtr(http.StatusOK)
	require.NoError(t, store.SaveValidations(ctx, records))

	results, err := store.LoadValidations(ctx, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results["https://example.com"].Valid)
	assert.Equal(t, http.StatusOK, *results["https://example.com"].StatusCode)
}

func TestLoadValidationsMaxAge(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	records := []bookmark.Record{{URL: "https://example.com", Valid: boolPtr(true)}}
	require.NoError(t, store.SaveValidations(ctx, records))

	fresh, err := store.LoadValidations(ctx, time.Hour)
	require.NoError(t, err)
	assert.Len(t, fresh, 1)

	// Timestamps are stored at second resolution, so leave a full
	// second of slack beyond the window.
	time.Sleep(2100 * time.Millisecond)
	stale, err := store.LoadValidations(ctx, time.Second)
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestSaveAndListRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := Run{
		ID:           uuid.NewString(),
		Strategy:     "exact-url",
		KeepRule:     "first",
		TotalRecords: 20,
		RemovedCount: 5,
		GroupCount:   3,
		CreatedAt:    time.Now().UTC().Add(-time.Hour),
	}
	second := Run{
		ID:           uuid.NewString(),
		Strategy:     "fuzzy",
		KeepRule:     "shortest-label",
		TotalRecords: 15,
		RemovedCount: 2,
		GroupCount:   2,
	}
	require.NoError(t, store.SaveRun(ctx, first))
	require.NoError(t, store.SaveRun(ctx, second))

	runs, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, "fuzzy", runs[0].Strategy)
	assert.Equal(t, first.ID, runs[1].ID)
	assert.Equal(t, 5, runs[1].RemovedCount)

	limited, err := store.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, second.ID, limited[0].ID)
}
package main

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linktidy/linktidy/internal/bookmark"
	"github.com/linktidy/linktidy/internal/config"
	"github.com/linktidy/linktidy/internal/storage"
)

func openValidationStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "linktidy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func cachingConfig() *config.Config {
	cfg := config.Default()
	cfg.Validate.CacheMaxAge = "168h"
	return cfg
}

func truePtr() *bool { v := true; return &v }

func TestApplyCacheFillsKnownURLs(t *testing.T) {
	ctx := context.Background()
	store := openValidationStore(t)

	code := http.StatusOK
	seeded := []bookmark.Record{
		{URL: "https://cached.example.com", Valid: truePtr(), StatusCode: &code},
	}
	require.NoError(t, store.SaveValidations(ctx, seeded))

	records := []bookmark.Record{
		{URL: "https://cached.example.com"},
		{URL: "https://unknown.example.com"},
	}
	hits, err := applyCache(ctx, store, cachingConfig(), records)
	require.NoError(t, err)
	assert.Equal(t, 1, hits)

	require.NotNil(t, records[0].Valid)
	assert.True(t, *records[0].Valid)
	require.NotNil(t, records[0].StatusCode)
	assert.Equal(t, http.StatusOK, *records[0].StatusCode)
	assert.Nil(t, records[1].Valid)

	pending := pendingRecords(records)
	require.Len(t, pending, 1)
	assert.Equal(t, "https://unknown.example.com", pending[0].URL)
}

func TestApplyCacheDisabledWithoutWindow(t *testing.T) {
	ctx := context.Background()
	store := openValidationStore(t)

	seeded := []bookmark.Record{{URL: "https://cached.example.com", Valid: truePtr()}}
	require.NoError(t, store.SaveValidations(ctx, seeded))

	records := []bookmark.Record{{URL: "https://cached.example.com"}}
	hits, err := applyCache(ctx, store, config.Default(), records)
	require.NoError(t, err)
	assert.Equal(t, 0, hits)
	assert.Nil(t, records[0].Valid)
}

// A cache hit must not refresh the stored timestamp: only probed records
// get written back, so a URL that keeps being served from cache still
// expires and gets re-checked once the window passes.
func TestCacheHitsKeepTheirTimestamp(t *testing.T) {
	ctx := context.Background()
	store := openValidationStore(t)

	url := "https://cached.example.com"
	require.NoError(t, store.SaveValidations(ctx, []bookmark.Record{{URL: url, Valid: truePtr()}}))

	before, err := store.LoadValidations(ctx, 0)
	require.NoError(t, err)
	checkedAt := before[url].CheckedAt

	// Timestamps have second resolution; cross a second boundary so a
	// rewrite would be visible.
	time.Sleep(1100 * time.Millisecond)

	records := []bookmark.Record{{URL: url}}
	hits, err := applyCache(ctx, store, cachingConfig(), records)
	require.NoError(t, err)
	require.Equal(t, 1, hits)

	// Replay the command's save step: nothing was probed, so nothing
	// is written back.
	toCheck := pendingRecords(records)
	require.Empty(t, toCheck)
	require.NoError(t, store.SaveValidations(ctx, toCheck))

	after, err := store.LoadValidations(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, checkedAt, after[url].CheckedAt)
}

func TestCopyResultsMergesByURL(t *testing.T) {
	records := []bookmark.Record{
		{URL: "https://cached.example.com", Valid: truePtr()},
		{URL: "https://probed.example.com"},
	}
	code := http.StatusNotFound
	valid := false
	checked := []bookmark.Record{
		{URL: "https://probed.example.com", Valid: &valid, StatusCode: &code},
	}

	copyResults(records, checked)

	// The cached entry is untouched, the probed one carries its result.
	assert.True(t, *records[0].Valid)
	require.NotNil(t, records[1].Valid)
	assert.False(t, *records[1].Valid)
	require.NotNil(t, records[1].StatusCode)
	assert.Equal(t, http.StatusNotFound, *records[1].StatusCode)
}
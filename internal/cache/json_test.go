package cache_test

import (
	"path/filepath"
	"testing"

	"soil-reco/internal/cache"
	"soil-reco/internal/engine"

	"github.com/stretchr/testify/assert"
)

func TestJSONFileCacheStoreAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caches", "reports.json")

	fileCache, err := cache.NewJSONFileCache(path)
	assert.NoError(t, err)

	ds := engine.Dataset{
		Headers: []string{"ponto", "k_mgdm"},
		Rows:    [][]string{{"P1", "40"}, {"P2", "90"}},
	}
	err = fileCache.Store("report-1", ds)
	assert.NoError(t, err)

	var got engine.Dataset
	err = fileCache.Get("report-1", &got)
	assert.NoError(t, err)
	assert.Equal(t, ds, got)

	err = fileCache.Get("missing", &got)
	assert.Error(t, err)
}

func TestJSONFileCacheAllAndPurge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.json")

	fileCache, err := cache.NewJSONFileCache(path)
	assert.NoError(t, err)

	assert.NoError(t, fileCache.Store("a", engine.Dataset{Headers: []string{"ponto"}}))
	assert.NoError(t, fileCache.Store("b", engine.Dataset{Headers: []string{"id"}}))

	all, err := fileCache.All()
	assert.NoError(t, err)
	assert.Equal(t, 2, all.Length())
	assert.ElementsMatch(t, []string{"a", "b"}, all.Keys())

	var got engine.Dataset
	assert.NoError(t, all.Get("a", &got))
	assert.Equal(t, []string{"ponto"}, got.Headers)

	assert.NoError(t, fileCache.Purge())
	all, err = fileCache.All()
	assert.NoError(t, err)
	assert.Equal(t, 0, all.Length())
}

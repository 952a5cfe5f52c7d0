package cache_test

import (
	"testing"

	"soil-reco/internal/cache"
	"soil-reco/internal/engine"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache(t *testing.T) {
	memoryCache := cache.NewMemoryCache()

	memoryCache.Store("report1", engine.Dataset{
		Headers: []string{"ponto", "k_mgdm"},
		Rows:    [][]string{{"P1", "40"}},
	})
	memoryCache.Store("report2", engine.Dataset{Headers: []string{"ponto"}})

	dsA := memoryCache.Get("report1").(engine.Dataset)
	assert.Equal(t, []string{"ponto", "k_mgdm"}, dsA.Headers)
	assert.Len(t, dsA.Rows, 1)

	dsB := memoryCache.Get("report2").(engine.Dataset)
	assert.Equal(t, []string{"ponto"}, dsB.Headers)

	assert.Nil(t, memoryCache.Get("missing"))
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrimaryMap(t *testing.T) {
	products := []Product{
		{ID: "a", Guarantees: map[string]float64{"n": 8, "p2o5": 36, "k2o": 6}},
		{ID: "b", Guarantees: map[string]float64{"k2o": 57}},
		{ID: "c", Guarantees: map[string]float64{"n": 20, "s": 20}}, // tie
	}

	primary := BuildPrimaryMap(products)

	assert.Equal(t, map[string]bool{"a": true}, primary["p2o5"])
	assert.Equal(t, map[string]bool{"b": true}, primary["k2o"])
	assert.Equal(t, map[string]bool{"c": true}, primary["n"])
	assert.Equal(t, map[string]bool{"c": true}, primary["s"])
}

func TestBuildPrimaryMapIgnoresZeroOnlyProducts(t *testing.T) {
	products := []Product{
		{ID: "empty", Guarantees: map[string]float64{"n": 0, "k2o": 0}},
		{ID: "none", Guarantees: map[string]float64{}},
	}

	primary := BuildPrimaryMap(products)
	assert.Empty(t, primary)
}

func TestBuildPrimaryMapLowercasesAttributes(t *testing.T) {
	products := []Product{
		{ID: "x", Guarantees: map[string]float64{"K2O": 57}},
	}

	primary := BuildPrimaryMap(products)
	assert.True(t, primary["k2o"]["x"])
}

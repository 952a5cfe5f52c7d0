package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttributeRank(t *testing.T) {
	assert.Equal(t, 1, AttributeRank("cao"))
	assert.Equal(t, 3, AttributeRank("p2o5"))
	assert.Equal(t, 3, AttributeRank("P2O5"))
	assert.Equal(t, 3, AttributeRank("p2o5_fosfatagem"))
	assert.Equal(t, 6, AttributeRank("k2o"))
	assert.Equal(t, 99, AttributeRank("prnt"))
	assert.Equal(t, unrankedAttribute, AttributeRank("mo"))
}

func TestSortAttributes(t *testing.T) {
	attrs := []string{"k2o", "prnt", "p2o5", "n", "cao"}
	SortAttributes(attrs)
	assert.Equal(t, []string{"cao", "p2o5", "n", "k2o", "prnt"}, attrs)
}

func TestSortAttributesUnrankedKeepEncounterOrder(t *testing.T) {
	attrs := []string{"umidade", "k2o", "mo", "caso4"}
	SortAttributes(attrs)
	assert.Equal(t, []string{"k2o", "umidade", "mo", "caso4"}, attrs)
}

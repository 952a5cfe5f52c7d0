package engine

import (
	"sort"
	"strings"
)

// attributeRanks orders nutrient attributes for processing. Lower rank runs
// first, so multi-nutrient products are credited against their driving
// nutrient before later passes compute residual need.
var attributeRanks = map[string]int{
	"cao": 1, "mgo": 2,
	"p2o5": 3, "p2o5_fosfatagem": 3,
	"n": 5, "n_fosfatagem": 5,
	"k2o": 6, "k2o_fosfatagem": 6,
	"s": 7,
	"b": 8, "cu": 9, "mn": 10, "fe": 11, "zn": 12,
	"prnt": 99,
}

const unrankedAttribute = 999

// AttributeRank returns the processing rank of a nutrient attribute.
// Unranked attributes sort after every ranked one.
func AttributeRank(attr string) int {
	if rank, ok := attributeRanks[strings.ToLower(attr)]; ok {
		return rank
	}
	return unrankedAttribute
}

// SortAttributes orders attribute keys by rank, keeping encounter order for
// equal ranks and for unranked attributes.
func SortAttributes(attrs []string) {
	sort.SliceStable(attrs, func(i, j int) bool {
		return AttributeRank(attrs[i]) < AttributeRank(attrs[j])
	})
}

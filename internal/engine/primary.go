package engine

import (
	"math"
	"strings"
)

// BuildPrimaryMap maps each attribute to the set of products for which it is
// a primary nutrient. A product's primary attributes are the ones tied at its
// maximum guarantee percentage (ties allowed, zero guarantees never qualify).
// A product with { n: 8, p2o5: 36, k2o: 6 } is primary for p2o5 only.
func BuildPrimaryMap(products []Product) map[string]map[string]bool {
	primary := make(map[string]map[string]bool)
	for _, p := range products {
		max := math.Inf(-1)
		for _, g := range p.Guarantees {
			if !math.IsNaN(g) && !math.IsInf(g, 0) && g > max {
				max = g
			}
		}
		if math.IsInf(max, -1) {
			continue
		}

		for attr, g := range p.Guarantees {
			if g == max && g > 0 {
				key := strings.ToLower(attr)
				if primary[key] == nil {
					primary[key] = make(map[string]bool)
				}
				primary[key][p.ID] = true
			}
		}
	}
	return primary
}

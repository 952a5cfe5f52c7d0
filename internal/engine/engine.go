package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Product categories, matching the catalog templates.
const (
	CategoryFertilizer  = "fertilizer"
	CategoryPhosphating = "phosphating_fertilizer"
	CategoryCorrective  = "corrective"
	CategoryConditioner = "conditioner"
	CategoryGypsum      = "gypsum"
	CategoryOther       = "other"
)

const defaultUnit = "kg/ha"

// Product is a catalog entry: guaranteed nutrient percentages by weight plus
// the product's dosing policy.
type Product struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Category   string             `json:"category"`
	Unit       string             `json:"unit"`
	Guarantees map[string]float64 `json:"guarantees"`
	Rules      DoseRules          `json:"rules"`
}

// Formula computes a nutrient need for its target attribute. An empty
// ProductIDs list means every product guaranteeing the attribute is eligible;
// an empty Depths list means the formula applies at every depth. Priority 0
// means unset and defaults to 100 (lower runs first within the attribute).
type Formula struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Expression      string   `json:"expression"`
	TargetAttribute string   `json:"target_attribute"`
	ProductIDs      []string `json:"product_ids"`
	Depths          []string `json:"depths"`
	Priority        int      `json:"priority"`
	Enabled         bool     `json:"enabled"`
}

const defaultPriority = 100

// Status classifies a recommendation line item.
type Status string

const (
	// StatusNormal is a regular allocation.
	StatusNormal Status = "normal"
	// StatusZero marks a line whose dose was policed to zero or below.
	StatusZero Status = "zero"
	// StatusAlreadySatisfied marks an informational line emitted when the
	// attribute's need was already covered by earlier allocations.
	StatusAlreadySatisfied Status = "already-satisfied"
)

// LineItem is one recommendation: a product dose for a point's attribute
// need. Delivered is the amount of the targeted attribute supplied by the
// dose, in nutrient-element units; Dose is in product units.
type LineItem struct {
	Point            string  `json:"point"`
	Product          string  `json:"product"`
	Attribute        string  `json:"attribute"`
	GuaranteePercent float64 `json:"guarantee_percent"`
	RawNeed          float64 `json:"raw_need"`
	Delivered        float64 `json:"delivered"`
	Dose             float64 `json:"dose"`
	Unit             string  `json:"unit"`
	Formula          string  `json:"formula"`
	Status           Status  `json:"status"`
}

// Input is everything a recommendation run reads. The engine never touches
// any state outside of it.
type Input struct {
	Dataset   Dataset
	Formulas  []Formula
	Products  []Product
	Variables map[string]float64
}

// Options control a run.
type Options struct {
	// IncludeZeros emits informational zero-dose lines for attributes whose
	// need is already satisfied, and keeps lines whose dose policy result
	// is zero.
	IncludeZeros bool `json:"include_zeros"`
}

// Result maps each point to its recommendation lines, keeping first-seen
// point order.
type Result struct {
	Points  []string              `json:"points"`
	ByPoint map[string][]LineItem `json:"by_point"`
}

// ErrEmptyDataset is returned when a run is attempted without an imported
// report.
var ErrEmptyDataset = errors.New("dataset has no headers or rows")

// Run executes the recommendation pipeline over every dataset row. For each
// row it evaluates the enabled formulas attribute by attribute in precedence
// order, subtracts nutrient amounts already delivered to the point, converts
// the remaining need into product doses, applies each product's dose rules
// and credits every guaranteed attribute of an allocated product back to the
// point's ledger. Rows of the same point share that ledger, so later depths
// and later formulas see the credit from earlier allocations.
func Run(in Input, opts Options) (*Result, error) {
	if len(in.Dataset.Headers) == 0 || len(in.Dataset.Rows) == 0 {
		return nil, ErrEmptyDataset
	}

	byAttr, attrs := groupFormulas(in.Formulas)
	SortAttributes(attrs)

	products := normalizeProducts(in.Products)
	primary := BuildPrimaryMap(products)
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	pointIdx := FindPointIndex(in.Dataset.Headers)
	depthIdx := FindDepthIndex(in.Dataset.Headers)

	res := &Result{ByPoint: make(map[string][]LineItem)}
	// delivered[point][attribute] = cumulative nutrient-element amount
	// supplied by every allocation so far in this run.
	delivered := make(map[string]map[string]float64)

	for i, row := range in.Dataset.Rows {
		soil := RowToSoilDict(in.Dataset.Headers, row)
		point := pointID(row, pointIdx, i)
		depth := ""
		if depthIdx >= 0 && depthIdx < len(row) {
			depth = NormalizeDepth(row[depthIdx])
		}

		if _, seen := res.ByPoint[point]; !seen {
			res.Points = append(res.Points, point)
			res.ByPoint[point] = []LineItem{}
		}
		if delivered[point] == nil {
			delivered[point] = make(map[string]float64)
		}

		for _, attr := range attrs {
			for _, f := range byAttr[attr] {
				if skipForDepth(f, depth) {
					continue
				}

				need := Evaluate(Compile(f.Expression, in.Variables, soil))

				remaining := need - delivered[point][attr]
				if remaining < 0 {
					remaining = 0
				}

				ids := candidateIDs(f, products, attr)
				ids = narrowToPrimary(ids, primary[attr])

				if remaining <= 0 && opts.IncludeZeros && len(ids) > 0 {
					for _, pid := range ids {
						p, ok := byID[pid]
						if !ok {
							continue
						}
						g := p.Guarantees[attr]
						if g <= 0 {
							continue
						}
						res.ByPoint[point] = append(res.ByPoint[point], LineItem{
							Point:            point,
							Product:          p.Name,
							Attribute:        attr,
							GuaranteePercent: g,
							RawNeed:          need,
							Unit:             unitOf(p),
							Formula:          f.Name,
							Status:           StatusAlreadySatisfied,
						})
					}
					continue
				}

				if remaining <= 0 || len(ids) == 0 {
					continue
				}

				for _, pid := range ids {
					if remaining <= 0 {
						break
					}

					p, ok := byID[pid]
					if !ok {
						log.Warn().Str("product_id", pid).Str("formula", f.Name).Msg("formula references unknown product, skipping")
						continue
					}
					g := p.Guarantees[attr]
					if g <= 0 {
						continue
					}

					var rawDose float64
					if p.Category == CategoryCorrective || p.Category == CategoryGypsum {
						// Corrective and gypsum formulas are authored in
						// product units already, no guarantee conversion.
						rawDose = need
					} else {
						rawDose = remaining / (g / 100)
					}

					dose := ApplyDosePolicy(rawDose, p.Rules)
					if dose <= 0 && !opts.IncludeZeros {
						continue
					}

					// Credit every attribute the product guarantees, not only
					// the targeted one.
					creditDose := dose
					if creditDose < 0 {
						creditDose = 0
					}
					var deliveredTarget float64
					for a, ag := range p.Guarantees {
						if ag <= 0 {
							continue
						}
						amount := creditDose * ag / 100
						delivered[point][a] += amount
						if a == attr {
							deliveredTarget = amount
						}
					}

					remaining -= deliveredTarget
					if remaining < 0 {
						remaining = 0
					}

					status := StatusNormal
					if dose <= 0 {
						status = StatusZero
					}
					res.ByPoint[point] = append(res.ByPoint[point], LineItem{
						Point:            point,
						Product:          p.Name,
						Attribute:        attr,
						GuaranteePercent: g,
						RawNeed:          need,
						Delivered:        deliveredTarget,
						Dose:             dose,
						Unit:             unitOf(p),
						Formula:          f.Name,
						Status:           status,
					})

					log.Debug().
						Str("point", point).
						Str("attribute", attr).
						Str("product", p.Name).
						Float64("need", need).
						Float64("dose", dose).
						Float64("remaining", remaining).
						Msg("allocated dose")
				}
			}
		}
	}

	return res, nil
}

// groupFormulas filters to enabled formulas with an expression and a target,
// applies the default priority and groups by lowercased target attribute,
// each group sorted by priority ascending (stable). The second return is the
// attribute keys in encounter order.
func groupFormulas(formulas []Formula) (map[string][]Formula, []string) {
	grouped := make(map[string][]Formula)
	var attrs []string
	for _, f := range formulas {
		if !f.Enabled || strings.TrimSpace(f.Expression) == "" {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(f.TargetAttribute))
		if key == "" {
			continue
		}
		if f.Priority == 0 {
			f.Priority = defaultPriority
		}
		f.TargetAttribute = key
		if _, seen := grouped[key]; !seen {
			attrs = append(attrs, key)
		}
		grouped[key] = append(grouped[key], f)
	}
	for key := range grouped {
		group := grouped[key]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Priority < group[j].Priority
		})
	}
	return grouped, attrs
}

// normalizeProducts lowercases guarantee keys so attribute lookups are
// case-insensitive throughout the run.
func normalizeProducts(products []Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		guarantees := make(map[string]float64, len(p.Guarantees))
		for attr, g := range p.Guarantees {
			guarantees[strings.ToLower(attr)] = g
		}
		p.Guarantees = guarantees
		out[i] = p
	}
	return out
}

func pointID(row []string, pointIdx int, rowIdx int) string {
	if pointIdx >= 0 && pointIdx < len(row) {
		if v := strings.TrimSpace(row[pointIdx]); v != "" {
			return v
		}
	}
	return fmt.Sprintf("#%d", rowIdx+1)
}

// skipForDepth reports whether a formula's depth restriction excludes the
// row. Rows without a recognisable depth are never filtered out.
func skipForDepth(f Formula, depth string) bool {
	if len(f.Depths) == 0 || depth == "" {
		return false
	}
	for _, d := range f.Depths {
		if NormalizeDepth(d) == depth {
			return false
		}
	}
	return true
}

// candidateIDs resolves a formula's target products: the explicit list when
// present, otherwise every catalog product guaranteeing the attribute, in
// catalog order.
func candidateIDs(f Formula, products []Product, attr string) []string {
	if len(f.ProductIDs) > 0 {
		return f.ProductIDs
	}
	var ids []string
	for _, p := range products {
		if _, ok := p.Guarantees[attr]; ok {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// narrowToPrimary keeps only products that are a primary source for the
// attribute. When none of the candidates are primary the full list stands,
// so an explicit product selection always wins over primary filtering.
func narrowToPrimary(ids []string, primarySet map[string]bool) []string {
	if len(primarySet) == 0 {
		return ids
	}
	var narrowed []string
	for _, id := range ids {
		if primarySet[id] {
			narrowed = append(narrowed, id)
		}
	}
	if len(narrowed) == 0 {
		return ids
	}
	return narrowed
}

func unitOf(p Product) string {
	if p.Unit != "" {
		return p.Unit
	}
	return defaultUnit
}

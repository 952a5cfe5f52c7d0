package engine

import "sort"

// AggregateRow is the total dose of one product at one point.
type AggregateRow struct {
	Point     string  `json:"point"`
	Product   string  `json:"product"`
	TotalDose float64 `json:"total_dose"`
	Unit      string  `json:"unit"`
}

// AggregateByProduct sums dose per (point, product) across a run's line
// items. The unit comes from the first line observed for the pair. Rows are
// sorted by point (numerically when the identifier parses, else 0) then by
// product name.
func AggregateByProduct(res *Result) []AggregateRow {
	if res == nil {
		return []AggregateRow{}
	}

	index := make(map[string]int)
	rows := make([]AggregateRow, 0)
	for _, point := range res.Points {
		for _, item := range res.ByPoint[point] {
			key := point + "\x00" + item.Product
			i, ok := index[key]
			if !ok {
				i = len(rows)
				index[key] = i
				rows = append(rows, AggregateRow{Point: point, Product: item.Product, Unit: item.Unit})
			}
			rows[i].TotalDose += item.Dose
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, _ := ToNumber(rows[i].Point)
		b, _ := ToNumber(rows[j].Point)
		if a != b {
			return a < b
		}
		return rows[i].Product < rows[j].Product
	})
	return rows
}

// ProductStats summarises a product's aggregated doses across points.
type ProductStats struct {
	Product    string  `json:"product"`
	Unit       string  `json:"unit"`
	PointCount int     `json:"point_count"`
	Min        float64 `json:"min"`
	Mean       float64 `json:"mean"`
	Max        float64 `json:"max"`
}

// ComputeProductStats groups aggregated rows by (product, unit) and computes
// min/mean/max of the per-point totals, sorted by product name.
func ComputeProductStats(rows []AggregateRow) []ProductStats {
	index := make(map[string]int)
	stats := make([]ProductStats, 0)
	sums := make([]float64, 0)

	for _, row := range rows {
		key := row.Product + "\x00" + row.Unit
		i, ok := index[key]
		if !ok {
			i = len(stats)
			index[key] = i
			stats = append(stats, ProductStats{
				Product: row.Product,
				Unit:    row.Unit,
				Min:     row.TotalDose,
				Max:     row.TotalDose,
			})
			sums = append(sums, 0)
		}

		s := &stats[i]
		s.PointCount++
		sums[i] += row.TotalDose
		if row.TotalDose < s.Min {
			s.Min = row.TotalDose
		}
		if row.TotalDose > s.Max {
			s.Max = row.TotalDose
		}
	}

	for i := range stats {
		if stats[i].PointCount > 0 {
			stats[i].Mean = sums[i] / float64(stats[i].PointCount)
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Product != stats[j].Product {
			return stats[i].Product < stats[j].Product
		}
		return stats[i].Unit < stats[j].Unit
	})
	return stats
}

package engine

// PreviewValue is one row's evaluation of a formula expression, used for
// authoring feedback before a formula is saved.
type PreviewValue struct {
	Point string  `json:"point"`
	Value float64 `json:"value"`
}

// EvaluateAll evaluates a single expression against every row of the dataset.
// It shares the run's point-identifier resolution but touches no ledger: each
// row is evaluated in isolation.
func EvaluateAll(expression string, vars map[string]float64, ds Dataset) []PreviewValue {
	if len(ds.Headers) == 0 || len(ds.Rows) == 0 {
		return []PreviewValue{}
	}

	pointIdx := FindPointIndex(ds.Headers)
	out := make([]PreviewValue, 0, len(ds.Rows))
	for i, row := range ds.Rows {
		soil := RowToSoilDict(ds.Headers, row)
		out = append(out, PreviewValue{
			Point: pointID(row, pointIdx, i),
			Value: Evaluate(Compile(expression, vars, soil)),
		})
	}
	return out
}

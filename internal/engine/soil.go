package engine

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Dataset is an imported soil-analysis report: one header row plus one data
// row per sampled point/depth. Every row has the same length as Headers.
type Dataset struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// pointAliases are the header names recognised as the point-identifier column.
var pointAliases = []string{"ponto", "amostra", "id_ponto", "id"}

// FindPointIndex returns the index of the point-identifier column, or -1.
func FindPointIndex(headers []string) int {
	for i, h := range headers {
		lower := strings.ToLower(h)
		for _, alias := range pointAliases {
			if lower == alias {
				return i
			}
		}
	}
	return -1
}

// FindDepthIndex returns the index of the depth column, or -1. Any column
// whose name contains "profundidade" qualifies.
func FindDepthIndex(headers []string) int {
	for i, h := range headers {
		if strings.Contains(strings.ToLower(h), "profundidade") {
			return i
		}
	}
	return -1
}

// RowToSoilDict maps each column header to the row's trimmed cell value.
// Values stay strings here; numeric coercion happens at placeholder
// substitution via ToNumber.
func RowToSoilDict(headers []string, row []string) map[string]string {
	soil := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(row) {
			soil[h] = strings.TrimSpace(row[i])
		} else {
			soil[h] = ""
		}
	}
	return soil
}

// ToNumber coerces a cell value to a finite number. Decimal commas are
// accepted ("12,5" parses as 12.5). The second return reports whether the
// value was numeric; non-numeric values coerce to 0.
func ToNumber(v string) (float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

var depthPattern = regexp.MustCompile(`(\d+)\D+(\d+)`)

// NormalizeDepth normalizes a depth label to "AA-BB" ("0-20", "00 a 20" and
// similar all become "00-20"). Text without two integer groups is returned
// trimmed as-is.
func NormalizeDepth(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	m := depthPattern.FindStringSubmatch(s)
	if m == nil {
		return strings.TrimSpace(s)
	}
	return padDepth(m[1]) + "-" + padDepth(m[2])
}

func padDepth(s string) string {
	for len(s) < 2 {
		s = "0" + s
	}
	return s
}

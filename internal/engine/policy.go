package engine

import "math"

// RoundMode selects how doses snap to the product's rounding step.
type RoundMode string

const (
	RoundNearest RoundMode = "nearest"
	RoundUp      RoundMode = "up"
	RoundDown    RoundMode = "down"
)

// DoseRules is a product's dosing policy. DoseMax <= 0 (or non-finite) means
// unbounded; RoundStep <= 0 means no rounding.
type DoseRules struct {
	AllowZeroDose bool      `json:"allow_zero_dose"`
	DoseMin       float64   `json:"dose_min"`
	DoseMax       float64   `json:"dose_max"`
	RoundStep     float64   `json:"round_step"`
	RoundMode     RoundMode `json:"round_mode"`
}

// roundToStep rounds x to a multiple of step. A non-finite or non-positive
// step leaves x unchanged.
func roundToStep(x float64, step float64, mode RoundMode) float64 {
	if math.IsNaN(x) || math.IsNaN(step) || math.IsInf(step, 0) || step <= 0 {
		return x
	}
	switch mode {
	case RoundUp:
		return math.Ceil(x/step) * step
	case RoundDown:
		return math.Floor(x/step) * step
	default:
		return math.Round(x/step) * step
	}
}

// ApplyDosePolicy applies a product's dose rules to a raw dose, in order:
//
//  1. Pre-checks without rounding. With AllowZeroDose, raw <= 0 passes
//     through unchanged (callers treat <= 0 as "no action"); without it,
//     raw <= 0 becomes DoseMin (or 0 when DoseMin is 0). Either way, values
//     below DoseMin pin to DoseMin and values above DoseMax pin to DoseMax.
//  2. Values already inside [DoseMin, DoseMax] are rounded to RoundStep.
//  3. The rounded value is clamped back into [DoseMin, DoseMax] in case
//     rounding crossed a boundary.
func ApplyDosePolicy(raw float64, rules DoseRules) float64 {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		raw = 0
	}

	min := rules.DoseMin
	if math.IsNaN(min) || math.IsInf(min, 0) || min < 0 {
		min = 0
	}
	max := rules.DoseMax
	if math.IsNaN(max) || max <= 0 {
		max = math.Inf(1)
	}

	if rules.AllowZeroDose {
		if raw <= 0 {
			return raw
		}
	} else if raw <= 0 {
		if min > 0 {
			return min
		}
		return 0
	}
	if raw < min {
		return min
	}
	if raw > max {
		return max
	}

	d := roundToStep(raw, rules.RoundStep, rules.RoundMode)
	if d < min {
		d = min
	}
	if d > max {
		d = max
	}
	return d
}

package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDosePolicyAllowZero(t *testing.T) {
	rules := DoseRules{AllowZeroDose: true, DoseMin: 50, DoseMax: 2000, RoundStep: 10}

	assert.Equal(t, 0.0, ApplyDosePolicy(0, rules))
	assert.Equal(t, -5.0, ApplyDosePolicy(-5, rules))
	assert.Equal(t, 50.0, ApplyDosePolicy(30, rules))
	assert.Equal(t, 2000.0, ApplyDosePolicy(2500, rules))
}

func TestApplyDosePolicyZeroForbidden(t *testing.T) {
	rules := DoseRules{AllowZeroDose: false, DoseMin: 50, DoseMax: 2000}

	assert.Equal(t, 50.0, ApplyDosePolicy(0, rules))
	assert.Equal(t, 50.0, ApplyDosePolicy(-10, rules))
	assert.Equal(t, 50.0, ApplyDosePolicy(20, rules))
	assert.Equal(t, 2000.0, ApplyDosePolicy(9999, rules))

	// With DoseMin 0 a non-positive dose collapses to 0 instead.
	assert.Equal(t, 0.0, ApplyDosePolicy(-10, DoseRules{}))
}

func TestApplyDosePolicyRoundingModes(t *testing.T) {
	base := DoseRules{DoseMin: 0, DoseMax: 2000, RoundStep: 10}

	nearest := base
	nearest.RoundMode = RoundNearest
	assert.Equal(t, 180.0, ApplyDosePolicy(184.99, nearest))
	assert.Equal(t, 190.0, ApplyDosePolicy(185.0, nearest))

	up := base
	up.RoundMode = RoundUp
	assert.Equal(t, 190.0, ApplyDosePolicy(181.0, up))

	down := base
	down.RoundMode = RoundDown
	assert.Equal(t, 180.0, ApplyDosePolicy(189.9, down))
}

func TestApplyDosePolicyOutOfBandSkipsRounding(t *testing.T) {
	// 30 is below DoseMin, so it pins to the boundary without rounding even
	// though 30 is not a multiple of the step.
	rules := DoseRules{DoseMin: 55, DoseMax: 2000, RoundStep: 50, RoundMode: RoundNearest}
	assert.Equal(t, 55.0, ApplyDosePolicy(30, rules))
	assert.Equal(t, 2000.0, ApplyDosePolicy(2300, rules))
}

func TestApplyDosePolicyReclampsAfterRounding(t *testing.T) {
	// 1998 rounds up to 2000-adjacent multiples; re-clamp keeps the result
	// inside the band.
	rules := DoseRules{DoseMin: 50, DoseMax: 1999, RoundStep: 100, RoundMode: RoundUp}
	assert.Equal(t, 1999.0, ApplyDosePolicy(1950, rules))

	rules = DoseRules{DoseMin: 60, DoseMax: 2000, RoundStep: 100, RoundMode: RoundDown}
	assert.Equal(t, 60.0, ApplyDosePolicy(90, rules))
}

func TestApplyDosePolicyMisconfiguration(t *testing.T) {
	// Unset or nonsense bounds fall back to no clamp; bad steps skip rounding.
	assert.Equal(t, 123.45, ApplyDosePolicy(123.45, DoseRules{}))
	assert.Equal(t, 123.45, ApplyDosePolicy(123.45, DoseRules{DoseMax: -1}))
	assert.Equal(t, 123.45, ApplyDosePolicy(123.45, DoseRules{RoundStep: math.NaN()}))
	assert.Equal(t, 123.45, ApplyDosePolicy(123.45, DoseRules{DoseMin: math.Inf(1)}))
	assert.Equal(t, 0.0, ApplyDosePolicy(math.NaN(), DoseRules{}))
	assert.Equal(t, 0.0, ApplyDosePolicy(math.Inf(1), DoseRules{}))
}

func TestRoundToStep(t *testing.T) {
	assert.Equal(t, 210.0, roundToStep(210.5, 10, RoundNearest))
	assert.Equal(t, 220.0, roundToStep(215.0, 10, RoundNearest))
	assert.Equal(t, 220.0, roundToStep(210.5, 10, RoundUp))
	assert.Equal(t, 210.0, roundToStep(219.9, 10, RoundDown))
	assert.Equal(t, 7.3, roundToStep(7.3, 0, RoundNearest))
}

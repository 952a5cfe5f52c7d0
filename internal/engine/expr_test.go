package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateArithmetic(t *testing.T) {
	assert.Equal(t, 7.0, Evaluate("1 + 2 * 3"))
	assert.Equal(t, 9.0, Evaluate("(1 + 2) * 3"))
	assert.Equal(t, 2.5, Evaluate("5 / 2"))
	assert.Equal(t, 1.0, Evaluate("7 % 3"))
	assert.Equal(t, -4.0, Evaluate("-2 * 2"))
	assert.Equal(t, 6.0, Evaluate("2 * -3 * -1"))
	assert.InDelta(t, 0.5, Evaluate("0.25 + 0.25"), 1e-12)
}

func TestEvaluateComparisons(t *testing.T) {
	assert.Equal(t, 1.0, Evaluate("2 < 3"))
	assert.Equal(t, 0.0, Evaluate("3 < 2"))
	assert.Equal(t, 1.0, Evaluate("3 <= 3"))
	assert.Equal(t, 1.0, Evaluate("3 >= 2"))
	assert.Equal(t, 1.0, Evaluate("2 == 2"))
	assert.Equal(t, 1.0, Evaluate("2 != 3"))
	assert.Equal(t, 0.0, Evaluate("2 != 2"))
}

func TestEvaluateLogicalOperators(t *testing.T) {
	assert.Equal(t, 1.0, Evaluate("1 < 2 && 3 < 4"))
	assert.Equal(t, 0.0, Evaluate("1 < 2 && 4 < 3"))
	assert.Equal(t, 1.0, Evaluate("1 > 2 || 3 < 4"))
	assert.Equal(t, 0.0, Evaluate("1 > 2 || 4 < 3"))
	assert.Equal(t, 1.0, Evaluate("!0"))
	assert.Equal(t, 0.0, Evaluate("!5"))
}

func TestEvaluateTernary(t *testing.T) {
	assert.Equal(t, 10.0, Evaluate("1 < 2 ? 10 : 20"))
	assert.Equal(t, 20.0, Evaluate("2 < 1 ? 10 : 20"))
	assert.Equal(t, 3.0, Evaluate("0 ? 1 : 0 ? 2 : 3"))
	assert.Equal(t, 2.0, Evaluate("(0) ? (1) : (1) ? (2) : (3)"))
}

func TestEvaluateDegradesToZero(t *testing.T) {
	// Syntax errors.
	assert.Equal(t, 0.0, Evaluate(""))
	assert.Equal(t, 0.0, Evaluate("1 +"))
	assert.Equal(t, 0.0, Evaluate("(1 + 2"))
	assert.Equal(t, 0.0, Evaluate("foo + 1"))
	assert.Equal(t, 0.0, Evaluate("1 2"))

	// Non-finite results.
	assert.Equal(t, 0.0, Evaluate("1 / 0"))
	assert.Equal(t, 0.0, Evaluate("0 / 0"))
}

func TestEvaluateIsPure(t *testing.T) {
	expr := "(1.5 < 2) ? (100 - 6.6) : 0"
	first := Evaluate(expr)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Evaluate(expr))
	}
	assert.InDelta(t, 93.4, first, 1e-9)
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileSubstitutesPlaceholders(t *testing.T) {
	vars := map[string]float64{"meta": 120}
	soil := map[string]string{"k_mgdm": "45,5", "argila": "30"}

	compiled := Compile("@meta@ - #k_mgdm# * 2 + #argila#", vars, soil)
	assert.Equal(t, "120 - 45.5 * 2 + 30", compiled)
}

func TestCompileMissingValuesBecomeZero(t *testing.T) {
	compiled := Compile("@nope@ + #missing# + #texto#", nil, map[string]string{"texto": "abc"})
	assert.Equal(t, "0 + 0 + 0", compiled)
}

func TestCompileNormalizesDecimalComma(t *testing.T) {
	compiled := Compile("2,40916 * #x#", nil, map[string]string{"x": "2"})
	assert.Equal(t, "2.40916 * 2", compiled)

	v := Evaluate(Compile("(#a#+#b#)/2", nil, map[string]string{"a": "5,6", "b": "4,4"}))
	assert.Equal(t, 5.0, v)
}

func TestCompileRewritesIfElseChain(t *testing.T) {
	compiled := Compile("if (#x# <= 80) { return 100 } else { return 50 }", nil, map[string]string{"x": "90"})
	assert.Equal(t, "(90 <= 80) ? (100) : (50)", compiled)
}

func TestCompileIfWithoutElseFallsThroughToZero(t *testing.T) {
	compiled := Compile("if (#x# > 10) { return 7; }", nil, map[string]string{"x": "5"})
	assert.Equal(t, "(5 > 10) ? (7) : 0", compiled)
}

func TestCompileElseIfChain(t *testing.T) {
	src := "if (#x# < 1) { return 10 } else if (#x# < 2) { return 20 } else { return 30 }"
	compiled := Compile(src, nil, map[string]string{"x": "1,5"})
	assert.Equal(t, "(1.5 < 1) ? (10) : (1.5 < 2) ? (20) : (30)", compiled)
	assert.Equal(t, 20.0, Evaluate(compiled))
}

func TestCompileConditionalRoundTrip(t *testing.T) {
	src := "if (#k_mgdm#<=80) { return 100 } else { return 50 }"

	assert.Equal(t, 50.0, Evaluate(Compile(src, nil, map[string]string{"k_mgdm": "90"})))
	assert.Equal(t, 100.0, Evaluate(Compile(src, nil, map[string]string{"k_mgdm": "70"})))
}

func TestCompileMultilineConditional(t *testing.T) {
	src := "if (#k# <= 80) {\n  return (((100+(80-#k#)*2,40916)))-6,6;\n}\nelse {\n  return ((100-((#k#-80)*2,40916)))-6,6;\n}"

	v := Evaluate(Compile(src, nil, map[string]string{"k": "80"}))
	assert.InDelta(t, 93.4, v, 1e-9)

	v = Evaluate(Compile(src, nil, map[string]string{"k": "90"}))
	assert.InDelta(t, 100-10*2.40916-6.6, v, 1e-9)
}

func TestCompilePlainExpressionKeptVerbatim(t *testing.T) {
	compiled := Compile("(1+2)*3", nil, nil)
	assert.Equal(t, "(1+2)*3", compiled)
}

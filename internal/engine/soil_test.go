package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDepth(t *testing.T) {
	assert.Equal(t, "00-20", NormalizeDepth("0-20"))
	assert.Equal(t, "00-20", NormalizeDepth("00-20"))
	assert.Equal(t, "00-20", NormalizeDepth("00 a 20"))
	assert.Equal(t, "20-40", NormalizeDepth("20 at 40 cm"))
	assert.Equal(t, "05-10", NormalizeDepth("5 a 10"))
	assert.Equal(t, "", NormalizeDepth(""))
	assert.Equal(t, "", NormalizeDepth("   "))
	assert.Equal(t, "superficial", NormalizeDepth(" superficial "))
}

func TestToNumber(t *testing.T) {
	n, ok := ToNumber("12,5")
	assert.True(t, ok)
	assert.Equal(t, 12.5, n)

	n, ok = ToNumber(" 40 ")
	assert.True(t, ok)
	assert.Equal(t, 40.0, n)

	n, ok = ToNumber("-3,25")
	assert.True(t, ok)
	assert.Equal(t, -3.25, n)

	_, ok = ToNumber("abc")
	assert.False(t, ok)
	_, ok = ToNumber("")
	assert.False(t, ok)

	n, ok = ToNumber("argila%")
	assert.False(t, ok)
	assert.Equal(t, 0.0, n)
}

func TestFindPointIndex(t *testing.T) {
	assert.Equal(t, 0, FindPointIndex([]string{"Ponto", "profundidade"}))
	assert.Equal(t, 1, FindPointIndex([]string{"argila", "amostra"}))
	assert.Equal(t, 2, FindPointIndex([]string{"argila", "ph", "ID"}))
	assert.Equal(t, -1, FindPointIndex([]string{"argila", "ph"}))
	// Aliases match whole names, not substrings.
	assert.Equal(t, -1, FindPointIndex([]string{"id_amostra_lab"}))
}

func TestFindDepthIndex(t *testing.T) {
	assert.Equal(t, 1, FindDepthIndex([]string{"ponto", "Profundidade (cm)"}))
	assert.Equal(t, -1, FindDepthIndex([]string{"ponto", "camada"}))
}

func TestRowToSoilDict(t *testing.T) {
	headers := []string{"ponto", "k_mgdm", "obs"}
	soil := RowToSoilDict(headers, []string{" P1 ", "45,5"})

	assert.Equal(t, "P1", soil["ponto"])
	assert.Equal(t, "45,5", soil["k_mgdm"])
	// Short rows pad with empties rather than panic.
	assert.Equal(t, "", soil["obs"])
}

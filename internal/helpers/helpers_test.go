package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsStr(t *testing.T) {
	assert.True(t, ContainsStr([]string{"a", "b"}, "b"))
	assert.False(t, ContainsStr([]string{"a", "b"}, "c"))
	assert.False(t, ContainsStr(nil, "a"))
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 210.53, RoundTo(210.5263157, 2))
	assert.Equal(t, 211.0, RoundTo(210.53, 0))
	assert.Equal(t, 210.5, RoundTo(210.53, 1))
}

func TestExtractKeyFromMap(t *testing.T) {
	m := map[string]interface{}{
		"dose": map[string]interface{}{"value": 120.5},
	}

	var receiver struct {
		Value float64 `json:"value"`
	}
	err := ExtractKeyFromMap("dose", m, &receiver)
	assert.NoError(t, err)
	assert.Equal(t, 120.5, receiver.Value)

	err = ExtractKeyFromMap("missing", m, &receiver)
	assert.Error(t, err)
}

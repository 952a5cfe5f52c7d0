package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateAll(t *testing.T) {
	ds := Dataset{
		Headers: []string{"ponto", "k_mgdm"},
		Rows: [][]string{
			{"P1", "70"},
			{"P2", "90"},
		},
	}

	values := EvaluateAll("if (#k_mgdm# <= 80) { return 100 } else { return 50 }", nil, ds)

	assert.Equal(t, []PreviewValue{
		{Point: "P1", Value: 100},
		{Point: "P2", Value: 50},
	}, values)
}

func TestEvaluateAllUsesVariables(t *testing.T) {
	ds := Dataset{
		Headers: []string{"k_mgdm"},
		Rows:    [][]string{{"40"}},
	}

	values := EvaluateAll("@meta@ - #k_mgdm#", map[string]float64{"meta": 100}, ds)
	assert.Equal(t, []PreviewValue{{Point: "#1", Value: 60}}, values)
}

func TestEvaluateAllEmptyDataset(t *testing.T) {
	assert.Empty(t, EvaluateAll("1+1", nil, Dataset{}))
}

package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"soil-reco/internal/engine"
)

func TestDefaultProductsAreWellFormed(t *testing.T) {
	products := DefaultProducts()

	assert.Len(t, products, 2)
	for _, p := range products {
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, engine.CategoryFertilizer, p.Category)
		assert.Equal(t, "kg/ha", p.Unit)
		assert.Equal(t, 50.0, p.Rules.DoseMin)
		assert.Equal(t, 2000.0, p.Rules.DoseMax)
	}

	assert.Equal(t, 57.0, products[0].Guarantees["k2o"])
	assert.Equal(t, 36.0, products[1].Guarantees["p2o5"])
}

func TestDefaultFormulasEvaluate(t *testing.T) {
	formulas := DefaultFormulas()
	assert.Len(t, formulas, 2)

	// Potassium curve at 90 mg/dm3, above the 80 breakpoint.
	k2o := formulas[0]
	assert.Equal(t, "k2o", k2o.TargetAttribute)
	soil := map[string]string{"k_mgdm3": "90"}
	need := engine.Evaluate(engine.Compile(k2o.Expression, nil, soil))
	assert.InDelta(t, 100-10*2.40916-6.6, need, 1e-9)

	// Phosphorus table: clayey soil, low phosphorus.
	p2o5 := formulas[1]
	assert.Equal(t, "p2o5", p2o5.TargetAttribute)
	soil = map[string]string{"argila": "40", "p_mgdm3": "4"}
	need = engine.Evaluate(engine.Compile(p2o5.Expression, nil, soil))
	assert.InDelta(t, 80.0, need, 1e-9)

	for _, f := range formulas {
		assert.True(t, f.Enabled)
		assert.Equal(t, []string{"00-20"}, f.Depths)
	}
}

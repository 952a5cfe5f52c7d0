package seed

import (
	"database/sql"

	"github.com/rs/zerolog/log"

	"soil-reco/internal/engine"
	"soil-reco/internal/models"
)

// DefaultProducts is the starter catalog: potassium chloride and an NPK
// blend, both with the usual spreader constraints.
func DefaultProducts() []models.Product {
	rules := engine.DoseRules{
		AllowZeroDose: false,
		DoseMin:       50,
		DoseMax:       2000,
		RoundStep:     10,
		RoundMode:     engine.RoundNearest,
	}

	return []models.Product{
		{
			ID:       "p_kcl",
			Name:     "KCL",
			Category: engine.CategoryFertilizer,
			Unit:     "kg/ha",
			Guarantees: map[string]float64{
				"n": 0, "p2o5": 0, "k2o": 57, "s": 0, "b": 0, "zn": 0,
			},
			Rules: rules,
		},
		{
			ID:       "p_08_36_06",
			Name:     "08-36-06",
			Category: engine.CategoryFertilizer,
			Unit:     "kg/ha",
			Guarantees: map[string]float64{
				"n": 8, "p2o5": 36, "k2o": 6, "s": 0, "b": 0, "zn": 0,
			},
			Rules: rules,
		},
	}
}

// DefaultFormulas is the starter rule set: a potassium build-up curve and a
// simplified phosphorus table, both for the 00-20 layer.
func DefaultFormulas() []models.Formula {
	return []models.Formula{
		{
			ID:              "f_k2o_soja_5000",
			Name:            "K2O Soja 5000 kg - K Adequado",
			TargetAttribute: "k2o",
			Depths:          []string{"00-20"},
			Priority:        100,
			Enabled:         true,
			Expression: "if (#k_mgdm3# <= 80) {\n" +
				"  return (((100+(80-#k_mgdm3#)*2,40916)))-6,6;\n" +
				"}\n" +
				"else {\n" +
				"  return ((100-((#k_mgdm3#-80)*2,40916)))-6,6;\n" +
				"}",
		},
		{
			ID:              "f_p2o5_soja_5000",
			Name:            "P2O5 Soja 5000 kg - Desconto Base",
			TargetAttribute: "p2o5",
			Depths:          []string{"00-20"},
			Priority:        100,
			Enabled:         true,
			Expression: "if (#argila# < 15 && #p_mgdm3# < 12) { return (100 - 40); }\n" +
				"else if (#argila# < 15 && #p_mgdm3# < 30) { return (60 - 40); }\n" +
				"else if (#argila# < 15) { return (0); }\n" +
				"else if (#argila# < 35 && #p_mgdm3# < 8) { return (110 - 40); }\n" +
				"else if (#argila# < 35 && #p_mgdm3# < 18) { return (85 - 40); }\n" +
				"else if (#argila# < 35 && #p_mgdm3# < 35) { return (60 - 40); }\n" +
				"else if (#argila# < 35) { return (0); }\n" +
				"else if (#argila# < 60 && #p_mgdm3# < 5) { return (120 - 40); }\n" +
				"else if (#argila# < 60 && #p_mgdm3# < 10) { return (95 - 40); }\n" +
				"else if (#argila# < 60 && #p_mgdm3# < 18) { return (55 - 40); }\n" +
				"else if (#argila# < 60) { return (0); }\n" +
				"else if (#p_mgdm3# < 3) { return (125 - 40); }\n" +
				"else if (#p_mgdm3# < 6) { return (80 - 40); }\n" +
				"else if (#p_mgdm3# < 10) { return (45 - 40); }\n" +
				"else { return (0); }",
		},
	}
}

// SeedIfEmpty loads the default catalog and formulas when their tables are
// empty. Existing data is never touched, so it is safe to call on every
// startup.
func SeedIfEmpty(db *sql.DB) error {
	productCount, err := models.CountProducts(db)
	if err != nil {
		return err
	}
	formulaCount, err := models.CountFormulas(db)
	if err != nil {
		return err
	}
	if productCount > 0 && formulaCount > 0 {
		log.Debug().Msg("Catalog and formulas already present - skipping seed.")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	if productCount == 0 {
		err = models.UpsertManyProduct(tx, DefaultProducts())
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				return rollbackErr
			}
			return err
		}
		log.Info().Msg("Seeded default products.")
	}

	if formulaCount == 0 {
		err = models.UpsertManyFormula(tx, DefaultFormulas())
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				return rollbackErr
			}
			return err
		}
		log.Info().Msg("Seeded default formulas.")
	}

	return tx.Commit()
}

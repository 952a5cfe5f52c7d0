package models

import (
	"database/sql"
	"fmt"

	"soil-reco/internal/engine"
)

// GetEngineInput assembles a full engine input for a stored report: its
// dataset plus the current formulas, products and variables.
func GetEngineInput(db *sql.DB, reportID string) (engine.Input, error) {
	report, err := GetReportByID(db, reportID)
	if err != nil {
		return engine.Input{}, fmt.Errorf("failed to load report: %w", err)
	}

	return BuildEngineInput(db, report.Dataset)
}

// BuildEngineInput pairs an already-loaded dataset with the current
// formulas, products and variables.
func BuildEngineInput(db *sql.DB, dataset engine.Dataset) (engine.Input, error) {
	formulas, err := GetAllFormulas(db)
	if err != nil {
		return engine.Input{}, fmt.Errorf("failed to load formulas: %w", err)
	}

	products, err := GetAllProducts(db)
	if err != nil {
		return engine.Input{}, fmt.Errorf("failed to load products: %w", err)
	}

	variables, err := GetAllVariables(db)
	if err != nil {
		return engine.Input{}, fmt.Errorf("failed to load variables: %w", err)
	}

	in := engine.Input{
		Dataset:   dataset,
		Variables: variables,
	}
	for _, f := range formulas {
		in.Formulas = append(in.Formulas, f.ToEngine())
	}
	for _, p := range products {
		in.Products = append(in.Products, p.ToEngine())
	}

	return in, nil
}

// Purge clears the catalog, formulas and variables. Used by the seeder's
// --reset flag.
func Purge(db *sql.DB) error {
	for _, table := range []string{"formulas", "products", "variables"} {
		if _, err := db.Exec(fmt.Sprintf(`delete from %s;`, table)); err != nil {
			return err
		}
	}
	return nil
}

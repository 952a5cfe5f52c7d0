package models

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"soil-reco/internal/engine"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Formula is a stored agronomic formula. ProductIDs and Depths are jsonb
// arrays; empty means unrestricted.
type Formula struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Expression      string   `json:"expression"`
	TargetAttribute string   `json:"target_attribute"`
	ProductIDs      []string `json:"product_ids"`
	Depths          []string `json:"depths"`
	Priority        int      `json:"priority"`
	Enabled         bool     `json:"enabled"`
}

// NewFormulaID generates a formula id.
func NewFormulaID() string {
	return "f_" + uuid.NewString()
}

// ToEngine converts the stored formula to the engine's input shape.
func (f Formula) ToEngine() engine.Formula {
	return engine.Formula{
		ID:              f.ID,
		Name:            f.Name,
		Expression:      f.Expression,
		TargetAttribute: f.TargetAttribute,
		ProductIDs:      f.ProductIDs,
		Depths:          f.Depths,
		Priority:        f.Priority,
		Enabled:         f.Enabled,
	}
}

func UpsertFormula(tx *sql.Tx, formula Formula) error {
	productIDs, err := json.Marshal(formula.ProductIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal product ids for formula %s: %w", formula.ID, err)
	}
	depths, err := json.Marshal(formula.Depths)
	if err != nil {
		return fmt.Errorf("failed to marshal depths for formula %s: %w", formula.ID, err)
	}

	query := `INSERT INTO formulas (
			formula_id,
			name,
			expression,
			target_attribute,
			product_ids,
			depths,
			priority,
			enabled
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (formula_id) DO UPDATE SET
			name = $2,
			expression = $3,
			target_attribute = $4,
			product_ids = $5,
			depths = $6,
			priority = $7,
			enabled = $8;`
	_, err = tx.Exec(query, formula.ID, formula.Name, formula.Expression, formula.TargetAttribute,
		productIDs, depths, formula.Priority, formula.Enabled)
	if err != nil {
		return err
	}

	return nil
}

func UpsertManyFormula(tx *sql.Tx, formulas []Formula) error {
	for i := 0; i < len(formulas); i++ {
		err := UpsertFormula(tx, formulas[i])
		if err != nil {
			return err
		}
		log.Debug().Msgf("Upserted formula: ID: %s, Name: %s", formulas[i].ID, formulas[i].Name)
	}

	return nil
}

func scanFormula(rows *sql.Rows) (Formula, error) {
	formula := Formula{}
	var productIDs []byte
	var depths []byte

	err := rows.Scan(&formula.ID, &formula.Name, &formula.Expression, &formula.TargetAttribute,
		&productIDs, &depths, &formula.Priority, &formula.Enabled)
	if err != nil {
		return Formula{}, err
	}

	if err := json.Unmarshal(productIDs, &formula.ProductIDs); err != nil {
		return Formula{}, err
	}
	if err := json.Unmarshal(depths, &formula.Depths); err != nil {
		return Formula{}, err
	}

	return formula, nil
}

// GetAllFormulas returns every stored formula ordered by priority then name,
// so engine input order is stable across runs.
func GetAllFormulas(db *sql.DB) ([]Formula, error) {
	query := `
		select formula_id, name, expression, target_attribute, product_ids, depths, priority, enabled
		from formulas
		order by priority, name;`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	formulas := make([]Formula, 0)
	for rows.Next() {
		formula, err := scanFormula(rows)
		if err != nil {
			return nil, err
		}
		formulas = append(formulas, formula)
	}

	return formulas, rows.Err()
}

func GetFormulaByID(db *sql.DB, id string) (*Formula, error) {
	query := `
		select formula_id, name, expression, target_attribute, product_ids, depths, priority, enabled
		from formulas
		where formula_id = $1;`

	rows, err := db.Query(query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, fmt.Errorf("no formula with id %s", id)
	}

	formula, err := scanFormula(rows)
	if err != nil {
		return nil, err
	}

	return &formula, nil
}

func DeleteFormula(db *sql.DB, id string) error {
	_, err := db.Exec(`delete from formulas where formula_id = $1;`, id)
	return err
}

func CountFormulas(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`select count(*) from formulas;`).Scan(&count)
	return count, err
}

package models

import (
	"database/sql"
)

// Variable is one global variable usable in formulas as @name@.
type Variable struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func SetVariable(db *sql.DB, name string, value float64) error {
	query := `INSERT INTO variables (name, value)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = $2;`
	_, err := db.Exec(query, name, value)
	return err
}

func DeleteVariable(db *sql.DB, name string) error {
	_, err := db.Exec(`delete from variables where name = $1;`, name)
	return err
}

// GetAllVariables returns the variables as the flat map the engine consumes.
func GetAllVariables(db *sql.DB) (map[string]float64, error) {
	rows, err := db.Query(`select name, value from variables;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vars := make(map[string]float64)
	for rows.Next() {
		var v Variable
		if err := rows.Scan(&v.Name, &v.Value); err != nil {
			return nil, err
		}
		vars[v.Name] = v.Value
	}

	return vars, rows.Err()
}

// ListVariables returns the variables as rows, for the API.
func ListVariables(db *sql.DB) ([]Variable, error) {
	rows, err := db.Query(`select name, value from variables order by name;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vars := make([]Variable, 0)
	for rows.Next() {
		var v Variable
		if err := rows.Scan(&v.Name, &v.Value); err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}

	return vars, rows.Err()
}

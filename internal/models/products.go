package models

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"soil-reco/internal/engine"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Product is a catalog entry as stored. Guarantees and dose rules are kept
// as jsonb documents.
type Product struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Category   string             `json:"category"`
	Unit       string             `json:"unit"`
	Guarantees map[string]float64 `json:"guarantees"`
	Rules      engine.DoseRules   `json:"rules"`
}

// NewProductID generates a catalog product id.
func NewProductID() string {
	return "p_" + uuid.NewString()
}

// ToEngine converts the stored product to the engine's input shape.
func (p Product) ToEngine() engine.Product {
	return engine.Product{
		ID:         p.ID,
		Name:       p.Name,
		Category:   p.Category,
		Unit:       p.Unit,
		Guarantees: p.Guarantees,
		Rules:      p.Rules,
	}
}

func UpsertProduct(tx *sql.Tx, product Product) error {
	guarantees, err := json.Marshal(product.Guarantees)
	if err != nil {
		return fmt.Errorf("failed to marshal guarantees for product %s: %w", product.ID, err)
	}
	rules, err := json.Marshal(product.Rules)
	if err != nil {
		return fmt.Errorf("failed to marshal dose rules for product %s: %w", product.ID, err)
	}

	query := `INSERT INTO products (
			product_id,
			name,
			category,
			unit,
			guarantees,
			dose_rules
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (product_id) DO UPDATE SET
			name = $2,
			category = $3,
			unit = $4,
			guarantees = $5,
			dose_rules = $6;`
	_, err = tx.Exec(query, product.ID, product.Name, product.Category, product.Unit, guarantees, rules)
	if err != nil {
		return err
	}

	return nil
}

func UpsertManyProduct(tx *sql.Tx, products []Product) error {
	for i := 0; i < len(products); i++ {
		err := UpsertProduct(tx, products[i])
		if err != nil {
			return err
		}
		log.Debug().Msgf("Upserted product: ID: %s, Name: %s", products[i].ID, products[i].Name)
	}

	return nil
}

func scanProduct(rows *sql.Rows) (Product, error) {
	product := Product{}
	var guarantees []byte
	var rules []byte

	err := rows.Scan(&product.ID, &product.Name, &product.Category, &product.Unit, &guarantees, &rules)
	if err != nil {
		return Product{}, err
	}

	if err := json.Unmarshal(guarantees, &product.Guarantees); err != nil {
		return Product{}, err
	}
	if err := json.Unmarshal(rules, &product.Rules); err != nil {
		return Product{}, err
	}

	return product, nil
}

func GetAllProducts(db *sql.DB) ([]Product, error) {
	query := `
		select product_id, name, category, unit, guarantees, dose_rules
		from products
		order by name;`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

func GetProductByID(db *sql.DB, id string) (*Product, error) {
	query := `
		select product_id, name, category, unit, guarantees, dose_rules
		from products
		where product_id = $1;`

	rows, err := db.Query(query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, fmt.Errorf("no product with id %s", id)
	}

	product, err := scanProduct(rows)
	if err != nil {
		return nil, err
	}

	return &product, nil
}

func DeleteProduct(db *sql.DB, id string) error {
	_, err := db.Exec(`delete from products where product_id = $1;`, id)
	return err
}

func CountProducts(db *sql.DB) (int, error) {
	var count int
	err := db.QueryRow(`select count(*) from products;`).Scan(&count)
	return count, err
}

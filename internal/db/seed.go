package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type seedProduct struct {
	name     string
	kind     string
	category int
	quantity int
	unit     int
	status   string
}

// SeedSampleData inserts a small demo catalog: four categories, four units and four products.
// It does nothing when products already exist.
func SeedSampleData(ctx context.Context, db Beginner) error {
	return WithTx(ctx, db, func(tx pgx.Tx) error {
		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM product`).Scan(&count); err != nil {
			return fmt.Errorf("failed to count products: %w", err)
		}
		if count > 0 {
			return nil
		}

		categoryIDs := make([]int, 0, 4)
		for _, name := range []string{"Analgesics", "Antibiotics", "Antihistamines", "First Aid"} {
			var id int
			if err := tx.QueryRow(ctx, `INSERT INTO category (category_name) VALUES ($1) RETURNING id`, name).Scan(&id); err != nil {
				return fmt.Errorf("failed to insert category %q: %w", name, err)
			}
			categoryIDs = append(categoryIDs, id)
		}

		unitIDs := make([]int, 0, 4)
		for _, name := range []string{"Tablet", "Capsule", "Bottle", "Box"} {
			var id int
			if err := tx.QueryRow(ctx, `INSERT INTO unit (unit_name) VALUES ($1) RETURNING unit_id`, name).Scan(&id); err != nil {
				return fmt.Errorf("failed to insert unit %q: %w", name, err)
			}
			unitIDs = append(unitIDs, id)
		}

		products := []seedProduct{
			{"Paracetamol 500mg", "medicine", 0, 100, 0, "in stock"},
			{"Amoxicillin 500mg", "medicine", 1, 50, 1, "in stock"},
			{"Band-aid", "supply", 3, 5, 3, "low stock"},
			{"Antihistamine Syrup", "medicine", 2, 0, 2, "out of stock"},
		}
		for _, p := range products {
			_, err := tx.Exec(ctx, `
				INSERT INTO product (product_name, product_type, category_id, stock_quantity, unit_id, stock_status)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				p.name, p.kind, categoryIDs[p.category], p.quantity, unitIDs[p.unit], p.status)
			if err != nil {
				return fmt.Errorf("failed to insert product %q: %w", p.name, err)
			}
		}
		return nil
	})
}

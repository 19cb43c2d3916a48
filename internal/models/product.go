package models

import "time"

// Product types.
const (
	ProductTypeMedicine = "medicine"
	ProductTypeSupply   = "supply"
)

// Stock status labels, recomputed after every stock movement.
const (
	StockStatusInStock    = "in stock"
	StockStatusLowStock   = "low stock"
	StockStatusOutOfStock = "out of stock"
)

// Product lifecycle states.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product represents a medicine or supply held in stock.
type Product struct {
	ID            int       `json:"id"`
	Name          string    `json:"product_name"`
	Type          string    `json:"product_type"`
	CategoryID    *int      `json:"category_id,omitempty"`
	StockQuantity int       `json:"stock_quantity"`
	UnitID        *int      `json:"unit_id,omitempty"`
	StockStatus   string    `json:"stock_status"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProductView is a product row joined with its category and unit names.
// Either name is empty when the reference is null.
type ProductView struct {
	Product
	CategoryName string `json:"category_name"`
	UnitName     string `json:"unit_name"`
}

// ProductOption is the id/name pair used by selection dropdowns.
type ProductOption struct {
	ID   int    `json:"id"`
	Name string `json:"product_name"`
}

// ValidProductType reports whether t is one of the known product types.
func ValidProductType(t string) bool {
	return t == ProductTypeMedicine || t == ProductTypeSupply
}

// StockStatusFor derives the stock status label of a quantity.
func StockStatusFor(quantity, lowStockThreshold int) string {
	switch {
	case quantity <= 0:
		return StockStatusOutOfStock
	case quantity <= lowStockThreshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

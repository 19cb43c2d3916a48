package models

import "time"

// Category groups products for display and filtering.
type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"category_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Unit is the dispensing unit of a product, e.g. "Tablet" or "Box".
type Unit struct {
	ID   int    `json:"unit_id"`
	Name string `json:"unit_name"`
}

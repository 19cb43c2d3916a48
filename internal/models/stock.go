package models

import "time"

// Purchase statuses.
const (
	PurchaseStatusActive     = "active"
	PurchaseStatusNearExpiry = "near expiry"
	PurchaseStatusExpired    = "expired"
)

// Transaction directions.
const (
	TransactionStockIn  = "stock-in"
	TransactionStockOut = "stock-out"
)

// Purchase is a stock-in batch.
type Purchase struct {
	ID                int        `json:"id"`
	ProductID         int        `json:"product_id"`
	ProductName       string     `json:"product_name,omitempty"`
	BatchNumber       string     `json:"batch_number,omitempty"`
	PurchaseQuantity  int        `json:"purchase_quantity"`
	RemainingQuantity int        `json:"remaining_quantity"`
	ExpirationDate    *time.Time `json:"expiration_date,omitempty"`
	Status            string     `json:"status"`
	PurchaseDate      time.Time  `json:"purchase_date"`
}

// Order is a stock-out event. BatchNumber is free text, not a purchase reference.
type Order struct {
	ID            int       `json:"order_id"`
	ProductID     int       `json:"product_id"`
	ProductName   string    `json:"product_name,omitempty"`
	OrderQuantity int       `json:"order_quantity"`
	BatchNumber   string    `json:"batch_number,omitempty"`
	OrderDate     time.Time `json:"order_date"`
}

// Transaction is a generic stock adjustment recorded by a staff member.
type Transaction struct {
	ID        int       `json:"id"`
	ProductID int       `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Type      string    `json:"transaction_type"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidTransactionType reports whether t is stock-in or stock-out.
func ValidTransactionType(t string) bool {
	return t == TransactionStockIn || t == TransactionStockOut
}

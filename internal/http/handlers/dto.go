package handlers

import (
	"github.com/rogerio-castellano/medisync/internal/models"
	"github.com/rogerio-castellano/medisync/internal/repo"
)

type ProductsPageData struct {
	Products      []models.ProductView
	Categories    []models.Category
	Units         []models.Unit
	Types         []string
	StockStatuses []string
	Filter        repo.ProductFilter
}

type PurchasesPageData struct {
	Purchases []models.Purchase
	Products  []models.ProductOption
}

type OrdersPageData struct {
	Orders   []models.Order
	Products []models.ProductOption
}

type HealthResponse struct {
	Status string `json:"status"`
}

// ProductForm is the body of POST /add-product.
type ProductForm struct {
	Name       string `form:"product_name"`
	Type       string `form:"product_type"`
	CategoryID string `form:"category_id"`
	UnitID     string `form:"unit_id"`
}

// PurchaseForm is the body of POST /add-purchase.
type PurchaseForm struct {
	ProductID      string `form:"product_id"`
	Quantity       string `form:"purchase_quantity"`
	ExpirationDate string `form:"expiration_date" example:"2026-12-31"`
	BatchNumber    string `form:"batch_number"`
}

// OrderForm is the body of POST /add-order.
type OrderForm struct {
	ProductID   string `form:"product_id"`
	Quantity    string `form:"order_quantity"`
	BatchNumber string `form:"batch_number"`
}

// TransactionForm is the body of POST /transaction/add.
type TransactionForm struct {
	ProductID string `form:"product_id"`
	Quantity  string `form:"quantity"`
	Type      string `form:"transaction_type" enums:"stock-in,stock-out"`
}

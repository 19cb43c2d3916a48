package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rogerio-castellano/medisync/internal/models"
	"github.com/rogerio-castellano/medisync/internal/repo"
)

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// first returns the first description, for flashing.
func first(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}
	return errs[0].Description
}

func positiveInt(field, label, raw string, errs *[]ValidationError) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 || v > math.MaxInt32 {
		*errs = append(*errs, ValidationError{Field: field, Description: label + " must be a positive whole number"})
		return 0
	}
	return v
}

func optionalID(field, label, raw string, errs *[]ValidationError) *int {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	v := positiveInt(field, label, raw, errs)
	if v == 0 {
		return nil
	}
	return &v
}

func readProductForm(r *http.Request) ProductForm {
	return ProductForm{
		Name:       strings.TrimSpace(r.PostFormValue("product_name")),
		Type:       strings.TrimSpace(r.PostFormValue("product_type")),
		CategoryID: r.PostFormValue("category_id"),
		UnitID:     r.PostFormValue("unit_id"),
	}
}

func validateProduct(f ProductForm) (models.Product, []ValidationError) {
	errs := []ValidationError{}
	if f.Name == "" {
		errs = append(errs, ValidationError{Field: "product_name", Description: "Product name is required"})
	}
	if !models.ValidProductType(f.Type) {
		errs = append(errs, ValidationError{Field: "product_type", Description: "Product type must be medicine or supply"})
	}
	p := models.Product{
		Name:          f.Name,
		Type:          f.Type,
		CategoryID:    optionalID("category_id", "Category", f.CategoryID, &errs),
		UnitID:        optionalID("unit_id", "Unit", f.UnitID, &errs),
		StockQuantity: 0,
		StockStatus:   models.StockStatusOutOfStock,
		Status:        models.ProductStatusActive,
	}
	return p, errs
}

func readPurchaseForm(r *http.Request) PurchaseForm {
	return PurchaseForm{
		ProductID:      r.PostFormValue("product_id"),
		Quantity:       r.PostFormValue("purchase_quantity"),
		ExpirationDate: strings.TrimSpace(r.PostFormValue("expiration_date")),
		BatchNumber:    strings.TrimSpace(r.PostFormValue("batch_number")),
	}
}

func validatePurchase(f PurchaseForm) (repo.PurchaseInput, []ValidationError) {
	errs := []ValidationError{}
	in := repo.PurchaseInput{
		ProductID:   positiveInt("product_id", "Product", f.ProductID, &errs),
		Quantity:    positiveInt("purchase_quantity", "Quantity", f.Quantity, &errs),
		BatchNumber: f.BatchNumber,
	}
	if f.ExpirationDate != "" {
		exp, err := time.Parse("2006-01-02", f.ExpirationDate)
		if err != nil {
			errs = append(errs, ValidationError{Field: "expiration_date", Description: "Expiration date must be formatted YYYY-MM-DD"})
		} else {
			in.ExpirationDate = &exp
		}
	}
	return in, errs
}

func readOrderForm(r *http.Request) OrderForm {
	return OrderForm{
		ProductID:   r.PostFormValue("product_id"),
		Quantity:    r.PostFormValue("order_quantity"),
		BatchNumber: strings.TrimSpace(r.PostFormValue("batch_number")),
	}
}

func validateOrder(f OrderForm) (repo.OrderInput, []ValidationError) {
	errs := []ValidationError{}
	in := repo.OrderInput{
		ProductID:   positiveInt("product_id", "Product", f.ProductID, &errs),
		Quantity:    positiveInt("order_quantity", "Quantity", f.Quantity, &errs),
		BatchNumber: f.BatchNumber,
	}
	return in, errs
}

func readTransactionForm(r *http.Request) TransactionForm {
	return TransactionForm{
		ProductID: r.PostFormValue("product_id"),
		Quantity:  r.PostFormValue("quantity"),
		Type:      strings.TrimSpace(r.PostFormValue("transaction_type")),
	}
}

func validateTransaction(f TransactionForm, actor string) (repo.TransactionInput, []ValidationError) {
	errs := []ValidationError{}
	in := repo.TransactionInput{
		ProductID: positiveInt("product_id", "Product", f.ProductID, &errs),
		Quantity:  positiveInt("quantity", "Quantity", f.Quantity, &errs),
		Type:      f.Type,
		Actor:     actor,
	}
	if !models.ValidTransactionType(f.Type) {
		errs = append(errs, ValidationError{Field: "transaction_type", Description: "Transaction type must be stock-in or stock-out"})
	}
	return in, errs
}

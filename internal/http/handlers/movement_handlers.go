package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/medisync/internal/auth"
	"github.com/rogerio-castellano/medisync/internal/http/flash"
	"github.com/rogerio-castellano/medisync/internal/http/views"
	"github.com/rogerio-castellano/medisync/internal/logger"
	"github.com/rogerio-castellano/medisync/internal/metrics"
	"github.com/rogerio-castellano/medisync/internal/models"
	"github.com/rogerio-castellano/medisync/internal/repo"
	"go.uber.org/zap"
)

// PurchasesHandler godoc
// @Summary Purchase listing
// @Description Stock-in batches, newest first, with the product dropdown for the entry form
// @Tags stock
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /purchases [get]
func (s *Server) PurchasesHandler(w http.ResponseWriter, r *http.Request) {
	p := s.page(w, r, "Purchases", views.Purchases)
	data := PurchasesPageData{Purchases: []models.Purchase{}, Products: []models.ProductOption{}}

	purchases, err := s.stock.ListPurchases(r.Context())
	if err == nil {
		data.Purchases = purchases
		data.Products, err = s.catalog.ListProductOptions(r.Context())
	}
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to load purchases", zap.Error(err))
		data = PurchasesPageData{Purchases: []models.Purchase{}, Products: []models.ProductOption{}}
		p.AddError("Error loading purchases")
	}

	p.Data = data
	s.render(w, r, views.Purchases, p)
}

// AddPurchaseHandler godoc
// @Summary Record a purchase
// @Description Inserts the batch and raises the product's stock in one transaction
// @Tags stock
// @Accept x-www-form-urlencoded
// @Param product_id formData int true "Product id"
// @Param purchase_quantity formData int true "Quantity"
// @Param expiration_date formData string false "Expiration date, YYYY-MM-DD"
// @Param batch_number formData string false "Batch number"
// @Success 303 "Redirect to /purchases with a flash message"
// @Router /add-purchase [post]
func (s *Server) AddPurchaseHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/purchases", flash.Error, "Invalid form submission")
		return
	}

	in, errs := validatePurchase(readPurchaseForm(r))
	if len(errs) > 0 {
		redirectWithFlash(w, r, "/purchases", flash.Error, first(errs))
		return
	}

	purchase, err := s.stock.RecordPurchase(r.Context(), in)
	if err != nil {
		s.movementFailed(w, r, "/purchases", "Error adding purchase", err)
		return
	}

	s.metrics.RecordStockMovement(metrics.KindPurchase, purchase.PurchaseQuantity)
	logger.FromContext(r.Context()).Info("purchase recorded",
		zap.Int("purchase_id", purchase.ID), zap.Int("product_id", purchase.ProductID), zap.Int("quantity", purchase.PurchaseQuantity))
	redirectWithFlash(w, r, "/purchases", flash.Success, "Purchase added successfully!")
}

// OrdersHandler godoc
// @Summary Order listing
// @Description Stock-out events, newest first, with the product dropdown for the entry form
// @Tags stock
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /orders [get]
func (s *Server) OrdersHandler(w http.ResponseWriter, r *http.Request) {
	p := s.page(w, r, "Orders", views.Orders)
	data := OrdersPageData{Orders: []models.Order{}, Products: []models.ProductOption{}}

	orders, err := s.stock.ListOrders(r.Context())
	if err == nil {
		data.Orders = orders
		data.Products, err = s.catalog.ListProductOptions(r.Context())
	}
	if err != nil {
		logger.FromContext(r.Context()).Error("failed to load orders", zap.Error(err))
		data = OrdersPageData{Orders: []models.Order{}, Products: []models.ProductOption{}}
		p.AddError("Error loading orders")
	}

	p.Data = data
	s.render(w, r, views.Orders, p)
}

// AddOrderHandler godoc
// @Summary Record an order
// @Description Inserts the order and lowers the product's stock, never below zero
// @Tags stock
// @Accept x-www-form-urlencoded
// @Param product_id formData int true "Product id"
// @Param order_quantity formData int true "Quantity"
// @Param batch_number formData string false "Batch number"
// @Success 303 "Redirect to /orders with a flash message"
// @Router /add-order [post]
func (s *Server) AddOrderHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/orders", flash.Error, "Invalid form submission")
		return
	}

	in, errs := validateOrder(readOrderForm(r))
	if len(errs) > 0 {
		redirectWithFlash(w, r, "/orders", flash.Error, first(errs))
		return
	}

	order, err := s.stock.RecordOrder(r.Context(), in)
	if err != nil {
		s.movementFailed(w, r, "/orders", "Error adding order", err)
		return
	}

	s.metrics.RecordStockMovement(metrics.KindOrder, order.OrderQuantity)
	logger.FromContext(r.Context()).Info("order recorded",
		zap.Int("order_id", order.ID), zap.Int("product_id", order.ProductID), zap.Int("quantity", order.OrderQuantity))
	redirectWithFlash(w, r, "/orders", flash.Success, "Order added successfully!")
}

// AddTransactionHandler godoc
// @Summary Adjust stock
// @Description Records a stock-in or stock-out and applies it to the product atomically
// @Tags stock
// @Accept x-www-form-urlencoded
// @Param product_id formData int true "Product id"
// @Param quantity formData int true "Quantity"
// @Param transaction_type formData string true "Direction" Enums(stock-in, stock-out)
// @Success 303 "Redirect to the originating page with a flash message"
// @Router /transaction/add [post]
func (s *Server) AddTransactionHandler(w http.ResponseWriter, r *http.Request) {
	back := originOr(r, "/products")
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, back, flash.Error, "Invalid form submission")
		return
	}

	sess, _ := auth.SessionFromContext(r.Context())
	in, errs := validateTransaction(readTransactionForm(r), sess.Username)
	if len(errs) > 0 {
		redirectWithFlash(w, r, back, flash.Error, first(errs))
		return
	}

	tx, err := s.stock.RecordTransaction(r.Context(), in)
	if err != nil {
		s.movementFailed(w, r, back, "Error recording transaction", err)
		return
	}

	s.metrics.RecordStockMovement(metrics.KindTransaction, tx.Quantity)
	logger.FromContext(r.Context()).Info("transaction recorded",
		zap.Int("transaction_id", tx.ID), zap.Int("product_id", tx.ProductID),
		zap.String("type", tx.Type), zap.Int("quantity", tx.Quantity))
	redirectWithFlash(w, r, back, flash.Success, "Stock updated successfully!")
}

func (s *Server) movementFailed(w http.ResponseWriter, r *http.Request, target, prefix string, err error) {
	switch {
	case errors.Is(err, repo.ErrProductNotFound):
		redirectWithFlash(w, r, target, flash.Error, prefix+": product not found")
	case errors.Is(err, repo.ErrInvalidQuantity):
		redirectWithFlash(w, r, target, flash.Error, prefix+": quantity must be greater than zero")
	default:
		logger.FromContext(r.Context()).Error(prefix, zap.Error(err))
		redirectWithFlash(w, r, target, flash.Error, prefix)
	}
}

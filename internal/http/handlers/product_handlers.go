package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/medisync/internal/http/flash"
	"github.com/rogerio-castellano/medisync/internal/http/views"
	"github.com/rogerio-castellano/medisync/internal/logger"
	"github.com/rogerio-castellano/medisync/internal/models"
	"github.com/rogerio-castellano/medisync/internal/repo"
	"go.uber.org/zap"
)

// ProductsHandler godoc
// @Summary Product listing
// @Description Products with category and unit names, newest first
// @Tags products
// @Produce html
// @Param type query string false "Product type" Enums(medicine, supply)
// @Param category_id query int false "Category id"
// @Param stock_status query string false "Stock status" Enums(in stock, low stock, out of stock)
// @Param q query string false "Name contains, case insensitive"
// @Success 200 {string} string "HTML page"
// @Router /products [get]
func (s *Server) ProductsHandler(w http.ResponseWriter, r *http.Request) {
	p := s.page(w, r, "Products", views.Products)
	data := ProductsPageData{
		Products:      []models.ProductView{},
		Categories:    []models.Category{},
		Units:         []models.Unit{},
		Types:         []string{},
		StockStatuses: []string{models.StockStatusInStock, models.StockStatusLowStock, models.StockStatusOutOfStock},
		Filter:        productFilterFromQuery(r),
	}

	if err := s.loadProductsPage(r, &data); err != nil {
		logger.FromContext(r.Context()).Error("failed to load products", zap.Error(err))
		data.Products, data.Categories, data.Units, data.Types = []models.ProductView{}, []models.Category{}, []models.Unit{}, []string{}
		p.AddError("Error loading products")
	}

	p.Data = data
	s.render(w, r, views.Products, p)
}

func (s *Server) loadProductsPage(r *http.Request, data *ProductsPageData) error {
	ctx := r.Context()
	var err error
	if data.Products, err = s.catalog.ListProducts(ctx, data.Filter); err != nil {
		return err
	}
	if data.Categories, err = s.catalog.ListCategories(ctx); err != nil {
		return err
	}
	if data.Units, err = s.catalog.ListUnits(ctx); err != nil {
		return err
	}
	if data.Types, err = s.catalog.ListProductTypes(ctx); err != nil {
		return err
	}
	return nil
}

func productFilterFromQuery(r *http.Request) repo.ProductFilter {
	q := r.URL.Query()
	f := repo.ProductFilter{
		Type:        strings.TrimSpace(q.Get("type")),
		StockStatus: strings.TrimSpace(q.Get("stock_status")),
		Name:        strings.TrimSpace(q.Get("q")),
	}
	if id, err := strconv.Atoi(q.Get("category_id")); err == nil && id > 0 {
		f.CategoryID = &id
	}
	return f
}

// AddProductHandler godoc
// @Summary Create a product
// @Description New products start with zero stock and the "out of stock" status
// @Tags products
// @Accept x-www-form-urlencoded
// @Param product_name formData string true "Name"
// @Param product_type formData string true "Type" Enums(medicine, supply)
// @Param category_id formData int false "Category id"
// @Param unit_id formData int false "Unit id"
// @Success 303 "Redirect to /products with a flash message"
// @Router /add-product [post]
func (s *Server) AddProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/products", flash.Error, "Invalid form submission")
		return
	}

	product, errs := validateProduct(readProductForm(r))
	if len(errs) > 0 {
		redirectWithFlash(w, r, "/products", flash.Error, first(errs))
		return
	}

	created, err := s.catalog.CreateProduct(r.Context(), product)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrUnknownReference):
			redirectWithFlash(w, r, "/products", flash.Error, "Error adding product: unknown category or unit")
		case errors.Is(err, repo.ErrDuplicatedValueUnique):
			redirectWithFlash(w, r, "/products", flash.Error, "Error adding product: product already exists")
		default:
			logger.FromContext(r.Context()).Error("failed to create product", zap.Error(err))
			redirectWithFlash(w, r, "/products", flash.Error, "Error adding product")
		}
		return
	}

	logger.FromContext(r.Context()).Info("product created", zap.Int("product_id", created.ID), zap.String("name", created.Name))
	redirectWithFlash(w, r, "/products", flash.Success, "Product added successfully!")
}

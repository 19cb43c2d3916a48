package repo

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/rogerio-castellano/medisync/internal/models"
)

type InMemoryCatalogRepository struct {
	db *InMemoryDB
}

func NewInMemoryCatalogRepository(db *InMemoryDB) *InMemoryCatalogRepository {
	return &InMemoryCatalogRepository{db: db}
}

func (r *InMemoryCatalogRepository) ListProducts(_ context.Context, f ProductFilter) ([]models.ProductView, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	name := strings.ToLower(strings.TrimSpace(f.Name))
	products := []models.ProductView{}
	for i := len(r.db.products) - 1; i >= 0; i-- {
		p := r.db.products[i]
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		if f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID) {
			continue
		}
		if f.StockStatus != "" && p.StockStatus != f.StockStatus {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		products = append(products, r.view(p))
	}
	return products, nil
}

func (r *InMemoryCatalogRepository) view(p models.Product) models.ProductView {
	v := models.ProductView{Product: p}
	if p.CategoryID != nil {
		for _, c := range r.db.categories {
			if c.ID == *p.CategoryID {
				v.CategoryName = c.Name
			}
		}
	}
	if p.UnitID != nil {
		for _, u := range r.db.units {
			if u.ID == *p.UnitID {
				v.UnitName = u.Name
			}
		}
	}
	return v
}

func (r *InMemoryCatalogRepository) ListProductOptions(_ context.Context) ([]models.ProductOption, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	options := make([]models.ProductOption, 0, len(r.db.products))
	for _, p := range r.db.products {
		options = append(options, models.ProductOption{ID: p.ID, Name: p.Name})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Name < options[j].Name })
	return options, nil
}

func (r *InMemoryCatalogRepository) ListProductTypes(_ context.Context) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	types := []string{}
	for _, p := range r.db.products {
		if !slices.Contains(types, p.Type) {
			types = append(types, p.Type)
		}
	}
	slices.Sort(types)
	return types, nil
}

func (r *InMemoryCatalogRepository) ListCategories(_ context.Context) ([]models.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	categories := slices.Clone(r.db.categories)
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

func (r *InMemoryCatalogRepository) ListUnits(_ context.Context) ([]models.Unit, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	units := slices.Clone(r.db.units)
	sort.Slice(units, func(i, j int) bool { return units[i].Name < units[j].Name })
	if units == nil {
		units = []models.Unit{}
	}
	return units, nil
}

func (r *InMemoryCatalogRepository) GetProduct(_ context.Context, id int) (models.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if i := r.db.productIndex(id); i >= 0 {
		return r.db.products[i], nil
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryCatalogRepository) CreateProduct(_ context.Context, p models.Product) (models.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if p.CategoryID != nil && !slices.ContainsFunc(r.db.categories, func(c models.Category) bool { return c.ID == *p.CategoryID }) {
		return models.Product{}, ErrUnknownReference
	}
	if p.UnitID != nil && !slices.ContainsFunc(r.db.units, func(u models.Unit) bool { return u.ID == *p.UnitID }) {
		return models.Product{}, ErrUnknownReference
	}
	return r.db.insertProduct(p), nil
}

package repo

import (
	"context"
	"slices"
	"time"

	"github.com/rogerio-castellano/medisync/internal/models"
)

type InMemoryMetricsRepository struct {
	db *InMemoryDB
}

func NewInMemoryMetricsRepository(db *InMemoryDB) *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{db: db}
}

func (r *InMemoryMetricsRepository) DashboardSummary(_ context.Context, asOf time.Time) (models.DashboardSummary, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s := models.EmptyDashboardSummary()
	types := map[int]string{}
	for _, p := range r.db.products {
		types[p.ID] = p.Type
		if p.Status != models.ProductStatusActive {
			continue
		}
		s.TotalStock += p.StockQuantity
		switch p.Type {
		case models.ProductTypeMedicine:
			s.Medicines++
		case models.ProductTypeSupply:
			s.Supplies++
		}
		if p.StockStatus == models.StockStatusOutOfStock {
			s.OutOfStock++
		}
	}

	end := dateOf(asOf)
	start := end.AddDate(0, 0, -7)
	inWindow := func(t time.Time) bool {
		d := dateOf(t)
		return !d.Before(start) && !d.After(end)
	}

	for _, pu := range r.db.purchases {
		if inWindow(pu.PurchaseDate) {
			switch types[pu.ProductID] {
			case models.ProductTypeMedicine:
				s.StockInMedicines += pu.PurchaseQuantity
			case models.ProductTypeSupply:
				s.StockInSupplies += pu.PurchaseQuantity
			}
		}
		if pu.Status != models.PurchaseStatusNearExpiry {
			continue
		}
		s.ExpiringSoonCount++
		if pu.ExpirationDate != nil {
			s.ExpiringSoon = append(s.ExpiringSoon, models.ExpiringItem{
				ID:             pu.ID,
				ProductName:    r.db.productName(pu.ProductID),
				ExpirationDate: *pu.ExpirationDate,
			})
		}
	}
	for _, o := range r.db.orders {
		if !inWindow(o.OrderDate) {
			continue
		}
		switch types[o.ProductID] {
		case models.ProductTypeMedicine:
			s.StockOutMedicines += o.OrderQuantity
		case models.ProductTypeSupply:
			s.StockOutSupplies += o.OrderQuantity
		}
	}

	s.TotalOrders = len(r.db.orders)
	slices.SortStableFunc(s.ExpiringSoon, func(a, b models.ExpiringItem) int {
		return a.ExpirationDate.Compare(b.ExpirationDate)
	})
	return s, nil
}

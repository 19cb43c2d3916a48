package repo

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rogerio-castellano/medisync/internal/models"
)

type InMemoryStockRepository struct {
	db   *InMemoryDB
	opts StockOptions
}

func NewInMemoryStockRepository(db *InMemoryDB, opts StockOptions) *InMemoryStockRepository {
	return &InMemoryStockRepository{db: db, opts: opts}
}

func (r *InMemoryStockRepository) RecordPurchase(_ context.Context, in PurchaseInput) (models.Purchase, error) {
	if in.Quantity <= 0 {
		return models.Purchase{}, ErrInvalidQuantity
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	product, err := r.db.adjustStock(in.ProductID, in.Quantity, r.opts.LowStockThreshold)
	if err != nil {
		return models.Purchase{}, err
	}

	now := r.db.Now()
	p := models.Purchase{
		ID:                len(r.db.purchases) + 1,
		ProductID:         in.ProductID,
		ProductName:       product.Name,
		BatchNumber:       in.BatchNumber,
		PurchaseQuantity:  in.Quantity,
		RemainingQuantity: in.Quantity,
		ExpirationDate:    in.ExpirationDate,
		Status:            purchaseStatusFor(in.ExpirationDate, now, r.opts.ExpiryWindowDays),
		PurchaseDate:      dateOf(now),
	}
	r.db.purchases = append(r.db.purchases, p)
	if p.Status != models.PurchaseStatusActive {
		r.db.insertNotification(models.Notification{Message: expiryMessage(p), Type: models.NotificationExpiry})
	}
	return p, nil
}

func (r *InMemoryStockRepository) RecordOrder(_ context.Context, in OrderInput) (models.Order, error) {
	if in.Quantity <= 0 {
		return models.Order{}, ErrInvalidQuantity
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	product, err := r.db.adjustStock(in.ProductID, -in.Quantity, r.opts.LowStockThreshold)
	if err != nil {
		return models.Order{}, err
	}

	o := models.Order{
		ID:            len(r.db.orders) + 1,
		ProductID:     in.ProductID,
		ProductName:   product.Name,
		OrderQuantity: in.Quantity,
		BatchNumber:   in.BatchNumber,
		OrderDate:     dateOf(r.db.Now()),
	}
	r.db.orders = append(r.db.orders, o)

	if in.BatchNumber != "" {
		for i := range r.db.purchases {
			p := &r.db.purchases[i]
			if p.ProductID == in.ProductID && p.BatchNumber == in.BatchNumber {
				p.RemainingQuantity = max(p.RemainingQuantity-in.Quantity, 0)
				if p.RemainingQuantity == 0 {
					p.Status = models.PurchaseStatusActive
				}
			}
		}
	}
	return o, nil
}

func (r *InMemoryStockRepository) RecordTransaction(_ context.Context, in TransactionInput) (models.Transaction, error) {
	if in.Quantity <= 0 {
		return models.Transaction{}, ErrInvalidQuantity
	}
	if !models.ValidTransactionType(in.Type) {
		return models.Transaction{}, fmt.Errorf("unknown transaction type %q", in.Type)
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	delta := in.Quantity
	if in.Type == models.TransactionStockOut {
		delta = -delta
	}
	if _, err := r.db.adjustStock(in.ProductID, delta, r.opts.LowStockThreshold); err != nil {
		return models.Transaction{}, err
	}

	t := models.Transaction{
		ID:        len(r.db.transactions) + 1,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Type:      in.Type,
		Actor:     in.Actor,
		CreatedAt: r.db.Now(),
	}
	r.db.transactions = append(r.db.transactions, t)
	return t, nil
}

func (r *InMemoryStockRepository) ListPurchases(_ context.Context) ([]models.Purchase, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	purchases := make([]models.Purchase, 0, len(r.db.purchases))
	for _, p := range r.db.purchases {
		p.ProductName = r.db.productName(p.ProductID)
		purchases = append(purchases, p)
	}
	slices.SortStableFunc(purchases, func(a, b models.Purchase) int {
		if c := b.PurchaseDate.Compare(a.PurchaseDate); c != 0 {
			return c
		}
		return b.ID - a.ID
	})
	return purchases, nil
}

func (r *InMemoryStockRepository) ListOrders(_ context.Context) ([]models.Order, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	orders := make([]models.Order, 0, len(r.db.orders))
	for _, o := range r.db.orders {
		o.ProductName = r.db.productName(o.ProductID)
		orders = append(orders, o)
	}
	slices.SortStableFunc(orders, func(a, b models.Order) int {
		if c := b.OrderDate.Compare(a.OrderDate); c != 0 {
			return c
		}
		return b.ID - a.ID
	})
	return orders, nil
}

func (r *InMemoryStockRepository) FlagNearExpiry(_ context.Context, asOf time.Time, windowDays int) ([]models.Purchase, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	flagged := []models.Purchase{}
	for i := range r.db.purchases {
		p := &r.db.purchases[i]
		if p.RemainingQuantity <= 0 || p.ExpirationDate == nil {
			continue
		}
		next := purchaseStatusFor(p.ExpirationDate, asOf, windowDays)
		if next == models.PurchaseStatusActive || next == p.Status {
			continue
		}
		p.Status = next
		out := *p
		out.ProductName = r.db.productName(p.ProductID)
		flagged = append(flagged, out)
		r.db.insertNotification(models.Notification{Message: expiryMessage(out), Type: models.NotificationExpiry})
	}
	return flagged, nil
}

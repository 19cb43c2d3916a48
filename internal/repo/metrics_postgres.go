package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/rogerio-castellano/medisync/internal/models"
)

type PostgresMetricsRepository struct {
	db      Querier
	timeout time.Duration
}

func NewPostgresMetricsRepository(db Querier, timeout time.Duration) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db, timeout: timeout}
}

const productTotalsQuery = `SELECT
		COALESCE(SUM(stock_quantity), 0),
		COUNT(*) FILTER (WHERE product_type = 'medicine'),
		COUNT(*) FILTER (WHERE product_type = 'supply'),
		COUNT(*) FILTER (WHERE stock_status = 'out of stock')
	FROM product
	WHERE status = 'active'`

const weeklyStockInQuery = `SELECT
		COALESCE(SUM(pu.purchase_quantity) FILTER (WHERE p.product_type = 'medicine'), 0),
		COALESCE(SUM(pu.purchase_quantity) FILTER (WHERE p.product_type = 'supply'), 0)
	FROM purchase pu
	JOIN product p ON p.id = pu.product_id
	WHERE pu.purchase_date BETWEEN $1::date - 7 AND $1::date`

const weeklyStockOutQuery = `SELECT
		COALESCE(SUM(o.order_quantity) FILTER (WHERE p.product_type = 'medicine'), 0),
		COALESCE(SUM(o.order_quantity) FILTER (WHERE p.product_type = 'supply'), 0)
	FROM "Order" o
	JOIN product p ON p.id = o.product_id
	WHERE o.order_date BETWEEN $1::date - 7 AND $1::date`

const expiringSoonQuery = `SELECT pu.id, COALESCE(p.product_name, ''), pu.expiration_date
	FROM purchase pu
	LEFT JOIN product p ON p.id = pu.product_id
	WHERE pu.status = 'near expiry' AND pu.expiration_date IS NOT NULL
	ORDER BY pu.expiration_date ASC, pu.id ASC`

// DashboardSummary runs the dashboard aggregates. On any failure it returns the empty
// summary together with the error so callers can still render zeros.
func (r *PostgresMetricsRepository) DashboardSummary(ctx context.Context, asOf time.Time) (models.DashboardSummary, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	s := models.EmptyDashboardSummary()
	day := dateOf(asOf).Format(dateLayout)

	if err := r.db.QueryRow(ctx, productTotalsQuery).Scan(&s.TotalStock, &s.Medicines, &s.Supplies, &s.OutOfStock); err != nil {
		return models.EmptyDashboardSummary(), fmt.Errorf("failed to aggregate products: %w", err)
	}
	if err := r.db.QueryRow(ctx, weeklyStockInQuery, day).Scan(&s.StockInMedicines, &s.StockInSupplies); err != nil {
		return models.EmptyDashboardSummary(), fmt.Errorf("failed to aggregate stock-ins: %w", err)
	}
	if err := r.db.QueryRow(ctx, weeklyStockOutQuery, day).Scan(&s.StockOutMedicines, &s.StockOutSupplies); err != nil {
		return models.EmptyDashboardSummary(), fmt.Errorf("failed to aggregate stock-outs: %w", err)
	}
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM "Order"`).Scan(&s.TotalOrders); err != nil {
		return models.EmptyDashboardSummary(), fmt.Errorf("failed to count orders: %w", err)
	}
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM purchase WHERE status = 'near expiry'`).Scan(&s.ExpiringSoonCount); err != nil {
		return models.EmptyDashboardSummary(), fmt.Errorf("failed to count expiring purchases: %w", err)
	}

	rows, err := r.db.Query(ctx, expiringSoonQuery)
	if err != nil {
		return models.EmptyDashboardSummary(), fmt.Errorf("failed to list expiring purchases: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item models.ExpiringItem
		if err := rows.Scan(&item.ID, &item.ProductName, &item.ExpirationDate); err != nil {
			return models.EmptyDashboardSummary(), err
		}
		s.ExpiringSoon = append(s.ExpiringSoon, item)
	}
	if err := rows.Err(); err != nil {
		return models.EmptyDashboardSummary(), err
	}
	return s, nil
}

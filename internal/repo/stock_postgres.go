package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rogerio-castellano/medisync/internal/db"
	"github.com/rogerio-castellano/medisync/internal/models"
)

type PostgresStockRepository struct {
	db   Querier
	opts StockOptions
}

func NewPostgresStockRepository(db Querier, opts StockOptions) *PostgresStockRepository {
	return &PostgresStockRepository{db: db, opts: opts}
}

// adjustStockQuery applies a signed delta in one statement: the quantity never drops below
// zero and the status label is derived from the same new value.
const adjustStockQuery = `UPDATE product SET
		stock_quantity = GREATEST(stock_quantity + $1, 0),
		stock_status = CASE
			WHEN stock_quantity + $1 <= 0 THEN 'out of stock'
			WHEN stock_quantity + $1 <= $2 THEN 'low stock'
			ELSE 'in stock'
		END
	WHERE id = $3
	RETURNING product_name`

// adjust returns the product name so callers can word notifications.
func (r *PostgresStockRepository) adjust(ctx context.Context, tx pgx.Tx, productID, delta int) (string, error) {
	var name string
	err := tx.QueryRow(ctx, adjustStockQuery, delta, r.opts.LowStockThreshold, productID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrProductNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to adjust stock: %w", err)
	}
	return name, nil
}

func insertExpiryNotification(ctx context.Context, tx pgx.Tx, p models.Purchase) error {
	if _, err := tx.Exec(ctx, `INSERT INTO notification (message, type) VALUES ($1, $2)`,
		expiryMessage(p), models.NotificationExpiry); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (r *PostgresStockRepository) RecordPurchase(ctx context.Context, in PurchaseInput) (models.Purchase, error) {
	if in.Quantity <= 0 {
		return models.Purchase{}, ErrInvalidQuantity
	}
	ctx, cancel := withTimeout(ctx, r.opts.Timeout)
	defer cancel()

	p := models.Purchase{
		ProductID:         in.ProductID,
		BatchNumber:       in.BatchNumber,
		PurchaseQuantity:  in.Quantity,
		RemainingQuantity: in.Quantity,
		ExpirationDate:    in.ExpirationDate,
		Status:            purchaseStatusFor(in.ExpirationDate, time.Now(), r.opts.ExpiryWindowDays),
	}

	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		name, err := r.adjust(ctx, tx, in.ProductID, in.Quantity)
		if err != nil {
			return err
		}
		p.ProductName = name
		query := `INSERT INTO purchase (product_id, batch_number, purchase_quantity, remaining_quantity, expiration_date, status)
			VALUES ($1, NULLIF($2, ''), $3, $3, $4, $5)
			RETURNING id, purchase_date`
		if err := tx.QueryRow(ctx, query, p.ProductID, p.BatchNumber, p.PurchaseQuantity, p.ExpirationDate, p.Status).
			Scan(&p.ID, &p.PurchaseDate); err != nil {
			return fmt.Errorf("failed to insert purchase: %w", err)
		}
		// Already inside the window: the sweep only reports status changes, so notify now.
		if p.Status != models.PurchaseStatusActive {
			return insertExpiryNotification(ctx, tx, p)
		}
		return nil
	})
	if err != nil {
		return models.Purchase{}, err
	}
	return p, nil
}

func (r *PostgresStockRepository) RecordOrder(ctx context.Context, in OrderInput) (models.Order, error) {
	if in.Quantity <= 0 {
		return models.Order{}, ErrInvalidQuantity
	}
	ctx, cancel := withTimeout(ctx, r.opts.Timeout)
	defer cancel()

	o := models.Order{ProductID: in.ProductID, OrderQuantity: in.Quantity, BatchNumber: in.BatchNumber}

	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		name, err := r.adjust(ctx, tx, in.ProductID, -in.Quantity)
		if err != nil {
			return err
		}
		o.ProductName = name
		query := `INSERT INTO "Order" (product_id, order_quantity, batch_number)
			VALUES ($1, $2, NULLIF($3, ''))
			RETURNING order_id, order_date`
		if err := tx.QueryRow(ctx, query, o.ProductID, o.OrderQuantity, o.BatchNumber).Scan(&o.ID, &o.OrderDate); err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}
		if o.BatchNumber == "" {
			return nil
		}
		// A used-up batch has nothing left to expire and leaves the near-expiry list.
		_, err = tx.Exec(ctx, `UPDATE purchase SET
				remaining_quantity = GREATEST(remaining_quantity - $1, 0),
				status = CASE WHEN remaining_quantity - $1 <= 0 THEN 'active' ELSE status END
			WHERE product_id = $2 AND batch_number = $3`, o.OrderQuantity, o.ProductID, o.BatchNumber)
		if err != nil {
			return fmt.Errorf("failed to update batch remaining quantity: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return o, nil
}

func (r *PostgresStockRepository) RecordTransaction(ctx context.Context, in TransactionInput) (models.Transaction, error) {
	if in.Quantity <= 0 {
		return models.Transaction{}, ErrInvalidQuantity
	}
	if !models.ValidTransactionType(in.Type) {
		return models.Transaction{}, fmt.Errorf("unknown transaction type %q", in.Type)
	}
	ctx, cancel := withTimeout(ctx, r.opts.Timeout)
	defer cancel()

	t := models.Transaction{ProductID: in.ProductID, Quantity: in.Quantity, Type: in.Type, Actor: in.Actor}
	delta := in.Quantity
	if in.Type == models.TransactionStockOut {
		delta = -delta
	}

	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := r.adjust(ctx, tx, in.ProductID, delta); err != nil {
			return err
		}
		query := `INSERT INTO stock_transaction (product_id, quantity, transaction_type, actor)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`
		if err := tx.QueryRow(ctx, query, t.ProductID, t.Quantity, t.Type, t.Actor).Scan(&t.ID, &t.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Transaction{}, err
	}
	return t, nil
}

func (r *PostgresStockRepository) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	query := `SELECT pu.id, pu.product_id, COALESCE(p.product_name, ''), COALESCE(pu.batch_number, ''),
			pu.purchase_quantity, pu.remaining_quantity, pu.expiration_date,
			COALESCE(pu.status, ''), COALESCE(pu.purchase_date, CURRENT_DATE)
		FROM purchase pu
		LEFT JOIN product p ON p.id = pu.product_id
		ORDER BY pu.purchase_date DESC, pu.id DESC`
	ctx, cancel := withTimeout(ctx, r.opts.Timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	defer rows.Close()

	purchases := []models.Purchase{}
	for rows.Next() {
		var p models.Purchase
		if err := rows.Scan(&p.ID, &p.ProductID, &p.ProductName, &p.BatchNumber, &p.PurchaseQuantity,
			&p.RemainingQuantity, &p.ExpirationDate, &p.Status, &p.PurchaseDate); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

func (r *PostgresStockRepository) ListOrders(ctx context.Context) ([]models.Order, error) {
	query := `SELECT o.order_id, o.product_id, COALESCE(p.product_name, ''), o.order_quantity,
			COALESCE(o.batch_number, ''), COALESCE(o.order_date, CURRENT_DATE)
		FROM "Order" o
		LEFT JOIN product p ON p.id = o.product_id
		ORDER BY o.order_date DESC, o.order_id DESC`
	ctx, cancel := withTimeout(ctx, r.opts.Timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.ProductID, &o.ProductName, &o.OrderQuantity, &o.BatchNumber, &o.OrderDate); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *PostgresStockRepository) FlagNearExpiry(ctx context.Context, asOf time.Time, windowDays int) ([]models.Purchase, error) {
	query := `WITH target AS (
			SELECT id, CASE WHEN expiration_date < $1::date THEN 'expired' ELSE 'near expiry' END AS next_status
			FROM purchase
			WHERE remaining_quantity > 0
				AND expiration_date IS NOT NULL
				AND expiration_date <= $1::date + $2::int
		)
		UPDATE purchase pu SET status = t.next_status
		FROM target t, product p
		WHERE pu.id = t.id AND p.id = pu.product_id AND pu.status IS DISTINCT FROM t.next_status
		RETURNING pu.id, pu.product_id, p.product_name, COALESCE(pu.batch_number, ''),
			pu.purchase_quantity, pu.remaining_quantity, pu.expiration_date, pu.status, pu.purchase_date`
	ctx, cancel := withTimeout(ctx, r.opts.Timeout)
	defer cancel()

	flagged := []models.Purchase{}
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, dateOf(asOf).Format(dateLayout), windowDays)
		if err != nil {
			return fmt.Errorf("failed to flag purchases: %w", err)
		}
		for rows.Next() {
			var p models.Purchase
			if err := rows.Scan(&p.ID, &p.ProductID, &p.ProductName, &p.BatchNumber, &p.PurchaseQuantity,
				&p.RemainingQuantity, &p.ExpirationDate, &p.Status, &p.PurchaseDate); err != nil {
				rows.Close()
				return err
			}
			flagged = append(flagged, p)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, p := range flagged {
			if err := insertExpiryNotification(ctx, tx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return flagged, nil
}

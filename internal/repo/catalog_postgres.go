package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rogerio-castellano/medisync/internal/models"
)

// Querier is the subset of *pgxpool.Pool the Postgres repositories use.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PostgresCatalogRepository struct {
	db      Querier
	timeout time.Duration
}

func NewPostgresCatalogRepository(db Querier, timeout time.Duration) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db, timeout: timeout}
}

const productViewColumns = `
	p.id, p.product_name, p.product_type, p.category_id, p.stock_quantity, p.unit_id,
	COALESCE(p.stock_status, ''), COALESCE(p.status, ''), COALESCE(p.created_at, CURRENT_DATE),
	COALESCE(c.category_name, ''), COALESCE(u.unit_name, '')`

// ListProducts returns products joined with their category and unit names, newest first.
func (r *PostgresCatalogRepository) ListProducts(ctx context.Context, f ProductFilter) ([]models.ProductView, error) {
	where, args := buildProductWhereClause(f)
	query := `SELECT` + productViewColumns + `
		FROM product p
		LEFT JOIN category c ON c.id = p.category_id
		LEFT JOIN unit u ON u.unit_id = p.unit_id` + where + `
		ORDER BY p.id DESC`

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.ProductView{}
	for rows.Next() {
		var p models.ProductView
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.CategoryID, &p.StockQuantity, &p.UnitID,
			&p.StockStatus, &p.Status, &p.CreatedAt, &p.CategoryName, &p.UnitName); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// buildProductWhereClause constructs the WHERE clause and returns arguments
func buildProductWhereClause(f ProductFilter) (string, []any) {
	var conditions []string
	var args []any

	if f.Type != "" {
		args = append(args, f.Type)
		conditions = append(conditions, fmt.Sprintf("p.product_type = $%d", len(args)))
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		conditions = append(conditions, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if f.StockStatus != "" {
		args = append(args, f.StockStatus)
		conditions = append(conditions, fmt.Sprintf("p.stock_status = $%d", len(args)))
	}
	if name := strings.TrimSpace(f.Name); name != "" {
		args = append(args, "%"+name+"%")
		conditions = append(conditions, fmt.Sprintf("p.product_name ILIKE $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return "\n\t\tWHERE " + strings.Join(conditions, " AND "), args
}

func (r *PostgresCatalogRepository) ListProductOptions(ctx context.Context) ([]models.ProductOption, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, product_name FROM product ORDER BY product_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list product options: %w", err)
	}
	defer rows.Close()

	options := []models.ProductOption{}
	for rows.Next() {
		var o models.ProductOption
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

func (r *PostgresCatalogRepository) ListProductTypes(ctx context.Context) ([]string, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT DISTINCT product_type FROM product ORDER BY product_type`)
	if err != nil {
		return nil, fmt.Errorf("failed to list product types: %w", err)
	}
	defer rows.Close()

	types := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *PostgresCatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, category_name, COALESCE(created_at, CURRENT_DATE) FROM category ORDER BY category_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PostgresCatalogRepository) ListUnits(ctx context.Context) ([]models.Unit, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT unit_id, unit_name FROM unit ORDER BY unit_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	defer rows.Close()

	units := []models.Unit{}
	for rows.Next() {
		var u models.Unit
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

func (r *PostgresCatalogRepository) GetProduct(ctx context.Context, id int) (models.Product, error) {
	query := `SELECT id, product_name, product_type, category_id, stock_quantity, unit_id,
		COALESCE(stock_status, ''), COALESCE(status, ''), COALESCE(created_at, CURRENT_DATE)
		FROM product WHERE id = $1`
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var p models.Product
	err := r.db.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Type, &p.CategoryID, &p.StockQuantity,
		&p.UnitID, &p.StockStatus, &p.Status, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

// CreateProduct inserts p. The caller computes StockStatus; an unknown category or unit
// id yields ErrUnknownReference.
func (r *PostgresCatalogRepository) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	query := `INSERT INTO product (product_name, product_type, category_id, stock_quantity, unit_id, stock_status, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if p.Status == "" {
		p.Status = models.ProductStatusActive
	}
	err := r.db.QueryRow(ctx, query, p.Name, p.Type, p.CategoryID, p.StockQuantity, p.UnitID, p.StockStatus, p.Status).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		switch pgErrorCode(err) {
		case pgForeignKeyViolation:
			return models.Product{}, ErrUnknownReference
		case pgUniqueViolation:
			return models.Product{}, ErrDuplicatedValueUnique
		}
		return models.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return p, nil
}

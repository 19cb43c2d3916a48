package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/rogerio-castellano/medisync/internal/models"
)

// ProductFilter narrows the product listing. Zero values mean "no filter".
type ProductFilter struct {
	Type        string
	CategoryID  *int
	StockStatus string
	Name        string
}

// CatalogRepository reads products, categories and units.
type CatalogRepository interface {
	ListProducts(ctx context.Context, f ProductFilter) ([]models.ProductView, error)
	ListProductOptions(ctx context.Context) ([]models.ProductOption, error)
	ListProductTypes(ctx context.Context) ([]string, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListUnits(ctx context.Context) ([]models.Unit, error)
	GetProduct(ctx context.Context, id int) (models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) (models.Product, error)
}

// PurchaseInput describes a stock-in batch.
type PurchaseInput struct {
	ProductID      int
	Quantity       int
	ExpirationDate *time.Time
	BatchNumber    string
}

// OrderInput describes a stock-out.
type OrderInput struct {
	ProductID   int
	Quantity    int
	BatchNumber string
}

// TransactionInput describes a generic stock adjustment.
type TransactionInput struct {
	ProductID int
	Quantity  int
	Type      string
	Actor     string
}

// StockRepository records stock movements. Every Record* call inserts its row and adjusts the
// product's stock_quantity and stock_status in one unit of work.
type StockRepository interface {
	RecordPurchase(ctx context.Context, in PurchaseInput) (models.Purchase, error)
	RecordOrder(ctx context.Context, in OrderInput) (models.Order, error)
	RecordTransaction(ctx context.Context, in TransactionInput) (models.Transaction, error)
	ListPurchases(ctx context.Context) ([]models.Purchase, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	// FlagNearExpiry marks batches expiring within the window as near expiry and past-dated
	// ones as expired, writes one notification per newly flagged batch and returns them.
	FlagNearExpiry(ctx context.Context, asOf time.Time, windowDays int) ([]models.Purchase, error)
}

// MetricsRepository computes the dashboard summary.
type MetricsRepository interface {
	DashboardSummary(ctx context.Context, asOf time.Time) (models.DashboardSummary, error)
}

// NotificationRepository reads and writes notification rows.
type NotificationRepository interface {
	List(ctx context.Context, limit int) ([]models.Notification, error)
	Create(ctx context.Context, n models.Notification) (models.Notification, error)
}

// UserRepository looks up persisted staff accounts.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
}

// StockOptions holds the bookkeeping knobs shared by the stock implementations.
type StockOptions struct {
	LowStockThreshold int
	ExpiryWindowDays  int
	Timeout           time.Duration
}

// Notification list limits.
const (
	DefaultNotificationLimit = 50
	MaxNotificationLimit     = 200
)

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultNotificationLimit
	}
	return min(limit, MaxNotificationLimit)
}

func purchaseStatusFor(expiration *time.Time, asOf time.Time, windowDays int) string {
	if expiration == nil {
		return models.PurchaseStatusActive
	}
	exp := dateOf(*expiration)
	today := dateOf(asOf)
	switch {
	case exp.Before(today):
		return models.PurchaseStatusExpired
	case !exp.After(today.AddDate(0, 0, windowDays)):
		return models.PurchaseStatusNearExpiry
	default:
		return models.PurchaseStatusActive
	}
}

func expiryMessage(p models.Purchase) string {
	batch := p.BatchNumber
	if batch == "" {
		batch = fmt.Sprintf("#%d", p.ID)
	}
	exp := p.ExpirationDate.Format(dateLayout)
	if p.Status == models.PurchaseStatusExpired {
		return fmt.Sprintf("%s batch %s expired on %s", p.ProductName, batch, exp)
	}
	return fmt.Sprintf("%s batch %s expires on %s", p.ProductName, batch, exp)
}

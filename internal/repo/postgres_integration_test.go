package repo

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rogerio-castellano/medisync/internal/db"
	"github.com/rogerio-castellano/medisync/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestPool connects to TEST_DATABASE_URL, recreates the schema and skips the test when
// no database is configured.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, db.PoolOptions{URL: url, MinConns: 1, MaxConns: 8})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `DROP TABLE IF EXISTS notification, stock_transaction, "Order", purchase, product, unit, category, users CASCADE`)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx, pool))
	return pool
}

func TestPostgresStockRepository_Movements(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	require.NoError(t, db.SeedSampleData(ctx, pool))

	catalog := NewPostgresCatalogRepository(pool, time.Second)
	stock := NewPostgresStockRepository(pool, StockOptions{LowStockThreshold: 10, ExpiryWindowDays: 30, Timeout: time.Second})

	products, err := catalog.ListProducts(ctx, ProductFilter{Name: "band"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	bandAid := products[0]

	_, err = stock.RecordPurchase(ctx, PurchaseInput{ProductID: bandAid.ID, Quantity: 20, BatchNumber: "BA-1"})
	require.NoError(t, err)
	got, err := catalog.GetProduct(ctx, bandAid.ID)
	require.NoError(t, err)
	assert.Equal(t, bandAid.StockQuantity+20, got.StockQuantity)
	assert.Equal(t, models.StockStatusInStock, got.StockStatus)

	_, err = stock.RecordOrder(ctx, OrderInput{ProductID: bandAid.ID, Quantity: 1000, BatchNumber: "BA-1"})
	require.NoError(t, err)
	got, err = catalog.GetProduct(ctx, bandAid.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.StockQuantity)
	assert.Equal(t, models.StockStatusOutOfStock, got.StockStatus)

	purchases, err := stock.ListPurchases(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, purchases)
	assert.Equal(t, 0, purchases[0].RemainingQuantity)

	_, err = stock.RecordTransaction(ctx, TransactionInput{ProductID: 424242, Quantity: 1, Type: models.TransactionStockIn})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestPostgresStockRepository_ConcurrentAdjustments(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()

	catalog := NewPostgresCatalogRepository(pool, time.Second)
	stock := NewPostgresStockRepository(pool, StockOptions{LowStockThreshold: 10, Timeout: 5 * time.Second})

	p, err := catalog.CreateProduct(ctx, models.Product{Name: "Paracetamol", Type: models.ProductTypeMedicine, StockStatus: models.StockStatusOutOfStock})
	require.NoError(t, err)
	_, err = stock.RecordPurchase(ctx, PurchaseInput{ProductID: p.ID, Quantity: 500})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = stock.RecordTransaction(ctx, TransactionInput{ProductID: p.ID, Quantity: 5, Type: models.TransactionStockIn})
		}()
		go func() {
			defer wg.Done()
			_, _ = stock.RecordTransaction(ctx, TransactionInput{ProductID: p.ID, Quantity: 3, Type: models.TransactionStockOut})
		}()
	}
	wg.Wait()

	got, err := catalog.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 500+20*2, got.StockQuantity)
}

func TestPostgresCatalogRepository_UnknownReference(t *testing.T) {
	pool := openTestPool(t)
	unknown := 9999

	_, err := NewPostgresCatalogRepository(pool, time.Second).CreateProduct(context.Background(),
		models.Product{Name: "Gauze", Type: models.ProductTypeSupply, CategoryID: &unknown})
	assert.ErrorIs(t, err, ErrUnknownReference)
}

func TestPostgresMetricsAndNotifications(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()

	empty, err := NewPostgresMetricsRepository(pool, time.Second).DashboardSummary(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, models.EmptyDashboardSummary(), empty)

	catalog := NewPostgresCatalogRepository(pool, time.Second)
	stock := NewPostgresStockRepository(pool, StockOptions{LowStockThreshold: 10, ExpiryWindowDays: 30, Timeout: time.Second})
	p, err := catalog.CreateProduct(ctx, models.Product{Name: "Amoxicillin", Type: models.ProductTypeMedicine, StockStatus: models.StockStatusOutOfStock})
	require.NoError(t, err)

	exp := time.Now().AddDate(0, 0, 10)
	_, err = stock.RecordPurchase(ctx, PurchaseInput{ProductID: p.ID, Quantity: 12, ExpirationDate: &exp, BatchNumber: "AMX-1"})
	require.NoError(t, err)

	s, err := NewPostgresMetricsRepository(pool, time.Second).DashboardSummary(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 12, s.TotalStock)
	assert.Equal(t, 12, s.StockInMedicines)
	assert.Equal(t, 1, s.ExpiringSoonCount)

	// Eleven days on, the batch has passed its expiration date.
	flagged, err := stock.FlagNearExpiry(ctx, time.Now().AddDate(0, 0, 11), 30)
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	assert.Equal(t, models.PurchaseStatusExpired, flagged[0].Status)

	list, err := NewPostgresNotificationRepository(pool, time.Second).List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.NotificationExpiry, list[0].Type)
}

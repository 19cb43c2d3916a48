package expiry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rogerio-castellano/medisync/internal/metrics"
	"github.com/rogerio-castellano/medisync/internal/models"
	"github.com/rogerio-castellano/medisync/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var sweepNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func seeded(t *testing.T) (*repo.InMemoryDB, repo.StockRepository) {
	t.Helper()
	db := repo.NewInMemoryDB()
	db.Now = func() time.Time { return sweepNow }
	db.AddProduct(models.Product{Name: "Amoxicillin", Type: models.ProductTypeMedicine, StockQuantity: 30})

	soon := sweepNow.AddDate(0, 0, 5)
	later := sweepNow.AddDate(1, 0, 0)
	db.AddPurchase(models.Purchase{ProductID: 1, BatchNumber: "A1", PurchaseQuantity: 10, RemainingQuantity: 10, ExpirationDate: &soon, Status: models.PurchaseStatusActive})
	db.AddPurchase(models.Purchase{ProductID: 1, BatchNumber: "A2", PurchaseQuantity: 20, RemainingQuantity: 20, ExpirationDate: &later, Status: models.PurchaseStatusActive})

	return db, repo.NewInMemoryStockRepository(db, repo.StockOptions{LowStockThreshold: 10, ExpiryWindowDays: 30})
}

func TestSweepOnce(t *testing.T) {
	db, stock := seeded(t)
	m := metrics.New()
	core, logs := observer.New(zap.InfoLevel)
	s := New(stock, 30, time.Hour, m, zap.New(core))
	s.now = func() time.Time { return sweepNow }

	flagged, err := s.SweepOnce(context.Background())
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	assert.Equal(t, "A1", flagged[0].BatchNumber)
	assert.Equal(t, models.PurchaseStatusNearExpiry, flagged[0].Status)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExpiryFlaggedTotal))
	assert.Equal(t, 1, logs.FilterMessage("purchases flagged near expiry").Len())

	notes, err := repo.NewInMemoryNotificationRepository(db).List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationExpiry, notes[0].Type)

	// Nothing changes on a second pass.
	flagged, err = s.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Empty(t, flagged)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExpiryFlaggedTotal))
}

type failingStock struct {
	repo.StockRepository
	calls chan struct{}
}

func (f *failingStock) FlagNearExpiry(context.Context, time.Time, int) ([]models.Purchase, error) {
	select {
	case f.calls <- struct{}{}:
	default:
	}
	return nil, errors.New("connection reset")
}

func TestRun_SweepsAtStartAndLogsErrors(t *testing.T) {
	stock := &failingStock{calls: make(chan struct{}, 1)}
	core, logs := observer.New(zap.ErrorLevel)
	s := New(stock, 30, time.Hour, nil, zap.New(core))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case <-stock.calls:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not run at start")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
	assert.Equal(t, 1, logs.FilterMessage("expiry sweep failed").Len())
}

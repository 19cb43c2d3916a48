// Package expiry periodically marks purchases whose expiration date falls inside the
// configured window and records an expiry notification for each of them.
package expiry

import (
	"context"
	"time"

	"github.com/rogerio-castellano/medisync/internal/metrics"
	"github.com/rogerio-castellano/medisync/internal/models"
	"github.com/rogerio-castellano/medisync/internal/repo"
	"go.uber.org/zap"
)

type Sweeper struct {
	stock      repo.StockRepository
	windowDays int
	interval   time.Duration
	metrics    *metrics.Metrics
	log        *zap.Logger
	now        func() time.Time
}

func New(stock repo.StockRepository, windowDays int, interval time.Duration, m *metrics.Metrics, log *zap.Logger) *Sweeper {
	if log == nil {
		log = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{
		stock:      stock,
		windowDays: windowDays,
		interval:   interval,
		metrics:    m,
		log:        log.With(zap.String("component", "expiry_sweeper")),
		now:        time.Now,
	}
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	if _, err := s.SweepOnce(ctx); err != nil && ctx.Err() == nil {
		s.log.Error("expiry sweep failed", zap.Error(err))
	}
}

// SweepOnce flags near-expiry purchases as of now and returns them.
func (s *Sweeper) SweepOnce(ctx context.Context) ([]models.Purchase, error) {
	flagged, err := s.stock.FlagNearExpiry(ctx, s.now(), s.windowDays)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ExpiryFlaggedTotal.Add(float64(len(flagged)))
	}
	if len(flagged) > 0 {
		s.log.Info("purchases flagged near expiry", zap.Int("count", len(flagged)))
	}
	for _, p := range flagged {
		s.log.Debug("flagged purchase",
			zap.Int("purchase_id", p.ID), zap.Int("product_id", p.ProductID), zap.String("batch_number", p.BatchNumber))
	}
	return flagged, nil
}

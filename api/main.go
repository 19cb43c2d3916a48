package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rogerio-castellano/medisync/internal/auth"
	"github.com/rogerio-castellano/medisync/internal/config"
	"github.com/rogerio-castellano/medisync/internal/db"
	"github.com/rogerio-castellano/medisync/internal/expiry"
	"github.com/rogerio-castellano/medisync/internal/http/handlers"
	rl "github.com/rogerio-castellano/medisync/internal/http/rate_limiter"
	"github.com/rogerio-castellano/medisync/internal/http/router"
	"github.com/rogerio-castellano/medisync/internal/http/views"
	"github.com/rogerio-castellano/medisync/internal/logger"
	"github.com/rogerio-castellano/medisync/internal/metrics"
	"github.com/rogerio-castellano/medisync/internal/redissvc"
	"github.com/rogerio-castellano/medisync/internal/repo"
	"go.uber.org/zap"
)

// @title MediSync Pharmacy Inventory
// @version 1.0
// @description Server-rendered inventory tracking for a small pharmacy: products, purchases, orders, stock adjustments and expiry notifications.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name medisync_session
func main() {
	configFile := flag.String("config", "", "path to a YAML config file")
	seed := flag.Bool("seed", false, "insert sample categories, units and products when the catalog is empty")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		boot, _ := logger.New(logger.Options{ServiceName: "medisync"})
		boot.Fatal("invalid configuration", zap.Error(err))
	}

	log, err := logger.New(logger.Options{Level: cfg.LogLevel, Environment: cfg.Env, ServiceName: "medisync"})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, db.PoolOptions{URL: cfg.Database.URL, MinConns: cfg.Database.PoolMin, MaxConns: cfg.Database.PoolMax})
	if err != nil {
		log.Fatal("could not connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	if *seed {
		if err := db.SeedSampleData(ctx, pool); err != nil {
			log.Fatal("seeding failed", zap.Error(err))
		}
		log.Info("sample data seeded")
	}

	var (
		revoked    auth.RevocationStore
		redisReady handlers.Pinger
	)
	if cfg.Redis.Addr != "" {
		rs, err := redissvc.Connect(ctx, redissvc.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal("could not connect to redis", zap.Error(err))
		}
		defer rs.Close()
		revoked = auth.NewRedisRevocationStore(rs)
		redisReady = rs
		log.Info("session revocation stored in redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		mem := auth.NewMemoryRevocationStore()
		go mem.StartCleanupLoop(ctx, 30*time.Minute)
		revoked = mem
	}

	timeout := cfg.Database.StatementTimeout
	stock := repo.NewPostgresStockRepository(pool, repo.StockOptions{
		LowStockThreshold: cfg.Inventory.LowStockThreshold,
		ExpiryWindowDays:  cfg.Inventory.ExpiryWindowDays,
		Timeout:           timeout,
	})

	admins, err := auth.NewCredentialSet(cfg.Admins)
	if err != nil {
		log.Fatal("could not prepare administrator credentials", zap.Error(err))
	}
	sessions := auth.NewSessionManager(cfg.SecretKey, cfg.Session.TTL, cfg.Session.Secure, revoked)

	renderer, err := views.New()
	if err != nil {
		log.Fatal("could not parse templates", zap.Error(err))
	}

	m := metrics.New()

	limiter := rl.New(cfg.Login.Rate, cfg.Login.Burst)
	go limiter.StartVisitorCleanupLoop(ctx)

	server := handlers.NewServer(handlers.Deps{
		Catalog:       repo.NewPostgresCatalogRepository(pool, timeout),
		Stock:         stock,
		Dashboard:     repo.NewPostgresMetricsRepository(pool, timeout),
		Notifications: repo.NewPostgresNotificationRepository(pool, timeout),
		Authenticator: auth.NewAuthenticator(admins, repo.NewPostgresUserRepository(pool, timeout)),
		Sessions:      sessions,
		Views:         renderer,
		Metrics:       m,
		DB:            pool,
		Redis:         redisReady,
	})

	go expiry.New(stock, cfg.Inventory.ExpiryWindowDays, cfg.Inventory.ExpiryInterval, m, log).Run(ctx)

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: router.NewRouter(server, router.Options{
			Logger:       log,
			Metrics:      m,
			Sessions:     sessions,
			LoginLimiter: limiter,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

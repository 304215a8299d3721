// Package main provides the HTTP server binary for the equipment
// optimizer, wiring configuration, catalog, and the optimizer engine
// behind a gorilla/mux router.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/corvid-labs/equipwright/internal/catalog"
	"github.com/corvid-labs/equipwright/internal/config"
	"github.com/corvid-labs/equipwright/internal/httpapi"
	"github.com/corvid-labs/equipwright/internal/observability"
	"github.com/corvid-labs/equipwright/internal/presets"
	"github.com/corvid-labs/equipwright/internal/service"
	"github.com/corvid-labs/equipwright/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging, "server")
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting equipwright server",
		zap.String("addr", cfg.Server.Addr()),
		zap.Bool("database_enabled", cfg.Database.Enabled),
	)

	cat, pool, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("loading catalog", zap.Error(err))
	}
	if pool != nil {
		defer pool.Close()
	}
	logger.Info("catalog loaded", zap.Int("items", cat.NumItems()), zap.Int("sets", cat.NumSets()))

	presetRegistry, err := presets.LoadEmbedded()
	if err != nil {
		logger.Fatal("loading presets", zap.Error(err))
	}

	engine := service.NewEngine(cat, logger)
	router := httpapi.NewRouter(engine, cat, presetRegistry, cfg.Server.StaticDir, logger)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// The catalog is loaded once at startup and never refreshed while this
	// process runs. The optional Postgres health check runs in its own
	// goroutine until ctx is cancelled; the HTTP server runs in another and
	// is stopped by httpServer.Shutdown below.
	if pool != nil {
		go watchDatabaseHealth(ctx, pool, logger)
	}

	serveErrCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.Addr()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- fmt.Errorf("http server: %w", err)
			return
		}
		serveErrCh <- nil
	}()

	logger.Info("server initialized", zap.Duration("startup", time.Since(start)))

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serveErrCh:
		if err != nil {
			logger.Error("http server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", zap.Error(err))
	}

	logger.Info("shutdown complete", zap.Duration("total_uptime", time.Since(start)))
}

// watchDatabaseHealth periodically pings the catalog's Postgres pool so
// connection loss surfaces in logs, and logs pool utilization when the
// ping succeeds. It runs until ctx is cancelled.
func watchDatabaseHealth(ctx context.Context, pool *postgres.Pool, logger *zap.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := pool.Health(ctx, 5*time.Second); err != nil {
				logger.Warn("database health check failed", zap.Error(err))
				continue
			}
			stat := pool.Stats()
			logger.Debug("database pool healthy",
				zap.Int32("total_conns", stat.TotalConns()),
				zap.Int32("idle_conns", stat.IdleConns()),
			)
		}
	}
}

// loadCatalog builds the catalog from the embedded JSON fixtures, or from
// Postgres when database.enabled is set. The returned pool is non-nil
// only in the Postgres case, so the caller can register it for health
// checks and close it on shutdown.
func loadCatalog(ctx context.Context, cfg config.Config, logger *zap.Logger) (*catalog.Catalog, *postgres.Pool, error) {
	if !cfg.Database.Enabled {
		cat, err := catalog.LoadEmbedded()
		if err != nil {
			return nil, nil, fmt.Errorf("loading embedded catalog: %w", err)
		}
		return cat, nil, nil
	}

	dbStart := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.Duration("elapsed", time.Since(dbStart)),
	)

	store := postgres.NewCatalogStore(pool)
	src, err := store.Load(ctx)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("loading catalog from database: %w", err)
	}

	cat, err := catalog.Build(src)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("building catalog: %w", err)
	}

	return cat, pool, nil
}

// Package postgres provides the catalog's PostgreSQL persistence using pgx v5.
// The catalog is read in full at process startup rather than queried
// per-request (cmd/migrate manages the schema through golang-migrate and
// does not use this package), so the pool is tuned for a
// handful of short-lived connections rather than the sustained per-request
// traffic a request-serving pool would need.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/corvid-labs/equipwright/internal/config"
)

// catalogConnIdleTime bounds how long a catalog connection sits idle before
// pgx recycles it. The catalog is loaded once at startup and otherwise only
// touched by operator-run migrations, so connections spend almost all of
// their time idle; a short idle time keeps the pool from holding sockets
// open against a database that may itself be scaled down between deploys.
const catalogConnIdleTime = 2 * time.Minute

// Pool wraps a pgx connection pool sized for catalog loads: health-check,
// lifecycle, and pool-utilization reporting methods.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool creates a new PostgreSQL connection pool for catalog access from
// the given configuration.
//
// Precondition: cfg must contain valid database connection parameters.
// Postcondition: Returns a connected Pool or a non-nil error. The pool is ready
// for queries upon successful return.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = catalogConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Pool{pool: pool}, nil
}

// Health checks that the database is reachable within the given timeout.
//
// Precondition: The pool must not be closed.
// Postcondition: Returns nil if the database responds within the timeout.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.pool.Ping(ctx)
}

// Close releases all pool resources.
//
// Postcondition: The pool is no longer usable after calling Close.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB returns the underlying pgxpool.Pool for use by repositories.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}

// Stats reports current pool utilization, for periodic logging by callers
// such as the server's database health-check loop.
func (p *Pool) Stats() *pgxpool.Stat {
	return p.pool.Stat()
}

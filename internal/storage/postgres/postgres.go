// Package postgres persists monster lore in PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/deepdelve/internal/config"
)

// pingTimeout bounds the connectivity check NewPool performs.
const pingTimeout = 5 * time.Second

// Pool owns the pgx connection pool shared by every repository.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool opens a pool for cfg and verifies the server answers.
//
// Precondition: cfg.Validate() returned nil for an enabled database.
// Postcondition: Returns a connected Pool, or an error with nothing left open.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLifetime
	}

	db, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("opening pool for %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}
	p := &Pool{pool: db}
	if err := p.Health(ctx, pingTimeout); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return p, nil
}

// Health pings the server, giving up after timeout.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.pool.Ping(ctx)
}

// Close releases every connection. The Pool is unusable afterwards.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB exposes the pgx pool to repositories.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}

// Package store contains the Postgres-backed persistence layer: the mirror
// user table, sync policies, and the append-only run and scheduler logs.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultMaxConns    = 10
	connectMaxElapsed  = 30 * time.Second
	connectTimeoutPing = 5 * time.Second
)

// Store provides access to all persisted sync state through a shared
// connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by the given connection pool. The caller is
// responsible for closing the pool.
func New(pool *pgxpool.Pool) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgx pool is required")
	}
	return &Store{pool: pool}, nil
}

// Pool exposes the underlying connection pool for components that need
// session-scoped operations (advisory locks).
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Connect opens a connection pool and verifies it with a retried ping.
// Transient startup ordering (database not yet accepting connections) is
// absorbed by exponential backoff up to a bounded elapsed time.
func Connect(ctx context.Context, connString string, maxConns int32) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if maxConns <= 0 {
		maxConns = defaultMaxConns
	}
	poolCfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeoutPing)
		defer cancel()
		return struct{}{}, pool.Ping(pingCtx)
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(connectMaxElapsed),
	)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Database connection established")

	return pool, nil
}

// nilIfEmpty returns nil if the string is empty, otherwise a pointer to it.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// orEmpty returns the pointed-to string or "" for nil.
func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

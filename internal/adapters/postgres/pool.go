// Package postgres holds the shared Postgres plumbing used by the repository adapters.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOptions tunes the connection pool and the startup connect retry.
// Zero values fall back to pgxpool defaults (and a 30s connect budget).
type PoolOptions struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration

	// ConnectTimeout bounds the total time spent retrying the initial ping.
	ConnectTimeout time.Duration

	// OnRetry is called after each failed ping attempt.
	OnRetry func(err error, next time.Duration)
}

// NewPool parses dsn, opens a pool and pings it, retrying with exponential backoff
// until ConnectTimeout elapses.
func NewPool(ctx context.Context, dsn string, opts PoolOptions) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is required for the postgres backend")
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		cfg.MinConns = opts.MinConns
	}
	if opts.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = opts.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	budget := opts.ConnectTimeout
	if budget <= 0 {
		budget = 30 * time.Second
	}
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = budget

	ping := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		err := pool.Ping(pingCtx)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		if opts.OnRetry != nil {
			opts.OnRetry(err, next)
		}
	}
	if err := backoff.RetryNotify(ping, bo, notify); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

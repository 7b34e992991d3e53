package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// PoolConfig sizes the PostgreSQL connection pool. Zero fields take the
// defaults of DefaultPoolConfig.
type PoolConfig struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// DefaultPoolConfig keeps the pool small enough for a single API instance
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxConns:        10,
		MinConns:        2,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
	}
}

func (p PoolConfig) withDefaults() PoolConfig {
	d := DefaultPoolConfig()
	if p.MaxConns == 0 {
		p.MaxConns = d.MaxConns
	}
	if p.MinConns == 0 {
		p.MinConns = min(d.MinConns, p.MaxConns)
	}
	if p.MaxConnLifetime == 0 {
		p.MaxConnLifetime = d.MaxConnLifetime
	}
	if p.MaxConnIdleTime == 0 {
		p.MaxConnIdleTime = d.MaxConnIdleTime
	}
	return p
}

// poolConfig parses the URL and applies the pool sizing without connecting
func poolConfig(databaseURL string, p PoolConfig) (*pgxpool.Config, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	p = p.withDefaults()
	if p.MaxConns < 0 || p.MinConns < 0 {
		return nil, fmt.Errorf("pool sizes must not be negative")
	}
	if p.MinConns > p.MaxConns {
		return nil, fmt.Errorf("min connections %d exceed max connections %d", p.MinConns, p.MaxConns)
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	config.MaxConns = p.MaxConns
	config.MinConns = p.MinConns
	config.MaxConnLifetime = p.MaxConnLifetime
	config.MaxConnIdleTime = p.MaxConnIdleTime
	return config, nil
}

// NewDatabase opens a PostgreSQL pool for the ledger and checks it is reachable
func NewDatabase(ctx context.Context, databaseURL string, p PoolConfig, log zerolog.Logger) (*pgxpool.Pool, error) {
	config, err := poolConfig(databaseURL, p)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int32("max_conns", config.MaxConns).
		Int32("min_conns", config.MinConns).
		Dur("max_conn_lifetime", config.MaxConnLifetime).
		Msg("Connecting to PostgreSQL database")

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Msg("Database connected successfully")
	return pool, nil
}

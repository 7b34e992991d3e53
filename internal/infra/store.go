package infra

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"tradetracker/internal/database"
	"tradetracker/internal/domain"
	"tradetracker/internal/repository"
	"tradetracker/internal/repository/sqlite"
)

// Store drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// PoolStats is a snapshot of the connection pool
type PoolStats struct {
	Open  int
	Idle  int
	InUse int
}

// Store bundles the repositories of one storage backend
type Store struct {
	Driver   string
	Users    domain.UserRepository
	Trades   domain.TradeRepository
	Deposits domain.DepositRepository

	pool *pgxpool.Pool
	sql  *sql.DB
}

// DetectDriver picks the storage backend from a database URL
func DetectDriver(databaseURL string) (driver, dsn string, err error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return DriverPostgres, databaseURL, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(databaseURL, "sqlite://"), nil
	case strings.HasPrefix(databaseURL, "sqlite:"):
		return DriverSQLite, strings.TrimPrefix(databaseURL, "sqlite:"), nil
	case strings.HasPrefix(databaseURL, "file:"), databaseURL == ":memory:", strings.HasSuffix(databaseURL, ".db"):
		return DriverSQLite, databaseURL, nil
	}
	return "", "", fmt.Errorf("unsupported DATABASE_URL scheme: %q", databaseURL)
}

// OpenStore connects to the database named by databaseURL and prepares its
// schema. pool only applies to PostgreSQL.
func OpenStore(ctx context.Context, databaseURL string, pool PoolConfig, log zerolog.Logger) (*Store, error) {
	driver, dsn, err := DetectDriver(databaseURL)
	if err != nil {
		return nil, err
	}

	switch driver {
	case DriverPostgres:
		pgPool, err := NewDatabase(ctx, dsn, pool, log)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(ctx, pgPool, log); err != nil {
			pgPool.Close()
			return nil, err
		}
		return &Store{
			Driver:   driver,
			Users:    repository.NewUserRepository(pgPool),
			Trades:   repository.NewTradeRepository(pgPool),
			Deposits: repository.NewDepositRepository(pgPool),
			pool:     pgPool,
		}, nil

	default:
		log.Info().Str("path", dsn).Msg("Opening SQLite database")
		db, err := sqlite.Open(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(db), nil
	}
}

// NewSQLiteStore wraps an already opened SQLite database
func NewSQLiteStore(db *sql.DB) *Store {
	return &Store{
		Driver:   DriverSQLite,
		Users:    sqlite.NewUserRepository(db),
		Trades:   sqlite.NewTradeRepository(db),
		Deposits: sqlite.NewDepositRepository(db),
		sql:      db,
	}
}

// Ping checks that the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	if s.pool != nil {
		return s.pool.Ping(ctx)
	}
	return s.sql.PingContext(ctx)
}

// Stats returns the current connection pool usage
func (s *Store) Stats() PoolStats {
	if s.pool != nil {
		st := s.pool.Stat()
		return PoolStats{
			Open:  int(st.TotalConns()),
			Idle:  int(st.IdleConns()),
			InUse: int(st.AcquiredConns()),
		}
	}
	st := s.sql.Stats()
	return PoolStats{Open: st.OpenConnections, Idle: st.Idle, InUse: st.InUse}
}

// Close releases the database connections
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.sql != nil {
		s.sql.Close()
	}
}

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
)

type Database struct {
	Pool *pgxpool.Pool
}

// NewDatabase connects to dsn. A failed connection is logged and
// returns a Database without a pool so the service keeps running.
func NewDatabase(ctx context.Context, dsn string, log *zap.Logger) *Database {
	pool, err := connect(ctx, dsn)
	if err != nil {
		log.Warn("database connection failed, continuing without DB", zap.Error(err))
		return &Database{}
	}

	return &Database{Pool: pool}
}

func connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.ConnectConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return pool, nil
}

func (db *Database) IsConnected() bool {
	return db.Pool != nil
}

func (db *Database) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

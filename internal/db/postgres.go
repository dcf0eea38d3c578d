package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"addy/internal/config/configs"
)

const pingTimeout = 5 * time.Second

// NewPostgresPool creates a pgxpool.Pool for the audit export database and
// pings it once. The caller must close the returned pool.
func NewPostgresPool(ctx context.Context, cfg configs.Postgres) (*pgxpool.Pool, error) {
	poolConf, err := ParsePoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConf)
	if err != nil {
		return nil, err
	}

	ctxPing, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err = pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// ParsePoolConfig turns the Postgres section into a pool config.
func ParsePoolConfig(cfg configs.Postgres) (*pgxpool.Config, error) {
	poolConf, err := pgxpool.ParseConfig(cfg.Addr.String())
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		poolConf.MaxConns = cfg.MaxConns
	}
	return poolConf, nil
}

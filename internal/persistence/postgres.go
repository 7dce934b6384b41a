package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/config"
)

var errNoDatabase = errors.New("postgres pool not configured")

// Postgres owns the pool behind the users table. Without a DSN it stays empty and
// the service falls back to the in-memory store.
type Postgres struct {
	Pool *pgxpool.Pool
	dsn  string
}

// NewPostgres opens and pings the pool. An empty DSN is not an error.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	if cfg.DSN == "" {
		logger.Warn("POSTGRES_DSN not set; users are kept in memory")
		return &Postgres{}, nil
	}

	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("connected to postgres",
		zap.Int32("max_conns", poolCfg.MaxConns),
		zap.Int32("min_conns", poolCfg.MinConns))
	return &Postgres{Pool: pool, dsn: cfg.DSN}, nil
}

// poolConfig overlays the non-zero pool limits onto the DSN settings.
func poolConfig(cfg config.PostgresConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}
	return poolCfg, nil
}

// Enabled reports whether a database backs the user store.
func (p *Postgres) Enabled() bool {
	return p != nil && p.Pool != nil
}

// Migrate applies the embedded users schema. It is a no-op without a database.
func (p *Postgres) Migrate(logger *zap.Logger) error {
	if !p.Enabled() {
		return nil
	}
	return RunMigrations(p.dsn, logger)
}

func (p *Postgres) Close() {
	if p.Enabled() {
		p.Pool.Close()
	}
}

func (p *Postgres) Ping(ctx context.Context) error {
	if !p.Enabled() {
		return errNoDatabase
	}
	return p.Pool.Ping(ctx)
}

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds connection pool sizing and lifetime options. Optional fields
// are pointers so a zero value is distinguishable from "use the driver
// default" (pgxpool already has sane defaults for MinConns/AcquireTimeout).
type Config struct {
	URL string

	MaxConns        int32
	MinConns        *int32
	AcquireTimeout  *time.Duration
	MaxConnLifetime *time.Duration
	MaxConnIdleTime *time.Duration

	// RequireTLS rejects the pool config if the DSN did not request TLS.
	RequireTLS bool
}

// DefaultConfig returns a reasonable default pool configuration for the
// control-plane database.
func DefaultConfig(url string) *Config {
	minConns := int32(5)
	maxLifetime := time.Hour
	idleTimeout := 30 * time.Minute
	return &Config{
		URL:             url,
		MaxConns:        25,
		MinConns:        &minConns,
		MaxConnLifetime: &maxLifetime,
		MaxConnIdleTime: &idleTimeout,
	}
}

func (cfg *Config) apply(poolConfig *pgxpool.Config) {
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns != nil {
		poolConfig.MinConns = *cfg.MinConns
	}
	if cfg.MaxConnLifetime != nil {
		poolConfig.MaxConnLifetime = *cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime != nil {
		poolConfig.MaxConnIdleTime = *cfg.MaxConnIdleTime
	}
	if cfg.AcquireTimeout != nil {
		poolConfig.MaxConnLifetimeJitter = 0
		poolConfig.HealthCheckPeriod = *cfg.AcquireTimeout
	}
}

// NewPool creates a PostgreSQL connection pool with no after-connect hook.
// Used for the control-plane database.
func NewPool(ctx context.Context, cfg *Config) (*pgxpool.Pool, error) {
	poolConfig, err := buildPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// NewTenantPool creates a dedicated connection pool for a single tenant's
// database. Every physical connection — including ones pgxpool reopens
// after idle expiry — runs `SET ROLE dbUser` once, immediately after
// connecting, so that Postgres row-level security policies scoped to that
// role apply for the lifetime of the connection. dbUser must come from the
// tenant credentials resolver, never from caller-controlled input.
func NewTenantPool(ctx context.Context, cfg *Config, dbUser string) (*pgxpool.Pool, error) {
	poolConfig, err := buildPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	quotedRole := pgx.Identifier{dbUser}.Sanitize()
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, "SET ROLE "+quotedRole)
		return err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create tenant connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping tenant database: %w", err)
	}

	return pool, nil
}

func buildPoolConfig(cfg *Config) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	if cfg.RequireTLS && poolConfig.ConnConfig.TLSConfig == nil {
		return nil, fmt.Errorf("database config requires TLS but DSN has no TLS configuration")
	}

	cfg.apply(poolConfig)
	return poolConfig, nil
}

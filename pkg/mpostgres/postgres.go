// Package mpostgres manages the Postgres connection pool shared by every
// repository adapter.
package mpostgres

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Connection is a hub for the Postgres connection pool.
type Connection struct {
	ConnectionString string
	MigrationsPath   string
	Pool             *pgxpool.Pool
	Connected        bool
}

// Connect opens the pool and applies pending migrations. Safe to call
// more than once; later calls are no-ops once Connected.
func (c *Connection) Connect(ctx context.Context) error {
	if c.Connected {
		return nil
	}

	pool, err := pgxpool.New(ctx, c.ConnectionString)
	if err != nil {
		return fmt.Errorf("opening postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pinging postgres: %w", err)
	}

	if c.MigrationsPath != "" {
		if err := c.migrate(); err != nil {
			return err
		}
	}

	c.Pool = pool
	c.Connected = true

	return nil
}

func (c *Connection) migrate() error {
	m, err := migrate.New("file://"+c.MigrationsPath, c.ConnectionString)
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("applying migrations: %w", err)
	}

	return nil
}

// GetPool returns the pool, connecting lazily if it hasn't been opened
// yet.
func (c *Connection) GetPool(ctx context.Context) (*pgxpool.Pool, error) {
	if !c.Connected {
		if err := c.Connect(ctx); err != nil {
			return nil, err
		}
	}

	return c.Pool, nil
}

// Close releases the pool. Safe to call on an unopened Connection.
func (c *Connection) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

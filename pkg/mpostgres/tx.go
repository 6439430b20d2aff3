package mpostgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Executor is satisfied by both *pgxpool.Pool and pgx.Tx, letting a
// repository method run against either the pool or an open transaction
// without knowing which one it was handed.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// WithinTx runs fn against a single transaction. If ctx already carries
// one (installed by an enclosing RunInTx call), fn joins it and the
// enclosing call owns commit/rollback; otherwise a new transaction is
// opened here, committed on success and rolled back on error. This lets
// a repository method that must commit atomically with a sibling
// repository call (e.g. system-init's user + bootstrap api key insert)
// participate in a shared transaction while still being safe to call on
// its own.
func WithinTx(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context, exec Executor) error) error {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx, tx)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(context.WithValue(ctx, txKey{}, tx), tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// RunInTx opens one transaction and installs it into ctx so that every
// repository call made inside fn (via WithinTx) commits or rolls back
// together.
func RunInTx(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

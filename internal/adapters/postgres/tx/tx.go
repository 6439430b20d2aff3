// Package tx adapts pkg/mpostgres's transaction helpers to
// command.Transactor, letting command-layer operations that write to
// more than one repository (e.g. system-init's root user plus its
// bootstrap api key) commit or roll back as one unit.
package tx

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mpostgres"
)

// Transactor runs a closure inside a single Postgres transaction.
type Transactor struct {
	Pool *pgxpool.Pool
}

// NewTransactor returns a command.Transactor backed by pool.
func NewTransactor(pool *pgxpool.Pool) *Transactor {
	return &Transactor{Pool: pool}
}

// RunInTx opens a transaction, installs it into ctx, and commits it if
// fn succeeds or rolls it back otherwise.
func (t *Transactor) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return mpostgres.RunInTx(ctx, t.Pool, fn)
}

package mpostgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
)

// TranslatePGError classifies a raw Postgres error into the core's typed
// business errors, so repository callers never need to inspect sqlstate
// codes themselves.
func TranslatePGError(err error, entityType string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return constant.UnavailableError{Message: fmt.Sprintf("%s: storage timeout", entityType), Err: err}
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return constant.InternalError{Message: fmt.Sprintf("%s: storage error", entityType), Err: err}
	}

	switch pgErr.Code {
	case "23505": // unique_violation
		return constant.EntityConflictError{EntityType: entityType, Message: pgErr.Detail, Err: pgErr}
	case "23503": // foreign_key_violation
		return constant.FailedPreconditionError{Message: fmt.Sprintf("%s: referenced row does not exist (%s)", entityType, pgErr.ConstraintName)}
	case "57014": // query_canceled, e.g. statement_timeout
		return constant.UnavailableError{Message: fmt.Sprintf("%s: storage timeout", entityType), Err: pgErr}
	default:
		return constant.InternalError{Message: fmt.Sprintf("%s: storage error", entityType), Err: pgErr}
	}
}

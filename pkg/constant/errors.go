// Package constant holds the typed business errors shared by every
// resource service, and the sentinel errors referenced across the core.
package constant

import (
	"errors"
	"fmt"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mstatus"
)

// EntityNotFoundError records a missing row for any aggregate.
type EntityNotFoundError struct {
	EntityType string
	Message    string
	Err        error
}

func (e EntityNotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("%s not found", e.EntityType)
}

func (e EntityNotFoundError) Unwrap() error { return e.Err }

// EntityConflictError records a uniqueness-invariant violation.
type EntityConflictError struct {
	EntityType string
	Message    string
	Err        error
}

func (e EntityConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("%s already exists", e.EntityType)
}

func (e EntityConflictError) Unwrap() error { return e.Err }

// ValidationError records a malformed or missing request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}

	return e.Message
}

// PermissionError records a permission-gate rejection.
type PermissionError struct {
	Message string
}

func (e PermissionError) Error() string { return e.Message }

// UnauthenticatedError records a failed authentication attempt.
type UnauthenticatedError struct {
	Message string
}

func (e UnauthenticatedError) Error() string { return e.Message }

// FailedPreconditionError records a request that the current state of
// related rows does not allow: a reference to a missing related row
// (e.g. an unknown embedderId on space creation), a delete blocked by a
// row that still references the target, or an illegal processing-status
// transition.
type FailedPreconditionError struct {
	Message string
}

func (e FailedPreconditionError) Error() string { return e.Message }

// UnavailableError records a storage timeout or backoff condition.
type UnavailableError struct {
	Message string
	Err     error
}

func (e UnavailableError) Error() string { return e.Message }
func (e UnavailableError) Unwrap() error { return e.Err }

// InternalError records an unexpected failure; Message is sanitized for
// callers while Err (logged, never returned) carries the real cause.
type InternalError struct {
	Message string
	Err     error
}

func (e InternalError) Error() string { return e.Message }
func (e InternalError) Unwrap() error { return e.Err }

// Sentinel errors referenced by name across services and adapters.
var (
	ErrSpaceNameTaken         = errors.New("space name already in use by this owner")
	ErrEmbedderConnTaken      = errors.New("embedder connection triple already registered")
	ErrUnknownEmbedder        = errors.New("embedderId does not reference an existing embedder")
	ErrUnknownSpace           = errors.New("spaceId does not reference an existing space")
	ErrBothLabelStrategies    = errors.New("replaceLabels and mergeLabels are mutually exclusive")
	ErrMalformedToken         = errors.New("token format")
	ErrMalformedTokenContent  = errors.New("token content")
	ErrTokenRequestorMismatch = errors.New("Invalid pagination token")
	ErrInvalidRequestorID     = errors.New("Invalid requestor ID")
)

// ToStatus classifies any error returned by the service layer into the
// Status carried to the transport adapters.
func ToStatus(err error) *mstatus.Status {
	if err == nil {
		return nil
	}

	var (
		notFound     EntityNotFoundError
		conflict     EntityConflictError
		validation   ValidationError
		permission   PermissionError
		unauth       UnauthenticatedError
		precondition FailedPreconditionError
		unavailable  UnavailableError
		internal     InternalError
	)

	switch {
	case errors.As(err, &notFound):
		return mstatus.New(mstatus.NotFound, notFound.Error())
	case errors.As(err, &conflict):
		return mstatus.New(mstatus.AlreadyExists, conflict.Error())
	case errors.As(err, &validation):
		return mstatus.New(mstatus.InvalidArgument, validation.Error())
	case errors.As(err, &permission):
		return mstatus.New(mstatus.PermissionDenied, permission.Error())
	case errors.As(err, &unauth):
		return mstatus.New(mstatus.Unauthenticated, unauth.Error())
	case errors.As(err, &precondition):
		return mstatus.New(mstatus.FailedPrecondition, precondition.Error())
	case errors.As(err, &unavailable):
		return mstatus.Wrap(mstatus.Unavailable, unavailable.Error(), unavailable.Err)
	case errors.As(err, &internal):
		return mstatus.Wrap(mstatus.Internal, internal.Error(), internal.Err)
	case errors.Is(err, ErrTokenRequestorMismatch):
		return mstatus.New(mstatus.PermissionDenied, err.Error())
	case errors.Is(err, ErrMalformedToken), errors.Is(err, ErrMalformedTokenContent),
		errors.Is(err, ErrInvalidRequestorID), errors.Is(err, ErrBothLabelStrategies):
		return mstatus.New(mstatus.InvalidArgument, err.Error())
	default:
		return mstatus.Wrap(mstatus.Internal, "internal error", err)
	}
}

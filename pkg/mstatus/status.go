// Package mstatus carries the closed set of status codes used across the
// core so that fallible operations report failure without relying on
// exception-style control flow.
package mstatus

import "fmt"

// Code is one of the fixed RPC-style status codes every fallible
// operation in the core returns.
type Code int

const (
	OK Code = iota
	Cancelled
	Unknown
	InvalidArgument
	DeadlineExceeded
	NotFound
	AlreadyExists
	PermissionDenied
	ResourceExhausted
	FailedPrecondition
	Aborted
	OutOfRange
	Unimplemented
	Internal
	Unavailable
	DataLoss
	Unauthenticated
)

func (c Code) String() string {
	switch c {
	case OK:
		return "OK"
	case Cancelled:
		return "CANCELLED"
	case Unknown:
		return "UNKNOWN"
	case InvalidArgument:
		return "INVALID_ARGUMENT"
	case DeadlineExceeded:
		return "DEADLINE_EXCEEDED"
	case NotFound:
		return "NOT_FOUND"
	case AlreadyExists:
		return "ALREADY_EXISTS"
	case PermissionDenied:
		return "PERMISSION_DENIED"
	case ResourceExhausted:
		return "RESOURCE_EXHAUSTED"
	case FailedPrecondition:
		return "FAILED_PRECONDITION"
	case Aborted:
		return "ABORTED"
	case OutOfRange:
		return "OUT_OF_RANGE"
	case Unimplemented:
		return "UNIMPLEMENTED"
	case Internal:
		return "INTERNAL"
	case Unavailable:
		return "UNAVAILABLE"
	case DataLoss:
		return "DATA_LOSS"
	case Unauthenticated:
		return "UNAUTHENTICATED"
	default:
		return "UNKNOWN"
	}
}

// Status carries a code, a human-readable message, and an optional
// wrapped cause. It implements the error interface so it can travel
// through normal Go error-return paths while still exposing its code to
// callers that need to branch on it (HTTP/gRPC translation, tests).
type Status struct {
	Code    Code
	Message string
	Cause   error
}

// New builds a Status with no wrapped cause.
func New(code Code, message string) *Status {
	return &Status{Code: code, Message: message}
}

// Wrap builds a Status that carries an underlying cause, preserved for
// logging but never echoed verbatim to callers for Internal errors.
func Wrap(code Code, message string, cause error) *Status {
	return &Status{Code: code, Message: message, Cause: cause}
}

func (s *Status) Error() string {
	if s.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", s.Code, s.Message, s.Cause)
	}

	return fmt.Sprintf("%s: %s", s.Code, s.Message)
}

func (s *Status) Unwrap() error {
	return s.Cause
}

// FromError extracts a *Status from any error, defaulting to Internal
// for errors that were never classified.
func FromError(err error) *Status {
	if err == nil {
		return nil
	}

	var st *Status
	if asStatus(err, &st) {
		return st
	}

	return Wrap(Internal, "internal error", err)
}

func asStatus(err error, target **Status) bool {
	for err != nil {
		if s, ok := err.(*Status); ok {
			*target = s
			return true
		}

		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}

		err = u.Unwrap()
	}

	return false
}

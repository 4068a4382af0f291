package registry

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
)

// LookupErrorKind classifies lookup failures.
type LookupErrorKind string

const (
	NotFound         LookupErrorKind = "not-found"
	TransportFailure LookupErrorKind = "transport-failure"
)

var (
	// ErrNotFound is matched by lookups of identifiers nobody registered.
	ErrNotFound = errors.New("batch not found")
	// ErrTransport is matched by lookups that failed to reach the registry. Retryable.
	ErrTransport = errors.New("registry unreachable")
	// ErrInvalidArgument wraps rejected registrations, grades and events.
	ErrInvalidArgument = errors.New("invalid argument")
)

// LookupError is returned by Resolve.
type LookupError struct {
	Kind    LookupErrorKind
	BatchID model.BatchID
	Err     error
}

func (e *LookupError) Error() string {
	switch {
	case e.Kind == NotFound:
		return fmt.Sprintf("batch %s: not found", e.BatchID)
	case e.Err != nil:
		return fmt.Sprintf("batch %s: %s: %v", e.BatchID, e.Kind, e.Err)
	default:
		return fmt.Sprintf("batch %s: %s", e.BatchID, e.Kind)
	}
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels.
func (e *LookupError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == NotFound
	case ErrTransport:
		return e.Kind == TransportFailure
	default:
		return false
	}
}

func notFound(id model.BatchID) error {
	return &LookupError{Kind: NotFound, BatchID: id}
}

func transportFailure(id model.BatchID, err error) error {
	return &LookupError{Kind: TransportFailure, BatchID: id, Err: err}
}

// lookupError classifies a store error for id.
func lookupError(id model.BatchID, err error) error {
	var lookupErr *LookupError
	switch {
	case errors.As(err, &lookupErr):
		return err
	case errors.Is(err, ErrNotFound):
		return notFound(id)
	default:
		return transportFailure(id, err)
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

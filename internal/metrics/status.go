// Package metrics exposes application metrics collectors.
package metrics

import (
	"errors"

	"github.com/goodnatureofminers/farmtrace-backend/internal/registry"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	statusSuccess  = "success"
	statusNotFound = "not_found"
	statusError    = "error"
)

// statusOf maps an operation error to a status label. Lookups of unknown
// batches are expected traffic and are kept apart from failures.
func statusOf(err error) string {
	switch {
	case err == nil:
		return statusSuccess
	case errors.Is(err, registry.ErrNotFound), status.Code(err) == codes.NotFound:
		return statusNotFound
	default:
		return statusError
	}
}

package transport

import (
	"context"
	"errors"

	"github.com/goodnatureofminers/farmtrace-backend/internal/codec"
	"github.com/goodnatureofminers/farmtrace-backend/internal/ledger"
	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/goodnatureofminers/farmtrace-backend/internal/registry"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps a domain error to a gRPC status error.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var code codes.Code
	switch {
	case errors.Is(err, registry.ErrNotFound):
		code = codes.NotFound
	case errors.Is(err, registry.ErrTransport):
		code = codes.Unavailable
	case errors.Is(err, registry.ErrInvalidArgument),
		errors.Is(err, codec.ErrMalformedPayload),
		errors.Is(err, codec.ErrUnsupportedFormat),
		errors.Is(err, codec.ErrInvalidSummary),
		errors.Is(err, codec.ErrNoSymbol),
		errors.Is(err, codec.ErrBadImage),
		errors.Is(err, codec.ErrImageTooLarge):
		code = codes.InvalidArgument
	case errors.Is(err, ledger.ErrOutOfOrder):
		code = codes.FailedPrecondition
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	default:
		code = codes.Internal
	}
	return status.Error(code, err.Error())
}

// lookupFromStatus turns a failed Resolve call back into a lookup error.
// Anything but a definite not-found counts as a transport failure.
func lookupFromStatus(id model.BatchID, err error) error {
	if status.Code(err) == codes.NotFound {
		return &registry.LookupError{Kind: registry.NotFound, BatchID: id}
	}
	return &registry.LookupError{Kind: registry.TransportFailure, BatchID: id, Err: err}
}

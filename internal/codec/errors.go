package codec

import (
	"errors"
	"fmt"
)

// DecodeErrorKind classifies why a symbol could not be decoded.
type DecodeErrorKind string

const (
	MalformedPayload  DecodeErrorKind = "malformed-payload"
	UnsupportedFormat DecodeErrorKind = "unsupported-format"
)

var (
	// ErrMalformedPayload matches decode errors of kind MalformedPayload.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrUnsupportedFormat matches decode errors of kind UnsupportedFormat.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrNoSymbol is returned when an image holds no readable symbol.
	ErrNoSymbol = errors.New("no symbol found")
	// ErrInvalidSummary is returned by Encode for payloads it does not accept.
	ErrInvalidSummary = errors.New("invalid summary")
	// ErrBadImage is returned by ReadImage for data that is not a supported image.
	ErrBadImage = errors.New("unreadable image")
	// ErrImageTooLarge is returned by ReadImage for images over the size budget.
	ErrImageTooLarge = errors.New("image too large")
)

// DecodeError describes a rejected payload read from an untrusted source.
type DecodeError struct {
	Kind   DecodeErrorKind
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode symbol: %s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("decode symbol: %s: %s", e.Kind, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels.
func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrMalformedPayload:
		return e.Kind == MalformedPayload
	case ErrUnsupportedFormat:
		return e.Kind == UnsupportedFormat
	default:
		return false
	}
}

func malformed(reason string, err error) error {
	return &DecodeError{Kind: MalformedPayload, Reason: reason, Err: err}
}

func unsupported(reason string) error {
	return &DecodeError{Kind: UnsupportedFormat, Reason: reason}
}

package scanner

import (
	"errors"
	"fmt"
)

// CaptureErrorKind classifies capture failures.
type CaptureErrorKind string

const (
	DeviceUnavailable   CaptureErrorKind = "device-unavailable"
	PermissionDenied    CaptureErrorKind = "permission-denied"
	TransientFrameError CaptureErrorKind = "transient-frame-error"
)

var (
	ErrDeviceUnavailable = errors.New("capture device unavailable")
	ErrPermissionDenied  = errors.New("capture permission denied")
	ErrTransientFrame    = errors.New("transient frame error")
	// ErrDeviceBusy is wrapped by a device-unavailable error when another scanner owns the device.
	ErrDeviceBusy = errors.New("capture device owned by another scanner")
	// ErrAlreadyStarted is returned by Start on an acquiring scanner.
	ErrAlreadyStarted = errors.New("scanner already acquiring")
)

// CaptureError reports a capture device failure.
type CaptureError struct {
	Kind CaptureErrorKind
	Err  error
}

func (e *CaptureError) Error() string {
	if e.Err == nil {
		return "capture: " + string(e.Kind)
	}
	return fmt.Sprintf("capture: %s: %v", e.Kind, e.Err)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels.
func (e *CaptureError) Is(target error) bool {
	switch target {
	case ErrDeviceUnavailable:
		return e.Kind == DeviceUnavailable
	case ErrPermissionDenied:
		return e.Kind == PermissionDenied
	case ErrTransientFrame:
		return e.Kind == TransientFrameError
	default:
		return false
	}
}

// Terminal reports whether the error ends the scan.
func (e *CaptureError) Terminal() bool {
	return e.Kind == DeviceUnavailable || e.Kind == PermissionDenied
}

func isTerminal(err error) bool {
	var captureErr *CaptureError
	return errors.As(err, &captureErr) && captureErr.Terminal()
}

func asCaptureError(err error, fallback CaptureErrorKind) error {
	var captureErr *CaptureError
	if errors.As(err, &captureErr) {
		return err
	}
	return &CaptureError{Kind: fallback, Err: err}
}

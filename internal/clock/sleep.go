// Package clock holds the waiting primitives shared by the scan loop and
// the registry retry path.
package clock

import (
	"context"
	"time"
)

// SleepFunc waits for d unless ctx finishes first.
type SleepFunc func(ctx context.Context, d time.Duration) error

// SleepWithContext waits for the duration or returns ctx.Err() once the context is done.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Backoff yields doubling delays starting at Base and capped at Max.
// A zero Max leaves the delays uncapped.
type Backoff struct {
	Base time.Duration
	Max  time.Duration

	next time.Duration
}

// Next returns the delay to wait before the following attempt.
func (b *Backoff) Next() time.Duration {
	if b.next == 0 {
		b.next = b.Base
	}
	d := b.next
	if b.Max > 0 && d > b.Max {
		d = b.Max
	}
	b.next = d * 2
	return d
}

// Reset starts the sequence again from Base.
func (b *Backoff) Reset() {
	b.next = 0
}

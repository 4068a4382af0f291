package registry

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/clock"
	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"go.uber.org/zap"
)

const (
	defaultRetryAttempts = 3
	defaultRetryBackoff  = 200 * time.Millisecond
	maxRetryBackoff      = 5 * time.Second
)

// RetryingResolver retries transport failures with exponential backoff.
// Not-found is a final answer and is returned at once.
type RetryingResolver struct {
	next     Resolver
	attempts int
	backoff  time.Duration
	logger   *zap.Logger
	sleep    clock.SleepFunc
}

func NewRetryingResolver(next Resolver, attempts int, backoff time.Duration, logger *zap.Logger) *RetryingResolver {
	if attempts <= 0 {
		attempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	return &RetryingResolver{
		next:     next,
		attempts: attempts,
		backoff:  backoff,
		logger:   logger,
		sleep:    clock.SleepWithContext,
	}
}

func (r *RetryingResolver) Resolve(ctx context.Context, id model.BatchID) (*model.Provenance, error) {
	backoff := clock.Backoff{Base: r.backoff, Max: maxRetryBackoff}
	var err error
	for attempt := 1; ; attempt++ {
		var p *model.Provenance
		p, err = r.next.Resolve(ctx, id)
		if err == nil || !errors.Is(err, ErrTransport) || attempt >= r.attempts {
			return p, err
		}

		wait := backoff.Next()
		r.logger.Warn("registry unreachable, retrying",
			zap.Stringer("batch_id", id),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)
		if sleepErr := r.sleep(ctx, wait); sleepErr != nil {
			return nil, err
		}
	}
}

package main

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/goodnatureofminers/farmtrace-backend/internal/registry"
	"github.com/goodnatureofminers/farmtrace-backend/internal/verification"
	"go.uber.org/zap"
)

type scanRecorder interface {
	RecordScan(ctx context.Context, rec model.ScanRecord) error
}

// verifier resolves decoded identifiers, prints the verdict and reports the
// scan. It runs outside the sampling loop.
type verifier struct {
	resolver  registry.Resolver
	recorder  scanRecorder
	presenter *verification.Presenter
	logger    *zap.Logger

	mu  sync.Mutex
	out io.Writer
}

func (v *verifier) verify(ctx context.Context, id model.BatchID, source model.ScanSource) model.ScanOutcome {
	p, err := v.resolver.Resolve(ctx, id)
	var view *verification.View
	if err == nil {
		view, _ = v.presenter.Present(p)
	}

	v.mu.Lock()
	printVerdict(v.out, id, view, err)
	v.mu.Unlock()

	outcome := registry.OutcomeOf(err)
	rec := model.ScanRecord{
		BatchID:   id,
		Source:    source,
		Outcome:   outcome,
		Verified:  view != nil && view.Verified && !view.Tampered,
		ScannedAt: time.Now(),
	}
	if recErr := v.recorder.RecordScan(ctx, rec); recErr != nil {
		v.logger.Warn("scan not recorded", zap.Stringer("batch_id", id), zap.Error(recErr))
	}
	return outcome
}

// lookupQueue hands decoded identifiers to one worker so a slow registry never
// stalls the event loop. Identifiers offered while the queue is full are
// dropped with a warning.
type lookupQueue struct {
	ids    chan model.BatchID
	done   chan struct{}
	logger *zap.Logger
}

func (v *verifier) startQueue(ctx context.Context, source model.ScanSource, depth int) *lookupQueue {
	if depth < 1 {
		depth = 1
	}
	q := &lookupQueue{
		ids:    make(chan model.BatchID, depth),
		done:   make(chan struct{}),
		logger: v.logger,
	}
	go func() {
		defer close(q.done)
		for id := range q.ids {
			if ctx.Err() != nil {
				continue
			}
			v.verify(ctx, id, source)
		}
	}()
	return q
}

// offer reports whether id was queued.
func (q *lookupQueue) offer(id model.BatchID) bool {
	select {
	case q.ids <- id:
		return true
	default:
		q.logger.Warn("lookup queue full, scan dropped", zap.Stringer("batch_id", id))
		return false
	}
}

// close waits for queued lookups to finish.
func (q *lookupQueue) close() {
	close(q.ids)
	<-q.done
}

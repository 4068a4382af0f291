// Package registry binds batch identifiers to their records and timelines and
// resolves them for verification.
package registry

import (
	"context"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Resolver looks up a batch and its timeline. Lookups are idempotent.
	Resolver interface {
		Resolve(ctx context.Context, id model.BatchID) (*model.Provenance, error)
	}
	// Store persists batches and their events. Missing batches are reported
	// with an error matching ErrNotFound.
	Store interface {
		InsertBatch(ctx context.Context, batch model.Batch) error
		Batch(ctx context.Context, id model.BatchID) (model.Batch, error)
		UpdateGrade(ctx context.Context, id model.BatchID, grade model.Grade) error
		Events(ctx context.Context, id model.BatchID) ([]model.TimelineEvent, error)
		InsertEvent(ctx context.Context, event model.TimelineEvent) error
		// ListBatches returns up to limit batches, most recently registered first.
		ListBatches(ctx context.Context, limit int) ([]model.Batch, error)
		RegistryStats(ctx context.Context) (model.RegistryStats, error)
	}
	ScanStore interface {
		InsertScans(ctx context.Context, records []model.ScanRecord) error
		ScanStats(ctx context.Context) (model.ScanStats, error)
	}
	// ScanQueue buffers scan records on their way to a ScanStore.
	ScanQueue interface {
		Add(ctx context.Context, record model.ScanRecord) error
	}
	Issuer interface {
		Issue() model.BatchID
	}
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

package transport

import (
	"context"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/goodnatureofminers/farmtrace-backend/internal/registry"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Registry is the registry service behind the handler.
	Registry interface {
		Register(ctx context.Context, reg registry.Registration) (model.Batch, error)
		Grade(ctx context.Context, id model.BatchID, grade model.Grade) error
		Append(ctx context.Context, id model.BatchID, in registry.EventInput) (model.TimelineEvent, error)
		Resolve(ctx context.Context, id model.BatchID) (*model.Provenance, error)
		RecordScan(ctx context.Context, rec model.ScanRecord) error
		ScanStats(ctx context.Context) (model.ScanStats, error)
		Recent(ctx context.Context, limit int) ([]*model.Provenance, error)
		RegistryStats(ctx context.Context) (model.RegistryStats, error)
	}
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

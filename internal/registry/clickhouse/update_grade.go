package clickhouse

import (
	"context"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
)

// UpdateGrade writes a new version of the batch row carrying grade.
func (r *Repository) UpdateGrade(ctx context.Context, id model.BatchID, grade model.Grade) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("update_grade", err, start)
	}()

	var batch model.Batch
	batch, err = r.batch(ctx, id)
	if err != nil {
		return err
	}
	batch.Grade = &grade

	updatedAt := r.now().UTC()
	if !updatedAt.After(batch.RegisteredAt) {
		updatedAt = batch.RegisteredAt.Add(time.Millisecond)
	}
	err = r.writeBatch(ctx, batch, updatedAt)
	return err
}

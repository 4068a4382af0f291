package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
)

const insertBatchQuery = `
INSERT INTO farmtrace_batches (
	batch_id,
	farmer_name,
	crop_type,
	location,
	harvest_date,
	quantity_kg,
	grade_label,
	grade_defects,
	grade_confidence,
	registered_at,
	updated_at
) VALUES`

// InsertBatch stores a newly registered batch.
func (r *Repository) InsertBatch(ctx context.Context, batch model.Batch) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_batch", err, start)
	}()

	err = r.writeBatch(ctx, batch, batch.RegisteredAt)
	return err
}

// writeBatch appends a batch row; the row with the latest updatedAt wins.
func (r *Repository) writeBatch(ctx context.Context, batch model.Batch, updatedAt time.Time) error {
	rows, err := r.conn.PrepareBatch(ctx, insertBatchQuery)
	if err != nil {
		return fmt.Errorf("prepare batches batch: %w", err)
	}

	var (
		label, defects *string
		confidence     *float64
	)
	if batch.Grade != nil {
		label, defects, confidence = &batch.Grade.Label, &batch.Grade.Defects, &batch.Grade.Confidence
	}

	if err = rows.Append(
		string(batch.ID),
		batch.FarmerName,
		batch.CropType,
		batch.Location,
		batch.HarvestDate,
		batch.QuantityKg,
		label,
		defects,
		confidence,
		batch.RegisteredAt,
		updatedAt,
	); err != nil {
		_ = rows.Abort()
		return fmt.Errorf("append batch: %w", err)
	}

	if err = rows.Send(); err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

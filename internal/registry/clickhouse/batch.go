package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/goodnatureofminers/farmtrace-backend/internal/registry"
	"github.com/shopspring/decimal"
)

const batchColumns = `
	batch_id,
	farmer_name,
	crop_type,
	location,
	harvest_date,
	quantity_kg,
	grade_label,
	grade_defects,
	grade_confidence,
	registered_at`

const batchQuery = `
SELECT` + batchColumns + `
FROM farmtrace_batches FINAL
WHERE batch_id = ?
LIMIT 1`

// Batch returns the current row of a batch.
func (r *Repository) Batch(ctx context.Context, id model.BatchID) (model.Batch, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("batch", err, start)
	}()

	var batch model.Batch
	batch, err = r.batch(ctx, id)
	return batch, err
}

func (r *Repository) batch(ctx context.Context, id model.BatchID) (batch model.Batch, err error) {
	rows, err := r.conn.Query(ctx, batchQuery, string(id))
	if err != nil {
		return model.Batch{}, fmt.Errorf("query batch: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Batch{}, fmt.Errorf("iterate batch: %w", err)
		}
		return model.Batch{}, fmt.Errorf("batch %s: %w", id, registry.ErrNotFound)
	}

	batch, err = scanBatch(rows)
	if err != nil {
		return model.Batch{}, err
	}
	if err = rows.Err(); err != nil {
		return model.Batch{}, fmt.Errorf("iterate batch: %w", err)
	}
	return batch, nil
}

// scanBatch reads one row selected with batchColumns.
func scanBatch(rows Rows) (model.Batch, error) {
	var (
		batch          model.Batch
		rawID          string
		harvestDate    *time.Time
		quantity       *decimal.Decimal
		label, defects *string
		confidence     *float64
	)
	if err := rows.Scan(
		&rawID,
		&batch.FarmerName,
		&batch.CropType,
		&batch.Location,
		&harvestDate,
		&quantity,
		&label,
		&defects,
		&confidence,
		&batch.RegisteredAt,
	); err != nil {
		return model.Batch{}, fmt.Errorf("scan batch: %w", err)
	}

	batch.ID = model.BatchID(rawID)
	batch.HarvestDate = harvestDate
	batch.QuantityKg = quantity
	batch.RegisteredAt = batch.RegisteredAt.UTC()
	if label != nil {
		batch.Grade = &model.Grade{Label: *label}
		if defects != nil {
			batch.Grade.Defects = *defects
		}
		if confidence != nil {
			batch.Grade.Confidence = *confidence
		}
	}
	return batch, nil
}

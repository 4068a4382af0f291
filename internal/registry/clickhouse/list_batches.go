package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
)

const listBatchesQuery = `
SELECT` + batchColumns + `
FROM farmtrace_batches FINAL
ORDER BY registered_at DESC, batch_id
LIMIT ?`

// ListBatches returns up to limit batches, most recently registered first.
func (r *Repository) ListBatches(ctx context.Context, limit int) ([]model.Batch, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("list_batches", err, start)
	}()

	var batches []model.Batch
	batches, err = r.listBatches(ctx, limit)
	return batches, err
}

func (r *Repository) listBatches(ctx context.Context, limit int) (batches []model.Batch, err error) {
	if limit < 1 {
		return nil, fmt.Errorf("list limit %d must be positive", limit)
	}
	rows, err := r.conn.Query(ctx, listBatchesQuery, uint64(limit))
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	batches = make([]model.Batch, 0, limit)
	for rows.Next() {
		batch, scanErr := scanBatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		batches = append(batches, batch)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}
	return batches, nil
}

package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
)

const insertScansQuery = `
INSERT INTO farmtrace_scans (
	batch_id,
	source,
	outcome,
	verified,
	scanned_at
) VALUES`

// InsertScans stores a batch of scan records.
func (r *Repository) InsertScans(ctx context.Context, records []model.ScanRecord) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_scans", err, start)
	}()

	if len(records) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertScansQuery)
	if err != nil {
		return fmt.Errorf("prepare scans batch: %w", err)
	}

	for _, rec := range records {
		if err = batch.Append(
			string(rec.BatchID),
			string(rec.Source),
			string(rec.Outcome),
			rec.Verified,
			rec.ScannedAt,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append scan: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert scans: %w", err)
	}
	return nil
}

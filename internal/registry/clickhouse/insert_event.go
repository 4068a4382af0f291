package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
)

const insertEventQuery = `
INSERT INTO farmtrace_timeline_events (
	batch_id,
	sequence,
	stage,
	title,
	description,
	timestamp,
	location,
	temperature,
	humidity,
	price_per_kg,
	verified,
	anomaly,
	prev_hash,
	hash
) VALUES`

// InsertEvent appends a linked timeline event.
func (r *Repository) InsertEvent(ctx context.Context, event model.TimelineEvent) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_event", err, start)
	}()

	batch, err := r.conn.PrepareBatch(ctx, insertEventQuery)
	if err != nil {
		return fmt.Errorf("prepare events batch: %w", err)
	}

	if err = batch.Append(
		string(event.BatchID),
		event.Sequence,
		string(event.Stage),
		event.Title,
		event.Description,
		event.Timestamp,
		event.Location,
		event.Temperature,
		event.Humidity,
		event.PricePerKg,
		event.Verified,
		event.Anomaly,
		event.PrevHash,
		event.Hash,
	); err != nil {
		_ = batch.Abort()
		return fmt.Errorf("append event: %w", err)
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

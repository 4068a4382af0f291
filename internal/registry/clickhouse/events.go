package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
	"github.com/shopspring/decimal"
)

const eventsQuery = `
SELECT
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
FROM farmtrace_timeline_events FINAL
WHERE batch_id = ?
ORDER BY sequence`

// Events returns the timeline of a batch ordered by sequence.
func (r *Repository) Events(ctx context.Context, id model.BatchID) ([]model.TimelineEvent, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("events", err, start)
	}()

	var events []model.TimelineEvent
	events, err = r.events(ctx, id)
	return events, err
}

func (r *Repository) events(ctx context.Context, id model.BatchID) (events []model.TimelineEvent, err error) {
	rows, err := r.conn.Query(ctx, eventsQuery, string(id))
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	events = make([]model.TimelineEvent, 0)
	for rows.Next() {
		var (
			e     = model.TimelineEvent{BatchID: id}
			stage string
			price *decimal.Decimal
		)
		if err = rows.Scan(
			&e.Sequence,
			&stage,
			&e.Title,
			&e.Description,
			&e.Timestamp,
			&e.Location,
			&e.Temperature,
			&e.Humidity,
			&price,
			&e.Verified,
			&e.Anomaly,
			&e.PrevHash,
			&e.Hash,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Stage = model.Stage(stage)
		e.Timestamp = e.Timestamp.UTC()
		e.PricePerKg = price
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

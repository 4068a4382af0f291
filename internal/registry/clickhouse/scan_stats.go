package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
)

const scanStatsQuery = `
SELECT
	count(),
	countIf(outcome = 'found'),
	countIf(outcome = 'not_found'),
	countIf(outcome = 'transport_failure'),
	countIf(verified)
FROM farmtrace_scans`

// ScanStats counts scan records by outcome.
func (r *Repository) ScanStats(ctx context.Context) (model.ScanStats, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("scan_stats", err, start)
	}()

	var stats model.ScanStats
	stats, err = r.scanStats(ctx)
	return stats, err
}

func (r *Repository) scanStats(ctx context.Context) (stats model.ScanStats, err error) {
	rows, err := r.conn.Query(ctx, scanStatsQuery)
	if err != nil {
		return model.ScanStats{}, fmt.Errorf("query scan stats: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		err = fmt.Errorf("scan stats not found")
		return model.ScanStats{}, err
	}
	if err = rows.Scan(&stats.Total, &stats.Found, &stats.NotFound, &stats.Transport, &stats.Verified); err != nil {
		return model.ScanStats{}, fmt.Errorf("scan scan stats: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.ScanStats{}, fmt.Errorf("iterate scan stats: %w", err)
	}

	return stats, nil
}

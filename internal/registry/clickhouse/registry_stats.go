package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/farmtrace-backend/internal/model"
)

// The rollup row carries the totals under an empty crop type. Registration
// never stores an empty crop.
const registryStatsQuery = `
SELECT
	crop_type,
	count(),
	uniqExact(farmer_name)
FROM farmtrace_batches FINAL
GROUP BY crop_type WITH ROLLUP`

// RegistryStats counts batches, distinct farmers and batches per crop.
func (r *Repository) RegistryStats(ctx context.Context) (model.RegistryStats, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("registry_stats", err, start)
	}()

	var stats model.RegistryStats
	stats, err = r.registryStats(ctx)
	return stats, err
}

func (r *Repository) registryStats(ctx context.Context) (stats model.RegistryStats, err error) {
	rows, err := r.conn.Query(ctx, registryStatsQuery)
	if err != nil {
		return model.RegistryStats{}, fmt.Errorf("query registry stats: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	stats.Crops = make(map[string]uint64)
	for rows.Next() {
		var (
			crop             string
			batches, farmers uint64
		)
		if err = rows.Scan(&crop, &batches, &farmers); err != nil {
			return model.RegistryStats{}, fmt.Errorf("scan registry stats: %w", err)
		}
		if crop == "" {
			stats.Batches, stats.Farmers = batches, farmers
			continue
		}
		stats.Crops[crop] = batches
	}
	if err = rows.Err(); err != nil {
		return model.RegistryStats{}, fmt.Errorf("iterate registry stats: %w", err)
	}
	return stats, nil
}

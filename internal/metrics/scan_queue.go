package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scanQueueFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "farmtrace",
		Subsystem: "scan_queue",
		Name:      "flush_total",
		Help:      "Count of scan record flushes.",
	}, []string{"status"})

	scanQueueFlushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "farmtrace",
		Subsystem: "scan_queue",
		Name:      "flush_duration_seconds",
		Help:      "Duration of flushing scan records.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	scanQueueFlushSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "farmtrace",
		Subsystem: "scan_queue",
		Name:      "flush_size",
		Help:      "Number of scan records per flush.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	})
)

// ScanQueue tracks metrics for the buffered scan record writer.
type ScanQueue struct{}

func NewScanQueue() *ScanQueue {
	return &ScanQueue{}
}

// ObserveFlush records one flush of size records.
func (m ScanQueue) ObserveFlush(size int, err error, started time.Time) {
	status := statusOf(err)
	scanQueueFlushTotal.WithLabelValues(status).Inc()
	scanQueueFlushDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	scanQueueFlushSize.Observe(float64(size))
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	labelerExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "farmtrace",
		Subsystem: "labeler",
		Name:      "exports_total",
		Help:      "Count of exported batch labels.",
	}, []string{"format", "status"})

	labelerExportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "farmtrace",
		Subsystem: "labeler",
		Name:      "export_duration_seconds",
		Help:      "Duration of rendering and writing one label.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"format", "status"})
)

// Labeler tracks metrics for label exports.
type Labeler struct{}

func NewLabeler() *Labeler {
	return &Labeler{}
}

// ObserveExport records one label export.
func (m Labeler) ObserveExport(format string, err error, started time.Time) {
	status := statusOf(err)
	labelerExportsTotal.WithLabelValues(format, status).Inc()
	labelerExportDuration.WithLabelValues(format, status).Observe(time.Since(started).Seconds())
}

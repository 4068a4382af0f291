package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registryOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "farmtrace",
		Subsystem: "registry",
		Name:      "operations_total",
		Help:      "Count of registry operations.",
	}, []string{"operation", "status"})
	registryOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "farmtrace",
		Subsystem: "registry",
		Name:      "operation_duration_seconds",
		Help:      "Duration of registry operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

// Registry tracks metrics for batch registration, timeline and lookup operations.
type Registry struct{}

func NewRegistry() *Registry {
	return &Registry{}
}

// Observe records a registry operation outcome and duration.
func (m Registry) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	registryOperationsTotal.WithLabelValues(operation, status).Inc()
	registryOperationDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcClientRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "farmtrace",
		Subsystem: "rpc_client",
		Name:      "operations_total",
		Help:      "Count of registry RPC calls made by clients.",
	}, []string{"operation", "target", "status"})
	rpcClientRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "farmtrace",
		Subsystem: "rpc_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of registry RPC calls made by clients.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "target", "status"})
)

// RPCClient tracks metrics for RPC calls to the registry service.
type RPCClient struct {
	target string
}

// NewRPCClient constructs a metrics collector for RPC calls to target.
func NewRPCClient(target string) *RPCClient {
	if target == "" {
		target = "unknown"
	}
	return &RPCClient{target: target}
}

// Observe records a single RPC call outcome and duration.
func (m RPCClient) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	rpcClientRequestsTotal.WithLabelValues(operation, m.target, status).Inc()
	rpcClientRequestDuration.WithLabelValues(operation, m.target, status).Observe(time.Since(started).Seconds())
}

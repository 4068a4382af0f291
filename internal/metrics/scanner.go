package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scannerStartsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "farmtrace",
		Subsystem: "scanner",
		Name:      "starts_total",
		Help:      "Count of capture device acquisitions.",
	}, []string{"device", "status"})

	scannerSamplesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "farmtrace",
		Subsystem: "scanner",
		Name:      "samples_total",
		Help:      "Count of processed frames and manual entries by outcome.",
	}, []string{"device", "outcome"})

	scannerSampleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "farmtrace",
		Subsystem: "scanner",
		Name:      "sample_duration_seconds",
		Help:      "Duration of locating and decoding a symbol in one sample.",
		Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"device", "outcome"})
)

// Scanner tracks metrics for a scanning session.
type Scanner struct {
	device string
}

// NewScanner constructs a Scanner collector labelled with device.
func NewScanner(device string) *Scanner {
	if device == "" {
		device = "unknown"
	}
	return &Scanner{device: device}
}

// ObserveStart records a device acquisition attempt.
func (m Scanner) ObserveStart(err error) {
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	scannerStartsTotal.WithLabelValues(m.device, status).Inc()
}

// ObserveSample records the outcome of one sample.
func (m Scanner) ObserveSample(outcome string, started time.Time) {
	scannerSamplesTotal.WithLabelValues(m.device, outcome).Inc()
	scannerSampleDuration.WithLabelValues(m.device, outcome).Observe(time.Since(started).Seconds())
}

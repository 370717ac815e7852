package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder implements repository.Metrics using Prometheus.
type Recorder struct {
	signalsTotal    *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	upstreamErrors  *prometheus.CounterVec
	fieldsExtracted prometheus.Histogram
	proxyRequests   *prometheus.CounterVec
}

// New registers the service collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		signalsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "traxor_signals_total",
				Help: "Signals produced, by asset and outcome (live, mock, fallback)",
			},
			[]string{"asset", "outcome"},
		),
		upstreamLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "traxor_upstream_duration_seconds",
				Help:    "Duration of upstream calls in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"operation"},
		),
		upstreamErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "traxor_upstream_errors_total",
				Help: "Upstream failures by operation and kind",
			},
			[]string{"operation", "kind"},
		),
		fieldsExtracted: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "traxor_parser_fields_extracted",
				Help:    "Structured fields found in an upstream reply (0 to 5)",
				Buckets: []float64{0, 1, 2, 3, 4, 5},
			},
		),
		proxyRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "traxor_proxy_requests_total",
				Help: "Proxy pass-through requests by returned status",
			},
			[]string{"status"},
		),
	}
	reg.MustRegister(r.signalsTotal, r.upstreamLatency, r.upstreamErrors, r.fieldsExtracted, r.proxyRequests)
	return r
}

func (r *Recorder) RecordSignal(asset, outcome string) {
	r.signalsTotal.WithLabelValues(asset, outcome).Inc()
}

func (r *Recorder) ObserveUpstream(op string, d time.Duration) {
	r.upstreamLatency.WithLabelValues(op).Observe(d.Seconds())
}

func (r *Recorder) RecordUpstreamError(op, kind string) {
	r.upstreamErrors.WithLabelValues(op, kind).Inc()
}

func (r *Recorder) ObserveFieldsExtracted(n int) {
	r.fieldsExtracted.Observe(float64(n))
}

func (r *Recorder) RecordProxyRequest(status int) {
	r.proxyRequests.WithLabelValues(strconv.Itoa(status)).Inc()
}

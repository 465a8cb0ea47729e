package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Decode outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the collectors of the webhook server.
type Metrics struct {
	Decodes      *prometheus.CounterVec
	PayloadBytes prometheus.Histogram
	HTTPRequests *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Decodes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "soil_decodes_total",
			Help: "Total number of uplinks decoded, by convention and outcome",
		}, []string{"convention", "outcome"}),
		PayloadBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "soil_payload_bytes",
			Help:    "Size of received uplink payloads in bytes",
			Buckets: []float64{0, 2, 4, 7, 8, 9, 16, 32, 64},
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "soil_http_requests_total",
			Help: "Total number of HTTP requests, by route and status code",
		}, []string{"path", "code"}),
	}
}

// RecordDecode counts one decode attempt.
func (m *Metrics) RecordDecode(convention string, size int, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.Decodes.WithLabelValues(convention, outcome).Inc()
	m.PayloadBytes.Observe(float64(size))
}

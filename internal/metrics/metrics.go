// Package metrics exposes the service's prometheus collectors behind a
// single process-wide observer.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var Observer = &Metrics{
	mutex:      new(sync.RWMutex),
	prometheus: NewPrometheusMetrics(),
}

func init() {
	prometheus.MustRegister(
		Observer.prometheus.Requests,
		Observer.prometheus.Predictions,
		Observer.prometheus.PredictedHours,
	)
}

type Metrics struct {
	mutex      *sync.RWMutex
	prometheus Prometheus
}

// Request counts one handled request for the given route and status.
func (m *Metrics) Request(route, status string) {
	m.prometheus.Requests.WithLabelValues(route, status).Inc()
}

// Prediction records one served prediction and its value.
func (m *Metrics) Prediction(hours float64) {
	m.prometheus.Predictions.Inc()
	m.prometheus.PredictedHours.Observe(hours)
}

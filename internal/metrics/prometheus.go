package metrics

import "github.com/prometheus/client_golang/prometheus"

type Prometheus struct {
	Requests       *prometheus.CounterVec
	Predictions    prometheus.Counter
	PredictedHours prometheus.Histogram
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "absenteeism",
				Name:      "requests",
			}, []string{"route", "status"}),
		Predictions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "absenteeism",
				Name:      "predictions",
			}),
		PredictedHours: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "absenteeism",
				Name:      "predicted_hours",
				Buckets:   prometheus.LinearBuckets(0, 2, 12),
			}),
	}
}

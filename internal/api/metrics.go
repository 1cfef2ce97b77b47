package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the backend's prometheus collectors on a private registry
type Metrics struct {
	registry         *prometheus.Registry
	predictions      *prometheus.CounterVec
	predictionErrors prometheus.Counter
	preparations     prometheus.Counter
	requestDuration  *prometheus.HistogramVec
}

// NewMetrics registers the backend collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "telcochurn_predictions_total",
			Help: "Churn predictions served, by predicted class.",
		}, []string{"class"}),
		predictionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "telcochurn_prediction_errors_total",
			Help: "Prediction requests answered with success=false.",
		}),
		preparations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "telcochurn_preparations_total",
			Help: "Datasets analyzed through the backend.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "telcochurn_request_duration_seconds",
			Help:    "Backend request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	m.registry.MustRegister(m.predictions, m.predictionErrors, m.preparations, m.requestDuration)
	return m
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

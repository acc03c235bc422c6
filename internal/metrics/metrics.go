package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	registry *prometheus.Registry

	CalculationsTotal *prometheus.CounterVec
	EstimatedYears    *prometheus.CounterVec
	FallbacksTotal    prometheus.Counter
	DispatchesTotal   *prometheus.CounterVec
	CalcDuration      prometheus.Histogram
	QueueDepth        prometheus.Gauge
}

// New creates and registers all collectors in a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		CalculationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chrono_calculations_total",
				Help: "Total calculations by final status (success, skipped, error).",
			},
			[]string{"status"},
		),
		EstimatedYears: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chrono_estimated_years_total",
				Help: "Distribution of estimated anchor years.",
			},
			[]string{"year"},
		),
		FallbacksTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "chrono_fallbacks_total",
				Help: "Calculations that fell back to a randomized result.",
			},
		),
		DispatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chrono_dispatches_total",
				Help: "Result deliveries to the collector by outcome (delivered, failed).",
			},
			[]string{"outcome"},
		),
		CalcDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "chrono_calculation_duration_seconds",
				Help:    "End-to-end calculation latency in seconds, delivery included.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30},
			},
		),
		QueueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "chrono_queue_depth",
				Help: "Number of calculation jobs currently buffered.",
			},
		),
	}

	m.registry.MustRegister(
		m.CalculationsTotal,
		m.EstimatedYears,
		m.FallbacksTotal,
		m.DispatchesTotal,
		m.CalcDuration,
		m.QueueDepth,
	)
	return m
}

// Handler returns the scrape endpoint for this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

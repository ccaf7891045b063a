package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	InterpolationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "seismic_interpolations_total",
		Help: "Total interpolation calls by coefficient prefix and outcome",
	}, []string{"prefix", "outcome"})
	InterpolationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "seismic_interpolation_duration_seconds",
		Help:    "Interpolation call duration in seconds",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	}, []string{"prefix"})
	IndexBuildsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "seismic_index_builds_total",
		Help: "Total spatial index builds",
	})
	ReferencePoints = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "seismic_reference_points",
		Help: "Number of points in the loaded reference table",
	})
)

func init() {
	prometheus.MustRegister(InterpolationsTotal)
	prometheus.MustRegister(InterpolationDuration)
	prometheus.MustRegister(IndexBuildsTotal)
	prometheus.MustRegister(ReferencePoints)
}

// ObserveInterpolation records the outcome and duration of one interpolation call.
func ObserveInterpolation(prefix, outcome string, d time.Duration) {
	InterpolationsTotal.WithLabelValues(prefix, outcome).Inc()
	InterpolationDuration.WithLabelValues(prefix).Observe(d.Seconds())
}

// Handler exposes the registered collectors for Prometheus scraping.
func Handler() http.Handler { return promhttp.Handler() }

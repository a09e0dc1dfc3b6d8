// Package metrics exposes Prometheus instruments for haiku generation and
// corpus ingestion.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Failure reasons used as the "reason" label.
const (
	ReasonEmpty    = "empty_vocabulary"
	ReasonSparse   = "too_sparse"
	ReasonCanceled = "canceled"
)

// Metrics groups the service's instruments.
type Metrics struct {
	Generated     prometheus.Counter
	Failures      *prometheus.CounterVec
	Duration      prometheus.Histogram
	Vocabulary    prometheus.Gauge
	IngestedWords *prometheus.CounterVec
}

// New creates the instruments and registers them with reg. A nil reg leaves
// them unregistered, which suits one-shot CLI runs and tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Generated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "haiku_generated_total",
			Help: "Total number of haiku written",
		}),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "haiku_generation_failures_total",
				Help: "Haiku requests that produced no haiku",
			},
			[]string{"reason"},
		),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "haiku_generation_seconds",
			Help:    "Time spent writing one haiku",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		}),
		Vocabulary: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "haiku_vocabulary_words",
			Help: "Distinct words in the current vocabulary",
		}),
		IngestedWords: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "haiku_ingested_words_total",
				Help: "Words ingested into the vocabulary, by source",
			},
			[]string{"source"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Generated, m.Failures, m.Duration, m.Vocabulary, m.IngestedWords)
	}
	return m
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

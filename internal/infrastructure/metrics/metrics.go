// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "news_classifier"

var (
	classifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "classifications_total",
		Help:      "Articles classified, by predicted label, input source and cache hit.",
	}, []string{"label", "source", "cached"})

	classificationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "classification_errors_total",
		Help:      "Failed classification requests by reason.",
	}, []string{"reason"})

	inferenceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "inference_duration_seconds",
		Help:      "Time spent in one forward pass including tokenization.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	})

	extractions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "document_extractions_total",
		Help:      "Document text extractions by file extension and outcome.",
	}, []string{"format", "outcome"})
)

// ObserveClassification records one successful classification
func ObserveClassification(label, source string, cached bool) {
	classifications.WithLabelValues(label, source, strconv.FormatBool(cached)).Inc()
}

// ObserveInference records the latency of one forward pass
func ObserveInference(d time.Duration) {
	inferenceDuration.Observe(d.Seconds())
}

// ObserveError records a failed request
func ObserveError(reason string) {
	classificationErrors.WithLabelValues(reason).Inc()
}

// ObserveExtraction records a document extraction attempt
func ObserveExtraction(format string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	extractions.WithLabelValues(format, outcome).Inc()
}

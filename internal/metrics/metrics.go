// Package metrics holds the prometheus collectors of the quiz backend.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ingestionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "binary_brain_ingestions_total",
		Help: "Question files processed, by outcome.",
	}, []string{"outcome"})

	ingestedQuestions = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "binary_brain_ingested_questions",
		Help:    "Valid questions per successful ingestion.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	answersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "binary_brain_answers_total",
		Help: "Answers recorded, by correctness.",
	}, []string{"correct"})

	storageFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "binary_brain_storage_failures_total",
		Help: "Failed storage backend operations.",
	}, []string{"backend", "operation"})

	explanationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "binary_brain_explanations_total",
		Help: "Explanation requests, by outcome.",
	}, []string{"outcome"})
)

func ObserveIngestion(success bool, questions int) {
	if !success {
		ingestionsTotal.WithLabelValues("failure").Inc()
		return
	}
	ingestionsTotal.WithLabelValues("success").Inc()
	ingestedQuestions.Observe(float64(questions))
}

func ObserveAnswer(correct bool) {
	if correct {
		answersTotal.WithLabelValues("true").Inc()
		return
	}
	answersTotal.WithLabelValues("false").Inc()
}

func ObserveStorageFailure(backend, operation string) {
	storageFailuresTotal.WithLabelValues(backend, operation).Inc()
}

func ObserveExplanation(err error) {
	if err != nil {
		explanationsTotal.WithLabelValues("failure").Inc()
		return
	}
	explanationsTotal.WithLabelValues("success").Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}

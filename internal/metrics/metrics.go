// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deptclassify_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deptclassify_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "deptclassify_api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	// Model Metrics
	TrainDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "deptclassify_train_duration_seconds",
			Help:    "Duration of vectorizer fits in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 30},
		},
	)

	TrainDocuments = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "deptclassify_train_documents",
			Help: "Number of documents used by the most recent fit",
		},
	)

	TrainErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deptclassify_train_errors_total",
			Help: "Total number of failed training requests",
		},
	)

	ModelDimension = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "deptclassify_model_dimension",
			Help: "Vocabulary size of the installed vectorizer",
		},
	)

	ModelLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "deptclassify_model_loaded",
			Help: "1 when a vectorizer is installed, 0 otherwise",
		},
	)

	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deptclassify_predictions_total",
			Help: "Total number of predictions by review outcome",
		},
		[]string{"needs_review"},
	)

	PredictionConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "deptclassify_prediction_confidence",
			Help:    "Cosine similarity of the selected department",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	ModelStoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deptclassify_model_store_operations_total",
			Help: "Total number of model store operations by result",
		},
		[]string{"op", "result"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordTrain records a completed fit. Failed fits only bump the error counter.
func RecordTrain(duration time.Duration, documents, dimension int, err error) {
	if err != nil {
		TrainErrors.Inc()
		return
	}
	TrainDuration.Observe(duration.Seconds())
	TrainDocuments.Set(float64(documents))
	SetModelInstalled(dimension)
}

// SetModelInstalled marks a vectorizer of the given dimension as active.
func SetModelInstalled(dimension int) {
	ModelLoaded.Set(1)
	ModelDimension.Set(float64(dimension))
}

// RecordPrediction records the outcome of one prediction.
func RecordPrediction(confidence float64, needsReview bool) {
	PredictionsTotal.WithLabelValues(strconv.FormatBool(needsReview)).Inc()
	PredictionConfidence.Observe(confidence)
}

// RecordStoreOperation records a model store save, load or prune.
// result is one of "success", "not_found" or "error".
func RecordStoreOperation(op, result string) {
	ModelStoreOperations.WithLabelValues(op, result).Inc()
}

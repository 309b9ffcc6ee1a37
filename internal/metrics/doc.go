// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

/*
Package metrics provides Prometheus metrics for the classification service.

Collectors are registered with the default registry through promauto and
exposed at /metrics when metrics are enabled:

	curl http://localhost:8000/metrics

# Available Metrics

API Metrics:
  - deptclassify_api_requests_total: Requests (counter). Labels: method, endpoint, status
  - deptclassify_api_request_duration_seconds: Latency (histogram). Labels: method, endpoint
  - deptclassify_api_active_requests: In-flight requests (gauge)

Model Metrics:
  - deptclassify_train_duration_seconds: Fit latency (histogram)
  - deptclassify_train_documents: Documents in the last fit (gauge)
  - deptclassify_train_errors_total: Failed training requests (counter)
  - deptclassify_model_dimension: Installed vocabulary size (gauge)
  - deptclassify_model_loaded: 1 when a vectorizer is installed (gauge)
  - deptclassify_predictions_total: Predictions (counter). Labels: needs_review
  - deptclassify_prediction_confidence: Selected similarity (histogram)
  - deptclassify_model_store_operations_total: Store calls (counter). Labels: op, result

# Usage

	start := time.Now()
	// ... fit ...
	metrics.RecordTrain(time.Since(start), len(docs), model.Dimension(), nil)
*/
package metrics

// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

/*
Package api provides the HTTP interface of the department classifier.

Routes (chi):

	GET  /health                  liveness and installed model summary
	POST /departments/vectorize   train a vectorizer, return department vectors
	POST /departments/predict     score a complaint against department vectors
	GET  /model/info              installed model summary
	POST /model/load?version=     install a stored version (newest if omitted)
	GET  /model/versions          stored versions with metadata
	DELETE /model/versions/{v}    remove a stored version
	GET  /metrics                 Prometheus exposition (when enabled)

Every response uses the envelope from the models package:

	{"status": "success", "data": {...}, "metadata": {"timestamp": ..., "request_id": ..., "query_time_ms": ...}}
	{"status": "error", "data": null, "error": {"code": "...", "message": "..."}, "metadata": {...}}

Error mapping:

  - classify.ValidationError and body/struct validation: 400 VALIDATION_ERROR
  - classify.ErrModelNotInitialized: 400 MODEL_NOT_INITIALIZED
  - load or delete of a missing version: 404 NOT_FOUND
  - classify.ModelLoadError: 400 MODEL_LOAD_ERROR
  - classify.DimensionMismatchError: 500 DIMENSION_MISMATCH
  - oversized body: 413 REQUEST_TOO_LARGE
  - rate limit: 429 RATE_LIMIT_EXCEEDED
  - anything else: 500 INTERNAL_ERROR with a generic message

Middleware order: start stamp, RealIP, request ID, access log, panic
recovery, Prometheus metrics and CORS apply globally. The rate limit, body
size limit and gzip apply to the /departments and /model groups only.

Usage:

	handler := api.NewHandler(state, store)
	router := api.NewRouter(handler, api.RouterConfigFromConfig(cfg))
	h, err := router.SetupChi()
*/
package api

// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

/*
Package middleware provides HTTP middleware components for the API router.

All middleware uses the func(http.Handler) http.Handler shape so it composes
with chi's Use.

Key Components:

  - RequestID: reuses or generates an X-Request-ID and stores it in the context
  - AccessLog: one zerolog line per request, slow and failing requests raised
  - PrometheusMetrics: request count, latency and in-flight gauge by route pattern
  - Compression: gzip for responses at or above a minimum size

Typical stack:

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(middleware.DefaultSlowRequestThreshold))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(gzip)
*/
package middleware

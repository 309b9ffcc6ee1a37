// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

/*
Package main is the entry point for the deptclassify server.

deptclassify fits a TF-IDF vectorizer over department keyword lists and routes
free-text complaints to the department whose vector is most similar.

Startup order:

 1. Configuration: koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog with JSON or console output
 3. Model store: versioned directories under model.dir
 4. Classifier state, optionally loading the newest stored model
 5. HTTP router: chi with request ID, access log, metrics, CORS, rate limit
 6. Supervisor tree: suture v4 running the HTTP server and model reload

SIGINT and SIGTERM cancel the root context. The HTTP server then drains
in-flight requests for up to server.shutdown_timeout.

Example:

	export MODEL_DIR=/var/lib/deptclassify/models
	export HTTP_PORT=8000
	export LOG_LEVEL=debug
	./deptclassify

Changes to the config file's logging section apply without a restart.
*/
package main

// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

/*
Package config provides centralized configuration management for Deptclassify.

Configuration is loaded with Koanf v2 from three layers, later layers
overriding earlier ones:

 1. Struct defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, config.yaml, config.yml or
    /etc/deptclassify/config.yaml, whichever exists first
 3. Environment variables, through an explicit mapping table

# Environment Variables

HTTP Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8000)
  - HTTP_READ_TIMEOUT: Request read timeout (default: 30s)
  - HTTP_WRITE_TIMEOUT: Response write timeout (default: 60s)
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown budget (default: 15s)

Model Store:
  - MODEL_DIR: Root directory for versioned models (default: models)
  - MODEL_CODEC: Blob compression, zstd, lz4 or none (default: zstd)
  - MODEL_KEEP_VERSIONS: Versions kept after each save, 0 keeps all (default: 0)
  - MODEL_LOAD_ON_STARTUP: Install the newest version at startup (default: true)
  - MODEL_RELOAD_INTERVAL: Poll for newer versions on disk, 0 disables (default: 0)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

Security:
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS: Requests per window per client IP (default: 100)
  - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
  - MAX_BODY_BYTES: Maximum request body size (default: 10MB)

Metrics:
  - METRICS_ENABLED: Expose /metrics (default: true)

Environment variables not in the table are ignored.

# Example YAML

	server:
	  port: 8000
	model:
	  dir: /data/models
	  codec: lz4
	  keep_versions: 10
	logging:
	  level: debug
	  format: console
	security:
	  cors_origins:
	    - https://support.example.com

# Validation

Load returns an error when a value is out of range: a port outside 1-65535,
an unknown codec, log level or format, a negative keep count, a non-positive
rate limit or body limit, or an empty model directory.
*/
package config

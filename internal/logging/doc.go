// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

// Package logging provides the service-wide zerolog logger.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//
//	logging.Info().Str("version", v).Msg("model loaded")
//	logging.Ctx(ctx).Warn().Err(err).Msg("prediction failed")
//
// Components take a child logger rather than using the globals directly:
//
//	state, err := classify.New(store, cfg, logging.Logger())
//
// # Request IDs
//
// The HTTP middleware stores a request ID in the context with
// ContextWithRequestID. Ctx attaches it to every event as request_id.
//
// # slog Bridge
//
// NewSlogLogger adapts zerolog to *slog.Logger for the suture supervisor's
// sutureslog event hook.
package logging

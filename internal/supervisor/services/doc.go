// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

/*
Package services provides suture.Service wrappers for deptclassify
components.

HTTPServerService adapts the blocking ListenAndServe of *http.Server to
Serve(ctx) with graceful Shutdown on cancellation.

ModelReloadService polls the model store at a fixed interval and installs a
stored version newer than the one currently served.

Both implement fmt.Stringer so suture can name them in its event log.
*/
package services

// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/deptclassify/internal/models"
)

// Health reports liveness along with the installed model summary. It never
// fails: an untrained service is still healthy.
//
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, models.HealthResponse{
		Status:        "healthy",
		Model:         h.classifier.Info(),
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	})
}

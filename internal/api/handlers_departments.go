// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package api

import (
	"net/http"

	"github.com/tomtom215/deptclassify/internal/logging"
	"github.com/tomtom215/deptclassify/internal/models"
)

// Vectorize trains a new vectorizer from the submitted departments and
// returns one fingerprint per department.
//
// POST /departments/vectorize
//
// Body: {"departments": [{"id": 1, "name": "Billing", "keyword": ["invoice"]}], "persist": true}
//
// persist defaults to true; the response then carries the saved model_version.
func (h *Handler) Vectorize(w http.ResponseWriter, r *http.Request) {
	var req models.VectorizeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.classifier.Train(r.Context(), req.Documents(), req.ShouldPersist())
	if err != nil {
		respondClassifyError(w, r, err)
		return
	}

	event := logging.Ctx(r.Context()).Info().
		Int("documents", result.DocumentsLoaded).
		Int("dimension", result.VectorDimension)
	if result.ModelVersion != nil {
		event = event.Str("version", *result.ModelVersion)
	}
	event.Msg("Model trained successfully")

	respondSuccess(w, r, result)
}

// Predict scores a complaint against caller-supplied department vectors.
//
// POST /departments/predict
//
// Body: {"complaint": "...", "vectors": {"Billing": [...]}, "confidence_threshold": 0.8}
//
// The threshold is accepted for compatibility but does not change the result;
// needs_review is set only when no candidate shares a term with the complaint.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req models.PredictRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	prediction, err := h.classifier.Predict(r.Context(), req.Complaint, req.Vectors, req.Threshold())
	if err != nil {
		respondClassifyError(w, r, err)
		return
	}

	respondSuccess(w, r, prediction)
}

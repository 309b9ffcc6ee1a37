// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/deptclassify/internal/classify/storage"
	"github.com/tomtom215/deptclassify/internal/logging"
	"github.com/tomtom215/deptclassify/internal/models"
)

// ModelInfo reports whether a model is installed, its version and dimension.
//
// GET /model/info
func (h *Handler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, h.classifier.Info())
}

// ModelLoad installs a stored model version. Without ?version= the newest
// stored version is loaded.
//
// POST /model/load?version=20261019_120000
func (h *Handler) ModelLoad(w http.ResponseWriter, r *http.Request) {
	requested := r.URL.Query().Get("version")

	loaded, err := h.classifier.Load(r.Context(), requested)
	if err != nil {
		respondClassifyError(w, r, err)
		return
	}
	if !loaded {
		msg := "No saved model found"
		if requested != "" {
			msg = fmt.Sprintf("Model version '%s' not found", requested)
		}
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, msg, nil)
		return
	}

	version := ""
	if info := h.classifier.Info(); info.Version != nil {
		version = *info.Version
	}
	logging.Ctx(r.Context()).Info().Str("version", version).Msg("Model loaded via API")

	respondSuccess(w, r, models.LoadModelResponse{
		Status:  "success",
		Version: version,
		Message: fmt.Sprintf("Model version %s loaded successfully", version),
	})
}

// ModelVersions lists stored model versions with their metadata, newest first.
//
// GET /model/versions
func (h *Handler) ModelVersions(w http.ResponseWriter, r *http.Request) {
	if h.versions == nil {
		respondSuccess(w, r, []storage.Metadata{})
		return
	}

	versions, err := h.versions.List(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "internal server error", err)
		return
	}
	respondSuccess(w, r, versions)
}

// ModelDelete removes one stored model version. The installed model keeps
// serving until another version is loaded.
//
// DELETE /model/versions/{version}
func (h *Handler) ModelDelete(w http.ResponseWriter, r *http.Request) {
	version := chi.URLParam(r, "version")
	notFound := fmt.Sprintf("Model version '%s' not found", version)
	if h.versions == nil {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, notFound, nil)
		return
	}

	err := h.versions.Delete(r.Context(), version)
	switch {
	case errors.Is(err, storage.ErrInvalidVersion):
		respondErrorDetails(w, r, http.StatusBadRequest, ErrCodeValidation, err.Error(), map[string]interface{}{"field": "version"})
		return
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, notFound, nil)
		return
	case err != nil:
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "internal server error", err)
		return
	}
	logging.Ctx(r.Context()).Info().Str("version", version).Msg("Model version deleted via API")

	respondSuccess(w, r, models.DeleteModelResponse{
		Status:  "success",
		Version: version,
		Message: fmt.Sprintf("Model version %s deleted", version),
	})
}

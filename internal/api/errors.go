// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/deptclassify/internal/classify"
)

// Error codes written in the envelope's error.code field.
const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeModelNotInitialized = "MODEL_NOT_INITIALIZED"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeModelLoad           = "MODEL_LOAD_ERROR"
	ErrCodeDimensionMismatch   = "DIMENSION_MISMATCH"
	ErrCodeRequestTooLarge     = "REQUEST_TOO_LARGE"
	ErrCodeRateLimited         = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

// modelNotInitializedMessage tells the client how to recover.
const modelNotInitializedMessage = "Model not initialized. Call /departments/vectorize first."

// respondClassifyError maps errors returned by the classify package onto
// HTTP status codes and envelope error codes. Unclassified errors are logged
// in full and reported with a generic message.
func respondClassifyError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *classify.ValidationError
		loadErr       *classify.ModelLoadError
		dimErr        *classify.DimensionMismatchError
	)

	switch {
	case errors.As(err, &validationErr):
		var details map[string]interface{}
		if validationErr.Field != "" {
			details = map[string]interface{}{"field": validationErr.Field}
		}
		respondErrorDetails(w, r, http.StatusBadRequest, ErrCodeValidation, validationErr.Error(), details)

	case errors.Is(err, classify.ErrModelNotInitialized):
		respondError(w, r, http.StatusBadRequest, ErrCodeModelNotInitialized, modelNotInitializedMessage, nil)

	case errors.As(err, &loadErr):
		respondError(w, r, http.StatusBadRequest, ErrCodeModelLoad, loadErr.Error(), err)

	case errors.As(err, &dimErr):
		respondErrorDetails(w, r, http.StatusInternalServerError, ErrCodeDimensionMismatch, dimErr.Error(), map[string]interface{}{
			"department": dimErr.Candidate,
			"expected":   dimErr.Want,
			"actual":     dimErr.Got,
		})

	default:
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "internal server error", err)
	}
}

// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package models

import (
	"time"

	"github.com/tomtom215/deptclassify/internal/classify"
)

// APIResponse is the envelope written by every HTTP endpoint.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"department": "Billing", "confidence": 0.577, "needs_review": false, "model_version": null},
//	  "metadata": {
//	    "timestamp": "2026-10-19T12:00:00Z",
//	    "request_id": "5f0c...",
//	    "query_time_ms": 2
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {
//	    "code": "MODEL_NOT_INITIALIZED",
//	    "message": "Model not initialized. Call /departments/vectorize first."
//	  },
//	  "metadata": {"timestamp": "2026-10-19T12:00:00Z", "request_id": "5f0c..."}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for tracing and latency tracking.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	RequestID   string    `json:"request_id,omitempty"`
	QueryTimeMS int64     `json:"query_time_ms"`
}

// APIError represents an error response with structured error details.
//
// Error codes:
//   - VALIDATION_ERROR: malformed body or failed field constraints (400)
//   - MODEL_NOT_INITIALIZED: no vectorizer trained or loaded yet (400)
//   - NOT_FOUND: requested model version does not exist (404)
//   - MODEL_LOAD_ERROR: stored version exists but cannot be read (400)
//   - DIMENSION_MISMATCH: a department vector does not match the model (500)
//   - REQUEST_TOO_LARGE: body exceeds the configured limit (413)
//   - RATE_LIMIT_EXCEEDED: too many requests from one client (429)
//   - INTERNAL_ERROR: anything else (500)
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// DepartmentInput is one department in a vectorize request.
type DepartmentInput struct {
	ID      int64    `json:"id" validate:"gte=0"`
	Name    string   `json:"name" validate:"required"`
	Keyword []string `json:"keyword" validate:"required"`
}

// VectorizeRequest is the body of POST /departments/vectorize.
type VectorizeRequest struct {
	Departments []DepartmentInput `json:"departments" validate:"required,min=1,dive"`

	// Persist defaults to true when omitted.
	Persist *bool `json:"persist,omitempty"`
}

// ShouldPersist reports the effective persist flag.
func (r *VectorizeRequest) ShouldPersist() bool {
	return r.Persist == nil || *r.Persist
}

// Documents converts the request into training documents, preserving order.
func (r *VectorizeRequest) Documents() []classify.Document {
	docs := make([]classify.Document, len(r.Departments))
	for i, d := range r.Departments {
		docs[i] = classify.Document{ID: d.ID, Name: d.Name, Keywords: d.Keyword}
	}
	return docs
}

// DefaultConfidenceThreshold applies when a predict request omits the threshold.
const DefaultConfidenceThreshold = 0.8

// PredictRequest is the body of POST /departments/predict.
type PredictRequest struct {
	Complaint           string                 `json:"complaint" validate:"required"`
	Vectors             *classify.Fingerprints `json:"vectors" validate:"required"`
	ConfidenceThreshold *float64               `json:"confidence_threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// Threshold returns the requested threshold or DefaultConfidenceThreshold.
func (r *PredictRequest) Threshold() float64 {
	if r.ConfidenceThreshold == nil {
		return DefaultConfidenceThreshold
	}
	return *r.ConfidenceThreshold
}

// HealthResponse is the data of GET /health.
type HealthResponse struct {
	Status        string             `json:"status"`
	Model         classify.ModelInfo `json:"model"`
	UptimeSeconds int64              `json:"uptime_seconds"`
}

// LoadModelResponse is the data of POST /model/load.
type LoadModelResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Message string `json:"message"`
}

// DeleteModelResponse is the data of DELETE /model/versions/{version}.
type DeleteModelResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Message string `json:"message"`
}

// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

/*
Package models defines the HTTP request and response structures.

  - APIResponse, Metadata, APIError: the envelope every endpoint writes
  - VectorizeRequest, DepartmentInput: training input
  - PredictRequest: complaint text with caller-supplied department vectors
  - HealthResponse, LoadModelResponse: small endpoint payloads

Request structs carry validator/v10 tags checked by the validation package.
Domain results (classify.TrainResult, classify.Prediction, classify.ModelInfo)
are written as the envelope's data unchanged.
*/
package models

// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

/*
Package validation provides request struct validation using
go-playground/validator v10.

A single validator instance is created on first use with
WithRequiredStructEnabled and a tag-name function that reports JSON field
names, so a failure inside a slice reads "departments[2].name is required"
rather than the Go field path.

Usage:

	type PredictRequest struct {
	    Complaint string                 `json:"complaint" validate:"required"`
	    Vectors   *classify.Fingerprints `json:"vectors" validate:"required"`
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
	    apiErr := verr.ToAPIError()
	    // respond 400 with apiErr.Code, apiErr.Message, apiErr.Details
	}

Field errors are returned as *RequestValidationError. ToAPIError renders
them in the VALIDATION_ERROR envelope shape: one error yields its message and
field, several yield a joined message and a "fields" detail list.
*/
package validation

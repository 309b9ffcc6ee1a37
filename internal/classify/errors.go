// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package classify

import (
	"errors"
	"fmt"
)

// ErrModelNotInitialized is wrapped by every *ModelNotInitializedError.
var ErrModelNotInitialized = errors.New("model not initialized")

// ValidationError reports caller input that violates a precondition.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ModelNotInitializedError is returned when an operation needs a fitted
// vectorizer and none is installed.
type ModelNotInitializedError struct {
	Op string
}

func (e *ModelNotInitializedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, ErrModelNotInitialized)
}

func (e *ModelNotInitializedError) Unwrap() error { return ErrModelNotInitialized }

// ModelLoadError reports a stored version that exists but cannot be
// deserialized.
type ModelLoadError struct {
	Version string
	Err     error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("failed to load model %s: %v", e.Version, e.Err)
}

func (e *ModelLoadError) Unwrap() error { return e.Err }

// DimensionMismatchError reports a candidate fingerprint whose length differs
// from the installed vectorizer's dimension.
type DimensionMismatchError struct {
	Candidate string
	Want      int
	Got       int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("candidate %q has dimension %d, model expects %d", e.Candidate, e.Got, e.Want)
}

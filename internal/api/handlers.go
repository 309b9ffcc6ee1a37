// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package api

import (
	"context"
	"time"

	"github.com/tomtom215/deptclassify/internal/classify"
	"github.com/tomtom215/deptclassify/internal/classify/storage"
)

// Classifier is the model lifecycle the handlers drive. *classify.State
// implements it.
type Classifier interface {
	Train(ctx context.Context, docs []classify.Document, persist bool) (*classify.TrainResult, error)
	Predict(ctx context.Context, complaint string, candidates *classify.Fingerprints, threshold float64) (*classify.Prediction, error)
	Load(ctx context.Context, version string) (bool, error)
	Info() classify.ModelInfo
}

// VersionStore lists and removes stored model versions. *storage.Store
// implements it.
type VersionStore interface {
	List(ctx context.Context) ([]storage.Metadata, error)
	Delete(ctx context.Context, version string) error
}

// Handler holds the dependencies of the HTTP handlers.
type Handler struct {
	classifier Classifier
	versions   VersionStore
	startTime  time.Time
}

// NewHandler creates a Handler. versions may be nil, in which case
// GET /model/versions returns an empty list and deletes report not found.
func NewHandler(classifier Classifier, versions VersionStore) *Handler {
	return &Handler{
		classifier: classifier,
		versions:   versions,
		startTime:  time.Now(),
	}
}

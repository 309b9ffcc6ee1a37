// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

// Package classify routes complaints to departments by TF-IDF similarity.
//
// # Overview
//
// A State holds the one installed vectorizer of a service instance:
//
//	UNINITIALIZED --Train/Load--> READY --Train/Load--> READY
//
// Train fits a vectorizer over department keywords and returns a fingerprint
// per department. The caller stores those fingerprints and passes them back
// to Predict, which scores a complaint against them with cosine similarity.
// This package never stores department fingerprints itself.
//
// # Decision Rule
//
// The candidate with the highest similarity wins, with ties going to the
// candidate listed first. A prediction needs review only when the winning
// similarity is exactly zero, meaning the complaint shares no term with the
// vocabulary of any candidate.
//
// The confidence threshold passed to Predict is logged but not compared
// against the score. Callers that want threshold gating must apply it to
// Prediction.Confidence themselves.
//
// # Persistence
//
// Save and Load go through a ModelStore, normally *storage.Store. Training
// with persist=true saves before installing, so any failure leaves the
// previous model in place.
//
// # Usage
//
//	store, _ := storage.NewStore("models", storage.CodecZstd)
//	state, _ := classify.New(store, classify.DefaultConfig(), logger)
//
//	res, err := state.Train(ctx, []classify.Document{
//	    {ID: 1, Name: "Billing", Keywords: []string{"invoice", "payment"}},
//	    {ID: 2, Name: "Support", Keywords: []string{"help", "bug"}},
//	}, true)
//
//	pred, err := state.Predict(ctx, "my invoice is wrong", res.Vectors, 0.8)
//	// pred.Department == "Billing"
package classify

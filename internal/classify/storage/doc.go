// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

// Package storage persists fitted TF-IDF vectorizers on disk.
//
// # Layout
//
// Every saved model lives in its own version directory under the store root:
//
//	models/
//	  model_20260101_120000/
//	    tfidf_vectorizer.bin   gob envelope: metadata, codec, compressed payload
//	    version.txt            bare version string
//	    metadata.json          human-readable copy of the metadata
//
// The payload is the gob-encoded tfidf.ModelState, compressed with zstd
// (default), lz4, or stored as-is. A SHA-256 checksum of the uncompressed
// bytes is verified on every load.
//
// # Versions
//
// Auto-generated versions use the layout 20060102_150405, so the
// lexicographically greatest directory name is also the newest model. Load
// with an empty version relies on this ordering.
//
// List serves metadata.json contents from an in-memory LRU after the first
// read, since a version's metadata never changes once written.
//
// # Errors
//
// Load distinguishes a missing version (ErrNotFound) from a version directory
// that exists but cannot be decoded (*LoadError). Callers treat the first as
// "nothing to load" and the second as corruption.
package storage

// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

// Package cache provides a generic, thread-safe LRU cache with optional TTL.
//
// The model store uses it to keep parsed metadata.json contents so that
// listing versions does not re-read every file on each request:
//
//	meta := cache.NewLRU[string, storage.Metadata](256, 0)
//	meta.Add(version, m)
//	if m, ok := meta.Get(version); ok {
//	    ...
//	}
package cache

// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package middleware

import (
	"fmt"
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// DefaultCompressionMinSize skips compression for small payloads.
const DefaultCompressionMinSize = 1024

// Compression gzips responses of at least minSize bytes for clients that
// accept gzip. Training responses carry one dense vector per department and
// compress well.
func Compression(minSize int) (func(http.Handler) http.Handler, error) {
	if minSize <= 0 {
		minSize = DefaultCompressionMinSize
	}
	wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(minSize))
	if err != nil {
		return nil, fmt.Errorf("create gzip wrapper: %w", err)
	}
	return func(next http.Handler) http.Handler {
		return wrap(next)
	}, nil
}

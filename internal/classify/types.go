// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package classify

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// Document is one labeled department submitted for training.
type Document struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Keywords []string `json:"keyword"`
}

// Fingerprint is a dense TF-IDF vector. Its length equals the vocabulary
// size of the vectorizer that produced it.
type Fingerprint []float64

// NamedFingerprint pairs a department name with its fingerprint.
type NamedFingerprint struct {
	Name   string
	Vector Fingerprint
}

// Fingerprints is an insertion-ordered mapping from department name to
// fingerprint. Setting an existing name replaces its vector but keeps its
// original position. The zero value is ready to use.
type Fingerprints struct {
	items []NamedFingerprint
	index map[string]int
}

// NewFingerprints builds a mapping from pairs, in order.
func NewFingerprints(pairs ...NamedFingerprint) *Fingerprints {
	f := &Fingerprints{}
	for _, p := range pairs {
		f.Set(p.Name, p.Vector)
	}
	return f
}

// Set adds or replaces the fingerprint for name.
func (f *Fingerprints) Set(name string, vec Fingerprint) {
	if f.index == nil {
		f.index = make(map[string]int)
	}
	if i, ok := f.index[name]; ok {
		f.items[i].Vector = vec
		return
	}
	f.index[name] = len(f.items)
	f.items = append(f.items, NamedFingerprint{Name: name, Vector: vec})
}

// Get returns the fingerprint for name.
func (f *Fingerprints) Get(name string) (Fingerprint, bool) {
	if f == nil {
		return nil, false
	}
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.items[i].Vector, true
}

// Len returns the number of names.
func (f *Fingerprints) Len() int {
	if f == nil {
		return 0
	}
	return len(f.items)
}

// Items returns the pairs in insertion order. The slice must not be modified.
func (f *Fingerprints) Items() []NamedFingerprint {
	if f == nil {
		return nil
	}
	return f.items
}

// MarshalJSON encodes the mapping as a JSON object in insertion order.
func (f *Fingerprints) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, item := range f.Items() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(item.Name)
		if err != nil {
			return nil, err
		}
		vec := item.Vector
		if vec == nil {
			vec = Fingerprint{}
		}
		val, err := json.Marshal([]float64(vec))
		if err != nil {
			return nil, fmt.Errorf("encode fingerprint %q: %w", item.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping key order. A repeated key
// keeps its first position and its last value.
func (f *Fingerprints) UnmarshalJSON(data []byte) error {
	*f = Fingerprints{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("fingerprints: expected JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("fingerprints: expected string key, got %v", tok)
		}
		var vec []float64
		if err := dec.Decode(&vec); err != nil {
			return fmt.Errorf("fingerprints: decode %q: %w", name, err)
		}
		f.Set(name, vec)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// TrainResult is returned by State.Train.
type TrainResult struct {
	Status          string        `json:"status"`
	DocumentsLoaded int           `json:"documents_loaded"`
	VectorDimension int           `json:"vector_dimension"`
	ModelVersion    *string       `json:"model_version"`
	Vectors         *Fingerprints `json:"vectors"`
}

// Prediction is returned by State.Predict.
type Prediction struct {
	Department   string  `json:"department"`
	Confidence   float64 `json:"confidence"`
	NeedsReview  bool    `json:"needs_review"`
	ModelVersion *string `json:"model_version"`
}

// ModelInfo summarizes the installed model.
type ModelInfo struct {
	Loaded          bool    `json:"loaded"`
	Version         *string `json:"version"`
	VectorDimension *int    `json:"vector_dimension"`
}

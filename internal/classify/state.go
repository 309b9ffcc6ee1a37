// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package classify

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/deptclassify/internal/classify/storage"
	"github.com/tomtom215/deptclassify/internal/classify/textnorm"
	"github.com/tomtom215/deptclassify/internal/classify/tfidf"
	"github.com/tomtom215/deptclassify/internal/metrics"
)

// ModelStore persists fitted vectorizers. *storage.Store implements it.
type ModelStore interface {
	Save(ctx context.Context, version string, state tfidf.ModelState, meta storage.Metadata) (string, error)
	Load(ctx context.Context, version string) (tfidf.ModelState, *storage.Metadata, string, error)
	Prune(ctx context.Context, keep int) ([]string, error)
}

// Config controls training and persistence.
type Config struct {
	// Vectorizer configures the analyzer used by every fit.
	Vectorizer tfidf.Config

	// KeepVersions prunes older stored versions after each save when > 0.
	KeepVersions int
}

// DefaultConfig returns unigram+bigram TF-IDF with English stop words and no
// pruning.
func DefaultConfig() Config {
	return Config{Vectorizer: tfidf.DefaultConfig()}
}

// State owns the installed vectorizer and its version. One State serves one
// running service instance.
//
// A single mutex covers the transform-and-score sequence of Predict, the
// install step of Train, and Save and Load including their disk I/O. A train
// or load therefore blocks concurrent predictions for its duration; readers
// never observe a half-installed model.
type State struct {
	mu        sync.Mutex
	model     *tfidf.Model
	version   string
	indexToID []int64

	store  ModelStore
	config Config
	logger zerolog.Logger
}

// New creates an uninitialized State. store may be nil, in which case Save
// and Load fail and Train only works with persist=false.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(store ModelStore, cfg Config, logger zerolog.Logger) (*State, error) {
	if err := cfg.Vectorizer.Validate(); err != nil {
		return nil, fmt.Errorf("invalid vectorizer config: %w", err)
	}
	if cfg.KeepVersions < 0 {
		return nil, fmt.Errorf("keep versions must be >= 0, got %d", cfg.KeepVersions)
	}
	return &State{
		store:  store,
		config: cfg,
		logger: logger.With().Str("component", "classify").Logger(),
	}, nil
}

// Train fits a new vectorizer over docs, returns one fingerprint per document
// and installs the vectorizer. When persist is true the model is saved under
// an auto-generated version before it is installed, so a failed save leaves
// the previous model in place.
func (s *State) Train(ctx context.Context, docs []Document, persist bool) (*TrainResult, error) {
	if len(docs) == 0 {
		return nil, &ValidationError{Field: "departments", Message: "no departments provided"}
	}

	start := time.Now()
	corpus := make([]string, len(docs))
	ids := make([]int64, len(docs))
	for i, d := range docs {
		corpus[i] = textnorm.Normalize(strings.Join(d.Keywords, " "))
		ids[i] = d.ID
	}

	model, err := tfidf.Fit(corpus, s.config.Vectorizer)
	if err != nil {
		metrics.RecordTrain(time.Since(start), len(docs), 0, err)
		if errors.Is(err, tfidf.ErrEmptyVocabulary) {
			return nil, &ValidationError{Field: "departments", Message: err.Error(), Err: err}
		}
		return nil, fmt.Errorf("fit vectorizer: %w", err)
	}
	rows := model.TransformAll(corpus)
	fitDuration := time.Since(start)

	s.mu.Lock()
	var version string
	if persist {
		meta := storage.Metadata{
			TrainedAt:          start,
			DocumentCount:      len(docs),
			Dimension:          model.Dimension(),
			TrainingDurationMS: fitDuration.Milliseconds(),
		}
		version, err = s.saveLocked(ctx, "", model, meta)
		if err != nil {
			s.mu.Unlock()
			metrics.RecordTrain(fitDuration, len(docs), 0, err)
			return nil, err
		}
		s.version = version
	}
	s.model = model
	s.indexToID = ids
	s.mu.Unlock()

	metrics.RecordTrain(fitDuration, len(docs), model.Dimension(), nil)
	if persist {
		s.prune(ctx)
	}

	vectors := &Fingerprints{}
	for i, d := range docs {
		vectors.Set(d.Name, rows[i])
	}

	result := &TrainResult{
		Status:          "success",
		DocumentsLoaded: len(docs),
		VectorDimension: model.Dimension(),
		Vectors:         vectors,
	}
	if persist {
		result.ModelVersion = &version
	}

	s.logger.Info().
		Int("documents", len(docs)).
		Int("dimension", model.Dimension()).
		Str("version", version).
		Bool("persisted", persist).
		Dur("duration", fitDuration).
		Msg("model trained")

	return result, nil
}

// Predict scores complaint against candidates with cosine similarity and
// returns the best match; the first candidate wins ties.
//
// threshold is accepted but does not gate the decision: NeedsReview is set
// only when the best similarity is exactly zero.
func (s *State) Predict(ctx context.Context, complaint string, candidates *Fingerprints, threshold float64) (*Prediction, error) {
	if strings.TrimSpace(complaint) == "" {
		return nil, &ValidationError{Field: "complaint", Message: "complaint text cannot be empty"}
	}
	if candidates.Len() == 0 {
		return nil, &ValidationError{Field: "vectors", Message: "department vectors cannot be empty"}
	}

	text := textnorm.Normalize(complaint)

	s.mu.Lock()
	if s.model == nil {
		s.mu.Unlock()
		return nil, &ModelNotInitializedError{Op: "predict"}
	}
	query := s.model.Transform(text)
	version := s.version

	var (
		best      string
		bestScore float64
	)
	for i, c := range candidates.Items() {
		if len(c.Vector) != len(query) {
			s.mu.Unlock()
			return nil, &DimensionMismatchError{Candidate: c.Name, Want: len(query), Got: len(c.Vector)}
		}
		score := Cosine(query, c.Vector)
		if i == 0 || score > bestScore {
			best, bestScore = c.Name, score
		}
	}
	s.mu.Unlock()

	// TODO: compare against threshold once callers confirm that scores below
	// it should be routed to review; today only a zero score is.
	needsReview := bestScore == 0
	metrics.RecordPrediction(bestScore, needsReview)

	s.logger.Debug().
		Str("department", best).
		Float64("confidence", bestScore).
		Float64("threshold", threshold).
		Bool("needs_review", needsReview).
		Msg("prediction")

	p := &Prediction{
		Department:  best,
		Confidence:  math.Round(bestScore*1000) / 1000,
		NeedsReview: needsReview,
	}
	if version != "" {
		p.ModelVersion = &version
	}
	return p, nil
}

// Save persists the installed vectorizer. An empty version is generated from
// the wall clock. The saved version becomes the installed version.
func (s *State) Save(ctx context.Context, version string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.model == nil {
		return "", &ModelNotInitializedError{Op: "save"}
	}

	v, err := s.saveLocked(ctx, version, s.model, storage.Metadata{
		DocumentCount: len(s.indexToID),
		Dimension:     s.model.Dimension(),
	})
	if err != nil {
		return "", err
	}
	s.version = v
	return v, nil
}

// Load installs a stored vectorizer. An empty version selects the newest
// stored version. It returns false, leaving the state untouched, when the
// version does not exist.
func (s *State) Load(ctx context.Context, version string) (bool, error) {
	if s.store == nil {
		return false, errors.New("no model store configured")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ms, _, resolved, err := s.store.Load(ctx, version)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		metrics.RecordStoreOperation("load", "not_found")
		return false, nil
	case errors.Is(err, storage.ErrInvalidVersion):
		metrics.RecordStoreOperation("load", "error")
		return false, &ValidationError{Field: "version", Message: err.Error(), Err: err}
	case err != nil:
		metrics.RecordStoreOperation("load", "error")
		var le *storage.LoadError
		if errors.As(err, &le) {
			return false, &ModelLoadError{Version: le.Version, Err: le.Err}
		}
		return false, fmt.Errorf("load model: %w", err)
	}

	model, err := tfidf.FromState(ms)
	if err != nil {
		metrics.RecordStoreOperation("load", "error")
		return false, &ModelLoadError{Version: resolved, Err: err}
	}

	s.model = model
	s.version = resolved
	s.indexToID = nil
	metrics.RecordStoreOperation("load", "success")
	metrics.SetModelInstalled(model.Dimension())

	s.logger.Info().
		Str("version", resolved).
		Int("dimension", model.Dimension()).
		Msg("model loaded")
	return true, nil
}

// Info reports whether a model is installed, its version and dimension.
func (s *State) Info() ModelInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := ModelInfo{Loaded: s.model != nil}
	if s.version != "" {
		v := s.version
		info.Version = &v
	}
	if s.model != nil {
		d := s.model.Dimension()
		info.VectorDimension = &d
	}
	return info
}

// Version returns the installed version, or "" when none is recorded.
func (s *State) Version() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// DocumentIDs returns the document ID for each fingerprint index of the last
// training run. It is nil after a Load.
func (s *State) DocumentIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.indexToID...)
}

// saveLocked writes model through the store. Callers must hold mu.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *State) saveLocked(ctx context.Context, version string, model *tfidf.Model, meta storage.Metadata) (string, error) {
	if s.store == nil {
		return "", errors.New("no model store configured")
	}
	v, err := s.store.Save(ctx, version, model.State(), meta)
	if err != nil {
		metrics.RecordStoreOperation("save", "error")
		if errors.Is(err, storage.ErrInvalidVersion) {
			return "", &ValidationError{Field: "version", Message: err.Error(), Err: err}
		}
		return "", fmt.Errorf("save model: %w", err)
	}
	metrics.RecordStoreOperation("save", "success")
	s.logger.Info().Str("version", v).Msg("model saved")
	return v, nil
}

func (s *State) prune(ctx context.Context) {
	if s.config.KeepVersions <= 0 || s.store == nil {
		return
	}
	removed, err := s.store.Prune(ctx, s.config.KeepVersions)
	if err != nil {
		metrics.RecordStoreOperation("prune", "error")
		s.logger.Warn().Err(err).Msg("failed to prune old model versions")
		return
	}
	metrics.RecordStoreOperation("prune", "success")
	if len(removed) > 0 {
		s.logger.Info().Strs("removed", removed).Msg("pruned old model versions")
	}
}

// Cosine returns the cosine similarity of a and b, or 0 when either vector
// has zero norm. The vectors must have equal length.
func Cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

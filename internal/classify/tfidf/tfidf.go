// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

// Package tfidf implements the fitted term-weighting transformation used to
// turn department keywords and complaints into fingerprints.
//
// The analyzer and weighting follow the common TF-IDF defaults: tokens are
// runs of two or more word characters, English stop words are removed before
// n-grams are built, idf is smoothed as ln((1+n)/(1+df))+1, and every output
// row is L2-normalized.
//
// A fitted Model is immutable. Fitting again always returns a new Model.
package tfidf

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tomtom215/deptclassify/internal/classify/textnorm"
)

const (
	// StopWordsEnglish selects the built-in English stop word list.
	StopWordsEnglish = "english"

	// NormL2 is the only supported row normalization.
	NormL2 = "l2"
)

// ErrEmptyVocabulary is returned by Fit when the corpus yields no terms,
// either because it is empty or because it holds only stop words.
var ErrEmptyVocabulary = errors.New("empty vocabulary; perhaps the documents only contain stop words")

// Config controls the analyzer of a vectorizer.
type Config struct {
	NGramMin  int
	NGramMax  int
	StopWords string
	Lowercase bool
}

// DefaultConfig returns unigrams and bigrams with English stop words removed.
func DefaultConfig() Config {
	return Config{
		NGramMin:  1,
		NGramMax:  2,
		StopWords: StopWordsEnglish,
		Lowercase: true,
	}
}

// Validate checks the n-gram range and stop word selection.
func (c Config) Validate() error {
	if c.NGramMin < 1 {
		return fmt.Errorf("ngram min must be >= 1, got %d", c.NGramMin)
	}
	if c.NGramMax < c.NGramMin {
		return fmt.Errorf("ngram max (%d) must be >= ngram min (%d)", c.NGramMax, c.NGramMin)
	}
	if c.StopWords != "" && c.StopWords != StopWordsEnglish {
		return fmt.Errorf("unsupported stop words %q", c.StopWords)
	}
	return nil
}

// Model is a fitted TF-IDF transformation. It is safe for concurrent use.
type Model struct {
	config     Config
	terms      []string
	vocabulary map[string]int
	idf        []float64
	stopWords  map[string]struct{}
}

// ModelState is the serializable form of a Model.
type ModelState struct {
	Vocabulary []string
	IDF        []float64
	NGramMin   int
	NGramMax   int
	StopWords  string
	Norm       string
	Lowercase  bool
}

// Fit builds a new Model from corpus.
func Fit(corpus []string, cfg Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Model{config: cfg, stopWords: stopWordsFor(cfg.StopWords)}

	df := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{})
		for _, term := range m.analyze(doc) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(corpus))
	m.terms = terms
	m.vocabulary = make(map[string]int, len(terms))
	m.idf = make([]float64, len(terms))
	for i, term := range terms {
		m.vocabulary[term] = i
		m.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return m, nil
}

// FromState rebuilds a Model from its serialized form.
func FromState(s ModelState) (*Model, error) {
	cfg := Config{
		NGramMin:  s.NGramMin,
		NGramMax:  s.NGramMax,
		StopWords: s.StopWords,
		Lowercase: s.Lowercase,
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model state: %w", err)
	}
	if s.Norm != NormL2 {
		return nil, fmt.Errorf("invalid model state: unsupported norm %q", s.Norm)
	}
	if len(s.Vocabulary) == 0 {
		return nil, fmt.Errorf("invalid model state: %w", ErrEmptyVocabulary)
	}
	if len(s.IDF) != len(s.Vocabulary) {
		return nil, fmt.Errorf("invalid model state: %d idf weights for %d terms", len(s.IDF), len(s.Vocabulary))
	}

	m := &Model{
		config:     cfg,
		terms:      append([]string(nil), s.Vocabulary...),
		vocabulary: make(map[string]int, len(s.Vocabulary)),
		idf:        append([]float64(nil), s.IDF...),
		stopWords:  stopWordsFor(cfg.StopWords),
	}
	for i, term := range m.terms {
		if _, dup := m.vocabulary[term]; dup {
			return nil, fmt.Errorf("invalid model state: duplicate term %q", term)
		}
		m.vocabulary[term] = i
	}
	return m, nil
}

// State returns a copy of the model in serializable form.
func (m *Model) State() ModelState {
	return ModelState{
		Vocabulary: append([]string(nil), m.terms...),
		IDF:        append([]float64(nil), m.idf...),
		NGramMin:   m.config.NGramMin,
		NGramMax:   m.config.NGramMax,
		StopWords:  m.config.StopWords,
		Norm:       NormL2,
		Lowercase:  m.config.Lowercase,
	}
}

// Dimension returns the vocabulary size, which is the fingerprint length.
func (m *Model) Dimension() int {
	return len(m.terms)
}

// Vocabulary returns the fitted terms in feature order.
func (m *Model) Vocabulary() []string {
	return append([]string(nil), m.terms...)
}

// Transform returns the L2-normalized TF-IDF row for text. Terms outside the
// vocabulary are ignored; a text with no known terms yields a zero vector.
func (m *Model) Transform(text string) []float64 {
	vec := make([]float64, len(m.terms))
	for _, term := range m.analyze(text) {
		if idx, ok := m.vocabulary[term]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for i, count := range vec {
		if count == 0 {
			continue
		}
		vec[i] = count * m.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// TransformAll transforms each text in order.
func (m *Model) TransformAll(texts []string) [][]float64 {
	out := make([][]float64, len(texts))
	for i, text := range texts {
		out[i] = m.Transform(text)
	}
	return out
}

// analyze tokenizes text, drops stop words and expands the n-gram range.
func (m *Model) analyze(text string) []string {
	if m.config.Lowercase {
		text = strings.ToLower(text)
	}

	tokens := tokenize(text)
	if len(m.stopWords) > 0 {
		kept := tokens[:0]
		for _, tok := range tokens {
			if _, stop := m.stopWords[tok]; !stop {
				kept = append(kept, tok)
			}
		}
		tokens = kept
	}

	lo, hi := m.config.NGramMin, m.config.NGramMax
	if lo == 1 && hi == 1 {
		return tokens
	}

	out := make([]string, 0, len(tokens)*(hi-lo+1))
	if lo == 1 {
		out = append(out, tokens...)
		lo = 2
	}
	for n := lo; n <= hi; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

// tokenize returns maximal runs of word characters at least two runes long.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool { return !textnorm.IsWordRune(r) })
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

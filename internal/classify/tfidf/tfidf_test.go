// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package tfidf

import (
	"errors"
	"math"
	"reflect"
	"slices"
	"testing"
)

const epsilon = 1e-12

func mustFit(t *testing.T, corpus []string, cfg Config) *Model {
	t.Helper()
	m, err := Fit(corpus, cfg)
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	return m
}

func assertClose(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFit_Vocabulary(t *testing.T) {
	m := mustFit(t, []string{"invoice payment", "help bug"}, DefaultConfig())

	want := []string{"bug", "help", "help bug", "invoice", "invoice payment", "payment"}
	if got := m.Vocabulary(); !slices.Equal(got, want) {
		t.Errorf("Vocabulary() = %v, want %v", got, want)
	}
	if m.Dimension() != 6 {
		t.Errorf("Dimension() = %d, want 6", m.Dimension())
	}

	idf := math.Log(3.0/2.0) + 1
	for i, w := range m.State().IDF {
		if math.Abs(w-idf) > epsilon {
			t.Errorf("idf[%d] = %v, want %v", i, w, idf)
		}
	}
}

func TestFit_SmoothIDF(t *testing.T) {
	m := mustFit(t, []string{"refund", "refund card", "card"}, Config{NGramMin: 1, NGramMax: 1, Lowercase: true})
	if got := m.Vocabulary(); !slices.Equal(got, []string{"card", "refund"}) {
		t.Fatalf("Vocabulary() = %v", got)
	}

	// both terms appear in two of three documents
	idf := math.Log(4.0/3.0) + 1
	assertClose(t, m.State().IDF, []float64{idf, idf})
}

func TestFit_StopWordsRemovedBeforeBigrams(t *testing.T) {
	m := mustFit(t, []string{"billing of the account"}, DefaultConfig())
	want := []string{"account", "billing", "billing account"}
	if got := m.Vocabulary(); !slices.Equal(got, want) {
		t.Errorf("Vocabulary() = %v, want %v", got, want)
	}
}

func TestFit_SingleCharacterTokensDropped(t *testing.T) {
	m := mustFit(t, []string{"x tv a b wifi"}, Config{NGramMin: 1, NGramMax: 1})
	if got := m.Vocabulary(); !slices.Equal(got, []string{"tv", "wifi"}) {
		t.Errorf("Vocabulary() = %v, want [tv wifi]", got)
	}
}

func TestFit_EmptyVocabulary(t *testing.T) {
	tests := []struct {
		name   string
		corpus []string
	}{
		{name: "nil corpus", corpus: nil},
		{name: "empty strings", corpus: []string{"", ""}},
		{name: "stop words only", corpus: []string{"the and of", "because"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Fit(tt.corpus, DefaultConfig()); !errors.Is(err, ErrEmptyVocabulary) {
				t.Errorf("Fit() error = %v, want ErrEmptyVocabulary", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default", cfg: DefaultConfig()},
		{name: "unigrams only", cfg: Config{NGramMin: 1, NGramMax: 1}},
		{name: "zero min", cfg: Config{NGramMin: 0, NGramMax: 1}, wantErr: true},
		{name: "max below min", cfg: Config{NGramMin: 2, NGramMax: 1}, wantErr: true},
		{name: "unknown stop words", cfg: Config{NGramMin: 1, NGramMax: 1, StopWords: "french"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTransform(t *testing.T) {
	m := mustFit(t, []string{"invoice payment", "help bug"}, DefaultConfig())
	zero := make([]float64, 6)

	t.Run("training document", func(t *testing.T) {
		third := 1 / math.Sqrt(3)
		assertClose(t, m.Transform("invoice payment"), []float64{0, 0, 0, third, third, third})
	})

	t.Run("partial overlap", func(t *testing.T) {
		assertClose(t, m.Transform("my invoice is wrong"), []float64{0, 0, 0, 1, 0, 0})
	})

	t.Run("no overlap is zero vector", func(t *testing.T) {
		if got := m.Transform("xyz unrelated"); !slices.Equal(got, zero) {
			t.Errorf("Transform() = %v, want zeros", got)
		}
	})

	t.Run("empty text", func(t *testing.T) {
		if got := m.Transform(""); !slices.Equal(got, zero) {
			t.Errorf("Transform(\"\") = %v, want zeros", got)
		}
	})

	t.Run("unit norm and non-negative", func(t *testing.T) {
		var sum float64
		for i, x := range m.Transform("help help bug invoice") {
			if x < 0 {
				t.Errorf("[%d] = %v is negative", i, x)
			}
			sum += x * x
		}
		if math.Abs(sum-1) > epsilon {
			t.Errorf("squared norm = %v, want 1", sum)
		}
	})
}

func TestTransformAll(t *testing.T) {
	m := mustFit(t, []string{"invoice payment", "help bug"}, DefaultConfig())

	rows := m.TransformAll([]string{"help bug", "invoice"})
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if !slices.Equal(rows[0], m.Transform("help bug")) || !slices.Equal(rows[1], m.Transform("invoice")) {
		t.Errorf("TransformAll() rows differ from Transform()")
	}
}

func TestFit_Deterministic(t *testing.T) {
	corpus := []string{"late delivery package", "refund charge card", "password reset login"}

	a := mustFit(t, corpus, DefaultConfig())
	b := mustFit(t, corpus, DefaultConfig())

	if !reflect.DeepEqual(a.State(), b.State()) {
		t.Error("two fits of the same corpus differ")
	}
	for _, doc := range corpus {
		if !slices.Equal(a.Transform(doc), b.Transform(doc)) {
			t.Errorf("Transform(%q) differs between fits", doc)
		}
	}
}

func TestFromState_RoundTrip(t *testing.T) {
	m := mustFit(t, []string{"late delivery package", "refund charge card"}, DefaultConfig())

	restored, err := FromState(m.State())
	if err != nil {
		t.Fatalf("FromState() error = %v", err)
	}

	for _, text := range []string{"my package is late", "charge my card", "nothing relevant"} {
		if !slices.Equal(m.Transform(text), restored.Transform(text)) {
			t.Errorf("Transform(%q) differs after restore", text)
		}
	}
}

func TestFromState_Invalid(t *testing.T) {
	valid := ModelState{
		Vocabulary: []string{"a1", "b2"},
		IDF:        []float64{1, 1},
		NGramMin:   1,
		NGramMax:   2,
		StopWords:  StopWordsEnglish,
		Norm:       NormL2,
		Lowercase:  true,
	}
	if _, err := FromState(valid); err != nil {
		t.Fatalf("FromState(valid) error = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(s *ModelState)
	}{
		{name: "idf length", mutate: func(s *ModelState) { s.IDF = []float64{1} }},
		{name: "empty vocabulary", mutate: func(s *ModelState) { s.Vocabulary, s.IDF = nil, nil }},
		{name: "duplicate term", mutate: func(s *ModelState) { s.Vocabulary = []string{"a1", "a1"} }},
		{name: "bad norm", mutate: func(s *ModelState) { s.Norm = "l1" }},
		{name: "bad ngram", mutate: func(s *ModelState) { s.NGramMin = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			s.Vocabulary = append([]string(nil), valid.Vocabulary...)
			s.IDF = append([]float64(nil), valid.IDF...)
			tt.mutate(&s)
			if _, err := FromState(s); err == nil {
				t.Error("FromState() expected error")
			}
		})
	}
}

func TestModel_ConcurrentTransform(t *testing.T) {
	m := mustFit(t, []string{"invoice payment", "help bug"}, DefaultConfig())
	want := m.Transform("invoice help")

	done := make(chan []float64, 16)
	for i := 0; i < 16; i++ {
		go func() { done <- m.Transform("invoice help") }()
	}
	for i := 0; i < 16; i++ {
		if got := <-done; !slices.Equal(got, want) {
			t.Errorf("concurrent Transform() = %v, want %v", got, want)
		}
	}
}

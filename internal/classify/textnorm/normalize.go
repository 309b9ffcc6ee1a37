// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

// Package textnorm reduces raw complaint and keyword text to the canonical
// form fed to the TF-IDF vectorizer.
//
// Normalization lower-cases the input with full Unicode case mapping and then
// removes every rune that is neither a word character nor whitespace. Word
// characters are Unicode letters, Unicode numbers and the underscore, so
// punctuation inside a token is dropped rather than splitting it:
//
//	textnorm.Normalize("Don't charge me TWICE!") // "dont charge me twice"
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize returns the canonical form of text. It is total, deterministic
// and idempotent; the empty string normalizes to itself.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// cases.Caser is stateful and not safe for concurrent use, so one is
	// built per call.
	lowered := cases.Lower(language.Und).String(text)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if IsWordRune(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsWordRune reports whether r counts as a word character.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

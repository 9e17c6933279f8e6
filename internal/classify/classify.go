// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns a heading level to a single line of extracted
// text. Two heuristics exist and a run uses exactly one of them: Case looks
// at capitalisation and length, Keyword looks at the leading word.
package classify

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/pdfconv/pkg/types"
)

const (
	// maxH1Runes is the exclusive length limit for an upper-case H1 line.
	maxH1Runes = 100
	// maxH2Runes is the exclusive length limit for a title-case H2 line.
	maxH2Runes = 80
)

// DefaultKeywords are the prefixes the Keyword classifier promotes to H2.
var DefaultKeywords = []string{"purpose", "context", "note"}

// Classifier decides the heading level of one cleaned text line.
type Classifier interface {
	Classify(line string) types.HeadingLevel
}

// Func adapts a plain function to Classifier.
type Func func(line string) types.HeadingLevel

// Classify calls f(line).
func (f Func) Classify(line string) types.HeadingLevel { return f(line) }

// Case classifies by capitalisation: short upper-case lines are H1, short
// title-case lines are H2, everything else is body text.
type Case struct{}

// Classify implements Classifier.
func (Case) Classify(line string) types.HeadingLevel {
	n := utf8.RuneCountInString(line)
	switch {
	case n < maxH1Runes && IsUpper(line):
		return types.H1
	case n < maxH2Runes && IsTitle(line):
		return types.H2
	default:
		return types.Body
	}
}

// Keyword classifies lines starting with one of Keywords (case-insensitive)
// as H2 and everything else as body text.
type Keyword struct {
	Keywords []string
}

// NewKeyword returns a Keyword classifier using DefaultKeywords.
func NewKeyword() Keyword {
	return Keyword{Keywords: DefaultKeywords}
}

// Classify implements Classifier.
func (k Keyword) Classify(line string) types.HeadingLevel {
	lower := strings.ToLower(line)
	for _, kw := range k.Keywords {
		if kw != "" && strings.HasPrefix(lower, strings.ToLower(kw)) {
			return types.H2
		}
	}
	return types.Body
}

// ByName returns the classifier registered under name: "case" or "keyword".
func ByName(name string) (Classifier, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "case":
		return Case{}, nil
	case "keyword":
		return NewKeyword(), nil
	default:
		return nil, fmt.Errorf("unknown classifier %q: use case or keyword", name)
	}
}

// IsUpper reports whether s has at least one cased rune and no lower-case
// runes.
func IsUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// IsTitle reports whether s is title-cased: upper-case and title-case runes
// only follow uncased runes, lower-case runes only follow cased runes, and
// at least one cased rune exists.
func IsTitle(s string) bool {
	cased := false
	prevCased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased = true
			cased = true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			prevCased = true
			cased = true
		default:
			prevCased = false
		}
	}
	return cased
}

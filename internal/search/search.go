// Package search provides locale-aware text matching and ordering for book
// lists. Matching ignores case and diacritics, so "eco" finds "Éco".
package search

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

// Matcher reports whether a pattern occurs in a string. A Matcher is not safe
// for concurrent use; create one per query.
type Matcher struct {
	pattern *search.Pattern
	empty   bool
}

// NewMatcher compiles pattern for case and diacritic insensitive matching.
func NewMatcher(pattern string) *Matcher {
	if pattern == "" {
		return &Matcher{empty: true}
	}
	m := search.New(language.Und, search.IgnoreCase, search.IgnoreDiacritics)
	return &Matcher{pattern: m.CompileString(pattern)}
}

// Contains reports whether s contains the pattern. An empty pattern matches
// everything.
func (m *Matcher) Contains(s string) bool {
	if m.empty {
		return true
	}
	start, _ := m.pattern.IndexString(s)
	return start >= 0
}

// ContainsAny reports whether any of values contains the pattern.
func (m *Matcher) ContainsAny(values ...string) bool {
	for _, v := range values {
		if m.Contains(v) {
			return true
		}
	}
	return false
}

// Collator orders strings the way a reader expects, ignoring case.
type Collator struct {
	c *collate.Collator
}

func NewCollator() *Collator {
	return &Collator{c: collate.New(language.Und, collate.IgnoreCase)}
}

// Compare returns -1, 0 or 1.
func (c *Collator) Compare(a, b string) int {
	return c.c.CompareString(a, b)
}

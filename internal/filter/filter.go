// internal/filter/filter.go
package filter

import (
	"meisenheimer-core/mol"
	"meisenheimer-core/substruct"

	"meisenheimer/internal/patterns"
)

// Matcher tests one molecule against one pattern.
type Matcher interface {
	Matches(m *mol.Molecule) bool
}

// Substructure matches a compiled SMARTS pattern anywhere in a molecule.
type Substructure struct{ patterns.Pattern }

func (s Substructure) Matches(m *mol.Molecule) bool {
	return substruct.HasMatch(m, s.Query)
}

// Filter keeps molecules that match at least one of its matchers.
type Filter struct {
	matchers []Matcher
}

// New builds a filter over matchers, tried in the given order.
func New(matchers ...Matcher) *Filter {
	return &Filter{matchers: matchers}
}

// FromPatterns wraps a loaded pattern set.
func FromPatterns(list []patterns.Pattern) *Filter {
	ms := make([]Matcher, len(list))
	for i, p := range list {
		ms[i] = Substructure{p}
	}
	return New(ms...)
}

// Len is the number of patterns.
func (f *Filter) Len() int { return len(f.matchers) }

// First returns the index of the first matcher that accepts m, or -1.
// Matchers after the first hit are not consulted.
func (f *Filter) First(m *mol.Molecule) int {
	for i, mt := range f.matchers {
		if mt.Matches(m) {
			return i
		}
	}
	return -1
}

// Keep reports whether any matcher accepts m.
func (f *Filter) Keep(m *mol.Molecule) bool { return f.First(m) >= 0 }

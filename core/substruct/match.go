// core/substruct/match.go
package substruct

import (
	"meisenheimer-core/mol"
	"meisenheimer-core/smarts"
)

// plan is the order in which query atoms are mapped. Each step after a
// component's first atom is reached through an already-mapped neighbour.
type plan struct {
	order  []int // query atoms in visiting order
	parent []int // query bond to an earlier atom, -1 for component roots
	checks [][]int
}

func newPlan(q *smarts.Query) plan {
	n := q.NumAtoms()
	p := plan{parent: make([]int, n), checks: make([][]int, n)}
	pos := make([]int, n)
	for i := range pos {
		pos[i] = -1
	}
	bonds := q.Bonds()
	for root := 0; root < n; root++ {
		if pos[root] >= 0 {
			continue
		}
		pos[root] = len(p.order)
		p.order = append(p.order, root)
		p.parent[root] = -1
		for k := len(p.order) - 1; k < len(p.order); k++ {
			a := p.order[k]
			for _, bi := range q.AtomBonds(a) {
				nb := bonds[bi].Other(a)
				if pos[nb] >= 0 {
					continue
				}
				pos[nb] = len(p.order)
				p.order = append(p.order, nb)
				p.parent[nb] = bi
			}
		}
	}
	// every non-parent bond is verified when its later endpoint is mapped
	for bi, b := range bonds {
		later := b.A
		if pos[b.B] > pos[b.A] {
			later = b.B
		}
		if p.parent[later] == bi {
			continue
		}
		p.checks[later] = append(p.checks[later], bi)
	}
	return p
}

type state struct {
	m       *mol.Molecule
	q       *smarts.Query
	p       plan
	mapping []int // query atom -> molecule atom
	used    []bool
	limit   int
	found   [][]int
}

// Match returns the first mapping of q onto m, indexed by query atom.
func Match(m *mol.Molecule, q *smarts.Query) ([]int, bool) {
	all := FindAll(m, q, 1)
	if len(all) == 0 {
		return nil, false
	}
	return all[0], true
}

// HasMatch reports whether m contains q. The search stops at the first hit.
func HasMatch(m *mol.Molecule, q *smarts.Query) bool {
	_, ok := Match(m, q)
	return ok
}

// FindAll returns up to limit mappings of q onto m (all of them when
// limit <= 0). Mappings that differ only by symmetry are all reported.
func FindAll(m *mol.Molecule, q *smarts.Query, limit int) [][]int {
	if q.NumAtoms() == 0 || q.NumAtoms() > len(m.Atoms) {
		return nil
	}
	s := &state{
		m:       m,
		q:       q,
		p:       newPlan(q),
		mapping: make([]int, q.NumAtoms()),
		used:    make([]bool, len(m.Atoms)),
		limit:   limit,
	}
	for i := range s.mapping {
		s.mapping[i] = -1
	}
	s.extend(0)
	return s.found
}

func (s *state) done() bool { return s.limit > 0 && len(s.found) >= s.limit }

func (s *state) extend(k int) {
	if k == len(s.p.order) {
		s.found = append(s.found, append([]int(nil), s.mapping...))
		return
	}
	qa := s.p.order[k]
	pb := s.p.parent[qa]
	if pb < 0 {
		for ma := range s.m.Atoms {
			s.try(k, qa, ma)
			if s.done() {
				return
			}
		}
		return
	}
	anchor := s.mapping[s.q.Bonds()[pb].Other(qa)]
	for _, mb := range s.m.AtomBonds(anchor) {
		if !s.q.MatchBond(pb, s.m, mb) {
			continue
		}
		s.try(k, qa, s.m.Bonds[mb].Other(anchor))
		if s.done() {
			return
		}
	}
}

func (s *state) try(k, qa, ma int) {
	if s.used[ma] || !s.q.MatchAtom(qa, s.m, ma) {
		return
	}
	bonds := s.q.Bonds()
	for _, qb := range s.p.checks[qa] {
		other := s.mapping[bonds[qb].Other(qa)]
		mb := s.m.BondBetween(ma, other)
		if mb < 0 || !s.q.MatchBond(qb, s.m, mb) {
			return
		}
	}
	s.mapping[qa] = ma
	s.used[ma] = true
	s.extend(k + 1)
	s.used[ma] = false
	s.mapping[qa] = -1
}

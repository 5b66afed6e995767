// core/smarts/query.go
package smarts

import "meisenheimer-core/mol"

type op int

const (
	opLeaf op = iota
	opNot
	opAnd
	opOr
)

// expr is a boolean tree over atom or bond predicates. Leaves test the
// atom (or bond) with index i of a molecule.
type expr struct {
	op   op
	kids []*expr
	test func(m *mol.Molecule, i int) bool
}

func leaf(test func(*mol.Molecule, int) bool) *expr { return &expr{op: opLeaf, test: test} }

func join(o op, kids []*expr) *expr {
	if len(kids) == 1 {
		return kids[0]
	}
	return &expr{op: o, kids: kids}
}

func (e *expr) eval(m *mol.Molecule, i int) bool {
	switch e.op {
	case opLeaf:
		return e.test(m, i)
	case opNot:
		return !e.kids[0].eval(m, i)
	case opAnd:
		for _, k := range e.kids {
			if !k.eval(m, i) {
				return false
			}
		}
		return true
	case opOr:
		for _, k := range e.kids {
			if k.eval(m, i) {
				return true
			}
		}
		return false
	}
	return false
}

// Bond is a query edge between query atoms A and B.
type Bond struct {
	A, B int
	expr *expr
}

// Other returns the query atom at the far end from i.
func (b Bond) Other(i int) int {
	if b.A == i {
		return b.B
	}
	return b.A
}

// Query is a compiled SMARTS pattern.
type Query struct {
	Source string

	atoms []*expr
	bonds []Bond
	adj   [][]int
}

// String returns the pattern text the query was compiled from.
func (q *Query) String() string { return q.Source }

// NumAtoms is the number of query atoms.
func (q *Query) NumAtoms() int { return len(q.atoms) }

// Bonds returns the query bonds. The slice must not be modified.
func (q *Query) Bonds() []Bond { return q.bonds }

// AtomBonds returns the indices of query bonds at query atom i.
func (q *Query) AtomBonds(i int) []int { return q.adj[i] }

// MatchAtom reports whether molecule atom ai satisfies query atom qi.
func (q *Query) MatchAtom(qi int, m *mol.Molecule, ai int) bool {
	return q.atoms[qi].eval(m, ai)
}

// MatchBond reports whether molecule bond bi satisfies query bond qb.
func (q *Query) MatchBond(qb int, m *mol.Molecule, bi int) bool {
	return q.bonds[qb].expr.eval(m, bi)
}

func (q *Query) addAtom(e *expr) int {
	q.atoms = append(q.atoms, e)
	q.adj = append(q.adj, nil)
	return len(q.atoms) - 1
}

func (q *Query) addBond(a, b int, e *expr) {
	q.bonds = append(q.bonds, Bond{A: a, B: b, expr: e})
	idx := len(q.bonds) - 1
	q.adj[a] = append(q.adj[a], idx)
	q.adj[b] = append(q.adj[b], idx)
}

// atom primitives

func anyAtom() *expr {
	return leaf(func(*mol.Molecule, int) bool { return true })
}

func aromaticAtom(want bool) *expr {
	return leaf(func(m *mol.Molecule, i int) bool { return m.Atoms[i].Aromatic == want })
}

func element(z int) *expr {
	return leaf(func(m *mol.Molecule, i int) bool { return m.Atoms[i].Element == z })
}

// elementAromatic is an organic-subset symbol: C is aliphatic carbon, c is
// aromatic carbon.
func elementAromatic(z int, aromatic bool) *expr {
	return leaf(func(m *mol.Molecule, i int) bool {
		a := m.Atoms[i]
		return a.Element == z && a.Aromatic == aromatic
	})
}

func totalH(n int) *expr {
	return leaf(func(m *mol.Molecule, i int) bool {
		h := m.Atoms[i].HCount
		for _, bi := range m.AtomBonds(i) {
			if m.Atoms[m.Bonds[bi].Other(i)].Element == mol.Hydrogen {
				h++
			}
		}
		return h == n
	})
}

func implicitH(n int) *expr {
	return leaf(func(m *mol.Molecule, i int) bool {
		if n < 0 {
			return m.Atoms[i].HCount > 0
		}
		return m.Atoms[i].HCount == n
	})
}

func degree(n int) *expr {
	return leaf(func(m *mol.Molecule, i int) bool { return m.Degree(i) == n })
}

func connectivity(n int) *expr {
	return leaf(func(m *mol.Molecule, i int) bool { return m.TotalConnections(i) == n })
}

func valence(n int) *expr {
	return leaf(func(m *mol.Molecule, i int) bool { return m.Valence(i) == n })
}

// ringMembership: n < 0 means "in any ring".
func ringMembership(n int) *expr {
	return leaf(func(m *mol.Molecule, i int) bool {
		if n < 0 {
			return m.InRing(i)
		}
		return m.RingCount(i) == n
	})
}

func ringSize(n int) *expr {
	return leaf(func(m *mol.Molecule, i int) bool {
		switch {
		case n < 0:
			return m.InRing(i)
		case n == 0:
			return !m.InRing(i)
		}
		return m.InRingOfSize(i, n)
	})
}

func ringConnectivity(n int) *expr {
	return leaf(func(m *mol.Molecule, i int) bool {
		if n < 0 {
			return m.RingBondCount(i) > 0
		}
		return m.RingBondCount(i) == n
	})
}

func charge(c int) *expr {
	return leaf(func(m *mol.Molecule, i int) bool { return m.Atoms[i].Charge == c })
}

func isotope(n int) *expr {
	return leaf(func(m *mol.Molecule, i int) bool { return m.Atoms[i].Isotope == n })
}

// bond primitives

func bondOrder(o mol.BondOrder) *expr {
	return leaf(func(m *mol.Molecule, i int) bool { return m.Bonds[i].Order == o })
}

func anyBond() *expr {
	return leaf(func(*mol.Molecule, int) bool { return true })
}

func ringBond() *expr {
	return leaf(func(m *mol.Molecule, i int) bool { return m.IsRingBond(i) })
}

// implicitBond is what an unwritten SMARTS bond means: single or aromatic.
func implicitBond() *expr {
	return leaf(func(m *mol.Molecule, i int) bool {
		o := m.Bonds[i].Order
		return o == mol.Single || o == mol.Aromatic
	})
}

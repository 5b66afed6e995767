// core/mol/molecule.go
package mol

import (
	"fmt"
	"sort"
)

// BondOrder is the multiplicity of a bond. Aromatic bonds are kept as a
// separate order rather than a 1.5 valence.
type BondOrder int

const (
	Single BondOrder = iota + 1
	Double
	Triple
	Aromatic
)

func (o BondOrder) String() string {
	switch o {
	case Single:
		return "single"
	case Double:
		return "double"
	case Triple:
		return "triple"
	case Aromatic:
		return "aromatic"
	default:
		return fmt.Sprintf("BondOrder(%d)", int(o))
	}
}

// valence is the contribution of one bond to an atom's explicit valence.
// Aromatic bonds count as 1; the extra pi electron is accounted for per atom.
func (o BondOrder) valence() int {
	switch o {
	case Double:
		return 2
	case Triple:
		return 3
	default:
		return 1
	}
}

type Atom struct {
	Element  int // atomic number, 0 = wildcard
	Charge   int
	Isotope  int // 0 = natural abundance
	HCount   int // attached hydrogens not present as graph atoms
	Aromatic bool

	// Bracket is set when the hydrogen count was given explicitly
	// (SMILES bracket atom) and must not be recomputed.
	Bracket bool

	// Chiral is the tetrahedral tag relative to StereoNeighbors order.
	Chiral Chirality

	X, Y, Z float64
}

// Symbol returns the element symbol of the atom.
func (a Atom) Symbol() string { return Symbol(a.Element) }

type Bond struct {
	A, B  int
	Order BondOrder
	Dir   BondDir // SMILES '/' or '\' read from A towards B

	// Stereo is the V2000 bond stereo code (1 wedge, 4 either, 6 hash,
	// 3 cis/trans either), kept as read.
	Stereo int
}

// Other returns the atom at the far end of the bond from i.
func (b Bond) Other(i int) int {
	if b.A == i {
		return b.B
	}
	return b.A
}

// Prop is one SDF data item.
type Prop struct {
	Name  string
	Value string
}

// Molecule is a hydrogen-suppressed molecular graph.
type Molecule struct {
	Name  string
	Atoms []Atom
	Bonds []Bond
	Props []Prop
	Has2D bool // atom coordinates are meaningful

	adj   [][]int
	rings *ringInfo
}

// AddAtom appends an atom and returns its index.
func (m *Molecule) AddAtom(a Atom) int {
	m.Atoms = append(m.Atoms, a)
	m.adj = append(m.adj, nil)
	m.rings = nil
	return len(m.Atoms) - 1
}

// AddBond connects atoms a and b. It fails on self-loops, unknown atoms,
// and duplicate bonds.
func (m *Molecule) AddBond(a, b int, order BondOrder) (int, error) {
	if a == b {
		return -1, fmt.Errorf("bond from atom %d to itself", a+1)
	}
	if a < 0 || b < 0 || a >= len(m.Atoms) || b >= len(m.Atoms) {
		return -1, fmt.Errorf("bond %d-%d references a missing atom", a+1, b+1)
	}
	m.ensureAdj()
	if m.BondBetween(a, b) >= 0 {
		return -1, fmt.Errorf("duplicate bond %d-%d", a+1, b+1)
	}
	m.Bonds = append(m.Bonds, Bond{A: a, B: b, Order: order})
	idx := len(m.Bonds) - 1
	m.adj[a] = append(m.adj[a], idx)
	m.adj[b] = append(m.adj[b], idx)
	m.rings = nil
	return idx, nil
}

// ensureAdj rebuilds adjacency for molecules assembled by literal.
func (m *Molecule) ensureAdj() {
	if len(m.adj) == len(m.Atoms) {
		return
	}
	m.adj = make([][]int, len(m.Atoms))
	for i, b := range m.Bonds {
		m.adj[b.A] = append(m.adj[b.A], i)
		m.adj[b.B] = append(m.adj[b.B], i)
	}
	m.rings = nil
}

// AtomBonds returns the indices of bonds incident to atom i, in the order
// they were added. The slice must not be modified.
func (m *Molecule) AtomBonds(i int) []int {
	m.ensureAdj()
	return m.adj[i]
}

// Degree is the number of explicit (graph) neighbours of atom i.
func (m *Molecule) Degree(i int) int { return len(m.AtomBonds(i)) }

// BondBetween returns the bond index joining a and b, or -1.
func (m *Molecule) BondBetween(a, b int) int {
	for _, bi := range m.AtomBonds(a) {
		if m.Bonds[bi].Other(a) == b {
			return bi
		}
	}
	return -1
}

// ExplicitValence sums bond valences at atom i (aromatic bonds count 1).
func (m *Molecule) ExplicitValence(i int) int {
	v := 0
	for _, bi := range m.AtomBonds(i) {
		v += m.Bonds[bi].Order.valence()
	}
	return v
}

// TotalConnections is degree plus attached hydrogens (SMARTS X).
func (m *Molecule) TotalConnections(i int) int {
	return m.Degree(i) + m.Atoms[i].HCount
}

// Valence is the total bond order at atom i including hydrogens, with an
// aromatic atom's pi bond counted once (SMARTS v).
func (m *Molecule) Valence(i int) int {
	v := m.ExplicitValence(i) + m.Atoms[i].HCount
	if m.needsPiBond(i) {
		v++
	}
	return v
}

// hasAromaticBond reports whether any bond at i is aromatic.
func (m *Molecule) hasAromaticBond(i int) bool {
	for _, bi := range m.AtomBonds(i) {
		if m.Bonds[bi].Order == Aromatic {
			return true
		}
	}
	return false
}

// Formula returns a Hill-order molecular formula, including implicit
// hydrogens. Charge is not shown.
func (m *Molecule) Formula() string {
	counts := map[int]int{}
	h := 0
	for _, a := range m.Atoms {
		counts[a.Element]++
		h += a.HCount
	}
	counts[Hydrogen] += h
	var out []byte
	emit := func(z int) {
		n := counts[z]
		if n == 0 {
			return
		}
		out = append(out, Symbol(z)...)
		if n > 1 {
			out = append(out, fmt.Sprint(n)...)
		}
		delete(counts, z)
	}
	if counts[Carbon] > 0 {
		emit(Carbon)
		emit(Hydrogen)
	}
	rest := make([]int, 0, len(counts))
	for z := range counts {
		rest = append(rest, z)
	}
	sort.Slice(rest, func(i, j int) bool { return Symbol(rest[i]) < Symbol(rest[j]) })
	for _, z := range rest {
		emit(z)
	}
	return string(out)
}

// core/mol/stereo.go
package mol

// Chirality is a tetrahedral tag in SMILES terms: looking from the first
// neighbour, the other three run anticlockwise (CCW, "@") or clockwise
// (CW, "@@").
type Chirality int

const (
	ChiralNone Chirality = iota
	ChiralCCW
	ChiralCW
)

// Invert returns the opposite tag; ChiralNone stays unset.
func (c Chirality) Invert() Chirality {
	switch c {
	case ChiralCCW:
		return ChiralCW
	case ChiralCW:
		return ChiralCCW
	}
	return c
}

// BondDir is the SMILES directional mark on a single bond next to a
// double bond.
type BondDir int

const (
	DirNone BondDir = iota
	DirUp           // '/'
	DirDown         // '\'
)

// Flip returns the mark as seen when the bond is read the other way.
func (d BondDir) Flip() BondDir {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	}
	return d
}

// ImplicitNeighbor stands for the implicit hydrogen or lone pair of a
// three-connected stereo centre in a neighbour list.
const ImplicitNeighbor = -1

// StereoNeighbors returns the reference neighbour order that Atom.Chiral
// is expressed in: ImplicitNeighbor first when the atom has three graph
// neighbours, then neighbours in bond insertion order. It returns nil for
// atoms that cannot be tetrahedral centres.
func (m *Molecule) StereoNeighbors(i int) []int {
	bonds := m.AtomBonds(i)
	if len(bonds) != 3 && len(bonds) != 4 {
		return nil
	}
	out := make([]int, 0, 4)
	if len(bonds) == 3 {
		out = append(out, ImplicitNeighbor)
	}
	for _, bi := range bonds {
		out = append(out, m.Bonds[bi].Other(i))
	}
	return out
}

// SetChirality stores tag, given relative to the neighbour order written,
// on atom i. The tag is cleared when written does not list exactly the
// atom's stereo neighbours.
func (m *Molecule) SetChirality(i int, written []int, tag Chirality) {
	m.Atoms[i].Chiral = ChiralNone
	if tag == ChiralNone {
		return
	}
	odd, ok := permutationParity(written, m.StereoNeighbors(i))
	if !ok {
		return
	}
	if odd {
		tag = tag.Invert()
	}
	m.Atoms[i].Chiral = tag
}

// ChiralityAlong returns atom i's tag relative to the neighbour order
// given, or ChiralNone when the atom has no tag or order is not a
// permutation of its stereo neighbours.
func (m *Molecule) ChiralityAlong(i int, order []int) Chirality {
	tag := m.Atoms[i].Chiral
	if tag == ChiralNone {
		return ChiralNone
	}
	odd, ok := permutationParity(m.StereoNeighbors(i), order)
	if !ok {
		return ChiralNone
	}
	if odd {
		return tag.Invert()
	}
	return tag
}

// permutationParity reports whether from is an odd permutation of to.
// ok is false when the two are not permutations of each other.
func permutationParity(from, to []int) (odd, ok bool) {
	if len(from) != len(to) || len(to) == 0 {
		return false, false
	}
	pos := make(map[int]int, len(to))
	for k, v := range to {
		pos[v] = k
	}
	if len(pos) != len(to) {
		return false, false
	}
	perm := make([]int, len(from))
	seen := make([]bool, len(to))
	for k, v := range from {
		p, found := pos[v]
		if !found || seen[p] {
			return false, false
		}
		seen[p] = true
		perm[k] = p
	}
	inv := 0
	for a := 0; a < len(perm); a++ {
		for b := a + 1; b < len(perm); b++ {
			if perm[a] > perm[b] {
				inv++
			}
		}
	}
	return inv%2 == 1, true
}

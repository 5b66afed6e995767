// core/mol/sanitize.go
package mol

import "fmt"

// Sanitize brings a freshly parsed graph into the form the matcher
// expects: aromatic bonds outside rings become single, every non-bracket
// atom gets its implicit hydrogens, plain hydrogen atoms are folded away,
// and Kekulé rings are perceived as aromatic. It returns a new molecule.
func Sanitize(m *Molecule) (*Molecule, error) {
	m.ensureAdj()
	for bi, b := range m.Bonds {
		if b.Order == Aromatic && !m.IsRingBond(bi) {
			m.Bonds[bi].Order = Single
		}
	}
	for i, a := range m.Atoms {
		if a.Aromatic && !m.InRing(i) {
			return nil, fmt.Errorf("non-ring atom %d (%s) marked aromatic", i+1, a.Symbol())
		}
	}
	m.AssignImplicitHydrogens()
	out := m.RemoveHs()
	out.PerceiveAromaticity()
	return out, nil
}

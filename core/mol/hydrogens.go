// core/mol/hydrogens.go
package mol

// ImplicitHydrogens returns the hydrogen count implied for atom i by its
// default valence and explicit bonds. Aromatic atoms follow the SMILES
// convention: one valence unit is reserved for the pi system when it fits
// below the lowest default valence, otherwise no hydrogens are implied.
func (m *Molecule) ImplicitHydrogens(i int) int {
	a := m.Atoms[i]
	vals := Valences(a.Element, a.Charge)
	if len(vals) == 0 {
		return 0
	}
	ev := m.ExplicitValence(i)
	if a.Aromatic && m.hasAromaticBond(i) {
		if ev+1 <= vals[0] {
			return vals[0] - ev - 1
		}
		return 0
	}
	for _, v := range vals {
		if v >= ev {
			return v - ev
		}
	}
	return 0
}

// AssignImplicitHydrogens sets HCount on every atom whose count was not
// given explicitly.
func (m *Molecule) AssignImplicitHydrogens() {
	for i := range m.Atoms {
		if m.Atoms[i].Bracket {
			continue
		}
		m.Atoms[i].HCount = m.ImplicitHydrogens(i)
	}
}

// needsPiBond reports whether aromatic atom i still has one free valence
// unit that a Kekulé structure must satisfy with a double bond.
func (m *Molecule) needsPiBond(i int) bool {
	a := m.Atoms[i]
	if !a.Aromatic || !m.hasAromaticBond(i) {
		return false
	}
	vals := Valences(a.Element, a.Charge)
	if len(vals) == 0 {
		return false
	}
	return vals[0]-m.ExplicitValence(i)-a.HCount == 1
}

// foldableH reports whether atom i is a plain hydrogen hanging off a
// heavy atom, i.e. one that can become part of that atom's HCount.
func (m *Molecule) foldableH(i int) bool {
	a := m.Atoms[i]
	if a.Element != Hydrogen || a.Isotope != 0 || a.Charge != 0 || m.Degree(i) != 1 {
		return false
	}
	b := m.Bonds[m.AtomBonds(i)[0]]
	return b.Order == Single && m.Atoms[b.Other(i)].Element != Hydrogen
}

// RemoveHs returns a copy of m with plain hydrogen atoms folded into the
// hydrogen counts of their neighbours. Isotopic, charged, bridging, and
// H2 hydrogens stay in the graph.
func (m *Molecule) RemoveHs() *Molecule {
	out := &Molecule{Name: m.Name, Props: m.Props, Has2D: m.Has2D}
	remap := make([]int, len(m.Atoms))
	drop := make([]bool, len(m.Atoms))
	for i := range m.Atoms {
		drop[i] = m.foldableH(i)
	}
	for i, a := range m.Atoms {
		if drop[i] {
			remap[i] = -1
			continue
		}
		remap[i] = out.AddAtom(a)
	}
	for i := range m.Atoms {
		if !drop[i] {
			continue
		}
		heavy := m.Bonds[m.AtomBonds(i)[0]].Other(i)
		out.Atoms[remap[heavy]].HCount++
	}
	for _, b := range m.Bonds {
		if remap[b.A] < 0 || remap[b.B] < 0 {
			continue
		}
		// cannot fail: the source graph had no duplicates
		bi, _ := out.AddBond(remap[b.A], remap[b.B], b.Order)
		out.Bonds[bi].Dir = b.Dir
		out.Bonds[bi].Stereo = b.Stereo
	}
	// folded hydrogens move to the implicit slot of a stereo centre
	for i, a := range m.Atoms {
		if drop[i] || a.Chiral == ChiralNone {
			continue
		}
		old := m.StereoNeighbors(i)
		for k, nb := range old {
			if nb != ImplicitNeighbor && drop[nb] {
				old[k] = ImplicitNeighbor
			} else if nb != ImplicitNeighbor {
				old[k] = remap[nb]
			}
		}
		out.SetChirality(remap[i], old, a.Chiral)
	}
	return out
}

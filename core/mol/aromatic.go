// core/mol/aromatic.go
package mol

// PerceiveAromaticity marks rings that satisfy the Hückel 4n+2 rule as
// aromatic. Every ring is judged against the bond orders as they were on
// entry, so fused Kekulé systems (naphthalene, indole) are recognised ring
// by ring. Rings that already contain aromatic atoms are left alone.
func (m *Molecule) PerceiveAromaticity() {
	ri := m.ringData()
	var hits [][]int
	for _, ring := range ri.rings {
		if m.anyAromatic(ring) {
			continue
		}
		e, ok := m.piElectrons(ring)
		if ok && e%4 == 2 {
			hits = append(hits, ring)
		}
	}
	for _, ring := range hits {
		for _, a := range ring {
			m.Atoms[a].Aromatic = true
		}
		for _, b := range m.ringBonds(ring) {
			m.Bonds[b].Order = Aromatic
		}
	}
}

func (m *Molecule) anyAromatic(ring []int) bool {
	for _, a := range ring {
		if m.Atoms[a].Aromatic {
			return true
		}
	}
	return false
}

// piElectrons sums the pi-electron contributions of a ring's atoms.
// ok is false if any atom cannot take part in an aromatic system.
func (m *Molecule) piElectrons(ring []int) (int, bool) {
	total := 0
	for _, a := range ring {
		e, ok := m.atomPiElectrons(a)
		if !ok {
			return 0, false
		}
		total += e
	}
	return total, true
}

func (m *Molecule) atomPiElectrons(i int) (int, bool) {
	ri := m.ringData()
	a := m.Atoms[i]
	doubles, ringDouble, exoHetero := 0, false, false
	for _, bi := range m.AtomBonds(i) {
		b := m.Bonds[bi]
		switch b.Order {
		case Triple, Aromatic:
			return 0, false
		case Double:
			doubles++
			switch {
			case ri.ringBond[bi]:
				ringDouble = true
			case isHeteroForExo(m.Atoms[b.Other(i)].Element):
				exoHetero = true
			default:
				return 0, false
			}
		}
	}
	if doubles > 1 {
		return 0, false
	}
	if ringDouble {
		return 1, true
	}
	if exoHetero {
		return 0, true
	}
	conn := m.TotalConnections(i)
	switch a.Element {
	case Nitrogen, Phosphorus:
		if a.Charge == 0 && conn == 3 {
			return 2, true
		}
	case Oxygen, Sulfur, Selenium:
		if a.Charge == 0 && conn == 2 {
			return 2, true
		}
	case Carbon:
		switch a.Charge {
		case -1:
			return 2, true
		case 1:
			return 0, true
		}
	case Boron:
		if a.Charge == 0 && conn == 3 {
			return 0, true
		}
	}
	return 0, false
}

func isHeteroForExo(z int) bool {
	return z == Oxygen || z == Nitrogen || z == Sulfur
}

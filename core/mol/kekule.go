// core/mol/kekule.go
package mol

// Kekulize returns a copy of the bond orders with every aromatic bond
// resolved to Single or Double. ok is false when the aromatic atoms that
// need a pi bond admit no perfect matching; the returned orders then
// still contain Aromatic entries.
func (m *Molecule) Kekulize() (orders []BondOrder, ok bool) {
	orders = make([]BondOrder, len(m.Bonds))
	hasAromatic := false
	for i, b := range m.Bonds {
		orders[i] = b.Order
		if b.Order == Aromatic {
			hasAromatic = true
		}
	}
	if !hasAromatic {
		return orders, true
	}

	needy := make([]bool, len(m.Atoms))
	for i := range m.Atoms {
		needy[i] = m.needsPiBond(i)
	}
	partner := make([]int, len(m.Atoms))
	for i := range partner {
		partner[i] = -1
	}

	// options lists aromatic bonds from i to a needy, still unmatched atom.
	options := func(i int) []int {
		var out []int
		for _, bi := range m.AtomBonds(i) {
			b := m.Bonds[bi]
			if b.Order != Aromatic {
				continue
			}
			j := b.Other(i)
			if needy[j] && partner[j] < 0 {
				out = append(out, bi)
			}
		}
		return out
	}

	var solve func() bool
	solve = func() bool {
		best, bestOpts := -1, []int(nil)
		for i := range m.Atoms {
			if !needy[i] || partner[i] >= 0 {
				continue
			}
			opts := options(i)
			if best < 0 || len(opts) < len(bestOpts) {
				best, bestOpts = i, opts
			}
			if len(opts) == 0 {
				return false
			}
		}
		if best < 0 {
			return true
		}
		for _, bi := range bestOpts {
			j := m.Bonds[bi].Other(best)
			partner[best], partner[j] = j, best
			if solve() {
				return true
			}
			partner[best], partner[j] = -1, -1
		}
		return false
	}

	if !solve() {
		return orders, false
	}
	for i, b := range m.Bonds {
		if b.Order != Aromatic {
			continue
		}
		if partner[b.A] == b.B {
			orders[i] = Double
		} else {
			orders[i] = Single
		}
	}
	return orders, true
}

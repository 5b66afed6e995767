// core/smiles/write.go
package smiles

import (
	"strconv"
	"strings"

	"meisenheimer-core/mol"
)

// Write renders m as a SMILES string. The output is deterministic for a
// given atom order but not canonical: the walk starts at the lowest
// unvisited atom of each component and follows bonds in insertion order.
func Write(m *mol.Molecule) string {
	n := len(m.Atoms)
	if n == 0 {
		return ""
	}
	w := &writer{
		m:        m,
		visited:  make([]bool, n),
		children: make([][]int, n),
		opens:    make([][]int, n),
		closes:   make([][]int, n),
		digit:    map[int]int{},
	}
	var sb strings.Builder
	for root := 0; root < n; root++ {
		if w.visited[root] {
			continue
		}
		w.walk(root)
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		w.emit(&sb, root, -1)
	}
	return sb.String()
}

type writer struct {
	m        *mol.Molecule
	visited  []bool
	order    int
	rank     []int
	children [][]int // tree bonds to children, in walk order
	opens    [][]int // ring-closure bonds opened at the atom
	closes   [][]int // ring-closure bonds closed at the atom
	digit    map[int]int
	inUse    []bool
}

// walk records the DFS tree of one component. Non-tree bonds become ring
// closures: opened at the atom reached first, closed at the other end.
func (w *writer) walk(root int) {
	if w.rank == nil {
		w.rank = make([]int, len(w.m.Atoms))
	}
	var visit func(a, via int)
	visit = func(a, via int) {
		w.visited[a] = true
		w.rank[a] = w.order
		w.order++
		for _, bi := range w.m.AtomBonds(a) {
			if bi == via {
				continue
			}
			nb := w.m.Bonds[bi].Other(a)
			if w.visited[nb] {
				// a finished descendant already recorded this edge
				if w.rank[nb] < w.rank[a] {
					w.opens[nb] = append(w.opens[nb], bi)
					w.closes[a] = append(w.closes[a], bi)
				}
				continue
			}
			w.children[a] = append(w.children[a], bi)
			visit(nb, bi)
		}
	}
	visit(root, -1)
}

func (w *writer) emit(sb *strings.Builder, a, from int) {
	sb.WriteString(atomToken(w.m, a, w.chirality(a, from)))
	for _, bi := range w.closes[a] {
		sb.WriteString(ringDigit(w.digit[bi]))
	}
	for _, bi := range w.opens[a] {
		d := w.nextDigit()
		w.digit[bi] = d
		sb.WriteString(bondToken(w.m, bi, a))
		sb.WriteString(ringDigit(d))
	}
	// digits closed here become free only after this atom's own openings
	for _, bi := range w.closes[a] {
		w.inUse[w.digit[bi]] = false
	}
	kids := w.children[a]
	for k, bi := range kids {
		child := w.m.Bonds[bi].Other(a)
		last := k == len(kids)-1
		if !last {
			sb.WriteByte('(')
		}
		sb.WriteString(bondToken(w.m, bi, a))
		w.emit(sb, child, a)
		if !last {
			sb.WriteByte(')')
		}
	}
}

// chirality returns atom a's tag in the order its neighbours are about to
// be written: the atom it was reached from, the implicit slot, ring
// closures, then branches.
func (w *writer) chirality(a, from int) mol.Chirality {
	if w.m.Atoms[a].Chiral == mol.ChiralNone {
		return mol.ChiralNone
	}
	order := make([]int, 0, 4)
	if from >= 0 {
		order = append(order, from)
	}
	if w.m.Degree(a) == 3 {
		order = append(order, mol.ImplicitNeighbor)
	}
	for _, bi := range w.closes[a] {
		order = append(order, w.m.Bonds[bi].Other(a))
	}
	for _, bi := range w.opens[a] {
		order = append(order, w.m.Bonds[bi].Other(a))
	}
	for _, bi := range w.children[a] {
		order = append(order, w.m.Bonds[bi].Other(a))
	}
	return w.m.ChiralityAlong(a, order)
}

func (w *writer) nextDigit() int {
	if w.inUse == nil {
		w.inUse = make([]bool, 100)
	}
	for d := 1; d < len(w.inUse); d++ {
		if !w.inUse[d] {
			w.inUse[d] = true
			return d
		}
	}
	// more than 99 open rings at once; extend the range
	w.inUse = append(w.inUse, true)
	return len(w.inUse) - 1
}

func ringDigit(d int) string {
	if d < 10 {
		return strconv.Itoa(d)
	}
	return "%" + strconv.Itoa(d)
}

// bondToken returns the symbol written for bond bi when read from atom
// from; single bonds between non-aromatic atoms and aromatic bonds are
// implicit.
func bondToken(m *mol.Molecule, bi, from int) string {
	b := m.Bonds[bi]
	switch b.Order {
	case mol.Double:
		return "="
	case mol.Triple:
		return "#"
	case mol.Single:
		dir := b.Dir
		if b.A != from {
			dir = dir.Flip()
		}
		switch dir {
		case mol.DirUp:
			return "/"
		case mol.DirDown:
			return `\`
		}
		if m.Atoms[b.A].Aromatic && m.Atoms[b.B].Aromatic {
			return "-"
		}
	}
	return ""
}

var bareAromatic = map[int]string{
	mol.Boron: "b", mol.Carbon: "c", mol.Nitrogen: "n",
	mol.Oxygen: "o", mol.Phosphorus: "p", mol.Sulfur: "s",
}

// atomToken writes an atom bare when the reader would imply the same
// hydrogen count and it carries no chirality, otherwise in brackets.
func atomToken(m *mol.Molecule, i int, chiral mol.Chirality) string {
	a := m.Atoms[i]
	if a.Element == 0 && a.Charge == 0 && a.Isotope == 0 && a.HCount == 0 && chiral == mol.ChiralNone {
		return "*"
	}
	sym := a.Symbol()
	if a.Aromatic {
		if s, ok := bareAromatic[a.Element]; ok {
			sym = s
		} else {
			sym = strings.ToLower(sym)
		}
	}
	if a.Charge == 0 && a.Isotope == 0 && chiral == mol.ChiralNone && bareAllowed(a) && m.ImplicitHydrogens(i) == a.HCount {
		return sym
	}
	var sb strings.Builder
	sb.WriteByte('[')
	if a.Isotope > 0 {
		sb.WriteString(strconv.Itoa(a.Isotope))
	}
	sb.WriteString(sym)
	switch chiral {
	case mol.ChiralCCW:
		sb.WriteByte('@')
	case mol.ChiralCW:
		sb.WriteString("@@")
	}
	switch {
	case a.HCount == 1:
		sb.WriteByte('H')
	case a.HCount > 1:
		sb.WriteByte('H')
		sb.WriteString(strconv.Itoa(a.HCount))
	}
	switch {
	case a.Charge == 1:
		sb.WriteByte('+')
	case a.Charge == -1:
		sb.WriteByte('-')
	case a.Charge > 1:
		sb.WriteString("+" + strconv.Itoa(a.Charge))
	case a.Charge < -1:
		sb.WriteString(strconv.Itoa(a.Charge))
	}
	sb.WriteByte(']')
	return sb.String()
}

func bareAllowed(a mol.Atom) bool {
	if a.Aromatic {
		_, ok := bareAromatic[a.Element]
		return ok
	}
	return organic[a.Symbol()]
}

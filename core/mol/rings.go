// core/mol/rings.go
package mol

import (
	"sort"
	"strconv"
	"strings"
)

type ringInfo struct {
	rings     [][]int // atom indices in ring order
	ringBond  []bool
	atomRings []int // number of perceived rings containing the atom
	minSize   []int // smallest ring size through the atom, 0 if acyclic
}

// ringData perceives rings once per graph shape. The ring set is the
// union, over all bonds, of the smallest cycle through that bond; for the
// ring systems found in drug-like molecules this equals the SSSR.
func (m *Molecule) ringData() *ringInfo {
	if m.rings != nil {
		return m.rings
	}
	m.ensureAdj()
	n := len(m.Atoms)
	ri := &ringInfo{
		ringBond:  make([]bool, len(m.Bonds)),
		atomRings: make([]int, n),
		minSize:   make([]int, n),
	}
	seen := map[string]bool{}
	for bi, b := range m.Bonds {
		path := m.shortestPathAvoiding(b.A, b.B, bi)
		if path == nil {
			continue
		}
		ri.ringBond[bi] = true
		key := ringKey(path)
		if seen[key] {
			continue
		}
		seen[key] = true
		ri.rings = append(ri.rings, path)
	}
	// A bond lies on a cycle iff the smallest-cycle search above found one,
	// so ringBond is already complete. Atom statistics come from the set.
	for _, r := range ri.rings {
		for _, a := range r {
			ri.atomRings[a]++
			if ri.minSize[a] == 0 || len(r) < ri.minSize[a] {
				ri.minSize[a] = len(r)
			}
		}
	}
	m.rings = ri
	return ri
}

// shortestPathAvoiding runs a BFS from src to dst without crossing bond
// skip and returns the atom path src..dst, or nil if dst is unreachable.
func (m *Molecule) shortestPathAvoiding(src, dst, skip int) []int {
	prev := make([]int, len(m.Atoms))
	for i := range prev {
		prev[i] = -2
	}
	prev[src] = -1
	queue := []int{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == dst {
			break
		}
		for _, bi := range m.adj[cur] {
			if bi == skip {
				continue
			}
			nb := m.Bonds[bi].Other(cur)
			if prev[nb] != -2 {
				continue
			}
			prev[nb] = cur
			queue = append(queue, nb)
		}
	}
	if prev[dst] == -2 {
		return nil
	}
	var path []int
	for at := dst; at != -1; at = prev[at] {
		path = append(path, at)
	}
	return path
}

func ringKey(ring []int) string {
	s := append([]int(nil), ring...)
	sort.Ints(s)
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// Rings returns the perceived ring set. Each ring lists its atoms in
// cyclic order. The result must not be modified.
func (m *Molecule) Rings() [][]int { return m.ringData().rings }

// IsRingBond reports whether bond b lies on a cycle.
func (m *Molecule) IsRingBond(b int) bool { return m.ringData().ringBond[b] }

// InRing reports whether atom i is a ring member.
func (m *Molecule) InRing(i int) bool { return m.ringData().minSize[i] > 0 }

// SmallestRing returns the size of the smallest ring containing atom i,
// or 0 for acyclic atoms.
func (m *Molecule) SmallestRing(i int) int { return m.ringData().minSize[i] }

// RingCount returns how many perceived rings contain atom i.
func (m *Molecule) RingCount(i int) int { return m.ringData().atomRings[i] }

// InRingOfSize reports whether atom i belongs to some ring of exactly n atoms.
func (m *Molecule) InRingOfSize(i, n int) bool {
	for _, r := range m.ringData().rings {
		if len(r) != n {
			continue
		}
		for _, a := range r {
			if a == i {
				return true
			}
		}
	}
	return false
}

// RingBondCount returns the number of ring bonds at atom i.
func (m *Molecule) RingBondCount(i int) int {
	ri := m.ringData()
	n := 0
	for _, bi := range m.AtomBonds(i) {
		if ri.ringBond[bi] {
			n++
		}
	}
	return n
}

// ringBonds returns the bond indices around a ring in order.
func (m *Molecule) ringBonds(ring []int) []int {
	out := make([]int, 0, len(ring))
	for k := range ring {
		out = append(out, m.BondBetween(ring[k], ring[(k+1)%len(ring)]))
	}
	return out
}

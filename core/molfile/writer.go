// core/molfile/writer.go
package molfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"meisenheimer-core/mol"
)

// program is stamped into header line 2.
const program = "meisenhf"

// Write renders m as one V2000 SD record, terminator included. Aromatic
// rings are written in a Kekulé form; if none exists the aromatic bond
// type (4) is written instead.
func Write(w io.Writer, m *mol.Molecule) error {
	bw := bufio.NewWriter(w)
	writeRecord(bw, m)
	return bw.Flush()
}

// Format returns the SD record for m as a string.
func Format(m *mol.Molecule) string {
	var sb strings.Builder
	bw := bufio.NewWriter(&sb)
	writeRecord(bw, m)
	_ = bw.Flush()
	return sb.String()
}

func writeRecord(bw *bufio.Writer, m *mol.Molecule) {
	dim := ""
	if m.Has2D {
		dim = "2D"
		for _, a := range m.Atoms {
			if a.Z != 0 {
				dim = "3D"
				break
			}
		}
	}
	fmt.Fprintln(bw, firstLine(m.Name))
	fmt.Fprintf(bw, "  %-8s          %s\n", program, dim)
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "%3d%3d  0  0  0  0  0  0  0  0999 V2000\n", len(m.Atoms), len(m.Bonds))

	var charged, isotopes []int
	for i, a := range m.Atoms {
		fmt.Fprintf(bw, "%10.4f%10.4f%10.4f %-3s 0%3d%3d  0  0  0  0  0  0  0  0  0\n",
			a.X, a.Y, a.Z, a.Symbol(), chargeCode(a.Charge), atomParity(m, i))
		if a.Charge != 0 {
			charged = append(charged, i)
		}
		if a.Isotope != 0 {
			isotopes = append(isotopes, i)
		}
	}

	orders, _ := m.Kekulize()
	for i, b := range m.Bonds {
		fmt.Fprintf(bw, "%3d%3d%3d%3d\n", b.A+1, b.B+1, int(orders[i]), b.Stereo)
	}

	writePairs(bw, "CHG", charged, func(i int) int { return m.Atoms[i].Charge })
	writePairs(bw, "ISO", isotopes, func(i int) int { return m.Atoms[i].Isotope })
	fmt.Fprintln(bw, "M  END")

	for _, p := range m.Props {
		fmt.Fprintf(bw, "> <%s>\n", p.Name)
		if p.Value != "" {
			fmt.Fprintln(bw, p.Value)
		}
		fmt.Fprintln(bw)
	}
	fmt.Fprintln(bw, Terminator)
}

// atomParity is the parity column value for atom i, 0 when unmarked.
func atomParity(m *mol.Molecule, i int) int {
	switch m.ChiralityAlong(i, parityOrder(m, i)) {
	case mol.ChiralCW:
		return 1
	case mol.ChiralCCW:
		return 2
	}
	return 0
}

// writePairs emits "M  XXX" lines with at most eight atom/value pairs each.
func writePairs(bw *bufio.Writer, tag string, atoms []int, value func(int) int) {
	for len(atoms) > 0 {
		n := len(atoms)
		if n > 8 {
			n = 8
		}
		fmt.Fprintf(bw, "M  %s%3d", tag, n)
		for _, i := range atoms[:n] {
			fmt.Fprintf(bw, " %3d %3d", i+1, value(i))
		}
		fmt.Fprintln(bw)
		atoms = atoms[n:]
	}
}

// chargeCode is the inverse of chargeCodes; charges beyond ±3 are carried
// by M  CHG alone.
func chargeCode(c int) int {
	switch c {
	case 3:
		return 1
	case 2:
		return 2
	case 1:
		return 3
	case -1:
		return 5
	case -2:
		return 6
	case -3:
		return 7
	}
	return 0
}

func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}

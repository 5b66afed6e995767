// core/molfile/reader.go
package molfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"meisenheimer-core/mol"
)

// Terminator ends every SDF record.
const Terminator = "$$$$"

// Reader yields molecules from an SD file, one per $$$$-terminated record.
// A final record without a terminator is still returned.
type Reader struct {
	sc     *bufio.Scanner
	line   int
	record int
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	return &Reader{sc: sc}
}

// RecordError is a parse failure confined to one SDF record.
type RecordError struct {
	Record int // 1-based record number
	Line   int // line within the file where the record starts
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (line %d): %v", e.Record, e.Line, e.Err)
}
func (e *RecordError) Unwrap() error { return e.Err }

// Next returns the next molecule, io.EOF at the end of input, or a
// *RecordError. The reader is positioned after the failed record, so
// callers may keep going.
func (r *Reader) Next() (*mol.Molecule, error) {
	var lines []string
	start := r.line + 1
	for r.sc.Scan() {
		r.line++
		text := strings.TrimRight(r.sc.Text(), "\r")
		if strings.TrimSpace(text) == Terminator {
			return r.finish(lines, start)
		}
		lines = append(lines, text)
	}
	if err := r.sc.Err(); err != nil {
		return nil, fmt.Errorf("sdf scan: %w", err)
	}
	if blank(lines) {
		return nil, io.EOF
	}
	return r.finish(lines, start)
}

func (r *Reader) finish(lines []string, start int) (*mol.Molecule, error) {
	r.record++
	m, err := parseRecord(lines)
	if err != nil {
		return nil, &RecordError{Record: r.record, Line: start, Err: err}
	}
	return m, nil
}

func blank(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

// Parse reads a single molblock (with optional data items) from s.
func Parse(s string) (*mol.Molecule, error) {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == Terminator {
		lines = lines[:n-1]
	}
	return parseRecord(lines)
}

// chargeCodes maps the atom-block charge field to a formal charge.
// Code 4 (doublet radical) carries no charge.
var chargeCodes = map[int]int{0: 0, 1: 3, 2: 2, 3: 1, 4: 0, 5: -1, 6: -2, 7: -3}

func parseRecord(lines []string) (*mol.Molecule, error) {
	if len(lines) < 4 {
		return nil, fmt.Errorf("truncated header: %d lines", len(lines))
	}
	g := &mol.Molecule{Name: strings.TrimSpace(lines[0])}
	counts := lines[3]
	if strings.Contains(counts, "V3000") {
		return nil, fmt.Errorf("V3000 molfiles are not supported")
	}
	nAtoms, err := field(counts, 0, 3)
	if err != nil {
		return nil, fmt.Errorf("counts line: atoms: %w", err)
	}
	nBonds, err := field(counts, 3, 6)
	if err != nil {
		return nil, fmt.Errorf("counts line: bonds: %w", err)
	}
	if len(lines) < 4+nAtoms+nBonds {
		return nil, fmt.Errorf("expected %d atom and %d bond lines, record has %d lines", nAtoms, nBonds, len(lines))
	}

	nonZero := false
	parity := make([]int, nAtoms)
	for i := 0; i < nAtoms; i++ {
		a, err := parseAtom(lines[4+i])
		if err != nil {
			return nil, fmt.Errorf("atom %d: %w", i+1, err)
		}
		if a.X != 0 || a.Y != 0 || a.Z != 0 {
			nonZero = true
		}
		parity[i], _ = field(lines[4+i], 39, 42)
		g.AddAtom(a)
	}
	g.Has2D = nonZero

	for i := 0; i < nBonds; i++ {
		ln := lines[4+nAtoms+i]
		a1, err1 := field(ln, 0, 3)
		a2, err2 := field(ln, 3, 6)
		typ, err3 := field(ln, 6, 9)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("bond %d: malformed line %q", i+1, ln)
		}
		order, err := bondOrder(typ)
		if err != nil {
			return nil, fmt.Errorf("bond %d: %w", i+1, err)
		}
		bi, err := g.AddBond(a1-1, a2-1, order)
		if err != nil {
			return nil, fmt.Errorf("bond %d: %w", i+1, err)
		}
		if st, err := field(ln, 9, 12); err == nil {
			g.Bonds[bi].Stereo = st
		}
		if order == mol.Aromatic {
			g.Atoms[a1-1].Aromatic = true
			g.Atoms[a2-1].Aromatic = true
		}
	}

	for i, p := range parity {
		switch p {
		case 1:
			g.SetChirality(i, parityOrder(g, i), mol.ChiralCW)
		case 2:
			g.SetChirality(i, parityOrder(g, i), mol.ChiralCCW)
		}
	}

	rest := lines[4+nAtoms+nBonds:]
	i, err := parseProperties(g, rest)
	if err != nil {
		return nil, err
	}
	g.Props = parseData(rest[i:])

	m, err := mol.Sanitize(g)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func parseAtom(ln string) (mol.Atom, error) {
	var a mol.Atom
	if len(ln) < 34 {
		return a, fmt.Errorf("short atom line %q", ln)
	}
	var err error
	if a.X, err = floatField(ln, 0, 10); err != nil {
		return a, err
	}
	if a.Y, err = floatField(ln, 10, 20); err != nil {
		return a, err
	}
	if a.Z, err = floatField(ln, 20, 30); err != nil {
		return a, err
	}
	sym := strings.TrimSpace(slice(ln, 31, 34))
	switch sym {
	case "D":
		a.Element, a.Isotope = mol.Hydrogen, 2
	case "T":
		a.Element, a.Isotope = mol.Hydrogen, 3
	case "*", "A", "Q", "R", "R#":
		a.Element = 0
	default:
		z, ok := mol.AtomicNumber(sym)
		if !ok {
			return a, fmt.Errorf("unknown element %q", sym)
		}
		a.Element = z
	}
	if code, err := field(ln, 36, 39); err == nil {
		c, ok := chargeCodes[code]
		if !ok {
			return a, fmt.Errorf("bad charge code %d", code)
		}
		a.Charge = c
	}
	return a, nil
}

// parityOrder lists the neighbours of atom i the way the atom parity
// column counts them: by atom number, with hydrogens and the implicit
// slot last. Parity 1 means the first three run clockwise with the last
// pointing away, which is "@@" in this order.
func parityOrder(m *mol.Molecule, i int) []int {
	var heavy, light []int
	for _, nb := range m.StereoNeighbors(i) {
		switch {
		case nb == mol.ImplicitNeighbor:
		case m.Atoms[nb].Element == mol.Hydrogen:
			light = append(light, nb)
		default:
			heavy = append(heavy, nb)
		}
	}
	sort.Ints(heavy)
	sort.Ints(light)
	out := append(heavy, light...)
	if m.Degree(i) == 3 {
		out = append(out, mol.ImplicitNeighbor)
	}
	return out
}

func bondOrder(typ int) (mol.BondOrder, error) {
	switch typ {
	case 1:
		return mol.Single, nil
	case 2:
		return mol.Double, nil
	case 3:
		return mol.Triple, nil
	case 4:
		return mol.Aromatic, nil
	default:
		return 0, fmt.Errorf("unsupported bond type %d", typ)
	}
}

// parseProperties applies the properties block up to "M  END" and returns
// the index of the first line after it.
func parseProperties(g *mol.Molecule, lines []string) (int, error) {
	chgReset := false
	for i, ln := range lines {
		switch {
		case strings.HasPrefix(ln, "M  END"):
			return i + 1, nil
		case strings.HasPrefix(ln, "M  CHG"), strings.HasPrefix(ln, "M  ISO"):
			pairs, err := propPairs(ln)
			if err != nil {
				return 0, fmt.Errorf("%s: %w", strings.TrimSpace(ln[:6]), err)
			}
			isCharge := strings.HasPrefix(ln, "M  CHG")
			if isCharge && !chgReset {
				// M  CHG supersedes every atom-block charge
				for k := range g.Atoms {
					g.Atoms[k].Charge = 0
				}
				chgReset = true
			}
			for _, p := range pairs {
				if p[0] < 1 || p[0] > len(g.Atoms) {
					return 0, fmt.Errorf("%s references atom %d", ln[:6], p[0])
				}
				if isCharge {
					g.Atoms[p[0]-1].Charge = p[1]
				} else {
					g.Atoms[p[0]-1].Isotope = p[1]
				}
			}
		}
	}
	// tolerate a missing M  END; everything after the bonds was properties
	return len(lines), nil
}

func propPairs(ln string) ([][2]int, error) {
	f := strings.Fields(ln[6:])
	if len(f) == 0 {
		return nil, fmt.Errorf("missing count")
	}
	n, err := strconv.Atoi(f[0])
	if err != nil {
		return nil, fmt.Errorf("bad count %q", f[0])
	}
	if len(f) != 1+2*n {
		return nil, fmt.Errorf("want %d pairs, got %d fields", n, len(f)-1)
	}
	out := make([][2]int, n)
	for i := 0; i < n; i++ {
		a, err1 := strconv.Atoi(f[1+2*i])
		v, err2 := strconv.Atoi(f[2+2*i])
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("bad pair %q %q", f[1+2*i], f[2+2*i])
		}
		out[i] = [2]int{a, v}
	}
	return out, nil
}

// parseData reads "> <name>" data items; each value runs to a blank line.
func parseData(lines []string) []mol.Prop {
	var props []mol.Prop
	for i := 0; i < len(lines); i++ {
		ln := lines[i]
		if !strings.HasPrefix(ln, ">") {
			continue
		}
		name := ""
		if lt := strings.IndexByte(ln, '<'); lt >= 0 {
			if gt := strings.IndexByte(ln[lt:], '>'); gt > 0 {
				name = ln[lt+1 : lt+gt]
			}
		}
		var val []string
		for i+1 < len(lines) && strings.TrimSpace(lines[i+1]) != "" {
			i++
			val = append(val, lines[i])
		}
		props = append(props, mol.Prop{Name: name, Value: strings.Join(val, "\n")})
	}
	return props
}

func slice(s string, from, to int) string {
	if from >= len(s) {
		return ""
	}
	if to > len(s) {
		to = len(s)
	}
	return s[from:to]
}

func field(s string, from, to int) (int, error) {
	v := strings.TrimSpace(slice(s, from, to))
	if v == "" {
		return 0, fmt.Errorf("empty field at columns %d-%d", from+1, to)
	}
	return strconv.Atoi(v)
}

func floatField(s string, from, to int) (float64, error) {
	v := strings.TrimSpace(slice(s, from, to))
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("bad coordinate %q", v)
	}
	return f, nil
}

// CountRecords counts lines containing the record terminator. Content is
// never decoded.
func CountRecords(r io.Reader) (int, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	n := 0
	term := []byte(Terminator)
	for {
		line, err := br.ReadSlice('\n')
		if len(line) > 0 && bytes.Contains(line, term) {
			n++
		}
		switch {
		case err == nil:
		case err == bufio.ErrBufferFull:
			// a very long line: drain it in pieces; a terminator split
			// across pieces is not possible for real SD files
		case err == io.EOF:
			return n, nil
		default:
			return 0, err
		}
	}
}

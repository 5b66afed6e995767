// core/smiles/parse.go
package smiles

import (
	"fmt"
	"strings"

	"meisenheimer-core/mol"
)

// SyntaxError reports where a SMILES string stopped making sense.
type SyntaxError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("smiles %q: %s at position %d", e.Input, e.Msg, e.Pos+1)
}

// organic holds the symbols allowed outside brackets.
var organic = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true, "S": true,
	"F": true, "Cl": true, "Br": true, "I": true,
}

// aromaticSymbols maps lowercase aromatic symbols to elements. The
// two-letter forms are only valid inside brackets.
var aromaticSymbols = map[string]int{
	"b": mol.Boron, "c": mol.Carbon, "n": mol.Nitrogen, "o": mol.Oxygen,
	"p": mol.Phosphorus, "s": mol.Sulfur, "se": mol.Selenium, "as": 33, "te": 52,
}

type ringOpen struct {
	atom  int
	order mol.BondOrder // 0 if no bond symbol was given at the opening
	dir   mol.BondDir
	slot  int // index of the closure in the opening atom's neighbour list
}

type parser struct {
	in       string
	pos      int
	m        *mol.Molecule
	prev     int
	bond     mol.BondOrder // pending bond symbol, 0 = none
	dir      mol.BondDir
	branches []int
	rings    map[int]ringOpen

	// neighbours of each atom in the order they were written, with
	// ImplicitNeighbor for a bracket hydrogen count
	nbrs    [][]int
	hasFrom []bool
}

// Parse reads a bare SMILES string (no name) into a sanitized molecule.
func Parse(s string) (*mol.Molecule, error) {
	g, err := ParseGraph(s)
	if err != nil {
		return nil, err
	}
	out, err := mol.Sanitize(g)
	if err != nil {
		return nil, fmt.Errorf("smiles %q: %w", s, err)
	}
	return out, nil
}

// ParseGraph reads a SMILES string into a raw graph: no hydrogens are
// implied and no aromaticity is perceived.
func ParseGraph(s string) (*mol.Molecule, error) {
	if s == "" {
		return nil, &SyntaxError{Input: s, Msg: "empty string"}
	}
	p := &parser{in: s, m: &mol.Molecule{}, prev: -1, rings: map[int]ringOpen{}}
	if err := p.run(); err != nil {
		return nil, err
	}
	p.orientStereo()
	return p.m, nil
}

// orientStereo rewrites each chirality tag from written order into the
// molecule's reference order. A lone pair of a three-connected centre
// sits where an implicit hydrogen would.
func (p *parser) orientStereo() {
	for i, a := range p.m.Atoms {
		if a.Chiral == mol.ChiralNone {
			continue
		}
		written := p.nbrs[i]
		if p.m.Degree(i) == 3 && !containsInt(written, mol.ImplicitNeighbor) {
			at := 0
			if p.hasFrom[i] {
				at = 1
			}
			written = append(written[:at:at], append([]int{mol.ImplicitNeighbor}, written[at:]...)...)
		}
		p.m.SetChirality(i, written, a.Chiral)
	}
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func (p *parser) fail(msg string) error {
	return &SyntaxError{Input: p.in, Pos: p.pos, Msg: msg}
}

func (p *parser) run() error {
	for p.pos < len(p.in) {
		c := p.in[p.pos]
		switch {
		case c == '(':
			if p.prev < 0 {
				return p.fail("branch without a preceding atom")
			}
			if p.bond != 0 {
				return p.fail("bond before branch")
			}
			p.branches = append(p.branches, p.prev)
			p.pos++
		case c == ')':
			if len(p.branches) == 0 {
				return p.fail("unbalanced ')'")
			}
			if p.bond != 0 {
				return p.fail("dangling bond")
			}
			p.prev = p.branches[len(p.branches)-1]
			p.branches = p.branches[:len(p.branches)-1]
			p.pos++
		case c == '.':
			if p.bond != 0 {
				return p.fail("dangling bond")
			}
			p.prev = -1
			p.pos++
		case strings.IndexByte("-=#:/\\$", c) >= 0:
			if p.bond != 0 {
				return p.fail("two bond symbols in a row")
			}
			if p.prev < 0 {
				return p.fail("bond without a preceding atom")
			}
			switch c {
			case '-':
				p.bond = mol.Single
			case '/':
				p.bond, p.dir = mol.Single, mol.DirUp
			case '\\':
				p.bond, p.dir = mol.Single, mol.DirDown
			case '=':
				p.bond = mol.Double
			case '#':
				p.bond = mol.Triple
			case ':':
				p.bond = mol.Aromatic
			case '$':
				return p.fail("quadruple bonds are not supported")
			}
			p.pos++
		case c >= '0' && c <= '9' || c == '%':
			if err := p.ringClosure(); err != nil {
				return err
			}
		case c == '[':
			a, err := p.bracketAtom()
			if err != nil {
				return err
			}
			if err := p.attach(a); err != nil {
				return err
			}
		default:
			a, err := p.organicAtom()
			if err != nil {
				return err
			}
			if err := p.attach(a); err != nil {
				return err
			}
		}
	}
	if p.bond != 0 {
		return p.fail("dangling bond")
	}
	if len(p.branches) > 0 {
		return p.fail("unclosed branch")
	}
	if len(p.rings) > 0 {
		first := -1
		for d := range p.rings {
			if first < 0 || d < first {
				first = d
			}
		}
		return p.fail(fmt.Sprintf("unclosed ring %d", first))
	}
	return nil
}

// defaultOrder is the bond implied between two adjacent atoms.
func (p *parser) defaultOrder(a, b int) mol.BondOrder {
	if p.m.Atoms[a].Aromatic && p.m.Atoms[b].Aromatic {
		return mol.Aromatic
	}
	return mol.Single
}

func (p *parser) attach(a mol.Atom) error {
	idx := p.m.AddAtom(a)
	p.nbrs = append(p.nbrs, nil)
	p.hasFrom = append(p.hasFrom, p.prev >= 0)
	if p.prev >= 0 {
		order := p.bond
		if order == 0 {
			order = p.defaultOrder(p.prev, idx)
		}
		bi, err := p.m.AddBond(p.prev, idx, order)
		if err != nil {
			return p.fail(err.Error())
		}
		p.m.Bonds[bi].Dir = p.dir
		p.nbrs[idx] = append(p.nbrs[idx], p.prev)
		p.nbrs[p.prev] = append(p.nbrs[p.prev], idx)
	}
	if a.Bracket && a.HCount > 0 {
		p.nbrs[idx] = append(p.nbrs[idx], mol.ImplicitNeighbor)
	}
	p.prev = idx
	p.bond, p.dir = 0, mol.DirNone
	return nil
}

func (p *parser) ringClosure() error {
	if p.prev < 0 {
		return p.fail("ring closure without a preceding atom")
	}
	var d int
	if p.in[p.pos] == '%' {
		if p.pos+2 >= len(p.in) || !isDigit(p.in[p.pos+1]) || !isDigit(p.in[p.pos+2]) {
			return p.fail("'%' must be followed by two digits")
		}
		d = int(p.in[p.pos+1]-'0')*10 + int(p.in[p.pos+2]-'0')
		p.pos += 3
	} else {
		d = int(p.in[p.pos] - '0')
		p.pos++
	}
	open, ok := p.rings[d]
	if !ok {
		p.rings[d] = ringOpen{atom: p.prev, order: p.bond, dir: p.dir, slot: len(p.nbrs[p.prev])}
		p.nbrs[p.prev] = append(p.nbrs[p.prev], p.prev) // filled in at closure
		p.bond, p.dir = 0, mol.DirNone
		return nil
	}
	delete(p.rings, d)
	order := p.bond
	if order == 0 {
		order = open.order
	} else if open.order != 0 && open.order != order {
		return p.fail(fmt.Sprintf("conflicting bond orders on ring closure %d", d))
	}
	if order == 0 {
		order = p.defaultOrder(open.atom, p.prev)
	}
	bi, err := p.m.AddBond(open.atom, p.prev, order)
	if err != nil {
		return p.fail(err.Error())
	}
	// the bond is stored from the opening atom; a mark at the closing
	// digit reads the other way
	dir := open.dir
	if p.dir != mol.DirNone {
		dir = p.dir.Flip()
	}
	p.m.Bonds[bi].Dir = dir
	p.nbrs[open.atom][open.slot] = p.prev
	p.nbrs[p.prev] = append(p.nbrs[p.prev], open.atom)
	p.bond, p.dir = 0, mol.DirNone
	return nil
}

func (p *parser) organicAtom() (mol.Atom, error) {
	c := p.in[p.pos]
	if c == '*' {
		p.pos++
		return mol.Atom{Element: 0}, nil
	}
	if p.pos+1 < len(p.in) {
		two := p.in[p.pos : p.pos+2]
		if two == "Cl" || two == "Br" {
			z, _ := mol.AtomicNumber(two)
			p.pos += 2
			return mol.Atom{Element: z}, nil
		}
	}
	one := string(c)
	if organic[one] {
		z, _ := mol.AtomicNumber(one)
		p.pos++
		return mol.Atom{Element: z}, nil
	}
	if z, ok := aromaticSymbols[one]; ok {
		p.pos++
		return mol.Atom{Element: z, Aromatic: true}, nil
	}
	return mol.Atom{}, p.fail(fmt.Sprintf("unexpected character %q", c))
}

// bracketAtom parses [isotope? symbol chiral? hcount? charge? class?].
func (p *parser) bracketAtom() (mol.Atom, error) {
	start := p.pos
	end := strings.IndexByte(p.in[start:], ']')
	if end < 0 {
		return mol.Atom{}, p.fail("unclosed '['")
	}
	body := p.in[start+1 : start+end]
	a := mol.Atom{Bracket: true}
	i := 0

	for i < len(body) && isDigit(body[i]) {
		a.Isotope = a.Isotope*10 + int(body[i]-'0')
		i++
	}

	sym, n, arom := bracketSymbol(body[i:])
	if n == 0 {
		p.pos = start + 1 + i
		return mol.Atom{}, p.fail("missing element symbol")
	}
	i += n
	a.Aromatic = arom
	if sym == "*" {
		a.Element = 0
	} else if arom {
		a.Element = aromaticSymbols[sym]
	} else {
		a.Element, _ = mol.AtomicNumber(sym)
	}

	// chirality: @, @@, @TH1, @TH2; other classes (@SP1, @OH12 ...) are
	// read and not kept
	if i < len(body) && body[i] == '@' {
		i++
		a.Chiral = mol.ChiralCCW
		if i < len(body) && body[i] == '@' {
			a.Chiral = mol.ChiralCW
			i++
		}
		if cls, n := chiralClass(body[i:]); n > 0 {
			i += n
			switch cls {
			case "TH1":
				a.Chiral = mol.ChiralCCW
			case "TH2":
				a.Chiral = mol.ChiralCW
			default:
				a.Chiral = mol.ChiralNone
			}
		}
	}

	if i < len(body) && body[i] == 'H' {
		i++
		a.HCount = 1
		if i < len(body) && isDigit(body[i]) {
			a.HCount = 0
			for i < len(body) && isDigit(body[i]) {
				a.HCount = a.HCount*10 + int(body[i]-'0')
				i++
			}
		}
	}

	if i < len(body) && (body[i] == '+' || body[i] == '-') {
		sign := 1
		if body[i] == '-' {
			sign = -1
		}
		ch := body[i]
		i++
		switch {
		case i < len(body) && isDigit(body[i]):
			v := 0
			for i < len(body) && isDigit(body[i]) {
				v = v*10 + int(body[i]-'0')
				i++
			}
			a.Charge = sign * v
		default:
			v := 1
			for i < len(body) && body[i] == ch {
				v++
				i++
			}
			a.Charge = sign * v
		}
	}

	if i < len(body) && body[i] == ':' {
		i++
		if i == len(body) || !isDigit(body[i]) {
			p.pos = start + 1 + i
			return mol.Atom{}, p.fail("atom class needs digits")
		}
		for i < len(body) && isDigit(body[i]) {
			i++
		}
	}

	if i != len(body) {
		p.pos = start + 1 + i
		return mol.Atom{}, p.fail(fmt.Sprintf("unexpected %q in bracket atom", body[i]))
	}
	p.pos = start + end + 1
	return a, nil
}

// chiralClass returns a chirality class such as "TH1" or "OH12" at the
// start of s and its length.
func chiralClass(s string) (string, int) {
	if len(s) < 3 {
		return "", 0
	}
	switch s[:2] {
	case "TH", "AL", "SP", "TB", "OH":
	default:
		return "", 0
	}
	n := 2
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	if n == 2 {
		return "", 0
	}
	return s[:n], n
}

// bracketSymbol returns the element symbol at the start of s, how many
// bytes it used, and whether it was written aromatic.
func bracketSymbol(s string) (string, int, bool) {
	if s == "" {
		return "", 0, false
	}
	if s[0] == '*' {
		return "*", 1, false
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		if len(s) >= 2 {
			if _, ok := aromaticSymbols[s[:2]]; ok {
				return s[:2], 2, true
			}
		}
		if _, ok := aromaticSymbols[s[:1]]; ok {
			return s[:1], 1, true
		}
		return "", 0, false
	}
	if s[0] < 'A' || s[0] > 'Z' {
		return "", 0, false
	}
	if len(s) >= 2 && s[1] >= 'a' && s[1] <= 'z' {
		if _, ok := mol.AtomicNumber(s[:2]); ok {
			return s[:2], 2, false
		}
	}
	if _, ok := mol.AtomicNumber(s[:1]); ok {
		return s[:1], 1, false
	}
	return "", 0, false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

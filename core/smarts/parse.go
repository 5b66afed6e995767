// core/smarts/parse.go
package smarts

import (
	"fmt"
	"strings"

	"meisenheimer-core/mol"
)

// SyntaxError reports the position at which a pattern could not be read.
type SyntaxError struct {
	Pattern string
	Pos     int
	Msg     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("smarts %q: %s at position %d", e.Pattern, e.Msg, e.Pos+1)
}

var organicAliphatic = map[string]int{
	"B": mol.Boron, "C": mol.Carbon, "N": mol.Nitrogen, "O": mol.Oxygen,
	"P": mol.Phosphorus, "S": mol.Sulfur, "F": mol.Fluorine,
	"Cl": mol.Chlorine, "Br": mol.Bromine, "I": mol.Iodine,
}

var organicAromatic = map[string]int{
	"b": mol.Boron, "c": mol.Carbon, "n": mol.Nitrogen, "o": mol.Oxygen,
	"p": mol.Phosphorus, "s": mol.Sulfur, "se": mol.Selenium, "as": 33,
}

type closure struct {
	atom int
	bond *expr
}

type parser struct {
	src      string
	pos      int
	q        *Query
	prev     int
	bond     *expr
	branches []int
	rings    map[int]closure
	inBond   bool
}

// Parse compiles a SMARTS pattern. Supported: atomic primitives (*, a, A,
// symbols, #n, H, D, X, R, r, v, x, h, charges, isotopes), the logical
// operators ! & , ; and bond primitives - = # : ~ @ / \. Recursive SMARTS
// and stereo constraints are not.
func Parse(s string) (*Query, error) {
	if strings.TrimSpace(s) == "" {
		return nil, &SyntaxError{Pattern: s, Msg: "empty pattern"}
	}
	p := &parser{src: s, q: &Query{Source: s}, prev: -1, rings: map[int]closure{}}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.q, nil
}

// MustParse is Parse for patterns known at compile time.
func MustParse(s string) *Query {
	q, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return q
}

func (p *parser) fail(format string, args ...any) error {
	return &SyntaxError{Pattern: p.src, Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) peek() byte {
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func (p *parser) run() error {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '(':
			if p.prev < 0 {
				return p.fail("branch without a preceding atom")
			}
			if p.bond != nil {
				return p.fail("bond before branch")
			}
			p.branches = append(p.branches, p.prev)
			p.pos++
		case c == ')':
			if len(p.branches) == 0 {
				return p.fail("unbalanced ')'")
			}
			if p.bond != nil {
				return p.fail("dangling bond")
			}
			p.prev = p.branches[len(p.branches)-1]
			p.branches = p.branches[:len(p.branches)-1]
			p.pos++
		case c == '.':
			if p.bond != nil {
				return p.fail("dangling bond")
			}
			p.prev = -1
			p.pos++
		case strings.IndexByte("-=#:~@/\\!", c) >= 0:
			if p.prev < 0 {
				return p.fail("bond without a preceding atom")
			}
			if p.bond != nil {
				return p.fail("two bond expressions in a row")
			}
			e, err := p.bondExpr()
			if err != nil {
				return err
			}
			p.bond = e
		case c >= '0' && c <= '9' || c == '%':
			if err := p.ringClosure(); err != nil {
				return err
			}
		case c == '[':
			e, err := p.bracketAtom()
			if err != nil {
				return err
			}
			p.attach(e)
		default:
			e, err := p.bareAtom()
			if err != nil {
				return err
			}
			p.attach(e)
		}
	}
	switch {
	case p.bond != nil:
		return p.fail("dangling bond")
	case len(p.branches) > 0:
		return p.fail("unclosed branch")
	case len(p.rings) > 0:
		return p.fail("unclosed ring bond")
	}
	return nil
}

func (p *parser) attach(e *expr) {
	idx := p.q.addAtom(e)
	if p.prev >= 0 {
		b := p.bond
		if b == nil {
			b = implicitBond()
		}
		p.q.addBond(p.prev, idx, b)
	}
	p.prev = idx
	p.bond = nil
}

func (p *parser) ringClosure() error {
	if p.prev < 0 {
		return p.fail("ring bond without a preceding atom")
	}
	var d int
	if p.src[p.pos] == '%' {
		if p.pos+2 >= len(p.src) || !isDigit(p.src[p.pos+1]) || !isDigit(p.src[p.pos+2]) {
			return p.fail("'%%' must be followed by two digits")
		}
		d = int(p.src[p.pos+1]-'0')*10 + int(p.src[p.pos+2]-'0')
		p.pos += 3
	} else {
		d = int(p.src[p.pos] - '0')
		p.pos++
	}
	open, ok := p.rings[d]
	if !ok {
		p.rings[d] = closure{atom: p.prev, bond: p.bond}
		p.bond = nil
		return nil
	}
	delete(p.rings, d)
	if open.atom == p.prev {
		return p.fail("ring bond %d closes on its own atom", d)
	}
	for _, bi := range p.q.adj[p.prev] {
		if p.q.bonds[bi].Other(p.prev) == open.atom {
			return p.fail("ring bond %d duplicates an existing bond", d)
		}
	}
	var b *expr
	switch {
	case open.bond != nil && p.bond != nil:
		b = join(opAnd, []*expr{open.bond, p.bond})
	case open.bond != nil:
		b = open.bond
	case p.bond != nil:
		b = p.bond
	default:
		b = implicitBond()
	}
	p.q.addBond(open.atom, p.prev, b)
	p.bond = nil
	return nil
}

func (p *parser) bareAtom() (*expr, error) {
	c := p.src[p.pos]
	switch c {
	case '*':
		p.pos++
		return anyAtom(), nil
	case 'a':
		p.pos++
		return aromaticAtom(true), nil
	case 'A':
		p.pos++
		return aromaticAtom(false), nil
	}
	if p.pos+1 < len(p.src) {
		if z, ok := organicAliphatic[p.src[p.pos:p.pos+2]]; ok {
			p.pos += 2
			return elementAromatic(z, false), nil
		}
	}
	if z, ok := organicAliphatic[string(c)]; ok {
		p.pos++
		return elementAromatic(z, false), nil
	}
	if z, ok := organicAromatic[string(c)]; ok {
		p.pos++
		return elementAromatic(z, true), nil
	}
	return nil, p.fail("unexpected character %q", c)
}

// bracketAtom parses [ ... ] into an atom expression.
func (p *parser) bracketAtom() (*expr, error) {
	p.pos++ // '['
	// a lone [H] (optionally charged or with isotope) is the hydrogen atom
	if e, ok := p.hydrogenAtom(); ok {
		return e, nil
	}
	e, err := p.lowAnd(p.atomPrimitive)
	if err != nil {
		return nil, err
	}
	if p.peek() == ':' {
		// atom map number; not used for matching
		p.pos++
		if !isDigit(p.peek()) {
			return nil, p.fail("atom map needs digits")
		}
		p.number()
	}
	if p.peek() != ']' {
		if p.pos >= len(p.src) {
			return nil, p.fail("unclosed '['")
		}
		return nil, p.fail("unexpected %q in bracket atom", p.peek())
	}
	p.pos++
	return e, nil
}

// hydrogenAtom recognises [H], [2H], [H+] and [H-].
func (p *parser) hydrogenAtom() (*expr, bool) {
	rest := p.src[p.pos:]
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return nil, false
	}
	body := rest[:end]
	iso := 0
	i := 0
	for i < len(body) && isDigit(body[i]) {
		iso = iso*10 + int(body[i]-'0')
		i++
	}
	if i >= len(body) || body[i] != 'H' {
		return nil, false
	}
	tail := body[i+1:]
	var kids []*expr
	switch tail {
	case "":
	case "+":
		kids = append(kids, charge(1))
	case "-":
		kids = append(kids, charge(-1))
	default:
		return nil, false
	}
	kids = append(kids, element(mol.Hydrogen))
	if iso > 0 {
		kids = append(kids, isotope(iso))
	}
	p.pos += end + 1
	return join(opAnd, kids), true
}

// The operator grammar is shared by atoms and bonds:
//
//	lowAnd := or (';' or)*
//	or     := hiAnd (',' hiAnd)*
//	hiAnd  := unary ('&'? unary)*
//	unary  := '!' unary | primitive
func (p *parser) lowAnd(prim func() (*expr, error)) (*expr, error) {
	var kids []*expr
	for {
		e, err := p.or(prim)
		if err != nil {
			return nil, err
		}
		kids = append(kids, e)
		if p.peek() != ';' {
			return join(opAnd, kids), nil
		}
		p.pos++
	}
}

func (p *parser) or(prim func() (*expr, error)) (*expr, error) {
	var kids []*expr
	for {
		e, err := p.hiAnd(prim)
		if err != nil {
			return nil, err
		}
		kids = append(kids, e)
		if p.peek() != ',' {
			return join(opOr, kids), nil
		}
		p.pos++
	}
}

func (p *parser) hiAnd(prim func() (*expr, error)) (*expr, error) {
	var kids []*expr
	for {
		e, err := p.unary(prim)
		if err != nil {
			return nil, err
		}
		kids = append(kids, e)
		if p.peek() == '&' {
			p.pos++
			continue
		}
		if !p.continuesAnd() {
			return join(opAnd, kids), nil
		}
	}
}

func (p *parser) unary(prim func() (*expr, error)) (*expr, error) {
	if p.peek() == '!' {
		p.pos++
		e, err := p.unary(prim)
		if err != nil {
			return nil, err
		}
		return &expr{op: opNot, kids: []*expr{e}}, nil
	}
	return prim()
}

// continuesAnd reports whether the next character starts another
// implicitly and-ed primitive.
func (p *parser) continuesAnd() bool {
	c := p.peek()
	if c == 0 || c == ',' || c == ';' {
		return false
	}
	if p.inBond {
		return strings.IndexByte(bondChars, c) >= 0
	}
	return c != ']' && c != ':'
}

const bondChars = "-=#:~@/\\!"

func (p *parser) bondExpr() (*expr, error) {
	p.inBond = true
	defer func() { p.inBond = false }()
	return p.lowAnd(p.bondPrimitive)
}

func (p *parser) bondPrimitive() (*expr, error) {
	c := p.peek()
	p.pos++
	switch c {
	case '-':
		return bondOrder(mol.Single), nil
	case '=':
		return bondOrder(mol.Double), nil
	case '#':
		return bondOrder(mol.Triple), nil
	case ':':
		return bondOrder(mol.Aromatic), nil
	case '~':
		return anyBond(), nil
	case '@':
		return ringBond(), nil
	case '/', '\\':
		if p.peek() == '?' {
			p.pos++
		}
		return bondOrder(mol.Single), nil
	}
	p.pos--
	if c == 0 {
		return nil, p.fail("bond expression ends early")
	}
	return nil, p.fail("unexpected %q in bond expression", c)
}

func (p *parser) atomPrimitive() (*expr, error) {
	c := p.peek()
	switch {
	case c == 0:
		return nil, p.fail("unclosed '['")
	case c == '$':
		return nil, p.fail("recursive SMARTS is not supported")
	case c == '*':
		p.pos++
		return anyAtom(), nil
	case c == '#':
		p.pos++
		if !isDigit(p.peek()) {
			return nil, p.fail("'#' needs an atomic number")
		}
		return element(p.number()), nil
	case isDigit(c):
		return isotope(p.number()), nil
	case c == '+' || c == '-':
		return charge(p.charge()), nil
	case c == '@':
		p.chirality()
		return anyAtom(), nil
	}

	// element symbols take precedence over one-letter primitives when the
	// two letters name a real element (Hg, Cl, se, ...)
	if e, ok := p.symbol(); ok {
		return e, nil
	}

	p.pos++
	switch c {
	case 'a':
		return aromaticAtom(true), nil
	case 'A':
		return aromaticAtom(false), nil
	case 'H':
		return totalH(p.count(1)), nil
	case 'D':
		return degree(p.count(1)), nil
	case 'X':
		return connectivity(p.count(1)), nil
	case 'v':
		return valence(p.count(1)), nil
	case 'h':
		return implicitH(p.count(-1)), nil
	case 'R':
		return ringMembership(p.count(-1)), nil
	case 'r':
		return ringSize(p.count(-1)), nil
	case 'x':
		return ringConnectivity(p.count(-1)), nil
	}
	p.pos--
	return nil, p.fail("unknown atom primitive %q", c)
}

// symbol reads an element symbol inside brackets. Upper-case symbols
// match aliphatic atoms, lower-case ones aromatic atoms.
func (p *parser) symbol() (*expr, bool) {
	rest := p.src[p.pos:]
	if len(rest) >= 2 {
		if z, ok := organicAromatic[rest[:2]]; ok {
			p.pos += 2
			return elementAromatic(z, true), true
		}
		if isUpper(rest[0]) && isLower(rest[1]) {
			if z, ok := mol.AtomicNumber(rest[:2]); ok {
				p.pos += 2
				return elementAromatic(z, false), true
			}
		}
	}
	if len(rest) == 0 {
		return nil, false
	}
	switch rest[0] {
	case 'H', 'D', 'X', 'R', 'A':
		return nil, false
	}
	if z, ok := organicAromatic[rest[:1]]; ok {
		p.pos++
		return elementAromatic(z, true), true
	}
	if isUpper(rest[0]) {
		if z, ok := mol.AtomicNumber(rest[:1]); ok {
			p.pos++
			return elementAromatic(z, false), true
		}
	}
	return nil, false
}

// count reads an optional number, returning def when none follows.
func (p *parser) count(def int) int {
	if !isDigit(p.peek()) {
		return def
	}
	return p.number()
}

func (p *parser) number() int {
	n := 0
	for isDigit(p.peek()) {
		n = n*10 + int(p.src[p.pos]-'0')
		p.pos++
	}
	return n
}

// charge reads +, ++, +2, -, --, -3.
func (p *parser) charge() int {
	sign := p.src[p.pos]
	p.pos++
	if isDigit(p.peek()) {
		n := p.number()
		if sign == '-' {
			return -n
		}
		return n
	}
	n := 1
	for p.peek() == sign {
		n++
		p.pos++
	}
	if sign == '-' {
		return -n
	}
	return n
}

// chirality skips @, @@, @TH1, @SP2, @OH12 and a trailing '?'.
func (p *parser) chirality() {
	p.pos++
	if p.peek() == '@' {
		p.pos++
	}
	for _, class := range []string{"TH", "AL", "SP", "TB", "OH"} {
		if strings.HasPrefix(p.src[p.pos:], class) {
			p.pos += len(class)
			p.number()
			break
		}
	}
	if p.peek() == '?' {
		p.pos++
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

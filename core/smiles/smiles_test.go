package smiles

import (
	"errors"
	"io"
	"strings"
	"testing"

	"meisenheimer-core/mol"
)

func mustParse(t *testing.T, s string) *mol.Molecule {
	t.Helper()
	m, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return m
}

func TestParseEthanol(t *testing.T) {
	m := mustParse(t, "CCO")
	if len(m.Atoms) != 3 || len(m.Bonds) != 2 {
		t.Fatalf("atoms=%d bonds=%d", len(m.Atoms), len(m.Bonds))
	}
	if got := m.Formula(); got != "C2H6O" {
		t.Errorf("formula %q", got)
	}
}

func TestParseAromaticAndKekuleAgree(t *testing.T) {
	for _, s := range []string{"c1ccccc1", "C1=CC=CC=C1", "C=1C=CC=CC=1"} {
		m := mustParse(t, s)
		for i, a := range m.Atoms {
			if !a.Aromatic || a.HCount != 1 {
				t.Errorf("%s atom %d: aromatic=%v H=%d", s, i, a.Aromatic, a.HCount)
			}
		}
		if got := Write(m); got != "c1ccccc1" {
			t.Errorf("Write(%s) = %q", s, got)
		}
	}
}

func TestParseBracketAtoms(t *testing.T) {
	m := mustParse(t, "[13CH3][N+](=O)[O-]")
	if m.Atoms[0].Isotope != 13 || m.Atoms[0].HCount != 3 {
		t.Errorf("isotope atom: %+v", m.Atoms[0])
	}
	if m.Atoms[1].Charge != 1 || m.Atoms[3].Charge != -1 {
		t.Errorf("charges: %+v", m.Atoms)
	}
	if o := m.Bonds[m.BondBetween(1, 2)].Order; o != mol.Double {
		t.Errorf("N=O order %v", o)
	}

	p := mustParse(t, "c1cc[nH]c1")
	if !p.Atoms[3].Aromatic || p.Atoms[3].HCount != 1 {
		t.Errorf("pyrrole nitrogen: %+v", p.Atoms[3])
	}

	q := mustParse(t, "[Fe+2].[Cl-].[Cl-]")
	if q.Atoms[0].Charge != 2 || q.Atoms[1].Charge != -1 || len(q.Bonds) != 0 {
		t.Errorf("salt: %+v", q.Atoms)
	}

	c := mustParse(t, "N[C@@H](C)C(=O)O")
	if c.Atoms[1].HCount != 1 {
		t.Errorf("chiral CH lost hydrogen: %+v", c.Atoms[1])
	}
}

func TestParseFoldsExplicitHydrogens(t *testing.T) {
	m := mustParse(t, "[H]C([H])([H])O")
	if len(m.Atoms) != 2 || m.Atoms[0].HCount != 3 || m.Atoms[1].HCount != 1 {
		t.Fatalf("methanol with explicit H: %+v", m.Atoms)
	}
}

func TestParseNonRingAromaticBondBecomesSingle(t *testing.T) {
	m := mustParse(t, "c1ccccc1c1ccccc1")
	bi := m.BondBetween(5, 6)
	if bi < 0 || m.Bonds[bi].Order != mol.Single {
		t.Fatalf("biphenyl linker should be single, got %+v", m.Bonds)
	}
	if got := Write(m); got != "c1ccccc1-c1ccccc1" {
		t.Errorf("Write = %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"",
		"C1CC",
		"C(C",
		"C)C",
		"[C",
		"Xy",
		"C=",
		"=C",
		"C==C",
		"C%1",
		"cc",
		"C$C",
		"[Zz]",
		"C1CC=1C-1",
	}
	for _, s := range bad {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", s)
		}
	}
	_, err := ParseGraph("CC(")
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("want *SyntaxError, got %T %v", err, err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	tests := []struct{ in, want string }{
		{"CC(=O)O", "CC(=O)O"},
		{"Clc1ccc(cc1)[N+](=O)[O-]", "Clc1ccc(cc1)[N+](=O)[O-]"},
		{"ClC1=CC=C(C=C1)[N+](=O)[O-]", "Clc1ccc(cc1)[N+](=O)[O-]"},
		{"C#N", "C#N"},
		{"O=[N+]([O-])c1cccc(c1)N(=O)=O", "O=[N+]([O-])c1cccc(c1)N(=O)=O"},
		{"C1CC1C1CC1", "C1CC1C1CC1"},
		{"[NH4+].[Cl-]", "[NH4+].[Cl-]"},
		{"c1ccc2ccccc2c1", "c1ccc2ccccc2c1"},
	}
	for _, tc := range tests {
		got := Write(mustParse(t, tc.in))
		if got != tc.want {
			t.Errorf("Write(Parse(%q)) = %q, want %q", tc.in, got, tc.want)
			continue
		}
		again := mustParse(t, got)
		if again.Formula() != mustParse(t, tc.in).Formula() {
			t.Errorf("%q: formula changed on re-read", tc.in)
		}
	}
}

func TestWriteKeepsStereo(t *testing.T) {
	tests := []struct{ in, want string }{
		{"C[C@@H](N)c1ccc(Cl)c(c1)[N+](=O)[O-]", "C[C@@H](N)c1ccc(Cl)c(c1)[N+](=O)[O-]"},
		{"C[C@H](N)c1ccc(Cl)c(c1)[N+](=O)[O-]", "C[C@H](N)c1ccc(Cl)c(c1)[N+](=O)[O-]"},
		{"F/C=C/c1ccc(Cl)c(c1)[N+](=O)[O-]", "F/C=C/c1ccc(Cl)c(c1)[N+](=O)[O-]"},
		{"F/C=C\\c1ccc(Cl)c(c1)[N+](=O)[O-]", "F/C=C\\c1ccc(Cl)c(c1)[N+](=O)[O-]"},
		{"[C@@H](F)(Cl)Br", "[C@@H](F)(Cl)Br"},
		{"N[C@@TH2H](C)C(=O)O", "N[C@@H](C)C(=O)O"},
		{"C[S@](=O)CC", "C[S@](=O)CC"},
		// a ring bond listed first is an odd shift of the neighbour order
		{"[C@]1(F)(Cl)Br.I1", "[C@@](F)(Cl)(Br)I"},
		// the folded hydrogen moves behind the atom it hangs off
		{"F[C@]([H])(Cl)Br", "F[C@H](Cl)Br"},
		{"F/C=C/1.F1", "F/C=C/F"},
		// a mark on the closing digit reads from the closing atom
		{"F/C=C1.F/1", "F/C=C\\F"},
		// unsupported classes and impossible centres are dropped
		{"F[C@SP1](Cl)(Br)I", "FC(Cl)(Br)I"},
		{"[C@H2](F)Cl", "C(F)Cl"},
	}
	for _, tc := range tests {
		got := Write(mustParse(t, tc.in))
		if got != tc.want {
			t.Errorf("Write(Parse(%q)) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseChiralTagsAreOrderIndependent(t *testing.T) {
	// the same centre spelled with two neighbours swapped and the tag flipped
	a := mustParse(t, "F[C@](Cl)(Br)I")
	b := mustParse(t, "F[C@@](Cl)(I)Br")
	order := func(m *mol.Molecule, syms ...string) []int {
		var out []int
		for _, s := range syms {
			for i, at := range m.Atoms {
				if at.Symbol() == s {
					out = append(out, i)
				}
			}
		}
		return out
	}
	ca := a.ChiralityAlong(1, order(a, "F", "Cl", "Br", "I"))
	cb := b.ChiralityAlong(1, order(b, "F", "Cl", "Br", "I"))
	if ca == mol.ChiralNone || ca != cb {
		t.Errorf("tags differ: %v vs %v", ca, cb)
	}
}

func TestReaderNamesBlankLinesAndErrors(t *testing.T) {
	in := strings.Join([]string{
		"CCO ethanol",
		"",
		"c1ccccc1\tbenzene ring",
		"C1CC broken",
		"O",
	}, "\n")
	r := NewReader(strings.NewReader(in), false)

	m, err := r.Next()
	if err != nil || m.Name != "ethanol" {
		t.Fatalf("first: %v %+v", err, m)
	}
	m, err = r.Next()
	if err != nil || m.Name != "benzene ring" || r.Line() != 3 {
		t.Fatalf("second: %v name=%q line=%d", err, m.Name, r.Line())
	}
	_, err = r.Next()
	var re *RecordError
	if !errors.As(err, &re) || re.Line != 4 {
		t.Fatalf("want RecordError on line 4, got %v", err)
	}
	m, err = r.Next()
	if err != nil || m.Formula() != "H2O" {
		t.Fatalf("after error: %v %+v", err, m)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("want EOF, got %v", err)
	}
}

func TestReaderTitleLine(t *testing.T) {
	r := NewReader(strings.NewReader(Title+"\nCC ethane\n"), true)
	m, err := r.Next()
	if err != nil || m.Name != "ethane" {
		t.Fatalf("got %v %+v", err, m)
	}
}

func TestFormatLine(t *testing.T) {
	m := mustParse(t, "OCC")
	m.Name = "  ethanol "
	if got := FormatLine(m); got != "OCC ethanol" {
		t.Errorf("FormatLine = %q", got)
	}
	m.Name = ""
	if got := FormatLine(m); got != "OCC" {
		t.Errorf("FormatLine without name = %q", got)
	}
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"C\n", 1},
		{"C\nCC\n", 2},
		{"C\nCC", 2},
		{"C\n\n\n", 3},
		{"\xff\xfe bad bytes\n", 1},
	}
	for _, tc := range tests {
		got, err := CountLines(strings.NewReader(tc.in))
		if err != nil || got != tc.want {
			t.Errorf("CountLines(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
	}
}

// core/mol/elements.go
package mol

// symbols is indexed by atomic number; 0 is the wildcard atom.
var symbols = [...]string{
	"*",
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd",
	"In", "Sn", "Sb", "Te", "I", "Xe",
	"Cs", "Ba", "La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy",
	"Ho", "Er", "Tm", "Yb", "Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt",
	"Au", "Hg", "Tl", "Pb", "Bi", "Po", "At", "Rn",
	"Fr", "Ra", "Ac", "Th", "Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf",
	"Es", "Fm", "Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

var bySymbol = func() map[string]int {
	m := make(map[string]int, len(symbols))
	for z, s := range symbols {
		m[s] = z
	}
	return m
}()

// Common atomic numbers.
const (
	Hydrogen   = 1
	Boron      = 5
	Carbon     = 6
	Nitrogen   = 7
	Oxygen     = 8
	Fluorine   = 9
	Phosphorus = 15
	Sulfur     = 16
	Chlorine   = 17
	Selenium   = 34
	Bromine    = 35
	Iodine     = 53
)

// defaultValences lists allowed valences in ascending order for the
// elements whose hydrogen count may be implied.
var defaultValences = map[int][]int{
	Boron:      {3},
	Carbon:     {4},
	Nitrogen:   {3, 5},
	Oxygen:     {2},
	Fluorine:   {1},
	Phosphorus: {3, 5},
	Sulfur:     {2, 4, 6},
	Chlorine:   {1},
	Bromine:    {1},
	Iodine:     {1},
	Selenium:   {2, 4, 6},
}

// Symbol returns the element symbol for atomic number z ("?" if unknown).
func Symbol(z int) string {
	if z < 0 || z >= len(symbols) {
		return "?"
	}
	return symbols[z]
}

// AtomicNumber looks up an element symbol (case-sensitive, e.g. "Cl").
func AtomicNumber(sym string) (int, bool) {
	z, ok := bySymbol[sym]
	return z, ok
}

// Valences returns the default valences for z with charge applied.
// A charged atom takes the valences of its isoelectronic neighbour when
// that element is tabulated (N+ behaves like C, O- like F).
func Valences(z, charge int) []int {
	base := defaultValences[z]
	if len(base) == 0 || charge == 0 {
		return base
	}
	if v, ok := defaultValences[z-charge]; ok {
		return v
	}
	abs := charge
	if abs < 0 {
		abs = -abs
	}
	out := make([]int, 0, len(base))
	for _, v := range base {
		if v-abs >= 0 {
			out = append(out, v-abs)
		}
	}
	return out
}

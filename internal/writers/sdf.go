package writers

import "meisenheimer-core/molfile"

func init() {
	RegisterMolecule("sdf", molfile.Write)
}

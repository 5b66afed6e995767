package writers

import (
	"io"

	"meisenheimer-core/mol"
	"meisenheimer-core/smiles"
)

func init() {
	RegisterMolecule("smi", writeSMILES)
	RegisterHeader("smi", func(w io.Writer) error {
		_, err := io.WriteString(w, smiles.Title+"\n")
		return err
	})
}

func writeSMILES(w io.Writer, m *mol.Molecule) error {
	_, err := io.WriteString(w, smiles.FormatLine(m)+"\n")
	return err
}

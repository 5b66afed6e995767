package appcore

import (
	"fmt"
	"io"

	"meisenheimer-core/chemio"
	"meisenheimer-core/mol"

	"meisenheimer/internal/writers"
)

// MoleculeWriterFactory picks the output format from the output path.
type MoleculeWriterFactory struct {
	Format string // registry key: "smi" or "sdf"
	Header bool
}

// NewMoleculeWriterFactory derives the format from path's suffix. The
// SMILES header is only written when titleLine is set.
func NewMoleculeWriterFactory(path string, titleLine bool) (MoleculeWriterFactory, error) {
	f := chemio.DetectFormat(path)
	if f == chemio.Unknown {
		return MoleculeWriterFactory{}, fmt.Errorf("%s: %w", path, chemio.ErrUnknownFormat)
	}
	return MoleculeWriterFactory{Format: f.String(), Header: titleLine && f == chemio.SMILES}, nil
}

func (w MoleculeWriterFactory) Start(out io.Writer, bufSize int) (chan<- *mol.Molecule, <-chan error) {
	return writers.StartMoleculeWriter(out, w.Format, w.Header, bufSize)
}

// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"

	"meisenheimer-core/mol"
)

// Writer registries (format → handler). Register in init() blocks from the
// per-format files.
var (
	MoleculeWriters = map[string]func(w io.Writer, m *mol.Molecule) error{}
	HeaderWriters   = map[string]func(w io.Writer) error{}
)

// Register helpers (idempotent last-wins)
func RegisterMolecule(format string, fn func(io.Writer, *mol.Molecule) error) {
	MoleculeWriters[format] = fn
}
func RegisterHeader(format string, fn func(io.Writer) error) { HeaderWriters[format] = fn }

// WriteMolecule dispatches one record to the writer registered for format.
func WriteMolecule(format string, w io.Writer, m *mol.Molecule) error {
	fn, ok := MoleculeWriters[format]
	if !ok {
		return fmt.Errorf("unknown molecule format %q (no writer registered)", format)
	}
	return fn(w, m)
}

// WriteHeader writes the format's header; formats without one write nothing.
func WriteHeader(format string, w io.Writer) error {
	if fn, ok := HeaderWriters[format]; ok {
		return fn(w)
	}
	return nil
}

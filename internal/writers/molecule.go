package writers

import (
	"io"

	"meisenheimer-core/mol"
)

// StartMoleculeWriter spins up a writer goroutine that serializes molecules
// in arrival order. After a write error the rest of the channel is drained
// so senders never block; the first error is sent on the error channel
// once the input channel is closed.
func StartMoleculeWriter(out io.Writer, format string, header bool, bufSize int) (chan<- *mol.Molecule, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan *mol.Molecule, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		if _, ok := MoleculeWriters[format]; !ok {
			err = WriteMolecule(format, out, nil)
		} else if header {
			err = WriteHeader(format, out)
		}
		for m := range in {
			if err != nil {
				continue
			}
			err = WriteMolecule(format, out, m)
		}
		errCh <- err
	}()

	return in, errCh
}

// core/chemio/stream.go
package chemio

import (
	"context"
	"errors"
	"fmt"
	"io"

	"meisenheimer-core/mol"
	"meisenheimer-core/molfile"
	"meisenheimer-core/smiles"
)

// Options tune how input files are read.
type Options struct {
	// TitleLine marks SMILES files whose first line is a column header.
	TitleLine bool
}

// Record is one molecule read from a file. Exactly one of Mol and Err is
// set; Err carries the file and line of a record that could not be parsed.
type Record struct {
	Index int // 0-based position of the record in its file
	Mol   *mol.Molecule
	Err   error
}

// moleculeReader is satisfied by the SMILES and SDF readers.
type moleculeReader interface {
	Next() (*mol.Molecule, error)
}

func newMoleculeReader(f Format, r io.Reader, opt Options) moleculeReader {
	if f == SDF {
		return molfile.NewReader(r)
	}
	return smiles.NewReader(r, opt.TitleLine)
}

// StreamPathCtx reads every record of path in file order and passes it to
// emit. Unparsable records are delivered with Err set; I/O failures and
// errors returned by emit stop the stream. Cancellation via ctx is checked
// between records.
func StreamPathCtx(ctx context.Context, path string, opt Options, emit func(Record) error) error {
	f, err := requireFormat(path)
	if err != nil {
		return err
	}
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	r := newMoleculeReader(f, rc, opt)
	for idx := 0; ; idx++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		m, err := r.Next()
		if err == io.EOF {
			return nil
		}
		rec := Record{Index: idx, Mol: m}
		if err != nil {
			if !isRecordError(err) {
				return fmt.Errorf("%s: %w", path, err)
			}
			rec = Record{Index: idx, Err: fmt.Errorf("%s: %w", path, err)}
		}
		if err := emit(rec); err != nil {
			return err
		}
	}
}

func isRecordError(err error) bool {
	var se *smiles.RecordError
	var me *molfile.RecordError
	return errors.As(err, &se) || errors.As(err, &me)
}

// CountPath counts the molecules in path without parsing them: lines for
// SMILES (less the header when TitleLine is set) and $$$$ lines for SDF.
func CountPath(path string, opt Options) (int, error) {
	f, err := requireFormat(path)
	if err != nil {
		return 0, err
	}
	rc, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	if f == SDF {
		n, err := molfile.CountRecords(rc)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
		return n, nil
	}
	n, err := smiles.CountLines(rc)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	if opt.TitleLine && n > 0 {
		n--
	}
	return n, nil
}

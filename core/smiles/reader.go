// core/smiles/reader.go
package smiles

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"meisenheimer-core/mol"
)

// Title is the header line written and skipped when a file carries one.
const Title = "SMILES Name"

// Reader yields one molecule per non-blank line. The first
// whitespace-separated field is the SMILES; the rest of the line is the name.
type Reader struct {
	sc        *bufio.Scanner
	line      int
	titleLine bool
}

// NewReader returns a Reader over r. If titleLine is set, the first line
// is treated as a column header and skipped.
func NewReader(r io.Reader, titleLine bool) *Reader {
	sc := bufio.NewScanner(r)
	const maxLine = 16 * 1024 * 1024
	sc.Buffer(make([]byte, 64*1024), maxLine)
	return &Reader{sc: sc, titleLine: titleLine}
}

// Line is the number of the line last read (1-based).
func (r *Reader) Line() int { return r.line }

// Next returns the next molecule, io.EOF at the end of input, or a
// *RecordError for an unparsable line. After a RecordError the reader can
// continue with the following line.
func (r *Reader) Next() (*mol.Molecule, error) {
	for r.sc.Scan() {
		r.line++
		if r.line == 1 && r.titleLine {
			continue
		}
		text := strings.TrimSpace(r.sc.Text())
		if text == "" {
			continue
		}
		m, err := ParseLine(text)
		if err != nil {
			return nil, &RecordError{Line: r.line, Err: err}
		}
		return m, nil
	}
	if err := r.sc.Err(); err != nil {
		return nil, fmt.Errorf("smiles scan: %w", err)
	}
	return nil, io.EOF
}

// RecordError is a parse failure confined to one input line.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *RecordError) Unwrap() error { return e.Err }

// ParseLine parses "SMILES [name...]".
func ParseLine(line string) (*mol.Molecule, error) {
	line = strings.TrimSpace(line)
	smi, name := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		smi, name = line[:i], strings.TrimSpace(line[i+1:])
	}
	m, err := Parse(smi)
	if err != nil {
		return nil, err
	}
	m.Name = name
	return m, nil
}

// FormatLine renders one output line (without newline): the SMILES and,
// when the molecule has one, its name.
func FormatLine(m *mol.Molecule) string {
	s := Write(m)
	if name := strings.TrimSpace(m.Name); name != "" {
		return s + " " + name
	}
	return s
}

// CountLines counts lines the way a line iterator sees them: every
// newline ends a line and a trailing unterminated line counts too.
// Content is never decoded.
func CountLines(r io.Reader) (int, error) {
	buf := make([]byte, 64*1024)
	n := 0
	last := byte('\n')
	for {
		k, err := r.Read(buf)
		if k > 0 {
			n += bytes.Count(buf[:k], []byte{'\n'})
			last = buf[k-1]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	if last != '\n' {
		n++
	}
	return n, nil
}

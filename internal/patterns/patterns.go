// internal/patterns/patterns.go
package patterns

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"meisenheimer-core/smarts"
)

// DefaultName is how the bundled set is referred to in messages.
const DefaultName = "meisenheimer.smarts"

//go:embed meisenheimer.smarts
var bundled string

// Pattern is one compiled line of a definitions file.
type Pattern struct {
	Line   int
	Source string
	Query  *smarts.Query
}

// Default compiles the bundled definitions.
func Default() ([]Pattern, error) {
	return Read(DefaultName, strings.NewReader(bundled))
}

// Load reads definitions from path; an empty path means the bundled set.
func Load(path string) ([]Pattern, error) {
	if path == "" {
		return Default()
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Read(path, fh)
}

// Read parses one SMARTS per line. Errors carry name:line context.
func Read(name string, r io.Reader) ([]Pattern, error) {
	var list []Pattern
	sc := bufio.NewScanner(r)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		// a trailing name column is allowed, as in .smi files
		if f := strings.Fields(line); len(f) > 0 {
			line = f[0]
		}
		q, err := smarts.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d %w", name, ln, err)
		}
		list = append(list, Pattern{Line: ln, Source: line, Query: q})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%s: no patterns", name)
	}
	return list, nil
}

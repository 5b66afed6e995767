// internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	cmd.Dir = "../.." // module root
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	app := []string{
		"meisenheimer/internal/appcore", "meisenheimer/internal/app",
		"meisenheimer/internal/cli", "meisenheimer/cmd/",
	}
	bans := map[string][]string{
		"meisenheimer/internal/progress": {"meisenheimer/internal/"},
		"meisenheimer/internal/runutil":  {"meisenheimer/internal/"},
		"meisenheimer/internal/patterns": {"meisenheimer/internal/"},
		"meisenheimer/internal/filter": append([]string{
			"meisenheimer/internal/pipeline", "meisenheimer/internal/writers",
			"meisenheimer/internal/progress",
		}, app...),
		"meisenheimer/internal/pipeline": append([]string{
			"meisenheimer/internal/writers", "meisenheimer/internal/filter",
			"meisenheimer/internal/progress",
		}, app...),
		"meisenheimer/internal/writers": append([]string{
			"meisenheimer/internal/pipeline", "meisenheimer/internal/filter",
		}, app...),
		"meisenheimer/internal/cliutil": app,
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "meisenheimer/") {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if !strings.HasPrefix(imp, prefix) {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, "meisenheimer/") {
					continue
				}
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}

// internal/cliutil/cliutil.go
package cliutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"meisenheimer-core/chemio"
)

// ResolveInputs turns the -i value into an ordered list of absolute paths.
//
// A directory yields every entry directly inside it that is, or links
// to, a regular file and whose name ends in .smi or .sdf (optionally
// .gz), in name order. Anything else is
// a comma-separated list; entries are trimmed, globs are expanded and
// the rest are taken as-is without an existence check.
func ResolveInputs(arg string) ([]string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, errors.New("no input given")
	}
	if st, err := os.Stat(arg); err == nil && st.IsDir() {
		return listDir(arg)
	}
	var parts []string
	for _, p := range strings.Split(arg, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("no input paths in %q", arg)
	}
	expanded, err := ExpandPositionals(parts)
	if err != nil {
		return nil, err
	}
	return absAll(expanded)
}

func listDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}
	var out []string
	for _, e := range entries {
		if !chemio.HasMoleculeSuffix(e.Name()) {
			continue
		}
		fn := filepath.Join(dir, e.Name())
		if !e.Type().IsRegular() {
			// symlinks count when they resolve to a regular file
			st, err := os.Stat(fn)
			if err != nil || !st.Mode().IsRegular() {
				continue
			}
		}
		out = append(out, fn)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no *.smi or *.sdf files in %s", dir)
	}
	return absAll(out)
}

func absAll(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		a, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", p, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandPositionals expands any globs among path-like arguments. A glob
// that matches nothing is an error; plain paths pass through untouched.
func ExpandPositionals(args []string) ([]string, error) {
	var out []string
	for _, a := range args {
		if hasGlobMeta(a) {
			m, err := filepath.Glob(a)
			if err != nil {
				return nil, fmt.Errorf("bad glob %q: %v", a, err)
			}
			if len(m) == 0 {
				return nil, fmt.Errorf("no input matched %q", a)
			}
			out = append(out, m...)
		} else {
			out = append(out, a)
		}
	}
	return out, nil
}

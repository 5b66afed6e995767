// core/chemio/format.go
package chemio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a molecule file format.
type Format int

const (
	Unknown Format = iota
	SMILES
	SDF
)

func (f Format) String() string {
	switch f {
	case SMILES:
		return "smi"
	case SDF:
		return "sdf"
	default:
		return "unknown"
	}
}

// ErrUnknownFormat is returned for paths without a .smi or .sdf suffix.
var ErrUnknownFormat = errors.New("unsupported file format (want .smi or .sdf, optionally .gz)")

// DetectFormat decides the format from the exact, case-insensitive file
// suffix; a trailing .gz is ignored. "my.smile.sdf" is SDF and
// "notes.smiles" is unknown.
func DetectFormat(path string) Format {
	name := strings.ToLower(filepath.Base(path))
	name = strings.TrimSuffix(name, ".gz")
	switch {
	case strings.HasSuffix(name, ".smi"):
		return SMILES
	case strings.HasSuffix(name, ".sdf"):
		return SDF
	}
	return Unknown
}

// IsCompressed reports whether path names a gzip file by suffix.
func IsCompressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}

// HasMoleculeSuffix reports whether a directory entry should be picked up
// as an input file.
func HasMoleculeSuffix(name string) bool {
	return DetectFormat(name) != Unknown
}

func requireFormat(path string) (Format, error) {
	f := DetectFormat(path)
	if f == Unknown {
		return Unknown, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	return f, nil
}

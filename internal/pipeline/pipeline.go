// internal/pipeline/pipeline.go
package pipeline

import (
	"context"

	"meisenheimer-core/chemio"
)

// Config controls how inputs are read.
type Config struct {
	TitleLine bool // SMILES inputs start with a header line
}

func (c Config) readOptions() chemio.Options {
	return chemio.Options{TitleLine: c.TitleLine}
}

// Item is one record together with the file it came from.
type Item struct {
	Path string
	chemio.Record
}

// CountMolecules sums the record counts of every input.
func CountMolecules(ctx context.Context, cfg Config, files []string) (int, error) {
	total := 0
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := chemio.CountPath(f, cfg.readOptions())
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// ForEachMolecule streams every record of every file, in file order and
// then record order, to visit. Records that failed to parse are visited
// too, with Err set; deciding what to do with them is up to the caller.
func ForEachMolecule(ctx context.Context, cfg Config, files []string, visit func(Item) error) error {
	for _, f := range files {
		path := f
		err := chemio.StreamPathCtx(ctx, path, cfg.readOptions(), func(rec chemio.Record) error {
			return visit(Item{Path: path, Record: rec})
		})
		if err != nil {
			return err
		}
	}
	return ctx.Err()
}

// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"meisenheimer-core/mol"
	"meisenheimer-core/smiles"

	"meisenheimer/internal/appshell"
	"meisenheimer/internal/cmdutil"
	"meisenheimer/internal/filter"
	"meisenheimer/internal/pipeline"
	"meisenheimer/internal/progress"
	"meisenheimer/internal/runutil"
	"meisenheimer/internal/writers"
)

// ProgressInfo labels the progress line.
const ProgressInfo = "Progress"

type Options struct {
	Inputs []string
	Output string

	TitleLine   bool
	SkipInvalid bool
	Unique      bool
	UniqueCap   int

	Quiet           bool
	NoMatchExitCode int
}

// Run counts the inputs, then streams every molecule through f and writes
// the kept ones to o.Output. Progress and the summary go to stdout,
// diagnostics to stderr. It returns the process exit code.
func Run(parent context.Context, stdout, stderr io.Writer, o Options, f *filter.Filter) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	cfg := pipeline.Config{TitleLine: o.TitleLine}
	total, err := pipeline.CountMolecules(ctx, cfg, o.Inputs)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return appshell.ExitCanceled
		}
		fmt.Fprintln(stderr, err)
		return appshell.ExitRuntime
	}

	outPath, err := filepath.Abs(o.Output)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return appshell.ExitRuntime
	}
	wf, err := NewMoleculeWriterFactory(outPath, o.TitleLine)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return appshell.ExitUsage
	}
	file, err := writers.CreateFile(outPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return appshell.ExitRuntime
	}
	inCh, writeErr := wf.Start(file, 64)

	var bar io.Writer = outw
	if o.Quiet {
		bar = nil
	}
	tracker := progress.NewTracker(bar, ProgressInfo, total)

	var dedupe *runutil.Deduper
	if o.Unique {
		dedupe = runutil.NewDeduper(o.UniqueCap)
	}
	skipped := 0

	kept, perr := cmdutil.RunStream(
		ctx,
		cfg,
		o.Inputs,
		func(it pipeline.Item) (bool, *mol.Molecule, error) {
			if it.Err != nil {
				if !o.SkipInvalid {
					return false, nil, it.Err
				}
				cmdutil.Warnf(stderr, o.Quiet, "skipping %v", it.Err)
				skipped++
				tracker.Step()
				return false, nil, nil
			}
			keep := f.Keep(it.Mol)
			if keep && dedupe != nil && dedupe.Seen(smiles.Write(it.Mol)) {
				keep = false
			}
			tracker.Step()
			return keep, it.Mol, nil
		},
		func(m *mol.Molecule) error {
			select {
			case inCh <- m:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)
	werr := <-writeErr
	cerr := file.Close()

	if perr != nil {
		if !o.Quiet {
			// end the unfinished progress line
			_, _ = io.WriteString(outw, "\n")
		}
		if errors.Is(perr, context.Canceled) {
			return appshell.ExitCanceled
		}
		fmt.Fprintln(stderr, perr)
		return appshell.ExitRuntime
	}
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		fmt.Fprintf(stderr, "%s: %v\n", outPath, werr)
		return appshell.ExitRuntime
	}

	if !o.Quiet {
		tracker.Finish()
		fmt.Fprintf(outw, "Wrote %d of %d molecules to %s.\n", kept, tracker.Done(), outPath)
		if skipped > 0 {
			fmt.Fprintf(outw, "Skipped %d invalid molecules.\n", skipped)
		}
		if dedupe != nil && dedupe.Dropped() > 0 {
			fmt.Fprintf(outw, "Dropped %d duplicate molecules.\n", dedupe.Dropped())
		}
		fmt.Fprintf(outw, "Finished after %s.\n", progress.TimeToText(tracker.Elapsed().Seconds()))
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return appshell.ExitOK
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return appshell.ExitRuntime
	}

	if kept == 0 {
		return o.NoMatchExitCode
	}
	return appshell.ExitOK
}

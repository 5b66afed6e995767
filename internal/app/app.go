// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"meisenheimer/internal/appcore"
	"meisenheimer/internal/appshell"
	"meisenheimer/internal/cli"
	"meisenheimer/internal/cliutil"
	"meisenheimer/internal/filter"
	"meisenheimer/internal/patterns"
	"meisenheimer/internal/version"
	"meisenheimer/internal/writers"
)

// Name is the command name used in usage and version output.
const Name = "meisenheimer-filter"

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet(Name)
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		code := appshell.ExitOK
		if !errors.Is(err, flag.ErrHelp) {
			_, _ = fmt.Fprintln(stderr, err)
			code = appshell.ExitUsage
		}
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return appshell.ExitOK
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return appshell.ExitRuntime
		}
		return code
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", Name, version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return appshell.ExitOK
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return appshell.ExitRuntime
		}
		return appshell.ExitOK
	}

	if !opts.Quiet {
		_, _ = fmt.Fprintln(outw, cli.Banner)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return appshell.ExitOK
		}
	}

	inputs, err := cliutil.ResolveInputs(opts.Input)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return appshell.ExitUsage
	}

	pats, err := patterns.Load(opts.Patterns)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return appshell.ExitUsage
	}

	coreOpts := appcore.Options{
		Inputs: inputs, Output: opts.Output,
		TitleLine: opts.TitleLine, SkipInvalid: opts.SkipInvalid,
		Unique: opts.Unique, UniqueCap: opts.UniqueCap,
		Quiet: opts.Quiet, NoMatchExitCode: opts.NoMatchExitCode,
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return appshell.ExitOK
	}
	return appcore.Run(parent, stdout, stderr, coreOpts, filter.FromPatterns(pats))
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

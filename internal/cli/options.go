// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"meisenheimer-core/chemio"
)

// DefaultOutput is used when -o is not given.
const DefaultOutput = "./meisenheimer.smi"

// Options holds all CLI flags.
type Options struct {
	// Input / output
	Input    string // directory, or comma-separated file list
	Output   string
	Patterns string // SMARTS file; empty = bundled set

	// Reading / writing
	SkipInvalid bool
	TitleLine   bool
	Unique      bool
	UniqueCap   int

	// Misc
	Quiet           bool
	NoMatchExitCode int
	Version         bool
}

// NewFlagSet returns a configured FlagSet with the banner-headed usage.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	Usage(fs, name)
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.Input, "i", "", "directory containing input files or comma-separated input paths (*.smi, *.sdf) [*]")
	fs.StringVar(&opt.Output, "o", DefaultOutput, "path to output file (*.smi, *.sdf) ["+DefaultOutput+"]")
	fs.StringVar(&opt.Patterns, "patterns", "", "SMARTS file, one pattern per line [bundled]")

	fs.BoolVar(&opt.SkipInvalid, "skip-invalid", false, "warn and continue on unparsable molecules [false]")
	fs.BoolVar(&opt.TitleLine, "title-line", false, "SMILES files carry a header line [false]")
	fs.BoolVar(&opt.Unique, "unique", false, "drop molecules already written [false]")
	fs.IntVar(&opt.UniqueCap, "unique-cap", 200000, "molecules remembered by -unique [200000]")

	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress banner, progress and warnings [false]")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of -quiet")
	fs.IntVar(&opt.NoMatchExitCode, "no-match-exit-code", 0, "exit code when no molecule matched [0]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")
	fs.BoolVar(&help, "help", false, "show this help message [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	if fs.NArg() > 0 {
		return opt, fmt.Errorf("unexpected argument %q (use -i for inputs)", fs.Arg(0))
	}
	return opt, Validate(opt)
}

// Validate applies the CLI invariants.
func Validate(o Options) error {
	if strings.TrimSpace(o.Input) == "" {
		return errors.New("-i is required")
	}
	if strings.TrimSpace(o.Output) == "" {
		return errors.New("-o must not be empty")
	}
	if chemio.DetectFormat(o.Output) == chemio.Unknown {
		return fmt.Errorf("unsupported output format %q (want .smi or .sdf, optionally .gz)", o.Output)
	}
	if o.UniqueCap < 0 {
		return errors.New("-unique-cap must be ≥ 0")
	}
	if o.NoMatchExitCode < 0 || o.NoMatchExitCode > 255 {
		return errors.New("-no-match-exit-code must be in 0..255")
	}
	return nil
}

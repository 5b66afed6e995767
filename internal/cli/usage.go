// internal/cli/usage.go
package cli

import (
	"flag"
	"fmt"

	"meisenheimer/internal/version"
)

// Usage installs the help printer on fs.
func Usage(fs *flag.FlagSet, name string) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintln(out, Banner)
		fmt.Fprintf(out, "\nUsage: %s -i <dir | file[,file...]> [-o out.smi|out.sdf] [options]\n", name)
		fmt.Fprintf(out, "Version: %s\n", version.Version)

		fmt.Fprintln(out, "\nInput / output:")
		fmt.Fprintln(out, "  -i string                   Directory with *.smi/*.sdf files, or comma-separated paths [*]")
		fmt.Fprintf(out, "  -o string                   Output file; format from extension (.smi, .sdf, +.gz) [%s]\n", def("o"))
		fmt.Fprintln(out, "      -patterns file          SMARTS file, one pattern per line [bundled]")

		fmt.Fprintln(out, "\nReading / writing:")
		fmt.Fprintf(out, "      -skip-invalid           Warn and continue on unparsable molecules [%s]\n", def("skip-invalid"))
		fmt.Fprintf(out, "      -title-line             SMILES inputs start with a header; SMILES output gets one [%s]\n", def("title-line"))
		fmt.Fprintf(out, "      -unique                 Drop molecules whose SMILES was already written [%s]\n", def("unique"))
		fmt.Fprintf(out, "      -unique-cap int         Molecules remembered by -unique [%s]\n", def("unique-cap"))

		fmt.Fprintln(out, "\nMisc:")
		fmt.Fprintf(out, "  -q, -quiet                  Suppress banner, progress and warnings [%s]\n", def("quiet"))
		fmt.Fprintf(out, "      -no-match-exit-code int Exit code when no molecule matched [%s]\n", def("no-match-exit-code"))
		fmt.Fprintln(out, "  -v, -version                Print version and exit")
		fmt.Fprintln(out, "  -h, -help                   Show this help")
	}
}

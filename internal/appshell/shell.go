// Package appshell wraps a command's run function with signal handling and
// process exit.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Exit codes shared by the commands.
const (
	ExitOK       = 0
	ExitUsage    = 2   // bad flags, unresolvable inputs, bad patterns
	ExitRuntime  = 3   // I/O and parse failures
	ExitCanceled = 130 // SIGINT / SIGTERM
)

// RunFunc is the signature of a command entry point.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

func Main(run RunFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Exec(ctx, run, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// Exec runs run with argv (help when empty) and normalizes the exit code
// of a cancelled run.
func Exec(ctx context.Context, run RunFunc, argv []string, stdout, stderr io.Writer) int {
	if len(argv) == 0 {
		argv = []string{"-h"}
	}
	code := run(ctx, argv, stdout, stderr)
	if ctx.Err() != nil && code == ExitOK {
		code = ExitCanceled
	}
	return code
}

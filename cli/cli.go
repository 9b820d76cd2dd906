// Package cli provides the command-line interface for generating exercise
// sheets, solving triangles, rendering previews and serving the HTTP API.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Daniel-dg-conta1/math-Suite/config"
)

// Version information
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// osExit is a variable for os.Exit to allow testing
var osExit = os.Exit

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the CLI with the given arguments.
// This is the main entry point for the CLI.
func Run(args []string) {
	if len(args) < 2 {
		Usage()
		return
	}

	command := args[1]

	switch command {
	case "vectors":
		VectorsCommand(args)
	case "triangles":
		TrianglesCommand(args)
	case "solve":
		SolveCommand(args)
	case "preview":
		PreviewCommand(args)
	case "serve":
		ServeCommand(args)
	case "version":
		VersionCommand()
	case "help", "-h", "--help":
		Usage()
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		Usage()
		osExit(2)
	}
}

// Usage prints the CLI usage information.
func Usage() {
	name := progName()
	fmt.Fprintf(stdout, "mathsuite - vector and triangle exercise generator\n\n")
	fmt.Fprintf(stdout, "Usage: %s <command> [options] <args>\n\n", name)
	fmt.Fprintln(stdout, "Commands:")
	fmt.Fprintln(stdout, "  vectors    Generate a vector exercise sheet (PDF)")
	fmt.Fprintln(stdout, "  triangles  Generate a triangle exercise sheet (PDF)")
	fmt.Fprintln(stdout, "  solve      Solve a triangle from three measurements")
	fmt.Fprintln(stdout, "  preview    Render a vector or triangle diagram (SVG)")
	fmt.Fprintln(stdout, "  serve      Start the HTTP API")
	fmt.Fprintln(stdout, "  version    Show version information")
	fmt.Fprintln(stdout, "  help       Show this help message")
	fmt.Fprintln(stdout, "")
	fmt.Fprintf(stdout, "Use '%s <command> -h' for command-specific help\n", name)
	fmt.Fprintln(stdout, "")
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintf(stdout, "  %s vectors -n 6 -teacher -out key.pdf\n", name)
	fmt.Fprintf(stdout, "  %s triangles -mode grid -per-page 8\n", name)
	fmt.Fprintf(stdout, "  %s solve -case SAS 7 40 9\n", name)
	fmt.Fprintf(stdout, "  %s preview -resultant polar:10,30 cartesian:3,4 > v.svg\n", name)
}

// VersionCommand prints version information.
func VersionCommand() {
	fmt.Fprintf(stdout, "mathsuite version %s\n", Version)
	fmt.Fprintf(stdout, "Build time: %s\n", BuildTime)
}

func progName() string {
	if len(os.Args) > 0 {
		return os.Args[0]
	}
	return "mathsuite"
}

// newFlagSet creates a subcommand flag set that reports to stderr and
// leaves exiting to the caller.
func newFlagSet(name, synopsis, summary string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s %s %s\n\n", progName(), name, synopsis)
		fmt.Fprintln(stderr, summary)
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags parses args and exits on error. It reports false when the
// command must stop.
func parseFlags(fs *flag.FlagSet, args []string) bool {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			osExit(0)
			return false
		}
		osExit(2)
		return false
	}
	return true
}

// fail prints err and exits with status 1.
func fail(err error) {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	osExit(1)
}

// loadConfig reads the configuration file, or returns defaults when path
// is empty.
func loadConfig(path string) (*config.AppConfig, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadConfig(path)
}

// commandLogger builds the configured logger; -v raises it to debug.
func commandLogger(cfg *config.AppConfig, verbose bool) (*slog.Logger, func() error, error) {
	lc := cfg.Logging
	if verbose {
		lc.Level = "debug"
	}
	return lc.NewLogger()
}

// Command mathsuite generates vector and triangle exercise sheets.
//
// Usage:
//
//	mathsuite <command> [options] <args>
//
// Commands:
//
//	vectors    Generate a vector exercise sheet (PDF)
//	triangles  Generate a triangle exercise sheet (PDF)
//	solve      Solve a triangle from three measurements
//	preview    Render a vector or triangle diagram (SVG)
//	serve      Start the HTTP API
//	version    Show version information
//	help       Show help message
//
// Examples:
//
//	# Student sheet and answer key for six vector exercises
//	mathsuite vectors -n 6 -both -out list.pdf
//
//	# Solve a side-angle-side triangle
//	mathsuite solve -case SAS 7 40 9
//
//	# Serve the API with a configuration file
//	mathsuite serve -config mathsuite.yaml
package main

import (
	"os"

	"github.com/Daniel-dg-conta1/math-Suite/cli"
)

// These variables are set at build time using ldflags:
//
//	go build -ldflags "-X main.version=1.0.0 -X main.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/mathsuite
var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cli.Version = version
	cli.BuildTime = buildTime

	cli.Run(os.Args)
}

package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Daniel-dg-conta1/math-Suite/geom"
	"github.com/Daniel-dg-conta1/math-Suite/trig"
)

// SolveCommand implements the 'solve' command.
func SolveCommand(args []string) {
	fs := newFlagSet("solve", "[options] <v1> <v2> [v3]",
		"Solve a triangle. Inputs follow the case order:\n"+
			"  SSS: a b c   SAS: b A c   ASA: A c B   AAS: A B a   Right: a b")
	caseName := fs.String("case", "SSS", "Triangle case: SSS, SAS, ASA, AAS, Right")
	asJSON := fs.Bool("json", false, "Output the solution as JSON")
	if !parseFlags(fs, args[2:]) {
		return
	}
	if err := runSolve(*caseName, fs.Args(), *asJSON); err != nil {
		fail(err)
	}
}

func runSolve(caseName string, values []string, asJSON bool) error {
	c, err := trig.ParseCase(caseName)
	if err != nil {
		return err
	}
	if len(values) != c.Arity() {
		return fmt.Errorf("case %s needs %d values (%s), got %d",
			c, c.Arity(), strings.Join(c.Labels(), ", "), len(values))
	}
	v := make([]float64, 3)
	for i, raw := range values {
		v[i] = geom.ParseScalarOrZero(raw)
	}
	sol, err := trig.Solve(c, v[0], v[1], v[2])
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Case     trig.Case     `json:"case"`
			Given    []trig.Given  `json:"given"`
			Solution trig.Solution `json:"solution"`
		}{c, trig.GivenValues(c, v[0], v[1], v[2]), sol})
	}

	r := sol.Rounded()
	fmt.Fprintf(stdout, "Case %s:", c)
	for _, g := range trig.GivenValues(c, v[0], v[1], v[2]) {
		fmt.Fprintf(stdout, " %s=%s", g.Label, geom.FormatNumber(g.Value))
	}
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  a = %-8s A = %s°\n", geom.FormatNumber(r.SideA), geom.FormatNumber(r.AngleA))
	fmt.Fprintf(stdout, "  b = %-8s B = %s°\n", geom.FormatNumber(r.SideB), geom.FormatNumber(r.AngleB))
	fmt.Fprintf(stdout, "  c = %-8s C = %s°\n", geom.FormatNumber(r.SideC), geom.FormatNumber(r.AngleC))
	fmt.Fprintf(stdout, "  Area = %s  Perimeter = %s  Altitude(c) = %s\n",
		geom.FormatNumber(r.Area), geom.FormatNumber(r.Perimeter), geom.FormatNumber(r.Altitude))
	return nil
}

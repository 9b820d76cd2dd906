package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Daniel-dg-conta1/math-Suite/diagram"
	"github.com/Daniel-dg-conta1/math-Suite/geom"
	"github.com/Daniel-dg-conta1/math-Suite/preview"
	"github.com/Daniel-dg-conta1/math-Suite/trig"
)

// PreviewOptions contains options for the preview command.
type PreviewOptions struct {
	ConfigFile string
	Kind       string
	Case       string
	Resultant  bool
	Size       int
	Output     string
}

// PreviewCommand implements the 'preview' command.
func PreviewCommand(args []string) {
	var opts PreviewOptions
	fs := newFlagSet("preview", "[options] <values...>",
		"Render a diagram as SVG.\n\n"+
			"Vectors are given as kind:params, e.g. polar:10,30 cartesian:3,-4 legs:10,3,4.\n"+
			"Triangles take the raw case inputs, e.g. -kind triangle -case SAS 7 40 9.")
	fs.StringVar(&opts.ConfigFile, "config", "", "YAML configuration file")
	fs.StringVar(&opts.Kind, "kind", "vectors", "Diagram kind: vectors, triangle")
	fs.StringVar(&opts.Case, "case", "SSS", "Triangle case")
	fs.BoolVar(&opts.Resultant, "resultant", false, "Draw the resultant R of the vectors")
	fs.IntVar(&opts.Size, "size", preview.DefaultSize, "Canvas size in pixels")
	fs.StringVar(&opts.Output, "out", "-", "Output SVG file, - for stdout")
	if !parseFlags(fs, args[2:]) {
		return
	}
	if err := runPreview(&opts, fs.Args()); err != nil {
		fail(err)
	}
}

func runPreview(opts *PreviewOptions, values []string) error {
	cfg, err := loadConfig(opts.ConfigFile)
	if err != nil {
		return err
	}
	popts := preview.Options{Size: opts.Size, MinSeparation: cfg.Diagram.MinSeparation}

	render := func(w io.Writer) error {
		switch strings.ToLower(opts.Kind) {
		case "vectors", "vector":
			specs, err := vectorSpecs(values, opts.Resultant)
			if err != nil {
				return err
			}
			return preview.Vectors(w, specs, popts)
		case "triangle", "triangles":
			c, err := trig.ParseCase(opts.Case)
			if err != nil {
				return err
			}
			v := make([]float64, 3)
			for i := 0; i < len(values) && i < len(v); i++ {
				v[i] = geom.ParseScalarOrZero(values[i])
			}
			sol, err := trig.Solve(c, v[0], v[1], v[2])
			if err != nil {
				return err
			}
			return preview.Triangle(w, sol, popts)
		}
		return fmt.Errorf("unknown preview kind %q", opts.Kind)
	}

	if opts.Output == "-" || opts.Output == "" {
		return render(stdout)
	}
	return writeFile(opts.Output, func(f *os.File) error { return render(f) })
}

// vectorSpecs parses "kind:p1,p2[,p3]" arguments into given vectors V1..Vn.
func vectorSpecs(values []string, resultant bool) ([]diagram.VectorSpec, error) {
	specs := make([]diagram.VectorSpec, 0, len(values)+1)
	var sum []geom.Vector2
	for i, raw := range values {
		kind, params, ok := strings.Cut(raw, ":")
		if !ok {
			return nil, fmt.Errorf("vector %q: expected kind:params", raw)
		}
		p, err := geom.ParseParametrization(kind, strings.Split(params, ",")...)
		if err != nil {
			return nil, err
		}
		v := geom.Resolve(p)
		sum = append(sum, v)
		specs = append(specs, diagram.VectorSpec{
			ID:    i,
			Label: fmt.Sprintf("V%d", i+1),
			V:     v,
			Role:  diagram.RoleGiven,
		})
	}
	if resultant && len(sum) > 0 {
		specs = append(specs, diagram.VectorSpec{ID: len(sum), Label: "R", V: geom.Sum(sum...), Role: diagram.RoleResultant})
	}
	return specs, nil
}

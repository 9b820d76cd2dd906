package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Daniel-dg-conta1/math-Suite/config"
	"github.com/Daniel-dg-conta1/math-Suite/exercise"
	"github.com/Daniel-dg-conta1/math-Suite/sheet"
)

// GenerateOptions contains options shared by the vectors and triangles
// commands.
type GenerateOptions struct {
	ConfigFile string
	Count      int
	Seed       uint64
	Mode       string
	PerPage    int
	PageSize   string
	Locale     string
	Title      string
	Teacher    bool
	Both       bool
	Output     string
	JSONFile   string
	Verbose    bool
}

func (o *GenerateOptions) register(fs *flag.FlagSet, defaultOut string) {
	fs.StringVar(&o.ConfigFile, "config", "", "YAML configuration file")
	fs.IntVar(&o.Count, "n", 0, "Number of exercises (default from config)")
	fs.Uint64Var(&o.Seed, "seed", 0, "Random seed; 0 uses the configured seed or a fresh one")
	fs.StringVar(&o.Mode, "mode", "", "Sheet mode: full, grid")
	fs.IntVar(&o.PerPage, "per-page", 0, "Items per page in grid mode")
	fs.StringVar(&o.PageSize, "page-size", "", "Page size, e.g. A4, letter, a4-landscape")
	fs.StringVar(&o.Locale, "locale", "", "Sheet language: pt-BR, en")
	fs.StringVar(&o.Title, "title", "", "Sheet title")
	fs.BoolVar(&o.Teacher, "teacher", false, "Render the answer key instead of the student sheet")
	fs.BoolVar(&o.Both, "both", false, "Render the student sheet and the answer key")
	fs.StringVar(&o.Output, "out", defaultOut, "Output PDF file")
	fs.StringVar(&o.JSONFile, "json", "", "Also write the generated batch as JSON to this file")
	fs.BoolVar(&o.Verbose, "v", false, "Verbose logging")
}

// sheetConfig applies flag overrides to the configured sheet section.
func (o *GenerateOptions) sheetConfig(base config.SheetConfig) config.SheetConfig {
	if o.Mode != "" {
		base.Mode = o.Mode
	}
	if o.PerPage != 0 {
		base.ItemsPerPage = o.PerPage
	}
	if o.PageSize != "" {
		base.PageSize = o.PageSize
	}
	if o.Locale != "" {
		base.Locale = o.Locale
	}
	return base
}

type sheetOutput struct {
	path    string
	teacher bool
}

// outputs lists the files to render with their answer-key flag.
func (o *GenerateOptions) outputs() []sheetOutput {
	if !o.Both {
		return []sheetOutput{{o.Output, o.Teacher}}
	}
	base := strings.TrimSuffix(o.Output, ".pdf")
	return []sheetOutput{{o.Output, false}, {base + "-answer-key.pdf", true}}
}

// VectorsCommand implements the 'vectors' command.
func VectorsCommand(args []string) {
	var opts GenerateOptions
	fs := newFlagSet("vectors", "[options]", "Generate a vector exercise sheet.")
	opts.register(fs, "vectors.pdf")
	kinds := fs.String("kinds", "", "Comma-separated exercise kinds: 2, 3, 4, missing")
	if !parseFlags(fs, args[2:]) {
		return
	}
	if err := runVectors(&opts, *kinds); err != nil {
		fail(err)
	}
}

func runVectors(opts *GenerateOptions, kinds string) error {
	cfg, err := loadConfig(opts.ConfigFile)
	if err != nil {
		return err
	}
	logger, closeLog, err := commandLogger(cfg, opts.Verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	vc := cfg.Generator.Vectors
	if opts.Count != 0 {
		vc.Questions = opts.Count
	}
	if kinds != "" {
		vc.Kinds = splitList(kinds)
	}
	genCfg, err := vc.Generator()
	if err != nil {
		return err
	}

	gen := exercise.NewGenerator(cfg.Generator.Source(opts.Seed),
		exercise.WithMaxAttempts(cfg.Generator.MaxAttempts),
		exercise.WithLogger(logger))
	batch := gen.Vectors(genCfg)
	reportBatch(batch.Requested, len(batch.Items), batch.Dropped)
	if err := writeJSON(opts.JSONFile, batch); err != nil {
		return err
	}

	sc := opts.sheetConfig(cfg.Sheet)
	for _, out := range opts.outputs() {
		sopts, err := sc.Options(out.teacher)
		if err != nil {
			return err
		}
		sopts.Title = firstNonEmpty(opts.Title, cfg.Sheet.VectorTitle)
		sopts.MinSeparation = cfg.Diagram.MinSeparation
		if err := writeFile(out.path, func(f *os.File) error {
			return sheet.WriteVectors(f, batch.Items, sopts)
		}); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote %s\n", out.path)
	}
	return nil
}

// TrianglesCommand implements the 'triangles' command.
func TrianglesCommand(args []string) {
	var opts GenerateOptions
	fs := newFlagSet("triangles", "[options]", "Generate a triangle exercise sheet.")
	opts.register(fs, "triangles.pdf")
	cases := fs.String("cases", "", "Comma-separated cases: SSS, SAS, ASA, AAS, Right")
	if !parseFlags(fs, args[2:]) {
		return
	}
	if err := runTriangles(&opts, *cases); err != nil {
		fail(err)
	}
}

func runTriangles(opts *GenerateOptions, cases string) error {
	cfg, err := loadConfig(opts.ConfigFile)
	if err != nil {
		return err
	}
	logger, closeLog, err := commandLogger(cfg, opts.Verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	tc := cfg.Generator.Triangles
	if opts.Count != 0 {
		tc.Questions = opts.Count
	}
	if cases != "" {
		tc.Cases = splitList(cases)
	}
	genCfg, err := tc.Generator()
	if err != nil {
		return err
	}

	gen := exercise.NewGenerator(cfg.Generator.Source(opts.Seed),
		exercise.WithMaxAttempts(cfg.Generator.MaxAttempts),
		exercise.WithLogger(logger))
	batch := gen.Triangles(genCfg)
	reportBatch(batch.Requested, len(batch.Items), batch.Dropped)
	if err := writeJSON(opts.JSONFile, batch); err != nil {
		return err
	}

	sc := opts.sheetConfig(cfg.Sheet)
	for _, out := range opts.outputs() {
		sopts, err := sc.Options(out.teacher)
		if err != nil {
			return err
		}
		sopts.Title = firstNonEmpty(opts.Title, cfg.Sheet.TriangleTitle)
		if err := writeFile(out.path, func(f *os.File) error {
			return sheet.WriteTriangles(f, batch.Items, sopts)
		}); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote %s\n", out.path)
	}
	return nil
}

func reportBatch(requested, generated, dropped int) {
	fmt.Fprintf(stdout, "Generated %d of %d exercises", generated, requested)
	if dropped > 0 {
		fmt.Fprintf(stdout, " (%d dropped after exhausting the attempt budget)", dropped)
	}
	fmt.Fprintln(stdout)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// writeFile creates path and hands it to write. A partially written file
// is removed on error.
func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func writeJSON(path string, v any) error {
	if path == "" {
		return nil
	}
	return writeFile(path, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

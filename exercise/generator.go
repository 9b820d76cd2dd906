// Package exercise generates randomized, solvable vector and triangle
// exercises.
//
// Every generator call samples raw values from an injected Source, checks
// them with the domain solver and keeps only valid results. An exercise
// that cannot be produced within the attempt budget is dropped from the
// batch and counted in Batch.Dropped.
package exercise

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/Daniel-dg-conta1/math-Suite/trig"
)

// DefaultMaxAttempts is the attempt budget per exercise.
const DefaultMaxAttempts = 50

// Batch is the result of a generation run.
type Batch[T any] struct {
	Items     []T `json:"items"`
	Requested int `json:"requested"`
	Dropped   int `json:"dropped"`
}

// Generator produces exercise batches from a Source.
type Generator struct {
	src         Source
	logger      *slog.Logger
	maxAttempts int
}

// Option configures a Generator.
type Option func(*Generator)

// WithMaxAttempts overrides the attempt budget.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// WithLogger sets the logger used for dropped exercises.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator creates a generator drawing from src.
func NewGenerator(src Source, opts ...Option) *Generator {
	g := &Generator{
		src:         src,
		logger:      slog.Default(),
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) newID() uuid.UUID {
	id, err := uuid.NewRandomFromReader(sourceReader{g.src})
	if err != nil {
		return uuid.New()
	}
	return id
}

// retry calls try up to the attempt budget.
func retry[T any](g *Generator, try func() (T, bool)) (T, bool) {
	for i := 0; i < g.maxAttempts; i++ {
		if v, ok := try(); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Vector generates one vector exercise of the given kind.
func (g *Generator) Vector(cfg VectorConfig, kind VectorKind, number int) (VectorExercise, bool) {
	ex, ok := retry(g, func() (VectorExercise, bool) { return TryVector(g.src, cfg, kind) })
	if !ok {
		g.logger.Debug("vector exercise dropped",
			"number", number, "kind", string(kind), "attempts", g.maxAttempts)
		return VectorExercise{}, false
	}
	ex.ID = g.newID()
	ex.Number = number
	return ex, true
}

// Vectors generates cfg.Questions vector exercises. Kinds are picked at
// random from cfg.Kinds. Exercise numbers follow the requested position,
// so a dropped exercise leaves a gap.
func (g *Generator) Vectors(cfg VectorConfig) Batch[VectorExercise] {
	b := Batch[VectorExercise]{Requested: cfg.Questions}
	kinds := cfg.Kinds
	if len(kinds) == 0 {
		kinds = DefaultVectorConfig().Kinds
	}
	for n := 1; n <= cfg.Questions; n++ {
		ex, ok := g.Vector(cfg, kinds[g.src.Intn(len(kinds))], n)
		if !ok {
			b.Dropped++
			continue
		}
		b.Items = append(b.Items, ex)
	}
	return b
}

// RegenerateVector replaces an exercise with a fresh one of the same kind,
// keeping its ID and number. It returns the original when no valid
// replacement could be found.
func (g *Generator) RegenerateVector(ex VectorExercise, cfg VectorConfig) (VectorExercise, bool) {
	fresh, ok := g.Vector(cfg, ex.Kind, ex.Number)
	if !ok {
		return ex, false
	}
	fresh.ID = ex.ID
	return fresh, true
}

// Triangle generates one triangle exercise for case c.
func (g *Generator) Triangle(cfg TriangleConfig, c trig.Case, number int) (TriangleExercise, bool) {
	ex, ok := retry(g, func() (TriangleExercise, bool) { return TryTriangle(g.src, cfg, c) })
	if !ok {
		g.logger.Debug("triangle exercise dropped",
			"number", number, "case", c.String(), "attempts", g.maxAttempts)
		return TriangleExercise{}, false
	}
	ex.ID = g.newID()
	ex.Number = number
	return ex, true
}

// Triangles generates cfg.Questions triangle exercises with cases picked
// at random from cfg.Cases.
func (g *Generator) Triangles(cfg TriangleConfig) Batch[TriangleExercise] {
	b := Batch[TriangleExercise]{Requested: cfg.Questions}
	cases := cfg.Cases
	if len(cases) == 0 {
		cases = trig.AllCases
	}
	for n := 1; n <= cfg.Questions; n++ {
		ex, ok := g.Triangle(cfg, cases[g.src.Intn(len(cases))], n)
		if !ok {
			b.Dropped++
			continue
		}
		b.Items = append(b.Items, ex)
	}
	return b
}

// RegenerateTriangle replaces an exercise with a fresh one of the same
// case, keeping its ID and number.
func (g *Generator) RegenerateTriangle(ex TriangleExercise, cfg TriangleConfig) (TriangleExercise, bool) {
	fresh, ok := g.Triangle(cfg, ex.Case, ex.Number)
	if !ok {
		return ex, false
	}
	fresh.ID = ex.ID
	return fresh, true
}

package exercise

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/Daniel-dg-conta1/math-Suite/geom"
)

// ErrUnknownVectorKind is returned when a vector exercise kind cannot be
// parsed.
var ErrUnknownVectorKind = errors.New("unknown vector exercise kind")

// MinAnswerMagnitude is the smallest answer length accepted for a vector
// exercise; shorter answers are re-sampled.
const MinAnswerMagnitude = 0.5

// VectorKind is the shape of a vector exercise.
type VectorKind string

const (
	KindTwo     VectorKind = "2"
	KindThree   VectorKind = "3"
	KindFour    VectorKind = "4"
	KindMissing VectorKind = "missing"
)

// ParseVectorKind accepts "2", "3", "4" (optionally suffixed "-vectors")
// and "missing".
func ParseVectorKind(s string) (VectorKind, error) {
	k := VectorKind(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "-vectors"))
	switch k {
	case KindTwo, KindThree, KindFour, KindMissing:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVectorKind, s)
}

// givenCount returns how many vectors a sum exercise shows.
func (k VectorKind) givenCount() int {
	switch k {
	case KindThree:
		return 3
	case KindFour:
		return 4
	default:
		return 2
	}
}

// VectorConfig bounds the vector generator.
type VectorConfig struct {
	Questions        int
	Kinds            []VectorKind
	MinMagnitude     int
	MaxMagnitude     int
	MinSeparation    float64
	HalfSteps        bool // allow angles ending in 5
	Parametrizations []geom.Kind
}

// DefaultVectorConfig returns the generator defaults.
func DefaultVectorConfig() VectorConfig {
	return VectorConfig{
		Questions:        5,
		Kinds:            []VectorKind{KindTwo, KindThree},
		MinMagnitude:     5,
		MaxMagnitude:     10,
		MinSeparation:    15,
		HalfSteps:        true,
		Parametrizations: []geom.Kind{geom.KindPolar},
	}
}

// VectorSolution is the answer of a vector exercise: the resultant R for
// sum exercises, the missing vector Vf otherwise.
type VectorSolution struct {
	Label     string  `json:"label"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Magnitude float64 `json:"magnitude"`
	Angle     float64 `json:"angle"`
}

func newVectorSolution(label string, v geom.Vector2) VectorSolution {
	return VectorSolution{
		Label:     label,
		X:         v.X,
		Y:         v.Y,
		Magnitude: v.Magnitude(),
		Angle:     v.Angle(),
	}
}

// Vector returns the answer as a vector.
func (s VectorSolution) Vector() geom.Vector2 {
	return geom.Vec(s.X, s.Y)
}

// VectorExercise is one generated vector question.
type VectorExercise struct {
	ID       uuid.UUID                 `json:"id"`
	Number   int                       `json:"number"`
	Kind     VectorKind                `json:"kind"`
	Vectors  []geom.ParametrizedVector `json:"vectors"`
	Target   *geom.Vector2             `json:"targetResultant,omitempty"`
	Solution VectorSolution            `json:"solution"`
}

// Given resolves every given vector.
func (e VectorExercise) Given() []geom.Vector2 {
	out := make([]geom.Vector2, len(e.Vectors))
	for i, pv := range e.Vectors {
		out[i] = pv.Vector()
	}
	return out
}

// Valid recomputes the answer from the parametrizations and checks that it
// matches the stored solution and is long enough to draw.
func (e VectorExercise) Valid() bool {
	if len(e.Vectors) == 0 {
		return false
	}
	given := e.Given()
	for _, v := range given {
		if v.IsZero() {
			return false
		}
	}
	var want geom.Vector2
	if e.Kind == KindMissing {
		if e.Target == nil {
			return false
		}
		want = geom.Missing(*e.Target, given...)
	} else {
		want = geom.Sum(given...)
	}
	if want.Magnitude() < MinAnswerMagnitude {
		return false
	}
	const eps = 1e-9
	return math.Abs(want.X-e.Solution.X) < eps && math.Abs(want.Y-e.Solution.Y) < eps
}

// sampleAngle draws a grid angle at least minSep away from used. After
// maxAttempts rejected draws the last candidate is accepted anyway.
func sampleAngle(src Source, used []float64, cfg VectorConfig, maxAttempts int) float64 {
	var angle float64
	for i := 0; i < maxAttempts; i++ {
		angle = float64(src.Intn(36) * 10)
		if cfg.HalfSteps && src.Float64() < 0.5 {
			angle += 5
		}
		if !geom.TooClose(angle, used, cfg.MinSeparation) {
			return angle
		}
		shifted := geom.NormalizeAngle(angle + cfg.MinSeparation)
		if !geom.TooClose(shifted, used, cfg.MinSeparation) {
			return shifted
		}
	}
	return angle
}

// parametrize expresses magnitude and angle in the given form. Cartesian
// components and legs are rounded for display; the rounded values become
// the source of truth.
func parametrize(kind geom.Kind, magnitude, angle float64) geom.Parametrization {
	v := geom.FromPolar(magnitude, angle)
	switch kind {
	case geom.KindCartesian:
		return geom.Cartesian{X: geom.Round(v.X), Y: geom.Round(v.Y)}
	case geom.KindLegs:
		return geom.RightTriangleLegs{
			Hypotenuse: magnitude,
			Horizontal: geom.Round(v.X),
			Vertical:   geom.Round(v.Y),
		}
	default:
		return geom.Polar{Magnitude: magnitude, Angle: angle}
	}
}

// TryVector makes one attempt at a vector exercise of the given kind. It
// reports false when the sample is unusable.
func TryVector(src Source, cfg VectorConfig, kind VectorKind) (VectorExercise, bool) {
	const angleAttempts = 50

	count := kind.givenCount()
	if kind == KindMissing {
		count = 2 + src.Intn(2)
	}
	kinds := cfg.Parametrizations
	if len(kinds) == 0 {
		kinds = []geom.Kind{geom.KindPolar}
	}

	ex := VectorExercise{Kind: kind, Vectors: make([]geom.ParametrizedVector, 0, count)}
	used := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		mag := float64(randInt(src, cfg.MinMagnitude, cfg.MaxMagnitude))
		angle := sampleAngle(src, used, cfg, angleAttempts)
		used = append(used, angle)
		ex.Vectors = append(ex.Vectors, geom.ParametrizedVector{
			ID:    i + 1,
			Label: fmt.Sprintf("V%d", i+1),
			Param: parametrize(kinds[src.Intn(len(kinds))], mag, angle),
		})
	}

	given := ex.Given()
	if kind == KindMissing {
		target := geom.FromPolar(
			float64(randInt(src, cfg.MinMagnitude, cfg.MaxMagnitude)),
			float64(src.Intn(36)*10),
		)
		ex.Target = &target
		ex.Solution = newVectorSolution("Vf", geom.Missing(target, given...))
	} else {
		ex.Solution = newVectorSolution("R", geom.Sum(given...))
	}

	if !ex.Valid() {
		return VectorExercise{}, false
	}
	return ex, true
}

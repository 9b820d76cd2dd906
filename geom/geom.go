// Package geom provides the scalar and 2D vector primitives shared by the
// solvers, the diagram layout engine and the exercise generators.
//
// Angles are expressed in degrees throughout the package and normalized to
// [0, 360) unless noted otherwise.
package geom

import (
	"math"
	"strconv"
	"strings"
)

const (
	// DegToRad converts degrees to radians.
	DegToRad = math.Pi / 180
	// RadToDeg converts radians to degrees.
	RadToDeg = 180 / math.Pi
)

// Vector2 is an immutable 2D vector in math coordinates (y grows upward).
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vec creates a new vector.
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// FromPolar creates a vector from a magnitude and an angle in degrees.
func FromPolar(magnitude, angleDeg float64) Vector2 {
	rad := angleDeg * DegToRad
	return Vector2{X: magnitude * math.Cos(rad), Y: magnitude * math.Sin(rad)}
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v * factor.
func (v Vector2) Scale(factor float64) Vector2 {
	return Vector2{v.X * factor, v.Y * factor}
}

// Magnitude returns the Euclidean norm of v.
func (v Vector2) Magnitude() float64 {
	return Magnitude(v.X, v.Y)
}

// Angle returns the direction of v in [0, 360).
func (v Vector2) Angle() float64 {
	return AngleDegrees(v.X, v.Y)
}

// IsZero reports whether both components are zero.
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Sum returns the resultant of the given vectors.
func Sum(vectors ...Vector2) Vector2 {
	var r Vector2
	for _, v := range vectors {
		r = r.Add(v)
	}
	return r
}

// Missing returns the vector that, added to given, yields target.
func Missing(target Vector2, given ...Vector2) Vector2 {
	return target.Sub(Sum(given...))
}

// Magnitude returns sqrt(x²+y²).
func Magnitude(x, y float64) float64 {
	return math.Sqrt(x*x + y*y)
}

// AngleDegrees returns atan2(y, x) in degrees, normalized to [0, 360).
// The zero vector has angle 0.
func AngleDegrees(x, y float64) float64 {
	if x == 0 && y == 0 {
		return 0
	}
	return NormalizeAngle(math.Atan2(y, x) * RadToDeg)
}

// NormalizeAngle wraps an angle to [0, 360).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	// -1e-15 + 360 rounds to 360
	if a >= 360 {
		a = 0
	}
	return a
}

// NearestAxis snaps an angle to the closest of 0, 90, 180 and 270 using the
// bins [315,45), [45,135), [135,225) and [225,315).
func NearestAxis(angle float64) float64 {
	a := NormalizeAngle(angle)
	switch {
	case a >= 315 || a < 45:
		return 0
	case a < 135:
		return 90
	case a < 225:
		return 180
	default:
		return 270
	}
}

// RotateAxes expresses (x, y) in a coordinate frame rotated by angleDeg.
// This is a passive rotation: the frame turns, the vector stays.
func RotateAxes(x, y, angleDeg float64) Vector2 {
	rad := angleDeg * DegToRad
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Vector2{
		X: x*cos + y*sin,
		Y: -x*sin + y*cos,
	}
}

// AngularSeparation returns the minimal wrap-aware difference between two
// angles, in [0, 180].
func AngularSeparation(a, b float64) float64 {
	diff := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// SignedAngleDiff returns the signed minimal rotation from one angle to
// another, in (-180, 180].
func SignedAngleDiff(from, to float64) float64 {
	diff := NormalizeAngle(to - from)
	if diff > 180 {
		diff -= 360
	}
	return diff
}

// TooClose reports whether angle lies within minSep of any of existing.
func TooClose(angle float64, existing []float64, minSep float64) bool {
	for _, e := range existing {
		if AngularSeparation(angle, e) < minSep {
			return true
		}
	}
	return false
}

// Round applies the display rounding rule: values with |v| < 1 keep three
// decimal places, all others keep one.
func Round(v float64) float64 {
	if math.Abs(v) < 1 {
		return math.Round(v*1000) / 1000
	}
	return math.Round(v*10) / 10
}

// FormatNumber renders a value for display: "0" for values within 1e-5 of
// zero, integers verbatim, three decimals below 1 and one decimal otherwise.
func FormatNumber(v float64) string {
	switch {
	case math.Abs(v) < 0.00001:
		return "0"
	case v == math.Trunc(v):
		return strconv.FormatFloat(v, 'f', -1, 64)
	case math.Abs(v) < 1:
		return strconv.FormatFloat(v, 'f', 3, 64)
	default:
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
}

// ParseScalarOrZero converts raw user input into a number. Empty input,
// a lone sign, anything non-numeric and non-finite values resolve to 0 so
// that half-typed fields never break a recomputation. A decimal comma is
// accepted.
func ParseScalarOrZero(raw string) float64 {
	s := strings.TrimSpace(raw)
	switch s {
	case "", "-", "+", ".", ",":
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		v, err = strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		if err != nil {
			return 0
		}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

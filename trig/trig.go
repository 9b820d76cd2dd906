// Package trig solves triangles from partial side/angle data and places the
// solved triangle in the plane.
package trig

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Daniel-dg-conta1/math-Suite/geom"
)

// ErrInvalidGeometry is returned when the inputs do not describe a triangle.
var ErrInvalidGeometry = errors.New("invalid geometry")

// ErrUnknownCase is returned when a case name cannot be parsed.
var ErrUnknownCase = errors.New("unknown triangle case")

// AngleTolerance is the allowed deviation of A+B+C from 180 degrees.
const AngleTolerance = 1e-6

// Case selects how the three raw inputs of Solve are interpreted.
//
//	SSS   v1=a, v2=b, v3=c
//	SAS   v1=b, v2=A, v3=c   (A is the angle between b and c)
//	ASA   v1=A, v2=c, v3=B   (c is the side between A and B)
//	AAS   v1=A, v2=B, v3=a   (a is opposite A)
//	Right v1=a, v2=b         (legs; C is the right angle, v3 ignored)
type Case int

const (
	SSS Case = iota
	SAS
	ASA
	AAS
	Right
)

// AllCases lists every case in declaration order.
var AllCases = []Case{SSS, SAS, ASA, AAS, Right}

func (c Case) String() string {
	switch c {
	case SSS:
		return "SSS"
	case SAS:
		return "SAS"
	case ASA:
		return "ASA"
	case AAS:
		return "AAS"
	case Right:
		return "Right"
	default:
		return fmt.Sprintf("Case(%d)", int(c))
	}
}

// ParseCase parses a case name, ignoring case.
func ParseCase(name string) (Case, error) {
	for _, c := range AllCases {
		if strings.EqualFold(strings.TrimSpace(name), c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCase, name)
}

// MarshalJSON encodes the case by name.
func (c Case) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a case name.
func (c *Case) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseCase(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Arity returns how many raw inputs the case consumes.
func (c Case) Arity() int {
	if c == Right {
		return 2
	}
	return 3
}

// Labels returns the names of the raw inputs, in order. Upper-case names
// are angles, lower-case names are sides.
func (c Case) Labels() []string {
	switch c {
	case SSS:
		return []string{"a", "b", "c"}
	case SAS:
		return []string{"b", "A", "c"}
	case ASA:
		return []string{"A", "c", "B"}
	case AAS:
		return []string{"A", "B", "a"}
	case Right:
		return []string{"a", "b"}
	}
	return nil
}

// Given is one input value of a triangle exercise.
type Given struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// IsAngle reports whether the given value is an angle in degrees.
func (g Given) IsAngle() bool {
	return g.Label != "" && strings.ToUpper(g.Label) == g.Label
}

// GivenValues pairs raw inputs with the case labels.
func GivenValues(c Case, v1, v2, v3 float64) []Given {
	values := []float64{v1, v2, v3}
	labels := c.Labels()
	given := make([]Given, len(labels))
	for i, l := range labels {
		given[i] = Given{Label: l, Value: values[i]}
	}
	return given
}

// Solution is a fully solved triangle. Sides a, b, c are opposite the
// angles A, B, C (degrees). Altitude is relative to side c.
type Solution struct {
	SideA     float64 `json:"a"`
	SideB     float64 `json:"b"`
	SideC     float64 `json:"c"`
	AngleA    float64 `json:"A"`
	AngleB    float64 `json:"B"`
	AngleC    float64 `json:"C"`
	Area      float64 `json:"area"`
	Perimeter float64 `json:"perimeter"`
	Altitude  float64 `json:"altitude"`
	Valid     bool    `json:"valid"`
}

// Rounded returns a copy with every value rounded by geom.Round. Angle C
// is taken as the remainder of the rounded A and B so the displayed angles
// still sum to 180.
func (s Solution) Rounded() Solution {
	if !s.Valid {
		return s
	}
	r := Solution{
		SideA:     geom.Round(s.SideA),
		SideB:     geom.Round(s.SideB),
		SideC:     geom.Round(s.SideC),
		AngleA:    geom.Round(s.AngleA),
		AngleB:    geom.Round(s.AngleB),
		Area:      geom.Round(s.Area),
		Perimeter: geom.Round(s.Perimeter),
		Altitude:  geom.Round(s.Altitude),
		Valid:     true,
	}
	r.AngleC = geom.Round(180 - r.AngleA - r.AngleB)
	return r
}

func invalid(format string, args ...any) (Solution, error) {
	return Solution{}, fmt.Errorf("%w: %s", ErrInvalidGeometry, fmt.Sprintf(format, args...))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func sin(deg float64) float64 { return math.Sin(deg * geom.DegToRad) }
func cos(deg float64) float64 { return math.Cos(deg * geom.DegToRad) }

// acosDeg clamps rounding noise just outside [-1, 1] before acos.
func acosDeg(v float64) float64 {
	if v > 1 && v < 1+1e-12 {
		v = 1
	} else if v < -1 && v > -1-1e-12 {
		v = -1
	}
	return math.Acos(v) * geom.RadToDeg
}

// Solve computes the full side/angle set for the given case. It either
// returns a valid solution or an error wrapping ErrInvalidGeometry together
// with a zero Solution whose Valid flag is false.
func Solve(c Case, v1, v2, v3 float64) (Solution, error) {
	if !finite(v1) || !finite(v2) || (c != Right && !finite(v3)) {
		return invalid("non-finite input")
	}
	if v1 <= 0 || v2 <= 0 {
		return invalid("inputs must be positive")
	}
	if c != Right && v3 <= 0 {
		return invalid("inputs must be positive")
	}

	var a, b, cc, A, B, C float64

	switch c {
	case SSS:
		a, b, cc = v1, v2, v3
		if a+b <= cc || a+cc <= b || b+cc <= a {
			return invalid("sides %v, %v, %v violate the triangle inequality", a, b, cc)
		}
		A = acosDeg((b*b + cc*cc - a*a) / (2 * b * cc))
		B = acosDeg((a*a + cc*cc - b*b) / (2 * a * cc))
		C = 180 - A - B

	case SAS:
		b, A, cc = v1, v2, v3
		if A >= 180 {
			return invalid("angle A = %v must be below 180", A)
		}
		a = math.Sqrt(b*b + cc*cc - 2*b*cc*cos(A))
		B = acosDeg((a*a + cc*cc - b*b) / (2 * a * cc))
		C = 180 - A - B

	case ASA:
		A, cc, B = v1, v2, v3
		if A+B >= 180 {
			return invalid("angles A + B = %v must be below 180", A+B)
		}
		C = 180 - A - B
		a = cc * sin(A) / sin(C)
		b = cc * sin(B) / sin(C)

	case AAS:
		A, B, a = v1, v2, v3
		if A+B >= 180 {
			return invalid("angles A + B = %v must be below 180", A+B)
		}
		C = 180 - A - B
		b = a * sin(B) / sin(A)
		cc = a * sin(C) / sin(A)

	case Right:
		a, b = v1, v2
		C = 90
		cc = math.Hypot(a, b)
		A = math.Atan(a/b) * geom.RadToDeg
		B = 90 - A

	default:
		return Solution{}, fmt.Errorf("%w: %v", ErrUnknownCase, c)
	}

	for _, v := range []float64{a, b, cc, A, B, C} {
		if !finite(v) {
			return invalid("degenerate triangle")
		}
	}
	if a <= 0 || b <= 0 || cc <= 0 {
		return invalid("non-positive side")
	}
	if A <= 0 || B <= 0 || C <= 0 {
		return invalid("non-positive angle")
	}
	if math.Abs(A+B+C-180) > AngleTolerance {
		return invalid("angle sum %v", A+B+C)
	}

	s := (a + b + cc) / 2
	area := math.Sqrt(math.Max(0, s*(s-a)*(s-b)*(s-cc)))

	return Solution{
		SideA:     a,
		SideB:     b,
		SideC:     cc,
		AngleA:    A,
		AngleB:    B,
		AngleC:    C,
		Area:      area,
		Perimeter: a + b + cc,
		Altitude:  2 * area / cc,
		Valid:     true,
	}, nil
}

// Triangle holds the three vertices of a placed triangle.
type Triangle struct {
	A geom.Vector2 `json:"A"`
	B geom.Vector2 `json:"B"`
	C geom.Vector2 `json:"C"`
}

// Points returns the vertices in A, B, C order.
func (t Triangle) Points() []geom.Vector2 {
	return []geom.Vector2{t.A, t.B, t.C}
}

// Vertices places a solved triangle with A at the origin, side c along the
// positive x axis and C above it.
func Vertices(s Solution) Triangle {
	return Triangle{
		A: geom.Vec(0, 0),
		B: geom.Vec(s.SideC, 0),
		C: geom.FromPolar(s.SideB, s.AngleA),
	}
}

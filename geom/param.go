package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a parametrization kind name is not recognized.
var ErrUnknownKind = errors.New("unknown parametrization kind")

// Kind identifies how a vector was entered.
type Kind int

const (
	KindCartesian Kind = iota
	KindPolar
	KindLegs
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindCartesian:
		return "cartesian"
	case KindPolar:
		return "polar"
	case KindLegs:
		return "legs"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a kind name. The editor names "angle" and
// "triangle" are accepted as aliases of polar and legs.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cartesian", "xy":
		return KindCartesian, nil
	case "polar", "angle":
		return KindPolar, nil
	case "legs", "triangle":
		return KindLegs, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Parametrization is the source of truth for a vector. It is a closed set:
// Cartesian, Polar and RightTriangleLegs.
type Parametrization interface {
	Kind() Kind
	Params() []float64
	isParametrization()
}

// Cartesian enters a vector by its components.
type Cartesian struct {
	X, Y float64
}

// Polar enters a vector by magnitude and direction in degrees.
type Polar struct {
	Magnitude float64
	Angle     float64
}

// RightTriangleLegs enters a vector by the hypotenuse of a right triangle
// and its two legs. The legs give the direction only; the hypotenuse is
// the magnitude and is never recomputed from the legs.
type RightTriangleLegs struct {
	Hypotenuse float64
	Horizontal float64
	Vertical   float64
}

func (Cartesian) Kind() Kind         { return KindCartesian }
func (Polar) Kind() Kind             { return KindPolar }
func (RightTriangleLegs) Kind() Kind { return KindLegs }

func (p Cartesian) Params() []float64 { return []float64{p.X, p.Y} }
func (p Polar) Params() []float64     { return []float64{p.Magnitude, p.Angle} }
func (p RightTriangleLegs) Params() []float64 {
	return []float64{p.Hypotenuse, p.Horizontal, p.Vertical}
}

func (Cartesian) isParametrization()         {}
func (Polar) isParametrization()             {}
func (RightTriangleLegs) isParametrization() {}

// Resolve converts a parametrization to canonical components.
// A nil parametrization resolves to the zero vector.
func Resolve(p Parametrization) Vector2 {
	switch v := p.(type) {
	case Cartesian:
		return Vector2{v.X, v.Y}
	case Polar:
		return FromPolar(v.Magnitude, v.Angle)
	case RightTriangleLegs:
		theta := AngleDegrees(v.Horizontal, v.Vertical)
		return FromPolar(v.Hypotenuse, theta)
	}
	return Vector2{}
}

// InverseResolve rebuilds a parametrization of the given kind from moved
// components, as happens when an arrowhead is dragged. For legs, the new
// legs are the literal components and the hypotenuse is their magnitude.
func InverseResolve(x, y float64, kind Kind) Parametrization {
	switch kind {
	case KindPolar:
		return Polar{Magnitude: Magnitude(x, y), Angle: AngleDegrees(x, y)}
	case KindLegs:
		return RightTriangleLegs{Hypotenuse: Magnitude(x, y), Horizontal: x, Vertical: y}
	default:
		return Cartesian{X: x, Y: y}
	}
}

// ParseParametrization builds a parametrization from raw text fields as a
// form would hold them. Every scalar goes through ParseScalarOrZero; only
// an unknown kind is an error.
func ParseParametrization(kind string, raw ...string) (Parametrization, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}
	v := make([]float64, 3)
	for i := 0; i < len(raw) && i < len(v); i++ {
		v[i] = ParseScalarOrZero(raw[i])
	}
	switch k {
	case KindPolar:
		return Polar{Magnitude: v[0], Angle: v[1]}, nil
	case KindLegs:
		return RightTriangleLegs{Hypotenuse: v[0], Horizontal: v[1], Vertical: v[2]}, nil
	default:
		return Cartesian{X: v[0], Y: v[1]}, nil
	}
}

// ParametrizedVector couples a vector's input parametrization with its
// identity and label. Components are always derived from Param.
type ParametrizedVector struct {
	ID    int
	Label string
	Param Parametrization
}

// Vector resolves the parametrization.
func (pv ParametrizedVector) Vector() Vector2 {
	return Resolve(pv.Param)
}

// Drag returns a copy whose parametrization was rebuilt from new
// components, keeping the current kind.
func (pv ParametrizedVector) Drag(x, y float64) ParametrizedVector {
	kind := KindCartesian
	if pv.Param != nil {
		kind = pv.Param.Kind()
	}
	pv.Param = InverseResolve(x, y, kind)
	return pv
}

type parametrizedVectorJSON struct {
	ID     int       `json:"id"`
	Label  string    `json:"label"`
	Kind   string    `json:"kind"`
	Params []float64 `json:"params"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
}

// MarshalJSON encodes the vector with its kind, raw parameters and the
// resolved components.
func (pv ParametrizedVector) MarshalJSON() ([]byte, error) {
	out := parametrizedVectorJSON{ID: pv.ID, Label: pv.Label, Kind: KindCartesian.String()}
	if pv.Param != nil {
		out.Kind = pv.Param.Kind().String()
		out.Params = pv.Param.Params()
	}
	v := pv.Vector()
	out.X, out.Y = v.X, v.Y
	return json.Marshal(out)
}

// UnmarshalJSON decodes the form produced by MarshalJSON. Resolved
// components in the input are ignored.
func (pv *ParametrizedVector) UnmarshalJSON(data []byte) error {
	var in parametrizedVectorJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	k, err := ParseKind(in.Kind)
	if err != nil {
		return err
	}
	p := make([]float64, 3)
	copy(p, in.Params)
	pv.ID = in.ID
	pv.Label = in.Label
	switch k {
	case KindPolar:
		pv.Param = Polar{Magnitude: p[0], Angle: p[1]}
	case KindLegs:
		pv.Param = RightTriangleLegs{Hypotenuse: p[0], Horizontal: p[1], Vertical: p[2]}
	default:
		pv.Param = Cartesian{X: p[0], Y: p[1]}
	}
	return nil
}

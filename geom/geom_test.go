package geom

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestMagnitude(t *testing.T) {
	tests := []struct {
		x, y     float64
		expected float64
	}{
		{3, 4, 5},
		{0, 0, 0},
		{-6, 8, 10},
		{1, 0, 1},
	}

	for _, tt := range tests {
		result := Magnitude(tt.x, tt.y)
		if !floatEqual(result, tt.expected) {
			t.Errorf("Magnitude(%v, %v) = %v, want %v", tt.x, tt.y, result, tt.expected)
		}
	}
}

func TestAngleDegrees(t *testing.T) {
	tests := []struct {
		x, y     float64
		expected float64
	}{
		{1, 0, 0},
		{0, 1, 90},
		{-1, 0, 180},
		{0, -1, 270},
		{1, 1, 45},
		{1, -1, 315},
		{0, 0, 0},
	}

	for _, tt := range tests {
		result := AngleDegrees(tt.x, tt.y)
		if !floatEqual(result, tt.expected) {
			t.Errorf("AngleDegrees(%v, %v) = %v, want %v", tt.x, tt.y, result, tt.expected)
		}
		if result < 0 || result >= 360 {
			t.Errorf("AngleDegrees(%v, %v) = %v outside [0,360)", tt.x, tt.y, result)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{0, 0},
		{360, 0},
		{370, 10},
		{-10, 350},
		{-360, 0},
		{725, 5},
		{-1e-15, 0},
	}

	for _, tt := range tests {
		result := NormalizeAngle(tt.in)
		if !floatEqual(result, tt.expected) {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, result, tt.expected)
		}
	}
}

func TestNearestAxis(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{0, 0},
		{44.9, 0},
		{45, 90},
		{134.9, 90},
		{135, 180},
		{224.9, 180},
		{225, 270},
		{314.9, 270},
		{315, 0},
		{-30, 0},
		{400, 0},
	}

	for _, tt := range tests {
		if result := NearestAxis(tt.in); result != tt.expected {
			t.Errorf("NearestAxis(%v) = %v, want %v", tt.in, result, tt.expected)
		}
	}
}

func TestRotateAxesIdentity(t *testing.T) {
	points := []Vector2{{3, 4}, {-2, 7}, {0, 0}, {1e6, -1e-3}}
	for _, p := range points {
		r := RotateAxes(p.X, p.Y, 0)
		if r != p {
			t.Errorf("RotateAxes(%v, 0) = %v, want unchanged", p, r)
		}
	}
}

func TestRotateAxesPreservesNorm(t *testing.T) {
	for _, p := range []Vector2{{3, 4}, {-2, 7}, {0.5, -0.25}} {
		for theta := -720.0; theta <= 720; theta += 17.5 {
			r := RotateAxes(p.X, p.Y, theta)
			if !floatEqual(r.Magnitude(), p.Magnitude()) {
				t.Errorf("RotateAxes(%v, %v) changed norm: %v vs %v", p, theta, r.Magnitude(), p.Magnitude())
			}
		}
	}
}

func TestRotateAxesIsPassive(t *testing.T) {
	// Rotating the frame by 90 degrees makes the old +y axis the new +x axis.
	r := RotateAxes(0, 1, 90)
	if !floatEqual(r.X, 1) || !floatEqual(r.Y, 0) {
		t.Errorf("RotateAxes(0, 1, 90) = %v, want (1, 0)", r)
	}
}

func TestAngularSeparation(t *testing.T) {
	tests := []struct {
		a, b, expected float64
	}{
		{10, 12, 2},
		{350, 10, 20},
		{0, 180, 180},
		{90, 270, 180},
		{-10, 10, 20},
		{45, 45, 0},
	}

	for _, tt := range tests {
		result := AngularSeparation(tt.a, tt.b)
		if !floatEqual(result, tt.expected) {
			t.Errorf("AngularSeparation(%v, %v) = %v, want %v", tt.a, tt.b, result, tt.expected)
		}
	}
}

func TestSignedAngleDiff(t *testing.T) {
	tests := []struct {
		from, to, expected float64
	}{
		{0, 30, 30},
		{90, 60, -30},
		{0, 350, -10},
		{270, 300, 30},
		{0, 180, 180},
	}

	for _, tt := range tests {
		result := SignedAngleDiff(tt.from, tt.to)
		if !floatEqual(result, tt.expected) {
			t.Errorf("SignedAngleDiff(%v, %v) = %v, want %v", tt.from, tt.to, result, tt.expected)
		}
	}
}

func TestTooClose(t *testing.T) {
	existing := []float64{0, 90}
	if !TooClose(355, existing, 15) {
		t.Error("355 should be too close to 0")
	}
	if TooClose(45, existing, 15) {
		t.Error("45 should not be too close")
	}
	if TooClose(45, nil, 15) {
		t.Error("no existing angles means nothing is too close")
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{36.8699, 36.9},
		{0.12345, 0.123},
		{-0.98765, -0.988},
		{5, 5},
		{53.13, 53.1},
		{-12.34, -12.3},
	}

	for _, tt := range tests {
		if result := Round(tt.in); !floatEqual(result, tt.expected) {
			t.Errorf("Round(%v) = %v, want %v", tt.in, result, tt.expected)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in       float64
		expected string
	}{
		{0, "0"},
		{0.000001, "0"},
		{5, "5"},
		{-3, "-3"},
		{0.5, "0.500"},
		{36.8699, "36.9"},
		{-7.26, "-7.3"},
	}

	for _, tt := range tests {
		if result := FormatNumber(tt.in); result != tt.expected {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, result, tt.expected)
		}
	}
}

func TestParseScalarOrZero(t *testing.T) {
	tests := []struct {
		in       string
		expected float64
	}{
		{"", 0},
		{"-", 0},
		{"  ", 0},
		{"abc", 0},
		{"12", 12},
		{"-3.5", -3.5},
		{" 7 ", 7},
		{"2,5", 2.5},
		{"NaN", 0},
		{"Inf", 0},
	}

	for _, tt := range tests {
		if result := ParseScalarOrZero(tt.in); result != tt.expected {
			t.Errorf("ParseScalarOrZero(%q) = %v, want %v", tt.in, result, tt.expected)
		}
	}
}

func TestSumAndMissing(t *testing.T) {
	a := Vec(1, 2)
	b := Vec(3, -1)
	if s := Sum(a, b); s != Vec(4, 1) {
		t.Errorf("Sum = %v, want (4, 1)", s)
	}
	target := Vec(10, 10)
	m := Missing(target, a, b)
	if m != Vec(6, 9) {
		t.Errorf("Missing = %v, want (6, 9)", m)
	}
	if Sum(a, b, m) != target {
		t.Error("given vectors plus missing vector should equal the target")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		p    Parametrization
		x, y float64
	}{
		{"cartesian", Cartesian{X: 4, Y: 3}, 4, 3},
		{"polar", Polar{Magnitude: 2, Angle: 90}, 0, 2},
		{"polar negative angle", Polar{Magnitude: 1, Angle: -90}, 0, -1},
		{"legs 3-4 scaled by hypotenuse", RightTriangleLegs{Hypotenuse: 10, Horizontal: 3, Vertical: 4}, 6, 8},
		{"legs ignore their own length", RightTriangleLegs{Hypotenuse: 2, Horizontal: 30, Vertical: 0}, 2, 0},
		{"nil", nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Resolve(tt.p)
			if !floatEqual(v.X, tt.x) || !floatEqual(v.Y, tt.y) {
				t.Errorf("Resolve(%#v) = %v, want (%v, %v)", tt.p, v, tt.x, tt.y)
			}
		})
	}
}

func TestInverseResolveRoundTrip(t *testing.T) {
	points := []Vector2{{3, 4}, {-2, 5}, {-7, -1}, {0.5, -6}, {10, 0}, {0, -3}}
	for _, kind := range []Kind{KindCartesian, KindPolar, KindLegs} {
		for _, p := range points {
			v := Resolve(InverseResolve(p.X, p.Y, kind))
			if !floatEqual(v.X, p.X) || !floatEqual(v.Y, p.Y) {
				t.Errorf("%v round trip of %v = %v", kind, p, v)
			}
		}
	}
}

func TestInverseResolveLegsUseLiteralComponents(t *testing.T) {
	p := InverseResolve(3, 4, KindLegs).(RightTriangleLegs)
	if p.Horizontal != 3 || p.Vertical != 4 || !floatEqual(p.Hypotenuse, 5) {
		t.Errorf("InverseResolve legs = %+v", p)
	}
}

func TestParseParametrization(t *testing.T) {
	p, err := ParseParametrization("angle", "5", "")
	if err != nil {
		t.Fatalf("ParseParametrization error: %v", err)
	}
	if p != (Polar{Magnitude: 5, Angle: 0}) {
		t.Errorf("ParseParametrization = %#v", p)
	}

	p, err = ParseParametrization("triangle", "10", "-", "4")
	if err != nil {
		t.Fatalf("ParseParametrization error: %v", err)
	}
	if p != (RightTriangleLegs{Hypotenuse: 10, Horizontal: 0, Vertical: 4}) {
		t.Errorf("ParseParametrization = %#v", p)
	}

	_, err = ParseParametrization("spherical", "1")
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestParametrizedVectorDrag(t *testing.T) {
	pv := ParametrizedVector{ID: 1, Label: "V1", Param: Polar{Magnitude: 5, Angle: 0}}
	moved := pv.Drag(0, 2)
	if moved.Param.Kind() != KindPolar {
		t.Errorf("Drag changed kind to %v", moved.Param.Kind())
	}
	v := moved.Vector()
	if !floatEqual(v.X, 0) || !floatEqual(v.Y, 2) {
		t.Errorf("dragged vector = %v, want (0, 2)", v)
	}
	if pv.Param != (Polar{Magnitude: 5, Angle: 0}) {
		t.Error("Drag must not modify the receiver")
	}
}

func TestParametrizedVectorJSON(t *testing.T) {
	pv := ParametrizedVector{ID: 2, Label: "V2", Param: RightTriangleLegs{Hypotenuse: 5, Horizontal: 3, Vertical: 4}}
	data, err := json.Marshal(pv)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var back ParametrizedVector
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if back.ID != 2 || back.Label != "V2" || back.Param != pv.Param {
		t.Errorf("decoded %+v, want %+v", back, pv)
	}

	if err := json.Unmarshal([]byte(`{"kind":"bogus"}`), &back); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

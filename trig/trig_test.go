package trig

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-6

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestSolveRightRounded(t *testing.T) {
	s, err := Solve(Right, 3, 4, 0)
	if err != nil {
		t.Fatalf("Solve(Right, 3, 4, 0) error: %v", err)
	}
	r := s.Rounded()
	want := map[string][2]float64{
		"a": {r.SideA, 3},
		"b": {r.SideB, 4},
		"c": {r.SideC, 5},
		"A": {r.AngleA, 36.9},
		"B": {r.AngleB, 53.1},
		"C": {r.AngleC, 90},
	}
	for name, v := range want {
		if !floatEqual(v[0], v[1]) {
			t.Errorf("%s = %v, want %v", name, v[0], v[1])
		}
	}
	if !floatEqual(s.Area, 6) || !floatEqual(s.Perimeter, 12) || !floatEqual(s.Altitude, 2.4) {
		t.Errorf("area/perimeter/altitude = %v/%v/%v, want 6/12/2.4", s.Area, s.Perimeter, s.Altitude)
	}
}

func TestSolveValidCases(t *testing.T) {
	tests := []struct {
		name       string
		c          Case
		v1, v2, v3 float64
		a, b, cc   float64
	}{
		{"SSS 3-4-5", SSS, 3, 4, 5, 3, 4, 5},
		{"SSS equilateral", SSS, 2, 2, 2, 2, 2, 2},
		{"SAS right angle", SAS, 4, 90, 3, 5, 4, 3},
		{"ASA equilateral", ASA, 60, 7, 60, 7, 7, 7},
		{"AAS equilateral", AAS, 60, 60, 7, 7, 7, 7},
		{"Right 5-12", Right, 5, 12, 0, 5, 12, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Solve(tt.c, tt.v1, tt.v2, tt.v3)
			if err != nil {
				t.Fatalf("Solve error: %v", err)
			}
			if !s.Valid {
				t.Fatal("solution should be valid")
			}
			if !floatEqual(s.SideA, tt.a) || !floatEqual(s.SideB, tt.b) || !floatEqual(s.SideC, tt.cc) {
				t.Errorf("sides = %v, %v, %v, want %v, %v, %v", s.SideA, s.SideB, s.SideC, tt.a, tt.b, tt.cc)
			}
		})
	}
}

func TestSolveAngleSumProperty(t *testing.T) {
	for _, c := range AllCases {
		for v1 := 3.0; v1 <= 17; v1 += 2 {
			for v2 := 10.0; v2 <= 80; v2 += 7 {
				for v3 := 4.0; v3 <= 16; v3 += 3 {
					s, err := Solve(c, v1, v2, v3)
					if err != nil {
						if !errors.Is(err, ErrInvalidGeometry) {
							t.Fatalf("Solve(%v, %v, %v, %v) unexpected error kind: %v", c, v1, v2, v3, err)
						}
						if s.Valid {
							t.Fatalf("invalid solve returned Valid=true")
						}
						continue
					}
					if math.Abs(s.AngleA+s.AngleB+s.AngleC-180) > 1e-6 {
						t.Errorf("Solve(%v, %v, %v, %v) angle sum %v", c, v1, v2, v3, s.AngleA+s.AngleB+s.AngleC)
					}
					if s.SideA <= 0 || s.SideB <= 0 || s.SideC <= 0 {
						t.Errorf("Solve(%v, %v, %v, %v) non-positive side", c, v1, v2, v3)
					}
				}
			}
		}
	}
}

func TestSolveInvalid(t *testing.T) {
	tests := []struct {
		name       string
		c          Case
		v1, v2, v3 float64
	}{
		{"SSS inequality", SSS, 1, 1, 5},
		{"SSS degenerate", SSS, 1, 2, 3},
		{"zero side", SSS, 0, 1, 1},
		{"negative input", SAS, -1, 30, 2},
		{"SAS straight angle", SAS, 3, 180, 4},
		{"ASA angle sum", ASA, 100, 5, 80},
		{"AAS angle sum", AAS, 120, 70, 5},
		{"Right zero leg", Right, 3, 0, 0},
		{"missing third input", ASA, 30, 5, 0},
		{"NaN input", SSS, math.NaN(), 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Solve(tt.c, tt.v1, tt.v2, tt.v3)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("expected ErrInvalidGeometry, got %v", err)
			}
			if s.Valid || s != (Solution{}) {
				t.Errorf("invalid solve returned partial solution %+v", s)
			}
		})
	}
}

func TestRightIgnoresThirdInput(t *testing.T) {
	a, err := Solve(Right, 3, 4, 0)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Solve(Right, 3, 4, -99)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("third input changed Right solution: %+v vs %+v", a, b)
	}
}

func TestRoundedAnglesSumTo180(t *testing.T) {
	s, err := Solve(SSS, 7, 8, 9)
	if err != nil {
		t.Fatal(err)
	}
	r := s.Rounded()
	if !floatEqual(r.AngleA+r.AngleB+r.AngleC, 180) {
		t.Errorf("rounded angle sum = %v", r.AngleA+r.AngleB+r.AngleC)
	}
}

func TestParseCase(t *testing.T) {
	for _, c := range AllCases {
		got, err := ParseCase(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCase(%q) = %v, %v", c.String(), got, err)
		}
	}
	if got, err := ParseCase("sas"); err != nil || got != SAS {
		t.Errorf("ParseCase(sas) = %v, %v", got, err)
	}
	if _, err := ParseCase("SSA"); !errors.Is(err, ErrUnknownCase) {
		t.Errorf("expected ErrUnknownCase, got %v", err)
	}
}

func TestCaseJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		C Case `json:"case"`
	}{ASA})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"case":"ASA"}` {
		t.Errorf("Marshal = %s", data)
	}
	var back struct {
		C Case `json:"case"`
	}
	if err := json.Unmarshal(data, &back); err != nil || back.C != ASA {
		t.Errorf("Unmarshal = %v, %v", back.C, err)
	}
}

func TestGivenValues(t *testing.T) {
	g := GivenValues(SAS, 4, 30, 5)
	if len(g) != 3 || g[0].Label != "b" || g[1].Label != "A" || g[2].Label != "c" {
		t.Fatalf("GivenValues(SAS) = %+v", g)
	}
	if g[0].IsAngle() || !g[1].IsAngle() {
		t.Error("IsAngle mismatch")
	}
	if r := GivenValues(Right, 3, 4, 99); len(r) != 2 {
		t.Errorf("Right should have two given values, got %d", len(r))
	}
}

func TestVertices(t *testing.T) {
	s, err := Solve(Right, 3, 4, 0)
	if err != nil {
		t.Fatal(err)
	}
	tri := Vertices(s)
	if tri.A.X != 0 || tri.A.Y != 0 {
		t.Errorf("A = %v, want origin", tri.A)
	}
	if !floatEqual(tri.B.X, 5) || tri.B.Y != 0 {
		t.Errorf("B = %v, want (5, 0)", tri.B)
	}
	// |AC| = b and |BC| = a
	if !floatEqual(tri.C.Magnitude(), 4) {
		t.Errorf("|AC| = %v, want 4", tri.C.Magnitude())
	}
	if !floatEqual(tri.C.Sub(tri.B).Magnitude(), 3) {
		t.Errorf("|BC| = %v, want 3", tri.C.Sub(tri.B).Magnitude())
	}
	if tri.C.Y <= 0 {
		t.Errorf("C should lie above the base, got %v", tri.C)
	}
}

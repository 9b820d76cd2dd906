package exercise

import (
	"github.com/google/uuid"

	"github.com/Daniel-dg-conta1/math-Suite/trig"
)

// TriangleConfig bounds the triangle generator. Sides and angles are
// drawn as integers.
type TriangleConfig struct {
	Questions int
	Cases     []trig.Case
	MinSide   int
	MaxSide   int
	MinAngle  int
	MaxAngle  int
}

// DefaultTriangleConfig returns the generator defaults.
func DefaultTriangleConfig() TriangleConfig {
	return TriangleConfig{
		Questions: 5,
		Cases:     append([]trig.Case(nil), trig.AllCases...),
		MinSide:   3,
		MaxSide:   17,
		MinAngle:  10,
		MaxAngle:  89,
	}
}

// TriangleExercise is one generated triangle question.
type TriangleExercise struct {
	ID       uuid.UUID     `json:"id"`
	Number   int           `json:"number"`
	Case     trig.Case     `json:"case"`
	Given    []trig.Given  `json:"givenValues"`
	Solution trig.Solution `json:"solution"`
}

// Inputs returns the raw solver inputs in case order.
func (e TriangleExercise) Inputs() (v1, v2, v3 float64) {
	v := make([]float64, 3)
	for i, g := range e.Given {
		if i < len(v) {
			v[i] = g.Value
		}
	}
	return v[0], v[1], v[2]
}

// Valid re-solves the exercise from its given values.
func (e TriangleExercise) Valid() bool {
	v1, v2, v3 := e.Inputs()
	s, err := trig.Solve(e.Case, v1, v2, v3)
	return err == nil && s.Valid && e.Solution.Valid
}

// TryTriangle makes one attempt at a triangle exercise for case c. For
// SSS the third side is drawn strictly inside the triangle-inequality
// range, so the sample is solvable by construction.
func TryTriangle(src Source, cfg TriangleConfig, c trig.Case) (TriangleExercise, bool) {
	side := func() float64 { return float64(randInt(src, cfg.MinSide, cfg.MaxSide)) }
	angle := func() float64 { return float64(randInt(src, cfg.MinAngle, cfg.MaxAngle)) }

	var v1, v2, v3 float64
	switch c {
	case trig.SSS:
		a, b := randInt(src, cfg.MinSide, cfg.MaxSide), randInt(src, cfg.MinSide, cfg.MaxSide)
		lo, hi := abs(a-b)+1, a+b-1
		v1, v2, v3 = float64(a), float64(b), float64(randInt(src, lo, hi))
	case trig.SAS:
		v1, v2, v3 = side(), angle(), side()
	case trig.ASA:
		v1, v2, v3 = angle(), side(), angle()
	case trig.AAS:
		v1, v2, v3 = angle(), angle(), side()
	case trig.Right:
		v1, v2 = side(), side()
	default:
		return TriangleExercise{}, false
	}

	s, err := trig.Solve(c, v1, v2, v3)
	if err != nil {
		return TriangleExercise{}, false
	}
	return TriangleExercise{
		Case:     c,
		Given:    trig.GivenValues(c, v1, v2, v3),
		Solution: s,
	}, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

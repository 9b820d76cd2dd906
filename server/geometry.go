package server

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Daniel-dg-conta1/math-Suite/geom"
	"github.com/Daniel-dg-conta1/math-Suite/trig"
)

type resolveRequest struct {
	Kind     string  `json:"kind"`
	P1       scalar  `json:"p1"`
	P2       scalar  `json:"p2"`
	P3       scalar  `json:"p3"`
	Rotation float64 `json:"rotation"`
}

type resolveResponse struct {
	Kind      string       `json:"kind"`
	Params    []float64    `json:"params"`
	X         float64      `json:"x"`
	Y         float64      `json:"y"`
	Magnitude float64      `json:"magnitude"`
	Angle     float64      `json:"angle"`
	Rotated   geom.Vector2 `json:"rotated"`
	Display   displayValue `json:"display"`
}

type displayValue struct {
	X         string `json:"x"`
	Y         string `json:"y"`
	Magnitude string `json:"magnitude"`
	Angle     string `json:"angle"`
}

func display(v geom.Vector2) displayValue {
	return displayValue{
		X:         geom.FormatNumber(v.X),
		Y:         geom.FormatNumber(v.Y),
		Magnitude: geom.FormatNumber(v.Magnitude()),
		Angle:     geom.FormatNumber(v.Angle()),
	}
}

// resolve turns a parametrization into components, optionally projected
// onto axes rotated by Rotation degrees.
func (s *Server) resolve(c fiber.Ctx) error {
	var req resolveRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	if req.Kind == "" {
		req.Kind = geom.KindCartesian.String()
	}
	p, err := geom.ParseParametrization(req.Kind, string(req.P1), string(req.P2), string(req.P3))
	if err != nil {
		return err
	}
	v := geom.Resolve(p)
	return c.JSON(resolveResponse{
		Kind:      p.Kind().String(),
		Params:    p.Params(),
		X:         v.X,
		Y:         v.Y,
		Magnitude: v.Magnitude(),
		Angle:     v.Angle(),
		Rotated:   geom.RotateAxes(v.X, v.Y, req.Rotation),
		Display:   display(v),
	})
}

type inverseRequest struct {
	Kind string `json:"kind"`
	X    scalar `json:"x"`
	Y    scalar `json:"y"`
}

type inverseResponse struct {
	Kind   string    `json:"kind"`
	Params []float64 `json:"params"`
}

// inverse rebuilds a parametrization of the requested kind from components,
// as a dragged arrowhead does.
func (s *Server) inverse(c fiber.Ctx) error {
	var req inverseRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	kind := geom.KindCartesian
	if req.Kind != "" {
		k, err := geom.ParseKind(req.Kind)
		if err != nil {
			return err
		}
		kind = k
	}
	p := geom.InverseResolve(req.X.Float(), req.Y.Float(), kind)
	return c.JSON(inverseResponse{Kind: p.Kind().String(), Params: p.Params()})
}

type solveRequest struct {
	Case string `json:"case"`
	V1   scalar `json:"v1"`
	V2   scalar `json:"v2"`
	V3   scalar `json:"v3"`
}

type solveResponse struct {
	Case     trig.Case     `json:"case"`
	Given    []trig.Given  `json:"given"`
	Solution trig.Solution `json:"solution"`
	Rounded  trig.Solution `json:"rounded"`
}

// solve runs the triangle solver. Geometry the solver rejects is a 422.
func (s *Server) solve(c fiber.Ctx) error {
	var req solveRequest
	if err := decode(c, &req); err != nil {
		return err
	}
	cs, err := trig.ParseCase(req.Case)
	if err != nil {
		return err
	}
	v1, v2, v3 := req.V1.Float(), req.V2.Float(), req.V3.Float()
	sol, err := trig.Solve(cs, v1, v2, v3)
	if err != nil {
		return err
	}
	return c.JSON(solveResponse{
		Case:     cs,
		Given:    trig.GivenValues(cs, v1, v2, v3),
		Solution: sol,
		Rounded:  sol.Rounded(),
	})
}

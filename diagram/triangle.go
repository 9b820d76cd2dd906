package diagram

import (
	"math"

	"github.com/Daniel-dg-conta1/math-Suite/trig"
)

// TriangleOptions configures BuildTriangleDiagram.
type TriangleOptions struct {
	FontSize   float64
	TextHeight float64
	VertexGap  float64 // distance of vertex labels beyond the vertex
	SideGap    float64 // distance of side labels beyond the midpoint
	Measurer   TextMeasurer
	SideText   func(side string) string // defaults to the side name
}

func (o *TriangleOptions) setDefaults() {
	if o.FontSize == 0 {
		o.FontSize = 3
	}
	if o.TextHeight == 0 {
		o.TextHeight = 3
	}
	if o.VertexGap == 0 {
		o.VertexGap = 3
	}
	if o.SideGap == 0 {
		o.SideGap = 2.5
	}
	if o.Measurer == nil {
		o.Measurer = approxMeasurer{}
	}
	if o.SideText == nil {
		o.SideText = func(side string) string { return side }
	}
}

// TriangleDiagram is a placed triangle with vertex and side labels.
type TriangleDiagram struct {
	Region       Box      `json:"region"`
	Frame        Frame    `json:"-"`
	Vertices     [3]Point `json:"vertices"`
	VertexLabels [3]Label `json:"vertexLabels"`
	SideLabels   [3]Label `json:"sideLabels"`
}

// BuildTriangleDiagram centers the triangle's bounding box in the region
// and scales it so the vertex farthest from the box center spans
// TargetFill of the half-size. Labels are pushed away from the centroid.
func BuildTriangleDiagram(region Box, tri trig.Triangle, opts TriangleOptions) TriangleDiagram {
	opts.setDefaults()

	pts := tri.Points()
	frame := PointsFrame(region, pts)
	d := TriangleDiagram{Region: region, Frame: frame}
	for i, p := range pts {
		d.Vertices[i] = frame.ToRender(p)
	}

	centroid := Point{
		X: (d.Vertices[0].X + d.Vertices[1].X + d.Vertices[2].X) / 3,
		Y: (d.Vertices[0].Y + d.Vertices[1].Y + d.Vertices[2].Y) / 3,
	}

	label := func(text string, at Point, gap float64) Label {
		p := outward(centroid, at, gap)
		return Centered(text, p, opts.Measurer.TextWidth(text, opts.FontSize), opts.TextHeight)
	}

	for i, name := range []string{"A", "B", "C"} {
		d.VertexLabels[i] = label(name, d.Vertices[i], opts.VertexGap)
	}
	// side a is opposite A, i.e. BC
	sides := []struct {
		name string
		p, q Point
	}{
		{"a", d.Vertices[1], d.Vertices[2]},
		{"b", d.Vertices[0], d.Vertices[2]},
		{"c", d.Vertices[0], d.Vertices[1]},
	}
	for i, s := range sides {
		d.SideLabels[i] = label(opts.SideText(s.name), s.p.Lerp(s.q, 0.5), opts.SideGap)
	}
	return d
}

// outward moves p by gap along the direction from c to p.
func outward(c, p Point, gap float64) Point {
	d := p.Sub(c)
	n := math.Hypot(d.X, d.Y)
	if n < MinMagnitude {
		return Point{p.X, p.Y - gap}
	}
	return p.Add(d.Scale(gap / n))
}

package diagram

import "math"

// ArrowStyle sizes an arrow in render units. Resultant arrows use a
// larger Scale.
type ArrowStyle struct {
	HeadLength float64
	HeadWidth  float64 // half-width as a fraction of HeadLength
	LineWidth  float64
	Scale      float64
}

// DefaultArrowStyle matches the sheet renderer, in millimetres.
var DefaultArrowStyle = ArrowStyle{
	HeadLength: 3.5,
	HeadWidth:  0.35,
	LineWidth:  0.4,
	Scale:      1,
}

// WithScale returns a copy using factor as Scale.
func (s ArrowStyle) WithScale(factor float64) ArrowStyle {
	s.Scale = factor
	return s
}

// Head is a filled arrowhead: Tip plus two base corners. ShaftEnd is
// where the shaft stops so the line does not poke through the tip.
type Head struct {
	Tip      Point   `json:"tip"`
	Left     Point   `json:"left"`
	Right    Point   `json:"right"`
	ShaftEnd Point   `json:"shaftEnd"`
	Width    float64 `json:"lineWidth"`
}

// Polygon returns the head corners in drawing order.
func (h Head) Polygon() []Point {
	return []Point{h.Tip, h.Left, h.Right}
}

// ArrowHead computes the head of an arrow from tail to tip. A zero-length
// arrow gets a degenerate head at the tip.
func ArrowHead(tail, tip Point, style ArrowStyle) Head {
	length := style.HeadLength * style.Scale
	h := Head{Tip: tip, Left: tip, Right: tip, ShaftEnd: tip, Width: style.LineWidth * style.Scale}
	d := tip.Sub(tail)
	n := math.Hypot(d.X, d.Y)
	if n == 0 {
		return h
	}
	if length > n {
		length = n
	}
	ux, uy := d.X/n, d.Y/n
	base := Point{tip.X - ux*length, tip.Y - uy*length}
	half := length * style.HeadWidth
	h.Left = Point{base.X - uy*half, base.Y + ux*half}
	h.Right = Point{base.X + uy*half, base.Y - ux*half}
	h.ShaftEnd = Point{tip.X - ux*length*0.8, tip.Y - uy*length*0.8}
	return h
}

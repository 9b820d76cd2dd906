package diagram

import (
	"math"

	"github.com/Daniel-dg-conta1/math-Suite/geom"
)

const (
	// TargetFill is the fraction of the half-size the largest element spans.
	TargetFill = 0.70
	// MinMagnitude floors the largest magnitude before dividing by it.
	MinMagnitude = 0.001
)

// Point is a position in render space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt creates a new point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + other.
func (p Point) Add(other Point) Point {
	return Point{p.X + other.X, p.Y + other.Y}
}

// Sub returns p - other.
func (p Point) Sub(other Point) Point {
	return Point{p.X - other.X, p.Y - other.Y}
}

// Scale returns p * factor.
func (p Point) Scale(factor float64) Point {
	return Point{p.X * factor, p.Y * factor}
}

// Distance returns the distance to another point.
func (p Point) Distance(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Lerp interpolates between p and other.
func (p Point) Lerp(other Point, t float64) Point {
	return Point{
		X: p.X + (other.X-p.X)*t,
		Y: p.Y + (other.Y-p.Y)*t,
	}
}

// Box is an axis-aligned rectangle in render space; (X, Y) is the
// top-left corner.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Right returns the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// Center returns the center point.
func (b Box) Center() Point {
	return Point{b.X + b.W/2, b.Y + b.H/2}
}

// Intersects returns true if the boxes overlap. Touching edges do not count.
func (b Box) Intersects(other Box) bool {
	return b.X < other.Right() && b.Right() > other.X &&
		b.Y < other.Bottom() && b.Bottom() > other.Y
}

// Contains returns true if the point lies inside the box.
func (b Box) Contains(p Point) bool {
	return p.X >= b.X && p.X <= b.Right() && p.Y >= b.Y && p.Y <= b.Bottom()
}

// FitScale returns the factor that makes an element of length maxMagnitude
// span TargetFill of half the region size.
func FitScale(size, maxMagnitude float64) float64 {
	return size / 2 * TargetFill / math.Max(maxMagnitude, MinMagnitude)
}

// Frame maps math coordinates (y up) onto render coordinates (y down).
// The math point Origin lands on Center.
type Frame struct {
	Center Point
	Origin geom.Vector2
	Scale  float64
}

// ToRender transforms a math point into render space.
func (f Frame) ToRender(v geom.Vector2) Point {
	return Point{
		X: f.Center.X + (v.X-f.Origin.X)*f.Scale,
		Y: f.Center.Y - (v.Y-f.Origin.Y)*f.Scale,
	}
}

// ToMath inverts ToRender. A positive snap rounds both components to the
// nearest multiple of snap, as a dragged arrowhead does.
func (f Frame) ToMath(p Point, snap float64) geom.Vector2 {
	scale := f.Scale
	if scale == 0 {
		scale = MinMagnitude
	}
	v := geom.Vector2{
		X: f.Origin.X + (p.X-f.Center.X)/scale,
		Y: f.Origin.Y - (p.Y-f.Center.Y)/scale,
	}
	if snap > 0 {
		v.X = math.Round(v.X/snap) * snap
		v.Y = math.Round(v.Y/snap) * snap
	}
	return v
}

// VectorFrame centers the shared origin in the square region and scales
// the longest vector to TargetFill.
func VectorFrame(region Box, vectors []geom.Vector2) Frame {
	var maxMag float64
	for _, v := range vectors {
		maxMag = math.Max(maxMag, v.Magnitude())
	}
	return Frame{
		Center: region.Center(),
		Scale:  FitScale(math.Min(region.W, region.H), maxMag),
	}
}

// PointsFrame centers the bounding box of points in the region and scales
// the point farthest from that center to TargetFill.
func PointsFrame(region Box, points []geom.Vector2) Frame {
	if len(points) == 0 {
		return Frame{Center: region.Center(), Scale: FitScale(math.Min(region.W, region.H), 0)}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	origin := geom.Vec((minX+maxX)/2, (minY+maxY)/2)
	var extent float64
	for _, p := range points {
		extent = math.Max(extent, p.Sub(origin).Magnitude())
	}
	return Frame{
		Center: region.Center(),
		Origin: origin,
		Scale:  FitScale(math.Min(region.W, region.H), extent),
	}
}

package diagram

import (
	"fmt"
	"math"

	"github.com/Daniel-dg-conta1/math-Suite/geom"
)

// ArcStyle controls angle-arc geometry. Lengths are render units.
type ArcStyle struct {
	Radius         float64
	SmallAngle     float64 // below this |difference| the arc is enlarged
	SmallFactor    float64
	LabelGap       float64
	SmallLabelGap  float64
	Segments       int
	MinMagnitude   float64 // vectors at or below this magnitude get no arc
	LabelPrecision int
}

// DefaultArcStyle matches the sheet renderer, in millimetres.
var DefaultArcStyle = ArcStyle{
	Radius:        8,
	SmallAngle:    20,
	SmallFactor:   2.5,
	LabelGap:      3,
	SmallLabelGap: 8,
	Segments:      12,
	MinMagnitude:  0.5,
}

// Arc is the angle between a vector and its nearest axis.
type Arc struct {
	Center Point   `json:"center"`
	Radius float64 `json:"radius"`
	From   float64 `json:"from"` // axis angle, degrees
	Diff   float64 `json:"diff"` // signed sweep from the axis, degrees
	Points []Point `json:"points"`
	Label  string  `json:"label"`
	Anchor Point   `json:"anchor"` // label center
}

// AngleArc builds the arc for a vector of the given magnitude drawn at
// angle degrees from center. It reports false when there is no angle to
// show: axis-aligned vectors and vectors too short to carry an arc.
func AngleArc(center Point, angle, magnitude float64, style ArcStyle) (Arc, bool) {
	if magnitude <= style.MinMagnitude {
		return Arc{}, false
	}
	switch math.Round(angle) {
	case 0, 90, 180, 270, 360:
		return Arc{}, false
	}
	axis := geom.NearestAxis(angle)
	diff := geom.SignedAngleDiff(axis, angle)
	if math.Round(math.Abs(diff)) == 0 {
		return Arc{}, false
	}

	radius := style.Radius
	labelGap := style.LabelGap
	if math.Abs(diff) < style.SmallAngle {
		radius *= style.SmallFactor
		labelGap = style.SmallLabelGap
	}
	segments := style.Segments
	if segments < 1 {
		segments = 1
	}

	arc := Arc{
		Center: center,
		Radius: radius,
		From:   axis,
		Diff:   diff,
		Points: make([]Point, 0, segments+1),
		Label:  fmt.Sprintf("%.*f°", style.LabelPrecision, math.Abs(diff)),
	}
	for i := 0; i <= segments; i++ {
		a := axis + diff*float64(i)/float64(segments)
		arc.Points = append(arc.Points, polar(center, radius, a))
	}
	arc.Anchor = polar(center, radius+labelGap, axis+diff/2)
	return arc, true
}

// polar returns the render point at distance r and math angle deg from c.
func polar(c Point, r, deg float64) Point {
	rad := deg * geom.DegToRad
	return Point{c.X + r*math.Cos(rad), c.Y - r*math.Sin(rad)}
}

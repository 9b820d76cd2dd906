// Package diagram computes render geometry for vector and triangle diagrams:
// angular de-cluttering of arrows sharing an origin, the math-to-render
// transform with auto-scaling, angle arcs, arrowheads and label placement.
//
// Render space has its origin at the top-left corner with y growing
// downward. Units are whatever the renderer uses (millimetres for sheets,
// pixels for previews); nothing in this package depends on them.
package diagram

import (
	"math"
	"sort"

	"github.com/Daniel-dg-conta1/math-Suite/geom"
)

// DefaultMinSeparation is the angular gap, in degrees, below which arrows
// sharing an origin are spread apart.
const DefaultMinSeparation = 6.0

// Item is one vector fed to VisualLayout.
type Item struct {
	ID int
	V  geom.Vector2
}

// Placement is where a vector is drawn. Magnitude is always the exact
// magnitude of the input; VisualAngle and X/Y differ from the true
// direction only when the vector was part of a cluster.
type Placement struct {
	ID            int     `json:"id"`
	OriginalAngle float64 `json:"originalAngle"`
	VisualAngle   float64 `json:"visualAngle"`
	Magnitude     float64 `json:"magnitude"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
}

// Moved reports whether the placement was redistributed.
func (p Placement) Moved() bool {
	return p.VisualAngle != p.OriginalAngle
}

type angled struct {
	index int
	angle float64 // unwrapped, may exceed 360 after a wrap merge
}

// VisualLayout spreads vectors whose directions lie closer than minSep
// degrees. Consecutive vectors (by angle) closer than minSep form a
// cluster, the clusters on both sides of 0° are merged when the wrap gap
// is also below minSep, and each cluster of two or more is re-spaced
// exactly minSep apart around its mean angle. Placements are returned in
// input order. A non-positive minSep disables clustering.
func VisualLayout(items []Item, minSep float64) []Placement {
	out := make([]Placement, len(items))
	sorted := make([]angled, len(items))
	for i, it := range items {
		a := it.V.Angle()
		out[i] = Placement{
			ID:            it.ID,
			OriginalAngle: a,
			VisualAngle:   a,
			Magnitude:     it.V.Magnitude(),
			X:             it.V.X,
			Y:             it.V.Y,
		}
		sorted[i] = angled{index: i, angle: a}
	}
	if len(items) < 2 || minSep <= 0 {
		return out
	}

	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].angle < sorted[j].angle })

	var clusters [][]angled
	current := []angled{sorted[0]}
	for _, s := range sorted[1:] {
		if s.angle-current[len(current)-1].angle < minSep {
			current = append(current, s)
			continue
		}
		clusters = append(clusters, current)
		current = []angled{s}
	}
	clusters = append(clusters, current)

	if len(clusters) >= 2 {
		first := clusters[0]
		last := clusters[len(clusters)-1]
		if first[0].angle+360-last[len(last)-1].angle < minSep {
			merged := make([]angled, 0, len(first)+len(last))
			merged = append(merged, last...)
			for _, s := range first {
				merged = append(merged, angled{index: s.index, angle: s.angle + 360})
			}
			clusters = append([][]angled{merged}, clusters[1:len(clusters)-1]...)
		}
	}

	for _, c := range clusters {
		if len(c) < 2 {
			continue
		}
		var sum float64
		for _, s := range c {
			sum += s.angle
		}
		mean := sum / float64(len(c))
		start := mean - float64(len(c)-1)*minSep/2
		for k, s := range c {
			p := &out[s.index]
			p.VisualAngle = geom.NormalizeAngle(start + float64(k)*minSep)
			rad := p.VisualAngle * geom.DegToRad
			p.X = p.Magnitude * math.Cos(rad)
			p.Y = p.Magnitude * math.Sin(rad)
		}
	}
	return out
}

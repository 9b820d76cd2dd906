package diagram

import "unicode/utf8"

// TextMeasurer reports the rendered width of a string at a font size, in
// render units.
type TextMeasurer interface {
	TextWidth(text string, size float64) float64
}

// approxMeasurer assumes every glyph is half an em wide.
type approxMeasurer struct{}

func (approxMeasurer) TextWidth(text string, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * size * 0.5
}

// Label is placed text. (X, Y) is the left end of the baseline.
type Label struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Box  Box     `json:"box"`
}

// LabelPlacer positions labels next to arrow tips, nudging a label once
// when it collides with a label placed earlier or with an exclusion zone.
// Dense diagrams may still overlap after the nudge.
type LabelPlacer struct {
	TextHeight float64
	Offset     float64 // distance between tip and label
	Nudge      float64
	boxes      []Box
}

// NewLabelPlacer creates a placer with the given exclusion zones.
func NewLabelPlacer(textHeight float64, exclusions ...Box) *LabelPlacer {
	return &LabelPlacer{
		TextHeight: textHeight,
		Offset:     4,
		Nudge:      4,
		boxes:      append([]Box(nil), exclusions...),
	}
}

// AxisExclusions returns the strips along the two axes through center of
// a square region: a vertical strip 10 wide and a horizontal strip 6 tall.
func AxisExclusions(region Box, center Point) []Box {
	return []Box{
		{X: center.X - 5, Y: region.Y, W: 10, H: region.H},
		{X: region.X, Y: center.Y - 3, W: region.W, H: 6},
	}
}

// Boxes returns every registered box, exclusions first.
func (lp *LabelPlacer) Boxes() []Box {
	return append([]Box(nil), lp.boxes...)
}

// Reserve registers an occupied area without placing a label.
func (lp *LabelPlacer) Reserve(b Box) {
	lp.boxes = append(lp.boxes, b)
}

func (lp *LabelPlacer) collides(b Box) bool {
	for _, o := range lp.boxes {
		if b.Intersects(o) {
			return true
		}
	}
	return false
}

func (lp *LabelPlacer) boxAt(x, baseline, width float64) Box {
	return Box{X: x - 1, Y: baseline - lp.TextHeight, W: width + 2, H: lp.TextHeight + 4}
}

// Place centers text of the given width on tip, above it when above is
// true and below otherwise, and registers the final box.
func (lp *LabelPlacer) Place(text string, tip Point, width float64, above bool) Label {
	x := tip.X - width/2
	var y, dir float64
	if above {
		y = tip.Y - lp.Offset
		dir = -1
	} else {
		y = tip.Y + lp.TextHeight + lp.Offset
		dir = 1
	}
	box := lp.boxAt(x, y, width)
	if lp.collides(box) {
		y += dir * lp.Nudge
		box = lp.boxAt(x, y, width)
	}
	lp.boxes = append(lp.boxes, box)
	return Label{Text: text, X: x, Y: y, Box: box}
}

// Centered returns a label whose text is centered on p without collision
// handling.
func Centered(text string, p Point, width, textHeight float64) Label {
	x := p.X - width/2
	y := p.Y + textHeight/2
	return Label{Text: text, X: x, Y: y, Box: Box{X: x, Y: y - textHeight, W: width, H: textHeight}}
}

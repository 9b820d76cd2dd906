package diagram

import (
	"math"
	"strconv"

	"github.com/Daniel-dg-conta1/math-Suite/geom"
)

// Role distinguishes how a vector is drawn.
type Role int

const (
	RoleGiven Role = iota
	RoleResultant
	RoleMissing
)

func (r Role) String() string {
	switch r {
	case RoleResultant:
		return "resultant"
	case RoleMissing:
		return "missing"
	default:
		return "given"
	}
}

// MarshalText encodes the role by name.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Color is an 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+2*i] = digits[v>>4]
		b[2+2*i] = digits[v&0x0f]
	}
	return string(b)
}

var (
	palette = []Color{
		{37, 99, 235},
		{234, 88, 12},
		{22, 163, 74},
		{147, 51, 234},
		{219, 39, 119},
		{8, 145, 178},
	}
	// ResultantColor is used for R.
	ResultantColor = Color{220, 38, 38}
	// MissingColor is used for the missing vector in answer keys.
	MissingColor = Color{5, 150, 105}
	// AxisColor is used for axes and their labels.
	AxisColor = Color{100, 116, 139}
)

// PaletteColor returns the color of the i-th given vector.
func PaletteColor(i int) Color {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

// VectorSpec is one arrow to draw.
type VectorSpec struct {
	ID    int
	Label string
	V     geom.Vector2
	Role  Role
}

// VectorOptions configures BuildVectorDiagram. Zero fields take defaults.
type VectorOptions struct {
	// MinSeparation is handed to VisualLayout; zero means
	// DefaultMinSeparation and a negative value disables spreading.
	MinSeparation float64
	FontSize      float64
	TextHeight    float64
	Measurer      TextMeasurer
	Arrow         ArrowStyle
	Arc           ArcStyle
	NoArcs        bool
}

func (o *VectorOptions) setDefaults() {
	if o.MinSeparation == 0 {
		o.MinSeparation = DefaultMinSeparation
	}
	if o.FontSize == 0 {
		o.FontSize = 3
	}
	if o.TextHeight == 0 {
		o.TextHeight = 3
	}
	if o.Measurer == nil {
		o.Measurer = approxMeasurer{}
	}
	if o.Arrow == (ArrowStyle{}) {
		o.Arrow = DefaultArrowStyle
	}
	if o.Arc.Segments == 0 {
		o.Arc = DefaultArcStyle
	}
}

// Segment is a straight line in render space.
type Segment struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

// Arrow is a fully placed vector.
type Arrow struct {
	ID        int       `json:"id"`
	Label     string    `json:"label"`
	Role      Role      `json:"role"`
	Color     Color     `json:"-"`
	Placement Placement `json:"placement"`
	Tail      Point     `json:"tail"`
	Head      Head      `json:"head"`
	Value     Label     `json:"value"`
	Arc       *Arc      `json:"arc,omitempty"`
}

// VectorDiagram is everything a renderer needs to draw a vector diagram.
type VectorDiagram struct {
	Region     Box        `json:"region"`
	Frame      Frame      `json:"-"`
	Axes       [2]Segment `json:"axes"`
	AxisLabels [2]Label   `json:"axisLabels"`
	Arrows     []Arrow    `json:"arrows"`
}

// MagnitudeText is the label drawn next to an arrow: the magnitude rounded
// to an integer, prefixed with "R=" for the resultant and "<label>=" for a
// missing vector.
func MagnitudeText(spec VectorSpec, magnitude float64) string {
	value := strconv.FormatFloat(math.Round(magnitude), 'f', 0, 64)
	switch spec.Role {
	case RoleResultant:
		return "R=" + value
	case RoleMissing:
		if spec.Label != "" {
			return spec.Label + "=" + value
		}
	}
	return value
}

// BuildVectorDiagram lays out arrows sharing an origin at the center of a
// square region. Directions are de-cluttered with VisualLayout, the
// longest arrow spans TargetFill of the half-size, and labels avoid the
// axes and each other on a best-effort basis.
func BuildVectorDiagram(region Box, specs []VectorSpec, opts VectorOptions) VectorDiagram {
	opts.setDefaults()

	items := make([]Item, len(specs))
	vectors := make([]geom.Vector2, len(specs))
	for i, s := range specs {
		items[i] = Item{ID: s.ID, V: s.V}
		vectors[i] = s.V
	}
	frame := VectorFrame(region, vectors)
	center := frame.Center

	d := VectorDiagram{
		Region: region,
		Frame:  frame,
		Axes: [2]Segment{
			{From: Pt(region.X, center.Y), To: Pt(region.Right(), center.Y)},
			{From: Pt(center.X, region.Bottom()), To: Pt(center.X, region.Y)},
		},
		AxisLabels: [2]Label{
			{Text: "x", X: region.Right() - 3, Y: center.Y - 1},
			{Text: "y", X: center.X + 1, Y: region.Y + 3},
		},
		Arrows: make([]Arrow, 0, len(specs)),
	}

	placer := NewLabelPlacer(opts.TextHeight, AxisExclusions(region, center)...)
	placements := VisualLayout(items, opts.MinSeparation)
	given := 0
	for i, s := range specs {
		p := placements[i]
		tip := frame.ToRender(geom.Vec(p.X, p.Y))

		style := opts.Arrow
		var color Color
		switch s.Role {
		case RoleResultant:
			style = style.WithScale(1.4)
			color = ResultantColor
		case RoleMissing:
			color = MissingColor
		default:
			color = PaletteColor(given)
			given++
		}

		a := Arrow{
			ID:        s.ID,
			Label:     s.Label,
			Role:      s.Role,
			Color:     color,
			Placement: p,
			Tail:      center,
			Head:      ArrowHead(center, tip, style),
		}
		if !opts.NoArcs {
			if arc, ok := AngleArc(center, p.OriginalAngle, p.Magnitude, opts.Arc); ok {
				a.Arc = &arc
			}
		}
		text := MagnitudeText(s, p.Magnitude)
		a.Value = placer.Place(text, tip, opts.Measurer.TextWidth(text, opts.FontSize), s.V.Y > 0)
		d.Arrows = append(d.Arrows, a)
	}
	return d
}

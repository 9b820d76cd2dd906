// Package preview renders single vector and triangle diagrams as SVG for
// live editing views.
package preview

import (
	"errors"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/Daniel-dg-conta1/math-Suite/diagram"
	"github.com/Daniel-dg-conta1/math-Suite/trig"
)

// ErrNoVectors is returned when a vector preview has nothing to draw.
var ErrNoVectors = errors.New("no vectors to draw")

// Sizes accepted for a preview, in pixels.
const (
	DefaultSize = 320
	MinSize     = 120
	MaxSize     = 2000
)

// Options controls a preview. Zero fields take defaults.
type Options struct {
	Size          int     // square canvas side in pixels
	FontSize      float64 // label size in pixels
	MinSeparation float64 // visual layout spread in degrees; negative disables
	Measurer      diagram.TextMeasurer
}

func (o *Options) setDefaults() error {
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	o.Size = min(max(o.Size, MinSize), MaxSize)
	if o.FontSize == 0 {
		o.FontSize = 12
	}
	if o.MinSeparation == 0 {
		o.MinSeparation = diagram.DefaultMinSeparation
	}
	if o.Measurer == nil {
		m, err := defaultMeasurer()
		if err != nil {
			return err
		}
		o.Measurer = m
	}
	return nil
}

// k scales sheet dimensions, tuned for a 90 mm diagram, to the canvas.
func (o Options) k() float64 {
	return float64(o.Size) / 90
}

// Vectors draws arrows sharing the origin at the canvas center.
func Vectors(w io.Writer, specs []diagram.VectorSpec, opts Options) error {
	if len(specs) == 0 {
		return ErrNoVectors
	}
	if err := opts.setDefaults(); err != nil {
		return err
	}
	k := opts.k()
	size := float64(opts.Size)
	d := diagram.BuildVectorDiagram(diagram.Box{W: size, H: size}, specs, diagram.VectorOptions{
		MinSeparation: opts.MinSeparation,
		FontSize:      opts.FontSize,
		TextHeight:    opts.FontSize * 0.75,
		Measurer:      opts.Measurer,
		Arrow: diagram.ArrowStyle{
			HeadLength: 3.5 * k,
			HeadWidth:  0.35,
			LineWidth:  0.4 * k,
			Scale:      1,
		},
		Arc: diagram.ArcStyle{
			Radius:        8 * k,
			SmallAngle:    20,
			SmallFactor:   2.5,
			LabelGap:      3 * k,
			SmallLabelGap: 8 * k,
			Segments:      12,
			MinMagnitude:  0.5,
		},
	})

	canvas := svg.New(w)
	canvas.Start(opts.Size, opts.Size)
	canvas.Rect(0, 0, opts.Size, opts.Size, "fill:#ffffff")

	axisStyle := fmt.Sprintf("stroke:#94a3b8;stroke-width:%.2f", 0.2*k)
	for _, ax := range d.Axes {
		canvas.Line(ix(ax.From.X), ix(ax.From.Y), ix(ax.To.X), ix(ax.To.Y), axisStyle)
	}
	for _, l := range d.AxisLabels {
		canvas.Text(ix(l.X), ix(l.Y), l.Text, textStyle(opts.FontSize*0.8, "#64748b", false))
	}

	arcStyle := fmt.Sprintf("fill:none;stroke:#64748b;stroke-width:%.2f", 0.15*k)
	for _, a := range d.Arrows {
		if a.Arc == nil {
			continue
		}
		xs, ys := coords(a.Arc.Points)
		canvas.Polyline(xs, ys, arcStyle)
		canvas.Text(ix(a.Arc.Anchor.X), ix(a.Arc.Anchor.Y+opts.FontSize*0.3), a.Arc.Label,
			textStyle(opts.FontSize*0.9, "#000000", true)+";text-anchor:middle")
	}
	for _, a := range d.Arrows {
		color := a.Color.Hex()
		canvas.Line(ix(a.Tail.X), ix(a.Tail.Y), ix(a.Head.ShaftEnd.X), ix(a.Head.ShaftEnd.Y),
			fmt.Sprintf("stroke:%s;stroke-width:%.2f;stroke-linecap:round", color, a.Head.Width))
		xs, ys := coords(a.Head.Polygon())
		canvas.Polygon(xs, ys, "fill:"+color)

		textColor, bold := "#1e293b", false
		if a.Role == diagram.RoleResultant {
			textColor, bold = diagram.ResultantColor.Hex(), true
		}
		canvas.Text(ix(a.Value.X), ix(a.Value.Y), a.Value.Text, textStyle(opts.FontSize, textColor, bold))
	}
	canvas.End()
	return nil
}

// Triangle draws a solved triangle with vertex and side labels.
func Triangle(w io.Writer, s trig.Solution, opts Options) error {
	if !s.Valid {
		return trig.ErrInvalidGeometry
	}
	if err := opts.setDefaults(); err != nil {
		return err
	}
	k := opts.k()
	size := float64(opts.Size)
	d := diagram.BuildTriangleDiagram(diagram.Box{W: size, H: size}, trig.Vertices(s), diagram.TriangleOptions{
		FontSize:   opts.FontSize,
		TextHeight: opts.FontSize * 0.75,
		VertexGap:  3 * k,
		SideGap:    2.5 * k,
		Measurer:   opts.Measurer,
	})

	canvas := svg.New(w)
	canvas.Start(opts.Size, opts.Size)
	canvas.Rect(0, 0, opts.Size, opts.Size, "fill:#ffffff")
	xs, ys := coords(d.Vertices[:])
	canvas.Polygon(xs, ys, fmt.Sprintf("fill:#fafafa;stroke:#000000;stroke-width:%.2f;stroke-linejoin:round", 0.3*k))
	for _, l := range d.VertexLabels {
		canvas.Text(ix(l.X), ix(l.Y), l.Text, textStyle(opts.FontSize, "#000000", true))
	}
	for _, l := range d.SideLabels {
		canvas.Text(ix(l.X), ix(l.Y), l.Text, textStyle(opts.FontSize*0.9, "#505050", false))
	}
	canvas.End()
	return nil
}

func textStyle(size float64, color string, bold bool) string {
	weight := "normal"
	if bold {
		weight = "bold"
	}
	return fmt.Sprintf("font-family:sans-serif;font-size:%.1fpx;font-weight:%s;fill:%s", size, weight, color)
}

// ix rounds a render coordinate to the integer grid svgo draws on.
func ix(v float64) int {
	return int(math.Round(v))
}

func coords(pts []diagram.Point) (xs, ys []int) {
	xs = make([]int, len(pts))
	ys = make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = ix(p.X), ix(p.Y)
	}
	return xs, ys
}

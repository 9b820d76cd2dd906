package sheet

import (
	"io"

	"github.com/Daniel-dg-conta1/math-Suite/diagram"
	"github.com/Daniel-dg-conta1/math-Suite/exercise"
	"github.com/Daniel-dg-conta1/math-Suite/geom"
	"github.com/Daniel-dg-conta1/math-Suite/paginate"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/content"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/fonts"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/layout"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/writer"
)

// vector diagram label sizes, in points
const (
	valueSize = 10.0
	axisSize  = 8.0
	arcSize   = 9.0
)

// Vectors renders a vector exercise sheet.
func Vectors(exercises []exercise.VectorExercise, opts Options) (*writer.Document, error) {
	if len(exercises) == 0 {
		return nil, ErrNoExercises
	}
	opts.setDefaults()
	l, err := PlanVectors(opts)
	if err != nil {
		return nil, err
	}

	title := opts.Title
	if title == "" {
		title = opts.Locale.T("Exercise List")
		if opts.Teacher {
			title = opts.Locale.T("Answer Key")
		}
	}
	doc := newDocument(title, opts)
	page := layout.NewPage(opts.PageSize, layout.Mm, vectorMargins)

	n := 0
	for p, group := range paginate.Pages(exercises, l.ItemsPerPage) {
		c := newCanvas(doc, page)
		if p == 0 {
			header(c, title, opts)
		}
		for slot, ex := range group {
			n++
			ox, oy := l.Offset(slot)
			x := page.Margins.Left + ox
			y := page.Margins.Top + oy
			if opts.Mode == ModeGrid {
				vectorCell(c, ex, n, x+(l.CellWidth-diagramSize)/2, y, opts)
			} else {
				vectorBlock(c, ex, n, x, y, opts)
			}
		}
		if err := c.finish(); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// WriteVectors renders a vector sheet to w.
func WriteVectors(w io.Writer, exercises []exercise.VectorExercise, opts Options) error {
	doc, err := Vectors(exercises, opts)
	return write(w, doc, err)
}

// vectorBlock draws one full-mode question starting at (x, y).
func vectorBlock(c *canvas, ex exercise.VectorExercise, n int, x, y float64, opts Options) {
	loc := opts.Locale
	c.text(fonts.HelveticaBold, 12, x, y, loc.T("Question %d", n), black)
	prompt := loc.T("Find the resultant vector (R) of the system.")
	if ex.Kind == exercise.KindMissing {
		prompt = loc.T("Find the missing vector (Vf) for equilibrium.")
	}
	c.text(fonts.Helvetica, 10, x+30, y, prompt, black)
	y += questionHeader

	drawVectorDiagram(c, vectorDiagram(ex, x, y, opts))

	right := c.page.Width() - c.page.Margins.Right
	if !opts.Teacher {
		lineX := x + diagramSize + 10
		c.line(diagram.Pt(lineX, y), diagram.Pt(lineX, y+diagramSize), 0.1, lightLine)
		c.text(fonts.Helvetica, 8, lineX+3, y+5, loc.T("Space for calculations:"), gray(150))
	}
	y += diagramSize + blockPadding

	if opts.Teacher {
		c.fillRect(diagram.Box{X: x, Y: y, W: right - x, H: 15}, content.RGB{R: 241, G: 245, B: 249})
		c.text(fonts.HelveticaBold, 10, x+4, y+10, answerText(loc, ex.Solution), darkText)
		y += answerHeight
	} else {
		y += studentGap
	}
	c.line(diagram.Pt(x, y), diagram.Pt(right, y), 0.5, divider)
}

// vectorCell draws one grid-mode diagram with its question number.
func vectorCell(c *canvas, ex exercise.VectorExercise, n int, x, y float64, opts Options) {
	drawVectorDiagram(c, vectorDiagram(ex, x, y, opts))
	c.text(fonts.HelveticaBold, 9, x, y+3, opts.Locale.T("Q%d", n), black)
}

func vectorDiagram(ex exercise.VectorExercise, x, y float64, opts Options) diagram.VectorDiagram {
	region := diagram.Box{X: x, Y: y, W: diagramSize, H: diagramSize}
	return diagram.BuildVectorDiagram(region, ex.Specs(opts.Teacher), diagram.VectorOptions{
		MinSeparation: opts.MinSeparation,
		FontSize:      valueSize / ptPerMm,
		TextHeight:    3,
		Measurer:      measurer(fonts.Helvetica),
	})
}

func answerText(loc Locale, s exercise.VectorSolution) string {
	num := func(v float64) string { return loc.Number(geom.Round(v)) }
	return loc.T("Answer: %s = (%s; %s)   |%s| = %s   angle = %s°",
		s.Label, num(s.X), num(s.Y), s.Label, num(s.Magnitude), num(s.Angle))
}

func drawVectorDiagram(c *canvas, d diagram.VectorDiagram) {
	for _, ax := range d.Axes {
		c.line(ax.From, ax.To, 0.2, axisLine)
	}
	for _, l := range d.AxisLabels {
		c.text(fonts.Helvetica, axisSize, l.X, l.Y, l.Text, arcLine)
	}
	for _, a := range d.Arrows {
		if a.Arc != nil {
			c.polyline(a.Arc.Points, 0.15, arcLine)
			w := textWidth(fonts.HelveticaBold, arcSize, a.Arc.Label)
			c.text(fonts.HelveticaBold, arcSize, a.Arc.Anchor.X-w/2, a.Arc.Anchor.Y+1, a.Arc.Label, black)
		}
		col := rgb(a.Color)
		c.line(a.Tail, a.Head.ShaftEnd, a.Head.Width, col)
		c.polygon(a.Head.Polygon(), col)

		font, textCol := fonts.Helvetica, darkText
		if a.Role == diagram.RoleResultant {
			font, textCol = fonts.HelveticaBold, rgb(diagram.ResultantColor)
		}
		c.text(font, valueSize, a.Value.X, a.Value.Y, a.Value.Text, textCol)
	}
}

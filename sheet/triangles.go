package sheet

import (
	"io"
	"math"
	"strings"

	"github.com/Daniel-dg-conta1/math-Suite/diagram"
	"github.com/Daniel-dg-conta1/math-Suite/exercise"
	"github.com/Daniel-dg-conta1/math-Suite/paginate"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/fonts"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/layout"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/writer"
	"github.com/Daniel-dg-conta1/math-Suite/trig"
)

const (
	vertexSize = 8.0
	sideSize   = 7.0
)

// Triangles renders a triangle exercise sheet.
func Triangles(exercises []exercise.TriangleExercise, opts Options) (*writer.Document, error) {
	if len(exercises) == 0 {
		return nil, ErrNoExercises
	}
	opts.setDefaults()
	l, err := PlanTriangles(opts)
	if err != nil {
		return nil, err
	}

	title := opts.Title
	if title == "" {
		title = opts.Locale.T("Exercise List - Trigonometry")
		if opts.Teacher {
			title = opts.Locale.T("Answer Key - Trigonometry")
		}
	}
	doc := newDocument(title, opts)
	page := layout.NewPage(opts.PageSize, layout.Mm, triangleMargins)
	_, usableH := page.Usable()
	cellH := usableH / float64(l.Rows)

	n := 0
	for p, group := range paginate.Pages(exercises, l.ItemsPerPage) {
		c := newCanvas(doc, page)
		if p == 0 {
			header(c, title, opts)
		}
		for slot, ex := range group {
			n++
			row, col := l.Cell(slot)
			x := page.Margins.Left + float64(col)*l.CellWidth
			if opts.Mode == ModeGrid {
				y := page.Margins.Top + float64(row)*cellH
				triangleCell(c, ex, n, diagram.Box{X: x, Y: y, W: l.CellWidth, H: cellH}, opts)
			} else {
				y := page.Margins.Top + float64(row)*l.CellHeight
				triangleBlockAt(c, ex, n, x, y, opts)
			}
		}
		if err := c.finish(); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// WriteTriangles renders a triangle sheet to w.
func WriteTriangles(w io.Writer, exercises []exercise.TriangleExercise, opts Options) error {
	doc, err := Triangles(exercises, opts)
	return write(w, doc, err)
}

func givenText(loc Locale, given []trig.Given) string {
	parts := make([]string, len(given))
	for i, g := range given {
		parts[i] = g.Label + "=" + loc.Fixed(g.Value)
	}
	return strings.Join(parts, ", ")
}

// triangleBlockAt draws one full-mode question: text and triangle on the
// left, the solution or a calculation box on the right.
func triangleBlockAt(c *canvas, ex exercise.TriangleExercise, n int, x, y float64, opts Options) {
	loc := opts.Locale
	right := c.page.Width() - c.page.Margins.Right

	c.text(fonts.HelveticaBold, 11, x, y, loc.T("Question %d (%s)", n, loc.CaseName(ex.Case)), black)
	c.text(fonts.Helvetica, 10, x, y+6, loc.T("Given: %s", givenText(loc, ex.Given)), black)
	if !opts.Teacher {
		c.text(fonts.Helvetica, 9, x, y+11, loc.T("Find the remaining sides and angles."), gray(80))
	}

	drawTriangle(c, ex.Solution, diagram.Box{X: x, Y: y + 15, W: 40, H: 40})

	box := diagram.Box{X: x + 60, Y: y, W: right - x - 60, H: 45}
	if opts.Teacher {
		s := ex.Solution.Rounded()
		c.fillRect(box, gray(245))
		c.text(fonts.HelveticaBold, 10, box.X+5, y+8, loc.T("Complete Solution:"), black)
		col1, col2 := box.X+5, box.X+50
		for i, row := range []struct {
			side, angle string
			sv, av      float64
		}{
			{"a", "A", s.SideA, s.AngleA},
			{"b", "B", s.SideB, s.AngleB},
			{"c", "C", s.SideC, s.AngleC},
		} {
			ry := y + 16 + float64(i)*6
			c.text(fonts.Helvetica, 9, col1, ry, row.side+" = "+loc.Fixed(row.sv), black)
			c.text(fonts.Helvetica, 9, col2, ry, loc.T("Angle %s = %s°", row.angle, loc.Fixed(row.av)), black)
		}
		c.text(fonts.Helvetica, 9, col1, y+38, loc.T("Area = %s", loc.Fixed(s.Area)), black)
		c.text(fonts.Helvetica, 9, col2, y+38, loc.T("Perimeter = %s", loc.Fixed(s.Perimeter)), black)
	} else {
		c.strokeRect(box, 0.2, gray(200))
		c.text(fonts.Helvetica, 9, box.X+5, y+8, loc.T("Space for calculations"), gray(150))
	}

	c.line(diagram.Pt(x, y+55), diagram.Pt(right, y+55), 0.2, lightLine)
}

// triangleCell draws one grid-mode question inside cell.
func triangleCell(c *canvas, ex exercise.TriangleExercise, n int, cell diagram.Box, opts Options) {
	loc := opts.Locale
	c.text(fonts.HelveticaBold, 10, cell.X+2, cell.Y+5, loc.T("Q%d (%s)", n, loc.CaseName(ex.Case)), black)
	c.text(fonts.Helvetica, 9, cell.X+2, cell.Y+10, givenText(loc, ex.Given), black)

	size := math.Min(cell.W*0.5, cell.H*0.6)
	drawTriangle(c, ex.Solution, diagram.Box{X: cell.X + (cell.W-size)/2, Y: cell.Y + 15, W: size, H: size})

	if opts.Teacher {
		s := ex.Solution.Rounded()
		ansY := cell.Bottom() - 12
		col := gray(50)
		c.text(fonts.Helvetica, 8, cell.X+2, ansY,
			loc.T("Ans: a=%s, b=%s, c=%s", loc.Fixed(s.SideA), loc.Fixed(s.SideB), loc.Fixed(s.SideC)), col)
		c.text(fonts.Helvetica, 8, cell.X+2, ansY+4,
			loc.T("Angles: A=%s°, B=%s°, C=%s°", loc.Fixed(s.AngleA), loc.Fixed(s.AngleB), loc.Fixed(s.AngleC)), col)
		c.text(fonts.Helvetica, 8, cell.X+2, ansY+8, loc.T("Area: %s", loc.Fixed(s.Area)), col)
	}
	c.strokeRect(diagram.Box{X: cell.X, Y: cell.Y, W: cell.W - 2, H: cell.H - 2}, 0.2, gray(230))
}

func drawTriangle(c *canvas, s trig.Solution, region diagram.Box) {
	d := diagram.BuildTriangleDiagram(region, trig.Vertices(s), diagram.TriangleOptions{
		FontSize:   vertexSize / ptPerMm,
		TextHeight: 2,
		Measurer:   measurer(fonts.Helvetica),
	})
	c.outlinedPolygon(d.Vertices[:], 0.3, gray(250), black)
	for _, l := range d.VertexLabels {
		c.text(fonts.Helvetica, vertexSize, l.X, l.Y, l.Text, black)
	}
	for _, l := range d.SideLabels {
		c.text(fonts.Helvetica, sideSize, l.X, l.Y, l.Text, gray(80))
	}
}

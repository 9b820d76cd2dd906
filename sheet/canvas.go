package sheet

import (
	"github.com/Daniel-dg-conta1/math-Suite/diagram"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/content"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/fonts"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/layout"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/writer"
)

// ptPerMm converts font sizes in points into millimetres for measuring.
const ptPerMm = 72 / 25.4

var (
	black     = content.RGB{}
	darkText  = content.RGB{R: 30, G: 41, B: 59}
	grayText  = content.RGB{R: 100, G: 100, B: 100}
	axisLine  = content.RGB{R: 148, G: 163, B: 184}
	arcLine   = content.RGB{R: 100, G: 116, B: 139}
	lightLine = content.RGB{R: 220, G: 220, B: 220}
	divider   = content.RGB{R: 226, G: 232, B: 240}
)

func gray(v uint8) content.RGB {
	return content.RGB{R: v, G: v, B: v}
}

func rgb(c diagram.Color) content.RGB {
	return content.RGB{R: c.R, G: c.G, B: c.B}
}

// canvas draws on one page in millimetres with the origin at the top-left
// corner, the same orientation diagrams are laid out in.
type canvas struct {
	page layout.Page
	doc  *writer.Document
	b    *content.Builder
}

func newCanvas(doc *writer.Document, page layout.Page) *canvas {
	return &canvas{page: page, doc: doc, b: content.NewBuilder()}
}

func (c *canvas) xy(p diagram.Point) (float64, float64) {
	return c.page.ToPDF(p.X, p.Y)
}

func (c *canvas) line(from, to diagram.Point, width float64, col content.RGB) {
	x1, y1 := c.xy(from)
	x2, y2 := c.xy(to)
	c.b.LineWidth(c.page.Length(width)).StrokeColor(col).Line(x1, y1, x2, y2)
}

func (c *canvas) polyline(pts []diagram.Point, width float64, col content.RGB) {
	c.b.LineWidth(c.page.Length(width)).StrokeColor(col).Polyline(c.flatten(pts)...)
}

func (c *canvas) polygon(pts []diagram.Point, col content.RGB) {
	c.b.FillColor(col).Polygon(c.flatten(pts)...)
}

// outlinedPolygon fills and strokes a closed shape.
func (c *canvas) outlinedPolygon(pts []diagram.Point, width float64, fill, stroke content.RGB) {
	xy := c.flatten(pts)
	c.b.LineWidth(c.page.Length(width)).FillColor(fill).StrokeColor(stroke)
	c.b.MoveTo(xy[0], xy[1])
	for i := 2; i+1 < len(xy); i += 2 {
		c.b.LineTo(xy[i], xy[i+1])
	}
	c.b.ClosePath().FillAndStroke()
}

func (c *canvas) flatten(pts []diagram.Point) []float64 {
	xy := make([]float64, 0, 2*len(pts))
	for _, p := range pts {
		x, y := c.xy(p)
		xy = append(xy, x, y)
	}
	return xy
}

func (c *canvas) fillRect(b diagram.Box, col content.RGB) {
	x, y := c.page.ToPDF(b.X, b.Bottom())
	c.b.FillColor(col).Rectangle(x, y, c.page.Length(b.W), c.page.Length(b.H)).Fill()
}

func (c *canvas) strokeRect(b diagram.Box, width float64, col content.RGB) {
	x, y := c.page.ToPDF(b.X, b.Bottom())
	c.b.LineWidth(c.page.Length(width)).StrokeColor(col).
		Rectangle(x, y, c.page.Length(b.W), c.page.Length(b.H)).Stroke()
}

// text draws s with its baseline starting at (x, y). size is in points.
func (c *canvas) text(font fonts.StandardFont, size float64, x, y float64, s string, col content.RGB) {
	px, py := c.page.ToPDF(x, y)
	c.b.FillColor(col).Text(c.doc.Font(font), size, px, py, s)
}

// textRight draws s so that it ends at x.
func (c *canvas) textRight(font fonts.StandardFont, size float64, x, y float64, s string, col content.RGB) {
	c.text(font, size, x-textWidth(font, size, s), y, s, col)
}

// textWidth returns the width of s in millimetres at size points.
func textWidth(font fonts.StandardFont, size float64, s string) float64 {
	return fonts.MustGet(font).StringWidth(s, size/ptPerMm)
}

func (c *canvas) finish() error {
	return c.doc.AddPage(c.page.Size, c.b.Render())
}

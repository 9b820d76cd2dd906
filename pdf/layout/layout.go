// Package layout provides page geometry for the sheet exporter: units,
// page sizes, margins and the mapping from top-down page coordinates to
// PDF user space.
package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPageSize is returned by ParsePageSize.
var ErrUnknownPageSize = errors.New("unknown page size")

// Unit represents a measurement unit.
type Unit float64

const (
	// Points - the base PDF unit (1/72 inch)
	Pt Unit = 1
	// Inches
	In Unit = 72
	// Centimeters
	Cm Unit = 72 / 2.54
	// Millimeters
	Mm Unit = 72 / 25.4
)

// ToPoints converts a value in the given unit to points.
func ToPoints(value float64, unit Unit) float64 {
	return value * float64(unit)
}

// FromPoints converts points to the given unit.
func FromPoints(points float64, unit Unit) float64 {
	return points / float64(unit)
}

// PageSize represents page dimensions in points.
type PageSize struct {
	Width  float64
	Height float64
}

// Standard page sizes in points
var (
	A3     = PageSize{841.89, 1190.55}
	A4     = PageSize{595.28, 841.89}
	A5     = PageSize{419.53, 595.28}
	Letter = PageSize{612, 792}
	Legal  = PageSize{612, 1008}
)

var namedSizes = map[string]PageSize{
	"a3":     A3,
	"a4":     A4,
	"a5":     A5,
	"letter": Letter,
	"legal":  Legal,
}

// ParsePageSize looks up a named size, case-insensitively. A "-landscape"
// suffix turns the page.
func ParsePageSize(name string) (PageSize, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	landscape := strings.HasSuffix(n, "-landscape")
	n = strings.TrimSuffix(n, "-landscape")
	size, ok := namedSizes[n]
	if !ok {
		return PageSize{}, fmt.Errorf("%w: %q", ErrUnknownPageSize, name)
	}
	if landscape {
		return size.Landscape(), nil
	}
	return size, nil
}

// Landscape returns the page size in landscape orientation.
func (p PageSize) Landscape() PageSize {
	if p.Width < p.Height {
		return PageSize{p.Height, p.Width}
	}
	return p
}

// In returns the page dimensions in the given unit.
func (p PageSize) In(unit Unit) (width, height float64) {
	return FromPoints(p.Width, unit), FromPoints(p.Height, unit)
}

// Rectangle represents a rectangle with origin at bottom-left (PDF coordinates).
type Rectangle struct {
	X, Y          float64 // Bottom-left corner
	Width, Height float64
}

// MediaBox returns the rectangle as [x1, y1, x2, y2].
func (r Rectangle) MediaBox() [4]float64 {
	return [4]float64{r.X, r.Y, r.X + r.Width, r.Y + r.Height}
}

// Margins represents margins (spacing around content).
type Margins struct {
	Top, Right, Bottom, Left float64
}

// Horizontal returns left + right.
func (m Margins) Horizontal() float64 {
	return m.Left + m.Right
}

// Vertical returns top + bottom.
func (m Margins) Vertical() float64 {
	return m.Top + m.Bottom
}

// Page is a page measured in Unit with the origin at the top-left corner
// and y growing downward, the way sheets are composed.
type Page struct {
	Size    PageSize
	Unit    Unit
	Margins Margins
}

// NewPage creates a page of the given size measured in unit.
func NewPage(size PageSize, unit Unit, margins Margins) Page {
	return Page{Size: size, Unit: unit, Margins: margins}
}

// Width returns the page width in page units.
func (p Page) Width() float64 {
	return FromPoints(p.Size.Width, p.Unit)
}

// Height returns the page height in page units.
func (p Page) Height() float64 {
	return FromPoints(p.Size.Height, p.Unit)
}

// Usable returns the area inside the margins.
func (p Page) Usable() (width, height float64) {
	return p.Width() - p.Margins.Horizontal(), p.Height() - p.Margins.Vertical()
}

// MediaBox returns the full page in points.
func (p Page) MediaBox() Rectangle {
	return Rectangle{Width: p.Size.Width, Height: p.Size.Height}
}

// ToPDF converts a top-down page position into PDF points.
func (p Page) ToPDF(x, y float64) (float64, float64) {
	return ToPoints(x, p.Unit), p.Size.Height - ToPoints(y, p.Unit)
}

// Length converts a page length into points.
func (p Page) Length(v float64) float64 {
	return ToPoints(v, p.Unit)
}

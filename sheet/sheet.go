// Package sheet renders generated exercises into printable PDF worksheets.
//
// A sheet is either a student list (questions with room for calculations)
// or an answer key. Full mode stacks one question per row with its text;
// grid mode packs bare diagrams two per row. Items are never split across
// pages.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/Daniel-dg-conta1/math-Suite/diagram"
	"github.com/Daniel-dg-conta1/math-Suite/paginate"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/fonts"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/layout"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/metadata"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/writer"
)

var (
	// ErrNoExercises is returned when there is nothing to render.
	ErrNoExercises = errors.New("no exercises to render")
	// ErrUnknownMode is returned by ParseMode.
	ErrUnknownMode = errors.New("unknown sheet mode")
)

// Mode selects the page arrangement.
type Mode string

const (
	ModeFull Mode = "full"
	ModeGrid Mode = "grid"
)

// ParseMode parses "full" or "grid". "simple" is accepted for grid.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return ModeFull, nil
	case "grid", "simple":
		return ModeGrid, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Options controls sheet rendering. Zero fields take defaults: A4, full
// mode, Brazilian Portuguese and the current date.
type Options struct {
	PageSize layout.PageSize
	Mode     Mode
	// ItemsPerPage applies to grid mode and is clamped to what fits.
	ItemsPerPage int
	// Teacher renders the answer key.
	Teacher bool
	Locale  Locale
	Date    time.Time
	// Title replaces the default heading.
	Title string
	// MinSeparation spreads clustered arrows as in diagram.VectorOptions.
	MinSeparation float64
}

func (o *Options) setDefaults() {
	if o.PageSize == (layout.PageSize{}) {
		o.PageSize = layout.A4
	}
	if o.Mode == "" {
		o.Mode = ModeFull
	}
	if o.Locale.p == nil {
		o.Locale = NewLocale(language.BrazilianPortuguese)
	}
	if o.Date.IsZero() {
		o.Date = time.Now()
	}
}

// Page geometry in millimetres.
const (
	titleBaseline = 20.0
	diagramSize   = 90.0

	// full-mode vector block: header, diagram, padding, answer or gap, divider
	questionHeader = 12.0
	blockPadding   = 5.0
	studentGap     = 6.0
	answerHeight   = 20.0
	dividerGap     = 8.0

	gridRowHeight = diagramSize + 8

	triangleBlock    = 60.0
	triangleGridRows = 4
	triangleGridMax  = 8
)

var (
	vectorMargins   = layout.Margins{Top: 30, Right: 15, Bottom: 18, Left: 15}
	triangleMargins = layout.Margins{Top: 35, Right: 15, Bottom: 15, Left: 15}
)

func vectorBlockHeight(teacher bool) float64 {
	h := questionHeader + diagramSize + blockPadding + dividerGap
	if teacher {
		return h + answerHeight
	}
	return h + studentGap
}

// PlanVectors returns the page grid used for a vector sheet.
func PlanVectors(opts Options) (paginate.Layout, error) {
	opts.setDefaults()
	page := layout.NewPage(opts.PageSize, layout.Mm, vectorMargins)
	w, h := page.Usable()
	if opts.Mode == ModeGrid {
		return paginate.Plan(paginate.Request{
			UsableWidth:  w,
			UsableHeight: h,
			Footprint:    paginate.Footprint{Width: diagramSize, Height: gridRowHeight},
			Columns:      2,
			Requested:    max(opts.ItemsPerPage, 1),
		})
	}
	return paginate.Plan(paginate.Request{
		UsableWidth:  w,
		UsableHeight: h,
		Footprint:    paginate.Footprint{Width: diagramSize, Height: vectorBlockHeight(opts.Teacher)},
		Columns:      1,
	})
}

// PlanTriangles returns the page grid used for a triangle sheet.
func PlanTriangles(opts Options) (paginate.Layout, error) {
	opts.setDefaults()
	page := layout.NewPage(opts.PageSize, layout.Mm, triangleMargins)
	w, h := page.Usable()
	if opts.Mode == ModeGrid {
		return paginate.Plan(paginate.Request{
			UsableWidth:  w,
			UsableHeight: h,
			Footprint:    paginate.Footprint{Height: h / triangleGridRows},
			Columns:      2,
			Requested:    min(max(opts.ItemsPerPage, 1), triangleGridMax),
		})
	}
	return paginate.Plan(paginate.Request{
		UsableWidth:  w,
		UsableHeight: h,
		Footprint:    paginate.Footprint{Height: triangleBlock},
		Columns:      1,
	})
}

func newDocument(title string, opts Options) *writer.Document {
	return writer.NewDocument(metadata.DocumentMetadata{
		Title:    title,
		Creator:  metadata.Vendor,
		Producer: metadata.Vendor,
		Language: opts.Locale.Tag.String(),
		Created:  opts.Date,
	})
}

// header draws the title on the left and the date on the right.
func header(c *canvas, title string, opts Options) {
	c.text(fonts.HelveticaBold, 14, c.page.Margins.Left, titleBaseline, title, black)
	right := c.page.Width() - c.page.Margins.Right
	date := opts.Locale.T("Date: %s", opts.Locale.Date(opts.Date))
	c.textRight(fonts.Helvetica, 10, right, titleBaseline, date, grayText)
}

// measurer measures diagram labels, which are sized in millimetres.
func measurer(font fonts.StandardFont) diagram.TextMeasurer {
	m, err := fonts.NewMeasurer(font)
	if err != nil {
		panic(err)
	}
	return m
}

func write(w io.Writer, doc *writer.Document, err error) error {
	if err != nil {
		return err
	}
	return doc.Write(w)
}

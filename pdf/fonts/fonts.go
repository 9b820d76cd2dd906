// Package fonts provides metrics and WinAnsi encoding for the standard
// Helvetica faces used on exercise sheets.
package fonts

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ErrFontNotFound is returned for fonts without bundled metrics.
var ErrFontNotFound = errors.New("font not found")

// StandardFont represents a PDF standard font name.
type StandardFont string

// Standard faces with bundled metrics
const (
	Helvetica     StandardFont = "Helvetica"
	HelveticaBold StandardFont = "Helvetica-Bold"
)

// Metrics holds font metrics in glyph units (1/1000 em).
type Metrics struct {
	Ascender     float64
	Descender    float64
	CapHeight    float64
	UnitsPerEm   float64
	DefaultWidth float64

	ascii  [95]float64 // widths for 0x20..0x7E
	latin1 map[rune]float64
}

// Width returns the advance width of r in glyph units.
func (m *Metrics) Width(r rune) float64 {
	if r >= 0x20 && r <= 0x7E {
		return m.ascii[r-0x20]
	}
	if w, ok := m.latin1[r]; ok {
		return w
	}
	return m.DefaultWidth
}

// StringWidth returns the width of s at fontSize, in the unit fontSize is
// expressed in.
func (m *Metrics) StringWidth(s string, fontSize float64) float64 {
	var total float64
	for _, r := range s {
		total += m.Width(r)
	}
	return total * fontSize / m.UnitsPerEm
}

// LineHeight returns the distance between baselines at fontSize.
func (m *Metrics) LineHeight(fontSize float64) float64 {
	return (m.Ascender - m.Descender) * fontSize / m.UnitsPerEm
}

// CapHeightAt returns the height of capital letters at fontSize.
func (m *Metrics) CapHeightAt(fontSize float64) float64 {
	return m.CapHeight * fontSize / m.UnitsPerEm
}

// Get returns the metrics of a standard font.
func Get(name StandardFont) (*Metrics, error) {
	switch name {
	case Helvetica:
		return helvetica, nil
	case HelveticaBold:
		return helveticaBold, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrFontNotFound, name)
}

// MustGet is like Get but panics for unknown fonts.
func MustGet(name StandardFont) *Metrics {
	m, err := Get(name)
	if err != nil {
		panic(err)
	}
	return m
}

var helvetica = &Metrics{
	Ascender:     718,
	Descender:    -207,
	CapHeight:    718,
	UnitsPerEm:   1000,
	DefaultWidth: 556,
	ascii: [95]float64{
		278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278, // ' '../
		556, 556, 556, 556, 556, 556, 556, 556, 556, 556, // 0..9
		278, 278, 584, 584, 584, 556, 1015, // :..@
		667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, // A..M
		722, 778, 667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, // N..Z
		278, 278, 278, 469, 556, 333, // [..`
		556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, // a..m
		556, 556, 556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, // n..z
		334, 260, 334, 584, // {..~
	},
	latin1: map[rune]float64{
		'°': 400, '²': 333, '³': 333, '·': 278, '×': 584, '–': 556, '—': 1000,
		'á': 556, 'à': 556, 'â': 556, 'ã': 556, 'é': 556, 'ê': 556, 'í': 278,
		'ó': 556, 'ô': 556, 'õ': 556, 'ú': 556, 'ü': 556, 'ç': 500,
		'Á': 667, 'À': 667, 'Â': 667, 'Ã': 667, 'É': 667, 'Ê': 667, 'Í': 278,
		'Ó': 778, 'Ô': 778, 'Õ': 778, 'Ú': 722, 'Ç': 722,
	},
}

var helveticaBold = &Metrics{
	Ascender:     718,
	Descender:    -207,
	CapHeight:    718,
	UnitsPerEm:   1000,
	DefaultWidth: 611,
	ascii: [95]float64{
		278, 333, 474, 556, 556, 889, 722, 238, 333, 333, 389, 584, 278, 333, 278, 278,
		556, 556, 556, 556, 556, 556, 556, 556, 556, 556,
		333, 333, 584, 584, 584, 611, 975,
		722, 722, 722, 722, 667, 611, 778, 722, 278, 556, 722, 611, 833,
		722, 778, 667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611,
		333, 278, 333, 584, 556, 333,
		556, 611, 556, 611, 556, 333, 611, 611, 278, 278, 556, 278, 889,
		611, 611, 611, 611, 389, 556, 333, 611, 556, 778, 556, 556, 500,
		389, 280, 389, 584,
	},
	latin1: map[rune]float64{
		'°': 400, '²': 333, '³': 333, '·': 278, '×': 584, '–': 556, '—': 1000,
		'á': 556, 'à': 556, 'â': 556, 'ã': 556, 'é': 556, 'ê': 556, 'í': 278,
		'ó': 611, 'ô': 611, 'õ': 611, 'ú': 611, 'ü': 611, 'ç': 556,
		'Á': 722, 'À': 722, 'Â': 722, 'Ã': 722, 'É': 667, 'Ê': 667, 'Í': 278,
		'Ó': 778, 'Ô': 778, 'Õ': 778, 'Ú': 722, 'Ç': 722,
	},
}

// Encode converts s to WinAnsiEncoding bytes. Runes outside the code page
// become '?'.
func Encode(s string) []byte {
	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	out, err := enc.Bytes([]byte(s))
	if err != nil {
		// invalid UTF-8 only; fall back to ASCII
		out = make([]byte, 0, len(s))
		for _, r := range s {
			if r < 0x80 {
				out = append(out, byte(r))
			} else {
				out = append(out, '?')
			}
		}
		return out
	}
	for i, b := range out {
		if b == 0x1A {
			out[i] = '?'
		}
	}
	return out
}

// Measurer reports string widths for a standard font. Widths come out in
// the unit the font size is given in.
type Measurer struct {
	metrics *Metrics
}

// NewMeasurer returns a measurer for name.
func NewMeasurer(name StandardFont) (Measurer, error) {
	m, err := Get(name)
	if err != nil {
		return Measurer{}, err
	}
	return Measurer{metrics: m}, nil
}

// TextWidth returns the width of text at size.
func (m Measurer) TextWidth(text string, size float64) float64 {
	return m.metrics.StringWidth(text, size)
}

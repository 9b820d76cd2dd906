// Package content builds PDF page content streams.
package content

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/Daniel-dg-conta1/math-Suite/pdf/fonts"
)

// Operator represents a PDF content stream operator.
type Operator string

// Operators emitted by the builder
const (
	// Graphics state operators
	OpSaveState    Operator = "q"
	OpRestoreState Operator = "Q"
	OpSetCTM       Operator = "cm"
	OpSetLineWidth Operator = "w"
	OpSetLineCap   Operator = "J"
	OpSetDash      Operator = "d"

	// Path construction operators
	OpMoveTo    Operator = "m"
	OpLineTo    Operator = "l"
	OpClosePath Operator = "h"
	OpRectangle Operator = "re"

	// Path painting operators
	OpStroke        Operator = "S"
	OpFill          Operator = "f"
	OpFillAndStroke Operator = "B"

	// Text operators
	OpBeginText Operator = "BT"
	OpEndText   Operator = "ET"
	OpSetFont   Operator = "Tf"
	OpTextMove  Operator = "Td"
	OpShowText  Operator = "Tj"

	// Color operators
	OpSetStrokeRGB Operator = "RG"
	OpSetFillRGB   Operator = "rg"
)

// Name is a PDF name operand such as a font resource.
type Name string

// Literal is a string operand, already in the font's encoding.
type Literal []byte

// ContentStream is an ordered list of operations.
type ContentStream struct {
	Operations []Operation
}

// Operation represents a single operation in a content stream.
type Operation struct {
	Operator Operator
	Operands []any
}

// AddOperation appends an operation to the content stream.
func (cs *ContentStream) AddOperation(op Operator, operands ...any) {
	cs.Operations = append(cs.Operations, Operation{Operator: op, Operands: operands})
}

// Render renders the content stream to bytes.
func (cs *ContentStream) Render() []byte {
	var buf bytes.Buffer
	for _, op := range cs.Operations {
		for _, operand := range op.Operands {
			writeOperand(&buf, operand)
			buf.WriteByte(' ')
		}
		buf.WriteString(string(op.Operator))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func writeOperand(buf *bytes.Buffer, v any) {
	switch val := v.(type) {
	case int:
		buf.WriteString(strconv.Itoa(val))
	case float64:
		buf.WriteString(FormatNumber(val))
	case Name:
		buf.WriteByte('/')
		buf.WriteString(string(val))
	case Literal:
		writeLiteral(buf, val)
	case []float64:
		buf.WriteByte('[')
		for i, f := range val {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(FormatNumber(f))
		}
		buf.WriteByte(']')
	default:
		fmt.Fprintf(buf, "%v", val)
	}
}

// FormatNumber writes v with at most three decimals and no trailing zeros.
func FormatNumber(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// writeLiteral writes b as a literal string, escaping delimiters and
// writing bytes outside printable ASCII in octal.
func writeLiteral(buf *bytes.Buffer, b []byte) {
	buf.WriteByte('(')
	for _, c := range b {
		switch {
		case c == '(' || c == ')' || c == '\\':
			buf.WriteByte('\\')
			buf.WriteByte(c)
		case c < 0x20 || c > 0x7E:
			fmt.Fprintf(buf, "\\%03o", c)
		default:
			buf.WriteByte(c)
		}
	}
	buf.WriteByte(')')
}

// RGB is a color with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

func (c RGB) operands() []any {
	return []any{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

// Builder provides a fluent interface for building content streams.
type Builder struct {
	stream ContentStream
}

// NewBuilder creates a new content builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// SaveState saves the graphics state.
func (b *Builder) SaveState() *Builder {
	b.stream.AddOperation(OpSaveState)
	return b
}

// RestoreState restores the graphics state.
func (b *Builder) RestoreState() *Builder {
	b.stream.AddOperation(OpRestoreState)
	return b
}

// Transform applies a transformation matrix.
func (b *Builder) Transform(a, bb, c, d, e, f float64) *Builder {
	b.stream.AddOperation(OpSetCTM, a, bb, c, d, e, f)
	return b
}

// LineWidth sets the stroke width.
func (b *Builder) LineWidth(w float64) *Builder {
	b.stream.AddOperation(OpSetLineWidth, w)
	return b
}

// RoundCaps switches to round line caps.
func (b *Builder) RoundCaps() *Builder {
	b.stream.AddOperation(OpSetLineCap, 1)
	return b
}

// Dash sets a dash pattern. An empty pattern restores solid lines.
func (b *Builder) Dash(pattern ...float64) *Builder {
	if pattern == nil {
		pattern = []float64{}
	}
	b.stream.AddOperation(OpSetDash, pattern, 0)
	return b
}

// StrokeColor sets the stroking color.
func (b *Builder) StrokeColor(c RGB) *Builder {
	b.stream.AddOperation(OpSetStrokeRGB, c.operands()...)
	return b
}

// FillColor sets the non-stroking color.
func (b *Builder) FillColor(c RGB) *Builder {
	b.stream.AddOperation(OpSetFillRGB, c.operands()...)
	return b
}

// MoveTo begins a new subpath.
func (b *Builder) MoveTo(x, y float64) *Builder {
	b.stream.AddOperation(OpMoveTo, x, y)
	return b
}

// LineTo appends a straight segment.
func (b *Builder) LineTo(x, y float64) *Builder {
	b.stream.AddOperation(OpLineTo, x, y)
	return b
}

// ClosePath closes the current subpath.
func (b *Builder) ClosePath() *Builder {
	b.stream.AddOperation(OpClosePath)
	return b
}

// Rectangle appends a rectangle with its bottom-left corner at (x, y).
func (b *Builder) Rectangle(x, y, width, height float64) *Builder {
	b.stream.AddOperation(OpRectangle, x, y, width, height)
	return b
}

// Stroke strokes the current path.
func (b *Builder) Stroke() *Builder {
	b.stream.AddOperation(OpStroke)
	return b
}

// Fill fills the current path.
func (b *Builder) Fill() *Builder {
	b.stream.AddOperation(OpFill)
	return b
}

// FillAndStroke fills then strokes the current path.
func (b *Builder) FillAndStroke() *Builder {
	b.stream.AddOperation(OpFillAndStroke)
	return b
}

// Line strokes a single segment.
func (b *Builder) Line(x1, y1, x2, y2 float64) *Builder {
	return b.MoveTo(x1, y1).LineTo(x2, y2).Stroke()
}

// Polyline strokes an open path through xy pairs.
func (b *Builder) Polyline(xy ...float64) *Builder {
	if len(xy) < 4 {
		return b
	}
	b.path(xy)
	return b.Stroke()
}

// Polygon fills a closed path through xy pairs.
func (b *Builder) Polygon(xy ...float64) *Builder {
	if len(xy) < 6 {
		return b
	}
	b.path(xy)
	return b.ClosePath().Fill()
}

func (b *Builder) path(xy []float64) {
	b.MoveTo(xy[0], xy[1])
	for i := 2; i+1 < len(xy); i += 2 {
		b.LineTo(xy[i], xy[i+1])
	}
}

// Text shows s at baseline origin (x, y) using the font resource name.
// s is converted to WinAnsiEncoding.
func (b *Builder) Text(font string, size, x, y float64, s string) *Builder {
	b.stream.AddOperation(OpBeginText)
	b.stream.AddOperation(OpSetFont, Name(font), size)
	b.stream.AddOperation(OpTextMove, x, y)
	b.stream.AddOperation(OpShowText, Literal(fonts.Encode(s)))
	b.stream.AddOperation(OpEndText)
	return b
}

// Build returns the content stream.
func (b *Builder) Build() *ContentStream {
	return &b.stream
}

// Render renders the built content stream.
func (b *Builder) Render() []byte {
	return b.stream.Render()
}

package writer

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"

	"golang.org/x/text/encoding/unicode"

	"github.com/Daniel-dg-conta1/math-Suite/pdf/content"
)

// Object is a PDF object the writer can serialize.
type Object interface {
	writeTo(buf *bytes.Buffer)
}

// Ref is an indirect reference to object Num, generation 0.
type Ref int

func (r Ref) writeTo(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "%d 0 R", int(r))
}

// Name is a PDF name object.
type Name string

func (n Name) writeTo(buf *bytes.Buffer) {
	buf.WriteByte('/')
	for i := 0; i < len(n); i++ {
		c := n[i]
		if c < 0x21 || c > 0x7E || bytes.IndexByte([]byte("#()<>[]{}/%"), c) >= 0 {
			fmt.Fprintf(buf, "#%02X", c)
			continue
		}
		buf.WriteByte(c)
	}
}

// Int is a PDF integer.
type Int int

func (i Int) writeTo(buf *bytes.Buffer) {
	buf.WriteString(strconv.Itoa(int(i)))
}

// Real is a PDF real number.
type Real float64

func (r Real) writeTo(buf *bytes.Buffer) {
	buf.WriteString(content.FormatNumber(float64(r)))
}

// Text is a text string. ASCII text is written as a literal string and
// anything else as UTF-16BE with a byte order mark.
type Text string

func (t Text) writeTo(buf *bytes.Buffer) {
	for i := 0; i < len(t); i++ {
		if t[i] >= 0x80 {
			enc := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
			if b, err := enc.Bytes([]byte(t)); err == nil {
				Hex(b).writeTo(buf)
				return
			}
			break
		}
	}
	buf.WriteByte('(')
	for i := 0; i < len(t); i++ {
		c := t[i]
		switch c {
		case '(', ')', '\\':
			buf.WriteByte('\\')
			buf.WriteByte(c)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		default:
			buf.WriteByte(c)
		}
	}
	buf.WriteByte(')')
}

// Hex is a hexadecimal string.
type Hex []byte

func (h Hex) writeTo(buf *bytes.Buffer) {
	buf.WriteByte('<')
	buf.WriteString(hex.EncodeToString(h))
	buf.WriteByte('>')
}

// Array is a PDF array.
type Array []Object

func (a Array) writeTo(buf *bytes.Buffer) {
	buf.WriteByte('[')
	for i, o := range a {
		if i > 0 {
			buf.WriteByte(' ')
		}
		o.writeTo(buf)
	}
	buf.WriteByte(']')
}

// Dict is a PDF dictionary that keeps insertion order.
type Dict struct {
	keys   []Name
	values map[Name]Object
}

// NewDict creates an empty dictionary.
func NewDict() *Dict {
	return &Dict{values: make(map[Name]Object)}
}

// Set adds or replaces a key and returns the dictionary.
func (d *Dict) Set(key Name, value Object) *Dict {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
	return d
}

// Get returns the value stored under key.
func (d *Dict) Get(key Name) (Object, bool) {
	v, ok := d.values[key]
	return v, ok
}

func (d *Dict) writeTo(buf *bytes.Buffer) {
	buf.WriteString("<<")
	for _, k := range d.keys {
		k.writeTo(buf)
		buf.WriteByte(' ')
		d.values[k].writeTo(buf)
	}
	buf.WriteString(">>")
}

// Stream is a dictionary followed by raw data. Length is set on write.
type Stream struct {
	Dict *Dict
	Data []byte
}

func (s *Stream) writeTo(buf *bytes.Buffer) {
	if s.Dict == nil {
		s.Dict = NewDict()
	}
	s.Dict.Set("Length", Int(len(s.Data)))
	s.Dict.writeTo(buf)
	buf.WriteString("\nstream\n")
	buf.Write(s.Data)
	buf.WriteString("\nendstream")
}

// Rect returns a [llx lly urx ury] array.
func Rect(box [4]float64) Array {
	return Array{Real(box[0]), Real(box[1]), Real(box[2]), Real(box[3])}
}

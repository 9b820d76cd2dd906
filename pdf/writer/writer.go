// Package writer assembles pages into a complete PDF file.
package writer

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zlib"
	"golang.org/x/crypto/sha3"

	"github.com/Daniel-dg-conta1/math-Suite/pdf/fonts"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/layout"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/metadata"
)

// ErrNoPages is returned when writing a document without pages.
var ErrNoPages = errors.New("document has no pages")

const (
	version   = "1.4"
	pagesRef  = Ref(1)
	resources = Ref(2)
)

// Document collects pages and writes them as a single PDF file. All pages
// share one resource dictionary holding the fonts requested via Font.
// Info feeds both the information dictionary and the catalog's XMP
// metadata stream.
type Document struct {
	Info     metadata.DocumentMetadata
	ID       uuid.UUID
	Compress bool

	objects   []Object // object n lives at objects[n-1]
	pages     []Ref
	fontNames map[fonts.StandardFont]string
	fontOrder []fonts.StandardFont
}

// NewDocument creates an empty document with compressed page content.
func NewDocument(info metadata.DocumentMetadata) *Document {
	return &Document{
		Info:      info,
		ID:        uuid.New(),
		Compress:  true,
		objects:   []Object{nil, nil}, // page tree and resources, filled on write
		fontNames: make(map[fonts.StandardFont]string),
	}
}

// Font returns the resource name for a standard font, registering it on
// first use.
func (d *Document) Font(f fonts.StandardFont) string {
	if name, ok := d.fontNames[f]; ok {
		return name
	}
	name := fmt.Sprintf("F%d", len(d.fontOrder)+1)
	d.fontNames[f] = name
	d.fontOrder = append(d.fontOrder, f)
	return name
}

func (d *Document) add(obj Object) Ref {
	d.objects = append(d.objects, obj)
	return Ref(len(d.objects))
}

// AddPage appends a page of the given size with a rendered content stream.
func (d *Document) AddPage(size layout.PageSize, contents []byte) error {
	stream := &Stream{Dict: NewDict(), Data: contents}
	if d.Compress {
		var buf bytes.Buffer
		zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if err != nil {
			return err
		}
		if _, err := zw.Write(contents); err != nil {
			return fmt.Errorf("compress page: %w", err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("compress page: %w", err)
		}
		stream.Data = buf.Bytes()
		stream.Dict.Set("Filter", Name("FlateDecode"))
	}
	contentsRef := d.add(stream)

	page := NewDict().
		Set("Type", Name("Page")).
		Set("Parent", pagesRef).
		Set("MediaBox", Rect(layout.Rectangle{Width: size.Width, Height: size.Height}.MediaBox())).
		Set("Resources", resources).
		Set("Contents", contentsRef)
	d.pages = append(d.pages, d.add(page))
	return nil
}

// PageCount returns the number of pages added so far.
func (d *Document) PageCount() int {
	return len(d.pages)
}

// Write writes the complete file to out. The document can keep growing
// and be written again afterwards.
func (d *Document) Write(out io.Writer) error {
	if len(d.pages) == 0 {
		return ErrNoPages
	}
	objects := append([]Object(nil), d.objects...)
	add := func(obj Object) Ref {
		objects = append(objects, obj)
		return Ref(len(objects))
	}

	fontDict := NewDict()
	for _, f := range d.fontOrder {
		ref := add(NewDict().
			Set("Type", Name("Font")).
			Set("Subtype", Name("Type1")).
			Set("BaseFont", Name(f)).
			Set("Encoding", Name("WinAnsiEncoding")))
		fontDict.Set(Name(d.fontNames[f]), ref)
	}
	objects[resources-1] = NewDict().
		Set("Font", fontDict).
		Set("ProcSet", Array{Name("PDF"), Name("Text")})

	kids := make(Array, len(d.pages))
	for i, p := range d.pages {
		kids[i] = p
	}
	objects[pagesRef-1] = NewDict().
		Set("Type", Name("Pages")).
		Set("Kids", kids).
		Set("Count", Int(len(d.pages)))

	xmp := &Stream{Dict: NewDict().Set("Type", Name("Metadata")).Set("Subtype", Name("XML")), Data: d.Info.XMP()}
	catalog := NewDict().
		Set("Type", Name("Catalog")).
		Set("Pages", pagesRef).
		Set("Metadata", add(xmp))
	if d.Info.Language != "" {
		catalog.Set("Lang", Text(d.Info.Language))
	}
	rootRef := add(catalog)
	infoRef := add(d.infoDict())

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%%PDF-%s\n", version)
	// Binary comment marks the file as binary for transfer tools
	buf.Write([]byte{0x25, 0xE2, 0xE3, 0xCF, 0xD3, 0x0A})

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n", i+1)
		obj.writeTo(&buf)
		buf.WriteString("\nendobj\n")
	}

	digest := sha3.Sum256(buf.Bytes())
	id := Array{Hex(d.ID[:]), Hex(digest[:16])}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d %05d n \n", off, 0)
	}

	trailer := NewDict().
		Set("Size", Int(len(objects)+1)).
		Set("Root", rootRef).
		Set("Info", infoRef).
		Set("ID", id)
	buf.WriteString("trailer\n")
	trailer.writeTo(&buf)
	fmt.Fprintf(&buf, "\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	_, err := out.Write(buf.Bytes())
	return err
}

// Bytes returns the written file.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Document) infoDict() *Dict {
	info := NewDict()
	for _, e := range d.Info.InfoDict() {
		info.Set(Name(e.Key), Text(e.Value))
	}
	return info
}

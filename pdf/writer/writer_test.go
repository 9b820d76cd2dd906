package writer

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zlib"

	"github.com/Daniel-dg-conta1/math-Suite/pdf/content"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/fonts"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/layout"
	"github.com/Daniel-dg-conta1/math-Suite/pdf/metadata"
)

func TestWriteRequiresPages(t *testing.T) {
	d := NewDocument(metadata.DocumentMetadata{})
	if _, err := d.Bytes(); !errors.Is(err, ErrNoPages) {
		t.Errorf("expected ErrNoPages, got %v", err)
	}
}

func TestWriteStructure(t *testing.T) {
	d := NewDocument(metadata.DocumentMetadata{Title: "Vetores", Creator: "math-suite", Language: "pt-BR"})
	d.Compress = false
	f1 := d.Font(fonts.Helvetica)
	f2 := d.Font(fonts.HelveticaBold)
	if f1 != "F1" || f2 != "F2" || d.Font(fonts.Helvetica) != "F1" {
		t.Fatalf("font names = %s, %s", f1, f2)
	}
	page := content.NewBuilder().Text(f1, 12, 50, 700, "Hello").Render()
	if err := d.AddPage(layout.A4, page); err != nil {
		t.Fatal(err)
	}
	if err := d.AddPage(layout.A4, page); err != nil {
		t.Fatal(err)
	}

	data, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	for _, want := range []string{
		"%PDF-1.4\n",
		"/Type /Pages",
		"/Count 2",
		"/BaseFont /Helvetica-Bold",
		"/Encoding /WinAnsiEncoding",
		"/MediaBox [0 0 595.28 841.89]",
		"/Title (Vetores)",
		"/Lang (pt-BR)",
		"/Type /Metadata/Subtype /XML",
		"<xmp:CreatorTool>math-suite</xmp:CreatorTool>",
		"(Hello) Tj",
		"%%EOF\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !bytes.HasPrefix(data[9:], []byte{0x25, 0xE2, 0xE3, 0xCF, 0xD3}) {
		t.Error("binary comment missing")
	}
	if !strings.Contains(out, "<"+strings.ReplaceAll(d.ID.String(), "-", "")+">") {
		t.Error("trailer ID does not start with the document UUID")
	}
}

func TestXrefOffsets(t *testing.T) {
	d := NewDocument(metadata.DocumentMetadata{})
	d.Font(fonts.Helvetica)
	if err := d.AddPage(layout.Letter, []byte("0 0 m 10 10 l S\n")); err != nil {
		t.Fatal(err)
	}
	data, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	m := regexp.MustCompile(`startxref\n(\d+)\n`).FindSubmatch(data)
	if m == nil {
		t.Fatal("startxref missing")
	}
	start, _ := strconv.Atoi(string(m[1]))
	if !bytes.HasPrefix(data[start:], []byte("xref\n")) {
		t.Fatalf("startxref %d does not point at xref", start)
	}

	entries := regexp.MustCompile(`(\d{10}) 00000 n `).FindAllSubmatch(data[start:], -1)
	if len(entries) == 0 {
		t.Fatal("no xref entries")
	}
	for i, e := range entries {
		off, _ := strconv.Atoi(string(e[1]))
		prefix := strconv.Itoa(i+1) + " 0 obj\n"
		if !bytes.HasPrefix(data[off:], []byte(prefix)) {
			t.Errorf("entry %d offset %d does not point at %q", i+1, off, prefix)
		}
	}
}

func TestCompressedContent(t *testing.T) {
	d := NewDocument(metadata.DocumentMetadata{})
	page := []byte("BT /F1 9 Tf 10 10 Td (compressed) Tj ET\n")
	if err := d.AddPage(layout.A5, page); err != nil {
		t.Fatal(err)
	}
	data, err := d.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("/Filter /FlateDecode")) {
		t.Fatal("content stream not flate encoded")
	}

	start := bytes.Index(data, []byte("stream\n")) + len("stream\n")
	end := bytes.Index(data, []byte("\nendstream"))
	zr, err := zlib.NewReader(bytes.NewReader(data[start:end]))
	if err != nil {
		t.Fatal(err)
	}
	plain, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(plain, page) {
		t.Errorf("inflated = %q, want %q", plain, page)
	}
}

func TestDeterministicOutput(t *testing.T) {
	build := func() []byte {
		d := NewDocument(metadata.DocumentMetadata{Title: "x", Created: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)})
		d.ID = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
		_ = d.AddPage(layout.A4, []byte("0 0 m\n"))
		data, err := d.Bytes()
		if err != nil {
			t.Fatal(err)
		}
		return data
	}
	if !bytes.Equal(build(), build()) {
		t.Error("equal documents produced different bytes")
	}
}

func TestObjects(t *testing.T) {
	tests := []struct {
		obj      Object
		expected string
	}{
		{Name("Helvetica-Bold"), "/Helvetica-Bold"},
		{Name("A B"), "/A#20B"},
		{Int(42), "42"},
		{Real(0.5), "0.5"},
		{Text("a(b)c"), `(a\(b\)c)`},
		{Text("é"), "<feff00e9>"},
		{Hex{0xAB, 0x01}, "<ab01>"},
		{Array{Int(1), Ref(3)}, "[1 3 0 R]"},
		{NewDict().Set("Type", Name("Font")).Set("Size", Int(2)), "<</Type /Font/Size 2>>"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		tt.obj.writeTo(&buf)
		if buf.String() != tt.expected {
			t.Errorf("writeTo = %q, want %q", buf.String(), tt.expected)
		}
	}
}

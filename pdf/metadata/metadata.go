// Package metadata builds the document information and XMP metadata
// attached to generated sheets.
package metadata

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// Vendor identifies the toolkit in XMP packets.
const Vendor = "math-suite"

// XML namespace URIs
const (
	NSRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NSXMP = "http://ns.adobe.com/xap/1.0/"
	NSDC  = "http://purl.org/dc/elements/1.1/"
	NSPDF = "http://ns.adobe.com/pdf/1.3/"
	NSX   = "adobe:ns:meta/"
)

// ExpandedName is an XML name qualified by its namespace.
type ExpandedName struct {
	NS        string
	LocalName string
}

// Tag returns the prefixed tag used when serializing.
func (e ExpandedName) Tag() string {
	return prefix(e.NS) + ":" + e.LocalName
}

// Properties written by DocumentMetadata.XMP
var (
	DCTitle        = ExpandedName{NS: NSDC, LocalName: "title"}
	DCCreator      = ExpandedName{NS: NSDC, LocalName: "creator"}
	DCDescription  = ExpandedName{NS: NSDC, LocalName: "description"}
	DCLanguage     = ExpandedName{NS: NSDC, LocalName: "language"}
	PDFKeywords    = ExpandedName{NS: NSPDF, LocalName: "Keywords"}
	PDFProducer    = ExpandedName{NS: NSPDF, LocalName: "Producer"}
	XMPCreatorTool = ExpandedName{NS: NSXMP, LocalName: "CreatorTool"}
	XMPCreateDate  = ExpandedName{NS: NSXMP, LocalName: "CreateDate"}
)

// DocumentMetadata describes a generated document.
type DocumentMetadata struct {
	Title    string
	Author   string
	Subject  string
	Keywords []string
	Creator  string
	Producer string

	// Language is a BCP 47 tag such as "pt-BR"; it qualifies the title
	// and subject and becomes the catalog /Lang.
	Language string

	Created time.Time
}

// XmpArrayType is the RDF container used for a multi-valued property.
type XmpArrayType int

const (
	XmpArrayOrdered XmpArrayType = iota
	XmpArrayUnordered
	XmpArrayAlternative
)

// String returns the RDF element name for the array type.
func (t XmpArrayType) String() string {
	switch t {
	case XmpArrayUnordered:
		return "Bag"
	case XmpArrayAlternative:
		return "Alt"
	default:
		return "Seq"
	}
}

// XmpValue is a simple text value with an optional xml:lang qualifier.
type XmpValue struct {
	Value    string
	Language string
}

// XmpProperty is one property of the packet: either a single value or an
// array of values.
type XmpProperty struct {
	Name   ExpandedName
	Value  *XmpValue
	Array  XmpArrayType
	Values []XmpValue
}

// Properties returns the XMP properties in a fixed order.
func (m DocumentMetadata) Properties() []XmpProperty {
	var props []XmpProperty
	lang := m.Language
	if lang == "" {
		lang = "x-default"
	}
	if m.Title != "" {
		props = append(props, XmpProperty{Name: DCTitle, Array: XmpArrayAlternative,
			Values: []XmpValue{{Value: m.Title, Language: lang}}})
	}
	if m.Author != "" {
		props = append(props, XmpProperty{Name: DCCreator, Array: XmpArrayOrdered,
			Values: []XmpValue{{Value: m.Author}}})
	}
	if m.Subject != "" {
		props = append(props, XmpProperty{Name: DCDescription, Array: XmpArrayAlternative,
			Values: []XmpValue{{Value: m.Subject, Language: lang}}})
	}
	if m.Language != "" {
		props = append(props, XmpProperty{Name: DCLanguage, Array: XmpArrayUnordered,
			Values: []XmpValue{{Value: m.Language}}})
	}
	if len(m.Keywords) > 0 {
		props = append(props, XmpProperty{Name: PDFKeywords, Value: &XmpValue{Value: strings.Join(m.Keywords, ", ")}})
	}
	if m.Producer != "" {
		props = append(props, XmpProperty{Name: PDFProducer, Value: &XmpValue{Value: m.Producer}})
	}
	if m.Creator != "" {
		props = append(props, XmpProperty{Name: XMPCreatorTool, Value: &XmpValue{Value: m.Creator}})
	}
	if !m.Created.IsZero() {
		props = append(props, XmpProperty{Name: XMPCreateDate, Value: &XmpValue{Value: m.Created.Format(time.RFC3339)}})
	}
	return props
}

// XMP serializes the metadata as a complete XMP packet.
func (m DocumentMetadata) XMP() []byte {
	var buf bytes.Buffer

	buf.WriteString("<?xpacket begin=\"\ufeff\" id=\"W5M0MpCehiHzreSzNTczkc9d\"?>\n")
	fmt.Fprintf(&buf, "<x:xmpmeta xmlns:x=\"%s\" x:xmptk=\"%s\">\n", NSX, Vendor)
	fmt.Fprintf(&buf, "<rdf:RDF xmlns:rdf=\"%s\">\n", NSRDF)
	fmt.Fprintf(&buf, "<rdf:Description rdf:about=\"\" xmlns:dc=\"%s\" xmlns:pdf=\"%s\" xmlns:xmp=\"%s\">\n",
		NSDC, NSPDF, NSXMP)

	for _, p := range m.Properties() {
		tag := p.Name.Tag()
		if p.Value != nil {
			fmt.Fprintf(&buf, "<%s%s>%s</%s>\n", tag, langAttr(p.Value.Language), escapeXML(p.Value.Value), tag)
			continue
		}
		fmt.Fprintf(&buf, "<%s>\n<rdf:%s>\n", tag, p.Array)
		for _, v := range p.Values {
			fmt.Fprintf(&buf, "<rdf:li%s>%s</rdf:li>\n", langAttr(v.Language), escapeXML(v.Value))
		}
		fmt.Fprintf(&buf, "</rdf:%s>\n</%s>\n", p.Array, tag)
	}

	buf.WriteString("</rdf:Description>\n")
	buf.WriteString("</rdf:RDF>\n")
	buf.WriteString("</x:xmpmeta>\n")
	buf.WriteString("<?xpacket end=\"r\"?>")
	return buf.Bytes()
}

// InfoDictEntry is an entry of the PDF document information dictionary.
type InfoDictEntry struct {
	Key   string
	Value string
}

// InfoDict returns the non-empty information dictionary entries.
func (m DocumentMetadata) InfoDict() []InfoDictEntry {
	var entries []InfoDictEntry
	for _, kv := range []InfoDictEntry{
		{"Title", m.Title},
		{"Author", m.Author},
		{"Subject", m.Subject},
		{"Keywords", strings.Join(m.Keywords, ", ")},
		{"Creator", m.Creator},
		{"Producer", m.Producer},
	} {
		if kv.Value != "" {
			entries = append(entries, kv)
		}
	}
	if !m.Created.IsZero() {
		entries = append(entries, InfoDictEntry{Key: "CreationDate", Value: FormatPDFDate(m.Created)})
	}
	return entries
}

// FormatPDFDate formats a time as a PDF date string (D:YYYYMMDDHHmmSSOHH'mm').
func FormatPDFDate(t time.Time) string {
	_, offset := t.Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	return fmt.Sprintf("D:%s%s%02d'%02d'", t.Format("20060102150405"), sign, offset/3600, (offset%3600)/60)
}

// ParsePDFDate parses a PDF date string.
func ParsePDFDate(s string) (time.Time, error) {
	rest, ok := strings.CutPrefix(s, "D:")
	if !ok {
		return time.Time{}, fmt.Errorf("invalid PDF date %q: missing D: prefix", s)
	}
	rest = strings.ReplaceAll(rest, "'", "")

	for _, layout := range []string{
		"20060102150405-0700",
		"20060102150405Z",
		"20060102150405",
		"200601021504",
		"20060102",
	} {
		if t, err := time.Parse(layout, rest); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse PDF date %q", s)
}

func langAttr(lang string) string {
	if lang == "" {
		return ""
	}
	return ` xml:lang="` + escapeXML(lang) + `"`
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func prefix(ns string) string {
	switch ns {
	case NSRDF:
		return "rdf"
	case NSDC:
		return "dc"
	case NSPDF:
		return "pdf"
	case NSXMP:
		return "xmp"
	default:
		return "ns"
	}
}

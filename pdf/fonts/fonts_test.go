package fonts

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestGet(t *testing.T) {
	for _, name := range []StandardFont{Helvetica, HelveticaBold} {
		m, err := Get(name)
		if err != nil {
			t.Fatalf("Get(%s) error: %v", name, err)
		}
		if m.UnitsPerEm != 1000 || m.Ascender != 718 || m.Descender != -207 {
			t.Errorf("%s metrics = %+v", name, m)
		}
	}
	if _, err := Get("Arial"); !errors.Is(err, ErrFontNotFound) {
		t.Errorf("expected ErrFontNotFound, got %v", err)
	}
}

func TestWidth(t *testing.T) {
	tests := []struct {
		font     StandardFont
		r        rune
		expected float64
	}{
		{Helvetica, ' ', 278},
		{Helvetica, 'A', 667},
		{Helvetica, 'W', 944},
		{Helvetica, 'i', 222},
		{Helvetica, '~', 584},
		{Helvetica, '°', 400},
		{Helvetica, 'ç', 500},
		{Helvetica, 'θ', 556},
		{HelveticaBold, 'A', 722},
		{HelveticaBold, 'm', 889},
		{HelveticaBold, '~', 584},
	}
	for _, tt := range tests {
		if got := MustGet(tt.font).Width(tt.r); got != tt.expected {
			t.Errorf("%s Width(%q) = %v, want %v", tt.font, tt.r, got, tt.expected)
		}
	}
}

func TestStringWidth(t *testing.T) {
	m := MustGet(Helvetica)
	// "R=10": 722 + 584 + 556 + 556 = 2418
	if got := m.StringWidth("R=10", 10); math.Abs(got-24.18) > 1e-9 {
		t.Errorf("StringWidth = %v, want 24.18", got)
	}
	if got := m.LineHeight(10); math.Abs(got-9.25) > 1e-9 {
		t.Errorf("LineHeight = %v, want 9.25", got)
	}
	if got := m.CapHeightAt(10); math.Abs(got-7.18) > 1e-9 {
		t.Errorf("CapHeightAt = %v, want 7.18", got)
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		in       string
		expected []byte
	}{
		{"abc", []byte("abc")},
		{"45°", []byte{'4', '5', 0xB0}},
		{"Espaço", []byte{'E', 's', 'p', 'a', 0xE7, 'o'}},
		{"a–b", []byte{'a', 0x96, 'b'}},
		{"θ=30", []byte("?=30")},
	}
	for _, tt := range tests {
		if got := Encode(tt.in); !bytes.Equal(got, tt.expected) {
			t.Errorf("Encode(%q) = %v, want %v", tt.in, got, tt.expected)
		}
	}
}

func TestMeasurer(t *testing.T) {
	m, err := NewMeasurer(HelveticaBold)
	if err != nil {
		t.Fatal(err)
	}
	// same font size unit in and out
	if got := m.TextWidth("AA", 2.5); math.Abs(got-3.61) > 1e-9 {
		t.Errorf("TextWidth = %v, want 3.61", got)
	}
	if _, err := NewMeasurer("Courier"); err == nil {
		t.Error("expected error for font without metrics")
	}
}

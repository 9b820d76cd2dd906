package preview

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// faceSize is the size the measuring face is built at; widths scale
// linearly from it.
const faceSize = 100

// Measurer measures label widths with the embedded Go Regular font.
type Measurer struct {
	mu   sync.Mutex // font.Face is not safe for concurrent use
	face font.Face
}

// NewMeasurer parses the embedded Go Regular font.
func NewMeasurer() (*Measurer, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    faceSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return &Measurer{face: face}, nil
}

// TextWidth returns the advance width of text at size pixels.
func (m *Measurer) TextWidth(text string, size float64) float64 {
	m.mu.Lock()
	adv := font.MeasureString(m.face, text)
	m.mu.Unlock()
	return float64(adv) / 64 * size / faceSize
}

var defaultMeasurer = sync.OnceValues(NewMeasurer)

package raster

import (
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/markers/layout"
)

// Fonts is the font collaborator: it hands out sized faces for drawing and
// measures ink bounds for layout. Faces are cached per size.
// Fonts is safe for concurrent use.
type Fonts struct {
	source *text.FontSource

	mu    sync.Mutex
	faces map[float64]text.Face
}

// DefaultFonts returns fonts backed by the embedded Go Regular typeface.
func DefaultFonts() (*Fonts, error) {
	return NewFonts(goregular.TTF)
}

// NewFonts parses TrueType or OpenType data.
func NewFonts(data []byte) (*Fonts, error) {
	src, err := text.NewFontSource(data)
	if err != nil {
		return nil, fmt.Errorf("raster: load font: %w", err)
	}
	return &Fonts{source: src, faces: make(map[float64]text.Face)}, nil
}

// LoadFonts reads a font file from path.
func LoadFonts(path string) (*Fonts, error) {
	src, err := text.NewFontSourceFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("raster: load font %s: %w", path, err)
	}
	return &Fonts{source: src, faces: make(map[float64]text.Face)}, nil
}

// Name returns the font family name.
func (f *Fonts) Name() string { return f.source.Name() }

// Face returns the face at size pixels.
func (f *Fonts) Face(size float64) text.Face {
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := f.source.Face(size)
	f.faces[size] = face
	return face
}

// Bounds returns the integer ink box of s at sizePx, relative to the
// baseline origin with y growing downwards. It implements
// layout.TextMeasurer.
func (f *Fonts) Bounds(s string, sizePx float64) layout.TextBounds {
	if s == "" {
		return layout.TextBounds{}
	}
	face := f.Face(sizePx)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for g := range face.Glyphs(s) {
		b := g.Bounds
		if b.MaxX <= b.MinX || b.MaxY <= b.MinY {
			continue // whitespace
		}
		minX = math.Min(minX, g.X+b.MinX)
		minY = math.Min(minY, g.Y+b.MinY)
		maxX = math.Max(maxX, g.X+b.MaxX)
		maxY = math.Max(maxY, g.Y+b.MaxY)
	}
	if math.IsInf(minX, 1) {
		return layout.TextBounds{}
	}
	return layout.TextBounds{
		Left:   int(math.Floor(minX)),
		Top:    int(math.Floor(minY)),
		Right:  int(math.Ceil(maxX)),
		Bottom: int(math.Ceil(maxY)),
	}
}

// Close releases the font source.
func (f *Fonts) Close() error {
	return f.source.Close()
}

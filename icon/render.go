package icon

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/gogpu/gg"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"github.com/srwiley/scanx"

	"github.com/gogpu/markers"
	"github.com/gogpu/markers/cache"
)

// ErrInvalidSize is returned for non-positive target dimensions.
var ErrInvalidSize = errors.New("icon: invalid target size")

// Rasterize draws sanitized SVG markup into a w×h pixmap, scaling the
// viewBox to fill the target exactly.
func Rasterize(src string, w, h int) (*gg.Pixmap, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	svg, err := oksvg.ReadIconStream(strings.NewReader(src), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("icon: parse: %w", err)
	}
	svg.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	spanner := scanx.NewImgSpanner(img)
	scanner := scanx.NewScanner(spanner, w, h)
	dasher := rasterx.NewDasher(w, h, scanner)
	svg.Draw(dasher, 1.0)

	return gg.FromImage(img), nil
}

// Renderer rasterizes tinted icons and memoizes them in a bitmap cache.
// It implements layout.IconSource.
type Renderer struct {
	cache *cache.BitmapCache
}

// NewRenderer creates a renderer storing results in c. A nil cache
// disables memoization.
func NewRenderer(c *cache.BitmapCache) *Renderer {
	return &Renderer{cache: c}
}

// Render returns src recolored with tint and rasterized at w×h, or nil if
// the markup cannot be rendered. The result is owned by the caller.
func (r *Renderer) Render(src string, w, h int, tint color.NRGBA) *gg.Pixmap {
	key := Key(src, w, h, tint)
	if r.cache != nil {
		if pm, ok := r.cache.Get(key); ok {
			return pm
		}
	}

	clean, err := Sanitize(src, tint)
	if err == nil {
		var pm *gg.Pixmap
		pm, err = Rasterize(clean, w, h)
		if err == nil {
			if r.cache != nil {
				r.cache.Put(key, pm)
			}
			return pm
		}
	}
	markers.Logger().Debug("icon rasterization failed",
		"size", fmt.Sprintf("%dx%d", w, h), "error", err)
	return nil
}

// Icon implements layout.IconSource.
func (r *Renderer) Icon(src string, w, h int, tint color.NRGBA) *gg.Pixmap {
	return r.Render(src, w, h, tint)
}

// Key returns the cache key of an icon render: a digest of the markup
// plus the target size and tint.
func Key(src string, w, h int, tint color.NRGBA) string {
	sum := sha256.Sum256([]byte(src))
	return fmt.Sprintf("icon:%s:%dx%d:%s", hex.EncodeToString(sum[:]), w, h, HexColor(tint))
}

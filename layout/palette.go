package layout

import (
	"image/color"

	"github.com/gogpu/markers"
)

func rgb(r, g, b uint8) color.NRGBA { return color.NRGBA{R: r, G: g, B: b, A: 255} }

// Marker colors.
var (
	ColorWhite = rgb(255, 255, 255)
	ColorBlack = rgb(0, 0, 0)

	defaultStroke     = rgb(215, 215, 221)
	defaultIconCircle = rgb(245, 245, 247)
	counterBubble     = rgb(245, 245, 247)

	selectedMarker = rgb(57, 87, 189)

	visualizedMarker = rgb(228, 228, 232)
	visualizedStroke = rgb(185, 185, 195)

	specialIconCircle = rgb(240, 243, 255)
	specialIcon       = rgb(57, 87, 189)

	miniStroke = rgb(175, 179, 165)
)

// Palette is the set of colors a marker is painted with.
type Palette struct {
	Marker        color.NRGBA
	Text          color.NRGBA
	CounterText   color.NRGBA
	Stroke        color.NRGBA
	IconCircle    color.NRGBA
	Icon          color.NRGBA
	CounterBubble color.NRGBA
	CounterStroke color.NRGBA
}

// ResolvePalette picks colors for d. Later rules overwrite earlier ones:
// visualized, then selected, then the special icon override, which applies
// unless the marker is visualized and not selected. Mini sizes always use
// the mini stroke.
func ResolvePalette(d markers.Descriptor) Palette {
	p := Palette{
		Marker:        ColorWhite,
		Text:          ColorBlack,
		CounterText:   ColorBlack,
		Stroke:        defaultStroke,
		IconCircle:    defaultIconCircle,
		Icon:          ColorBlack,
		CounterBubble: counterBubble,
		CounterStroke: defaultStroke,
	}

	if d.IsVisualized {
		p.Marker = visualizedMarker
		p.Text = ColorBlack
		p.Stroke = visualizedStroke
		p.IconCircle = ColorWhite
		p.CounterBubble = counterBubble
	}
	if d.IsSelected {
		p.Marker = selectedMarker
		p.Text = ColorWhite
		p.Stroke = defaultStroke
		p.IconCircle = ColorWhite
		p.CounterBubble = counterBubble
	}
	if d.Variant == markers.VariantSpecial && (!d.IsVisualized || d.IsSelected) {
		p.IconCircle = specialIconCircle
		p.Icon = specialIcon
	}
	if d.IsMini() {
		p.Stroke = miniStroke
	}
	return p
}

package layout

import (
	"testing"

	"github.com/gogpu/markers"
)

func TestResolvePalette(t *testing.T) {
	tests := []struct {
		name       string
		d          markers.Descriptor
		marker     string
		text       string
		stroke     string
		iconCircle string
		icon       string
	}{
		{"default", markers.Descriptor{}, "white", "black", "default", "default", "black"},
		{"visualized", markers.Descriptor{IsVisualized: true}, "visualized", "black", "visualized", "white", "black"},
		{"selected", markers.Descriptor{IsSelected: true}, "selected", "white", "default", "white", "black"},
		{"special", markers.Descriptor{Variant: markers.VariantSpecial}, "white", "black", "default", "special", "special"},
		{"special visualized", markers.Descriptor{Variant: markers.VariantSpecial, IsVisualized: true},
			"visualized", "black", "visualized", "white", "black"},
		{"special visualized selected", markers.Descriptor{Variant: markers.VariantSpecial, IsVisualized: true, IsSelected: true},
			"selected", "white", "default", "special", "special"},
		{"unknown variant", markers.Descriptor{Variant: "promo"}, "white", "black", "default", "default", "black"},
	}

	named := map[string]map[string]any{
		"marker":     {"white": ColorWhite, "visualized": visualizedMarker, "selected": selectedMarker},
		"text":       {"white": ColorWhite, "black": ColorBlack},
		"stroke":     {"default": defaultStroke, "visualized": visualizedStroke},
		"iconCircle": {"default": defaultIconCircle, "white": ColorWhite, "special": specialIconCircle},
		"icon":       {"black": ColorBlack, "special": specialIcon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ResolvePalette(tt.d)
			check := func(field, want string, got any) {
				if named[field][want] != got {
					t.Errorf("%s: expected %s %v, got %v", field, want, named[field][want], got)
				}
			}
			check("marker", tt.marker, p.Marker)
			check("text", tt.text, p.Text)
			check("stroke", tt.stroke, p.Stroke)
			check("iconCircle", tt.iconCircle, p.IconCircle)
			check("icon", tt.icon, p.Icon)
			if p.CounterText != ColorBlack || p.CounterBubble != counterBubble {
				t.Errorf("expected fixed counter colors, got %v / %v", p.CounterText, p.CounterBubble)
			}
		})
	}
}

func TestResolvePaletteMiniStroke(t *testing.T) {
	p := ResolvePalette(markers.Descriptor{Size: markers.SizeMini, IsVisualized: true})
	if p.Stroke != miniStroke {
		t.Errorf("expected mini stroke %v, got %v", miniStroke, p.Stroke)
	}
}

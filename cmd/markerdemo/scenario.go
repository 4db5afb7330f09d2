package main

import (
	"errors"
	"math"

	"github.com/gogpu/markers"
	"github.com/gogpu/markers/surface"
)

var errSettled = errors.New("settled")

// maxSteps bounds one settle call.
const maxSteps = 1000

// settle calls step until it reports that no fade is running.
func settle(step func() error) error {
	for range maxSteps {
		if err := step(); err != nil {
			if errors.Is(err, errSettled) {
				return nil
			}
			return err
		}
	}
	return errors.New("animation did not settle")
}

type placed struct {
	id   string
	desc markers.Descriptor
	pos  surface.LatLng
}

// scenario spreads the demo markers around center, roughly dx, dy pixels
// apart on a viewport of mpp meters per pixel.
func scenario(center surface.LatLng, mpp float64) []placed {
	at := func(dx, dy float64) surface.LatLng {
		const earth = 6378137.0
		lat := center.Lat + (dy*mpp/earth)*180/math.Pi
		lng := center.Lng + (dx*mpp/(earth*math.Cos(center.Lat*math.Pi/180)))*180/math.Pi
		return surface.LatLng{Lat: lat, Lng: lng}
	}
	return []placed{
		{"price", markers.Descriptor{Label: "$450", HasPointer: true, HasElevation: true, IsAnimated: true}, at(-120, 120)},
		{"home", markers.Descriptor{Label: "Home", Icon: homeIcon, HasPointer: true, IsAnimated: true}, at(110, 100)},
		{"visited", markers.Descriptor{Label: "Café", IsVisualized: true, Counter: "2", IsAnimated: true}, at(-100, -60)},
		{"special", markers.Descriptor{Label: "Deal", Variant: markers.VariantSpecial, Icon: homeIcon, IsAnimated: true}, at(100, -80)},
		{"mini", markers.Descriptor{Size: markers.SizeMini}, at(0, 0)},
		{"dot", markers.Descriptor{Size: markers.SizeMiniDot, IsSelected: true}, at(30, -30)},
	}
}

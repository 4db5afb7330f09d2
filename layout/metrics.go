package layout

// Metrics holds the fixed layout constants. DefaultMetrics returns them in
// density-independent units; Engine converts them to pixels once with Scale.
type Metrics struct {
	PaddingVertical   float64
	PaddingHorizontal float64
	MinWidth          float64
	Stroke            float64
	Elevation         float64
	ShadowOffset      float64

	MiniRadius float64
	MiniWidth  float64

	CounterPadding float64

	PointerWidth  float64
	PointerHeight float64

	IconSize         float64
	IconCircle       float64
	IconLeftPadding  float64
	IconRightPadding float64

	TextSize float64
}

// DefaultMetrics returns the marker constants in dp.
func DefaultMetrics() Metrics {
	return Metrics{
		PaddingVertical:   12,
		PaddingHorizontal: 11.5,
		MinWidth:          40,
		Stroke:            1.5,
		Elevation:         5,
		ShadowOffset:      2,
		MiniRadius:        4,
		MiniWidth:         14,
		CounterPadding:    6,
		PointerWidth:      7,
		PointerHeight:     6,
		IconSize:          16,
		IconCircle:        24,
		IconLeftPadding:   5,
		IconRightPadding:  3,
		TextSize:          12,
	}
}

// Scale returns m with every value multiplied by density.
func (m Metrics) Scale(density float64) Metrics {
	return Metrics{
		PaddingVertical:   m.PaddingVertical * density,
		PaddingHorizontal: m.PaddingHorizontal * density,
		MinWidth:          m.MinWidth * density,
		Stroke:            m.Stroke * density,
		Elevation:         m.Elevation * density,
		ShadowOffset:      m.ShadowOffset * density,
		MiniRadius:        m.MiniRadius * density,
		MiniWidth:         m.MiniWidth * density,
		CounterPadding:    m.CounterPadding * density,
		PointerWidth:      m.PointerWidth * density,
		PointerHeight:     m.PointerHeight * density,
		IconSize:          m.IconSize * density,
		IconCircle:        m.IconCircle * density,
		IconLeftPadding:   m.IconLeftPadding * density,
		IconRightPadding:  m.IconRightPadding * density,
		TextSize:          m.TextSize * density,
	}
}

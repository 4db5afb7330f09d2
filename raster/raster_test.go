package raster

import (
	"bytes"
	"errors"
	"image/color"
	"sync"
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/markers"
	"github.com/gogpu/markers/cache"
	"github.com/gogpu/markers/layout"
)

const testIcon = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24">` +
	`<path fill="#000" d="M2 2h20v20H2z"/></svg>`

func testFonts(t *testing.T) *Fonts {
	t.Helper()
	f, err := DefaultFonts()
	if err != nil {
		t.Fatalf("DefaultFonts: %v", err)
	}
	return f
}

// recordingCanvas logs primitive names in call order.
type recordingCanvas struct {
	ops *[]string
	w   int
	h   int
}

func recorder(ops *[]string) CanvasFactory {
	return func(w, h int, _ *Fonts) Canvas {
		return &recordingCanvas{ops: ops, w: w, h: h}
	}
}

func (c *recordingCanvas) log(op string) error {
	*c.ops = append(*c.ops, op)
	return nil
}

func (c *recordingCanvas) DrawCircle(_, _, _ float64, _ Paint) error { return c.log("circle") }
func (c *recordingCanvas) DrawRoundedRect(_ layout.Rect, _ float64, _ Paint) error {
	return c.log("rrect")
}
func (c *recordingCanvas) DrawPath(_ []gg.Point, closed bool, _ Paint) error {
	if closed {
		return c.log("path")
	}
	return c.log("outline")
}
func (c *recordingCanvas) DrawText(s string, _, _, _ float64, _ color.NRGBA) error {
	return c.log("text:" + s)
}
func (c *recordingCanvas) DrawImage(_ *gg.Pixmap, _ layout.Rect, _ float64) error {
	return c.log("image")
}
func (c *recordingCanvas) Pixmap() *gg.Pixmap { return gg.NewPixmap(c.w, c.h) }

func TestRenderDrawOrder(t *testing.T) {
	var ops []string
	r := New(cache.New(1<<12), testFonts(t), WithCanvas(recorder(&ops)))

	r.Render(markers.Descriptor{
		Label:        "$450",
		Counter:      "3",
		Icon:         testIcon,
		HasPointer:   true,
		HasElevation: true,
	})

	want := []string{
		"rrect", // shadow
		"rrect", // bubble
		"rrect", // counter bubble
		"circle",
		"image",
		"path",
		"outline",
		"text:$450",
		"text:3",
	}
	if len(ops) != len(want) {
		t.Fatalf("expected ops %v, got %v", want, ops)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("op %d: expected %s, got %s (all: %v)", i, want[i], ops[i], ops)
		}
	}
}

func TestRenderSkipsAbsentPrimitives(t *testing.T) {
	var ops []string
	r := New(nil, testFonts(t), WithCanvas(recorder(&ops)))

	r.Render(markers.Descriptor{Label: "12", Size: markers.SizeMini})

	// Bubble plus the two empty text runs.
	want := []string{"rrect", "text:", "text:"}
	if len(ops) != len(want) || ops[0] != "rrect" {
		t.Errorf("expected %v, got %v", want, ops)
	}
}

func TestRenderTwiceIsIdenticalAndDistinct(t *testing.T) {
	c := cache.New(1 << 14)
	r := New(c, testFonts(t), WithDensity(2))
	d := markers.Descriptor{Label: "Cafe", Counter: "4", Icon: testIcon, HasPointer: true}

	first := r.Render(d)
	second := r.Render(d)

	if first == second {
		t.Fatal("expected distinct pixmaps")
	}
	if !bytes.Equal(first.Data(), second.Data()) {
		t.Error("expected bit-identical pixels")
	}

	// Mutating one copy must not leak into the next render.
	first.Clear(gg.Black)
	third := r.Render(d)
	if !bytes.Equal(second.Data(), third.Data()) {
		t.Error("expected cached bitmap to be unaffected by caller mutation")
	}
	if c.Stats().Hits < 2 {
		t.Errorf("expected cache hits, got %+v", c.Stats())
	}
}

func TestRenderDrawsBubble(t *testing.T) {
	r := New(nil, testFonts(t))
	g := r.Engine().Compute(markers.Descriptor{Label: "Hi", IsSelected: true})
	pm := r.RenderLayout(g)

	w, h := g.Size()
	if pm.Width() != w || pm.Height() != h {
		t.Fatalf("expected %dx%d, got %dx%d", w, h, pm.Width(), pm.Height())
	}
	// Left of the label, inside the bubble, the fill is the selected blue.
	px := pm.GetPixel(int(g.Bubble.Rect.X0)+4, h/2)
	if px.A < 0.9 || px.B < px.R {
		t.Errorf("expected opaque selected fill, got %+v", px)
	}
	if corner := pm.GetPixel(0, 0); corner.A != 0 {
		t.Errorf("expected transparent corner, got %+v", corner)
	}
}

func TestKeyIgnoresAnimationFlag(t *testing.T) {
	r := New(nil, nil)
	a := markers.Descriptor{Label: "x", IsAnimated: true}
	b := markers.Descriptor{Label: "x"}
	if r.Key(a) != r.Key(b) {
		t.Error("expected animation flag not to change the render key")
	}
	if r.Key(b) == r.Key(markers.Descriptor{Label: "y"}) {
		t.Error("expected different labels to have different keys")
	}
	dense := New(nil, nil, WithDensity(3))
	if r.Key(b) == dense.Key(b) {
		t.Error("expected density to take part in the key")
	}
}

func TestConcurrentRender(t *testing.T) {
	c := cache.New(1 << 14)
	r := New(c, testFonts(t))
	d := markers.Descriptor{Label: "$1.2M", HasElevation: true}

	const n = 16
	out := make([]*gg.Pixmap, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out[i] = r.Render(d)
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if out[i] == out[0] {
			t.Fatal("expected every caller to get its own copy")
		}
		if !bytes.Equal(out[i].Data(), out[0].Data()) {
			t.Fatal("expected identical pixels across callers")
		}
	}
	if c.Len() != 1 {
		t.Errorf("expected a single cache entry, got %d", c.Len())
	}
}

func TestBuildMarker(t *testing.T) {
	r := New(cache.New(1<<14), testFonts(t))

	count, err := r.BuildMarker(KindCount, "12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count.Width() != baseBadgeSize || count.Height() != baseBadgeSize {
		t.Errorf("expected %dx%d count badge, got %dx%d", baseBadgeSize, baseBadgeSize, count.Width(), count.Height())
	}
	if center := count.GetPixel(baseBadgeSize/2, baseBadgeSize/4); center.A < 0.9 {
		t.Errorf("expected opaque badge body, got %+v", center)
	}

	price, err := r.BuildMarker(KindPrice, "$450")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rounded, err := r.BuildMarker(KindRounded, "$450")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price.Height() <= rounded.Height() {
		t.Errorf("expected price badge to be taller than rounded (tail), got %d <= %d",
			price.Height(), rounded.Height())
	}

	again, _ := r.BuildMarker(KindPrice, "$450")
	if again == price || !bytes.Equal(again.Data(), price.Data()) {
		t.Error("expected an identical but distinct cached copy")
	}

	if _, err := r.BuildMarker("star", "1"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
}

func TestBadgeSize(t *testing.T) {
	tests := []struct {
		screen int
		want   int
	}{
		{2467, 167},
		{2560, 172},
		{4000, 172},
		{1200, 81},
		{500, 67},
	}
	for _, tt := range tests {
		if got := badgeSize(tt.screen); got != tt.want {
			t.Errorf("screen %d: expected %d, got %d", tt.screen, tt.want, got)
		}
	}
	if got := New(nil, nil, WithScreenHeight(500)).BadgeSize(); got != 67 {
		t.Errorf("expected clamped badge size 67, got %d", got)
	}
}

func TestFontsBounds(t *testing.T) {
	f := testFonts(t)
	if b := f.Bounds("", 12); b != (layout.TextBounds{}) {
		t.Errorf("expected empty bounds, got %+v", b)
	}
	if b := f.Bounds("   ", 12); b != (layout.TextBounds{}) {
		t.Errorf("expected empty bounds for spaces, got %+v", b)
	}

	digits := f.Bounds("450", 24)
	if digits.Top >= 0 || digits.Bottom > 1 {
		t.Errorf("expected digits above the baseline, got %+v", digits)
	}
	if digits.Width() <= 0 || digits.Height() <= 0 {
		t.Errorf("expected positive extent, got %+v", digits)
	}
	descender := f.Bounds("gy", 24)
	if descender.Bottom <= digits.Bottom {
		t.Errorf("expected descenders below the baseline, got %+v", descender)
	}
	if wide := f.Bounds("4500", 24); wide.Width() <= digits.Width() {
		t.Errorf("expected longer text to be wider: %v <= %v", wide.Width(), digits.Width())
	}
	if f.Face(12) != f.Face(12) {
		t.Error("expected faces to be cached per size")
	}
}

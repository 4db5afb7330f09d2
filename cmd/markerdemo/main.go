// Command markerdemo renders a marker scenario to PNG files.
//
// It adds a handful of markers to an in-memory host surface, updates some
// of them with a cross-fade and writes a snapshot of the surface for every
// animation tick, plus the standalone marker and badge bitmaps.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/markers"
	"github.com/gogpu/markers/anim"
	"github.com/gogpu/markers/cache"
	"github.com/gogpu/markers/controller"
	"github.com/gogpu/markers/internal/config"
	"github.com/gogpu/markers/raster"
	"github.com/gogpu/markers/surface"
)

const homeIcon = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24">` +
	`<path d="M12 3 2 12h3v8h6v-6h2v6h6v-8h3z"/></svg>`

func main() {
	var (
		configFile = flag.String("config", "", "config file (yaml, json or toml)")
		output     = flag.String("output", "", "output directory, overrides outputDir")
		level      = flag.String("log-level", "", "log level, overrides logLevel")
	)
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "markerdemo:", err)
		os.Exit(1)
	}
	if *output != "" {
		cfg.OutputDir = *output
	}
	if *level != "" {
		cfg.LogLevel = *level
	}

	logger := newLogger(cfg.LogLevel)
	markers.SetLogger(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("demo failed", "err", err)
		os.Exit(1)
	}
}

// newLogger builds a text logger for the given level name, falling back to
// info for unknown names.
func newLogger(name string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func newCache(cfg config.CacheConfig) (*cache.BitmapCache, error) {
	kib, err := cfg.BudgetKiB()
	if err != nil {
		return nil, err
	}
	if kib > 0 {
		return cache.New(kib), nil
	}
	return cache.NewFromMemory(cfg.MemoryFraction), nil
}

func newFonts(path string) (*raster.Fonts, error) {
	if path == "" {
		return raster.DefaultFonts()
	}
	return raster.LoadFonts(path)
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}

	bitmaps, err := newCache(cfg.Cache)
	if err != nil {
		return err
	}
	fonts, err := newFonts(cfg.Render.FontFile)
	if err != nil {
		return fmt.Errorf("load fonts: %w", err)
	}
	defer fonts.Close()

	r := raster.New(bitmaps, fonts,
		raster.WithDensity(cfg.Render.Density),
		raster.WithScreenHeight(cfg.Render.ScreenHeight),
	)

	center := surface.LatLng{Lat: cfg.Surface.Lat, Lng: cfg.Surface.Lng}
	host, err := surface.Open(cfg.Surface.Backend, surface.Options{
		Width:          cfg.Surface.Width,
		Height:         cfg.Surface.Height,
		Center:         center,
		MetersPerPixel: cfg.Surface.MetersPerPixel,
	})
	if err != nil {
		return err
	}
	mem, ok := host.(*surface.Memory)
	if !ok {
		return fmt.Errorf("backend %q cannot be snapshotted", cfg.Surface.Backend)
	}
	defer mem.Close()

	clock := anim.NewManualClock(time.Unix(0, 0))
	c := controller.New(host, r,
		controller.WithAnimation(cfg.Anim.Enabled),
		controller.WithFrameCount(cfg.Anim.Frames),
		controller.WithPoolSize(cfg.Anim.Pool),
		controller.WithDuration(cfg.Anim.Duration),
		controller.WithClock(clock),
	)

	scene := scenario(center, cfg.Surface.MetersPerPixel)
	for _, m := range scene {
		if _, err := c.AddMarker(m.id, m.desc, m.pos); err != nil {
			return err
		}
		pm := r.Render(m.desc)
		if err := pm.SavePNG(filepath.Join(cfg.OutputDir, "marker-"+m.id+".png")); err != nil {
			return err
		}
	}

	tick := 0
	step := func() error {
		clock.Advance(cfg.Anim.Interval)
		running := c.Tick()
		img := mem.Snapshot()
		name := filepath.Join(cfg.OutputDir, fmt.Sprintf("frame-%03d.png", tick))
		tick++
		if err := gg.FromImage(img).SavePNG(name); err != nil {
			return err
		}
		if running == 0 {
			return errSettled
		}
		return nil
	}
	if err := settle(step); err != nil {
		return err
	}

	// Select the price marker and bump the counter, with a cross-fade.
	for _, m := range scene {
		d := m.desc
		if d.Label == "$450" {
			d.IsSelected = true
			d.Counter = "4"
			c.UpdateMarker(m.id, d)
		}
	}
	if err := settle(step); err != nil {
		return err
	}

	for _, kind := range []raster.Kind{raster.KindCount, raster.KindPrice, raster.KindRounded} {
		pm, err := r.BuildMarker(kind, "12")
		if err != nil {
			return err
		}
		if err := pm.SavePNG(filepath.Join(cfg.OutputDir, "badge-"+string(kind)+".png")); err != nil {
			return err
		}
	}

	st := bitmaps.Stats()
	logger.Info("demo rendered",
		"dir", cfg.OutputDir,
		"frames", tick,
		"markers", c.Len(),
		"cache_entries", st.Len,
		"cache_kib", st.Cost,
		"cache_hit_rate", st.HitRate,
	)
	return nil
}

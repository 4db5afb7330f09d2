package cache

import (
	"strconv"
	"sync"
	"testing"

	"github.com/gogpu/gg"
)

// pixmapKiB returns a pixmap costing exactly n KiB (256 pixels per KiB).
func pixmapKiB(n int) *gg.Pixmap {
	return gg.NewPixmap(256, n)
}

func TestNew(t *testing.T) {
	c := New(100)
	if c == nil {
		t.Fatal("New returned nil")
	}
	if c.Budget() != 100 {
		t.Errorf("expected budget 100, got %d", c.Budget())
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
}

func TestSizeOf(t *testing.T) {
	tests := []struct {
		name string
		pm   *gg.Pixmap
		want int64
	}{
		{"nil", nil, 0},
		{"exact", pixmapKiB(3), 3},
		{"rounds up", gg.NewPixmap(10, 10), 1},
		{"just over", gg.NewPixmap(257, 1), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SizeOf(tt.pm); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestGetReturnsCopy(t *testing.T) {
	c := New(100)
	pm := gg.NewPixmap(4, 4)
	pm.SetPixel(1, 1, gg.RGB(1, 0, 0))
	c.Put("k", pm)

	// Mutating the inserted pixmap must not affect the cache.
	pm.SetPixel(1, 1, gg.RGB(0, 0, 1))

	first, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit")
	}
	if got := first.GetPixel(1, 1); got.R != 1 || got.B != 0 {
		t.Errorf("expected stored red pixel, got %+v", got)
	}

	// Mutating a returned copy must not affect later hits.
	first.SetPixel(1, 1, gg.RGB(0, 1, 0))
	second, _ := c.Get("k")
	if first == second {
		t.Fatal("expected distinct pixmaps on each hit")
	}
	if got := second.GetPixel(1, 1); got.R != 1 || got.G != 0 {
		t.Errorf("expected red pixel after caller mutation, got %+v", got)
	}
}

func TestPutFirstWriterWins(t *testing.T) {
	c := New(100)
	a := gg.NewPixmap(2, 2)
	a.SetPixel(0, 0, gg.White)
	b := gg.NewPixmap(2, 2)

	if !c.Put("k", a) {
		t.Fatal("expected first Put to store")
	}
	if c.Put("k", b) {
		t.Error("expected second Put to be ignored")
	}
	got, _ := c.Get("k")
	if got.GetPixel(0, 0).A != 1 {
		t.Error("expected the first pixmap to remain cached")
	}
}

func TestPutRejectsOversized(t *testing.T) {
	c := New(4)
	if c.Put("big", pixmapKiB(5)) {
		t.Error("expected oversized entry to be rejected")
	}
	if c.Len() != 0 || c.Cost() != 0 {
		t.Errorf("expected empty cache, got len=%d cost=%d", c.Len(), c.Cost())
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(3)
	c.Put("a", pixmapKiB(1))
	c.Put("b", pixmapKiB(1))
	c.Put("c", pixmapKiB(1))

	// Touch "a" so "b" becomes the oldest.
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a to be cached")
	}

	c.Put("d", pixmapKiB(1))

	if c.Contains("b") {
		t.Error("expected b to be evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if !c.Contains(k) {
			t.Errorf("expected %s to remain", k)
		}
	}
	if c.Stats().Evictions != 1 {
		t.Errorf("expected 1 eviction, got %d", c.Stats().Evictions)
	}

	want := []string{"d", "a", "c"}
	got := c.Keys()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected recency order %v, got %v", want, got)
		}
	}
}

func TestEvictsUntilFits(t *testing.T) {
	c := New(4)
	c.Put("a", pixmapKiB(1))
	c.Put("b", pixmapKiB(1))
	c.Put("c", pixmapKiB(2))
	c.Put("d", pixmapKiB(3))

	if c.Cost() > c.Budget() {
		t.Fatalf("cost %d exceeds budget %d", c.Cost(), c.Budget())
	}
	if !c.Contains("d") {
		t.Error("expected d to be cached")
	}
	if c.Contains("a") || c.Contains("b") {
		t.Error("expected the two oldest entries to be evicted")
	}
}

func TestCostNeverExceedsBudget(t *testing.T) {
	c := New(20)
	for i := 0; i < 200; i++ {
		c.Put(strconv.Itoa(i), pixmapKiB(1+i%7))
		if i%3 == 0 {
			c.Get(strconv.Itoa(i / 2))
		}
		if c.Cost() > c.Budget() {
			t.Fatalf("step %d: cost %d exceeds budget %d", i, c.Cost(), c.Budget())
		}
	}
}

func TestDeleteAndClear(t *testing.T) {
	c := New(10)
	c.Put("a", pixmapKiB(2))
	c.Put("b", pixmapKiB(2))

	if !c.Delete("a") {
		t.Error("expected Delete to return true for existing key")
	}
	if c.Delete("a") {
		t.Error("expected Delete to return false for missing key")
	}
	if c.Cost() != 2 {
		t.Errorf("expected cost 2, got %d", c.Cost())
	}

	c.Clear()
	if c.Len() != 0 || c.Cost() != 0 {
		t.Errorf("expected empty cache after Clear, got len=%d cost=%d", c.Len(), c.Cost())
	}
}

func TestStats(t *testing.T) {
	c := New(10)
	c.Put("a", pixmapKiB(1))
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 {
		t.Errorf("expected 2 hits 1 miss, got %d/%d", s.Hits, s.Misses)
	}
	if s.HitRate < 0.66 || s.HitRate > 0.67 {
		t.Errorf("expected hit rate ~0.667, got %f", s.HitRate)
	}
	if s.Len != 1 || s.Cost != 1 || s.Budget != 10 {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestBudgetFromMemory(t *testing.T) {
	if got := BudgetFromMemory(0); got != 0 {
		t.Errorf("expected 0 budget for zero fraction, got %d", got)
	}
	eighth := BudgetFromMemory(DefaultMemoryFraction)
	if eighth < (minAvailableMemory/1024)/8 {
		t.Errorf("expected at least %d KiB, got %d", (minAvailableMemory/1024)/8, eighth)
	}
	if whole := BudgetFromMemory(2); whole != AvailableMemory()/1024 {
		t.Errorf("expected fraction to clamp at 1, got %d", whole)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New(64)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := strconv.Itoa((g*7 + i) % 40)
				if _, ok := c.Get(key); !ok {
					c.Put(key, pixmapKiB(1+i%3))
				}
			}
		}(g)
	}
	wg.Wait()

	if c.Cost() > c.Budget() {
		t.Errorf("cost %d exceeds budget %d", c.Cost(), c.Budget())
	}
}

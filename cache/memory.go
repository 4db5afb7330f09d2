package cache

import (
	"math"
	"runtime"
	"runtime/debug"
)

// DefaultMemoryFraction is the share of available memory given to the
// bitmap cache by NewFromMemory.
const DefaultMemoryFraction = 1.0 / 8

// minAvailableMemory is assumed when the process reports no soft memory
// limit and has mapped less than this from the OS.
const minAvailableMemory = 256 << 20

// AvailableMemory returns the memory the process may use, in bytes.
// It is the Go soft memory limit (GOMEMLIMIT) when one is set, otherwise
// the memory obtained from the OS so far, floored at 256 MiB.
func AvailableMemory() int64 {
	if limit := debug.SetMemoryLimit(-1); limit > 0 && limit != math.MaxInt64 {
		return limit
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	sys := int64(ms.Sys)
	if sys < minAvailableMemory {
		return minAvailableMemory
	}
	return sys
}

// BudgetFromMemory converts a fraction of AvailableMemory into KiB.
func BudgetFromMemory(fraction float64) int64 {
	if fraction <= 0 {
		return 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return int64(float64(AvailableMemory()/1024) * fraction)
}

// NewFromMemory creates a cache whose budget is fraction of the available
// process memory, measured once at construction.
func NewFromMemory(fraction float64) *BitmapCache {
	return New(BudgetFromMemory(fraction))
}

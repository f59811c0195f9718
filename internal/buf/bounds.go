// Package buf holds small overflow-checked integer helpers used when sizing
// tables and selections from header-declared dimension sizes.
package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result would overflow int.
// Only non-negative operands occur for sizes and strides; negative operands are rejected.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// Product multiplies every element of sizes. An empty list yields 1 (a scalar
// table has exactly one cell). Negative sizes and overflow are reported as errors.
func Product(sizes []int) (int, error) {
	total := 1
	for i, n := range sizes {
		if n < 0 {
			return 0, fmt.Errorf("negative size at %d: %d", i, n)
		}
		next, ok := MulOverflowSafe(total, n)
		if !ok {
			return 0, fmt.Errorf("overflow: product * sizes[%d]=%d", i, n)
		}
		total = next
	}
	return total, nil
}

// CheckRange validates that a destination window [start, start+count) fits in a
// buffer of length bufLen. Returns the end offset if valid.
func CheckRange(bufLen, start, count int) (int, error) {
	if start < 0 {
		return 0, fmt.Errorf("negative start: %d", start)
	}
	if count < 0 {
		return 0, fmt.Errorf("negative count: %d", count)
	}
	end, ok := AddOverflowSafe(start, count)
	if !ok {
		return 0, fmt.Errorf("overflow: start=%d + count=%d", start, count)
	}
	if end > bufLen {
		return 0, fmt.Errorf("bounds: end=%d > len=%d", end, bufLen)
	}
	return end, nil
}

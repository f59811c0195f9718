// Package coords enumerates the flat row-major storage offsets of a
// multi-dimensional sub-selection in a caller-chosen nesting order.
//
// Strides always follow storage order (the last declared dimension varies
// fastest on disk). The processing order only changes the sequence in which
// offsets are produced, never the offsets themselves.
//
// An Indexer owns all of its state; separate indexers are safe to use from
// separate goroutines.
package coords

import (
	"fmt"

	"github.com/pxtools/pxkit/internal/buf"
	"github.com/pxtools/pxkit/pkg/types"
)

// Selection holds one ordered list of 0-based coordinates per dimension.
// Order inside a list defines the output order along that axis; lists need
// not be sorted, contiguous or free of repeats.
type Selection [][]int

// Count returns the number of cells the selection addresses.
func (s Selection) Count() int {
	if len(s) == 0 {
		return 0
	}
	total := 1
	for _, c := range s {
		total *= len(c)
	}
	return total
}

// All selects every coordinate of every dimension in storage order.
func All(dims []int) Selection {
	sel := make(Selection, len(dims))
	for i, n := range dims {
		sel[i] = Range(0, n)
	}
	return sel
}

// Range returns the coordinates [from, to).
func Range(from, to int) []int {
	if to <= from {
		return []int{}
	}
	out := make([]int, to-from)
	for i := range out {
		out[i] = from + i
	}
	return out
}

// Strides returns the row-major stride of every dimension: the product of the
// sizes of all dimensions after it in storage order.
func Strides(dims []int) ([]int, error) {
	strides := make([]int, len(dims))
	acc := 1
	for d := len(dims) - 1; d >= 0; d-- {
		if dims[d] < 0 {
			return nil, types.Errorf(types.ErrKindSelection,
				fmt.Sprintf("coords: negative size %d for dimension %d", dims[d], d))
		}
		strides[d] = acc
		next, ok := buf.MulOverflowSafe(acc, dims[d])
		if !ok {
			return nil, types.Errorf(types.ErrKindSelection,
				fmt.Sprintf("coords: table size overflows int at dimension %d", d))
		}
		acc = next
	}
	return strides, nil
}

// Indexer is an odometer over a Selection. The first offset is available
// immediately after New; Next advances the innermost dimension of the
// processing order and carries outward.
type Indexer struct {
	sel     Selection
	strides []int
	order   []int // outermost .. innermost
	cursor  []int // per storage dimension, position within sel[d]
	total   int
	offset  int
}

// New builds an Indexer over sel for a table whose storage shape is dims.
// order lists dimension positions from outermost (slowest) to innermost
// (fastest); nil means storage order. Every coordinate is bounds-checked here,
// before any I/O happens.
func New(dims []int, sel Selection, order []int) (*Indexer, error) {
	if len(sel) != len(dims) {
		return nil, types.Errorf(types.ErrKindSelection,
			fmt.Sprintf("coords: selection has %d dimensions, table has %d", len(sel), len(dims)))
	}
	strides, err := Strides(dims)
	if err != nil {
		return nil, err
	}
	for d, coords := range sel {
		for _, c := range coords {
			if c < 0 || c >= dims[d] {
				return nil, types.Wrap(types.ErrKindSelection,
					fmt.Sprintf("coords: coordinate %d outside dimension %d of size %d", c, d, dims[d]),
					types.ErrSelectionBounds)
			}
		}
	}
	ord, err := normalizeOrder(order, len(dims))
	if err != nil {
		return nil, err
	}
	lens := make([]int, len(sel))
	for d := range sel {
		lens[d] = len(sel[d])
	}
	total, err := buf.Product(lens)
	if err != nil {
		return nil, types.Wrap(types.ErrKindSelection, "coords: selection too large", err)
	}
	if len(dims) == 0 {
		total = 0
	}
	ix := &Indexer{
		sel:     sel,
		strides: strides,
		order:   ord,
		cursor:  make([]int, len(dims)),
		total:   total,
	}
	ix.offset = ix.compute()
	return ix, nil
}

func normalizeOrder(order []int, rank int) ([]int, error) {
	if order == nil {
		return Range(0, rank), nil
	}
	if len(order) != rank {
		return nil, types.Errorf(types.ErrKindSelection,
			fmt.Sprintf("coords: processing order has %d entries, table has %d dimensions", len(order), rank))
	}
	seen := make([]bool, rank)
	for _, d := range order {
		if d < 0 || d >= rank || seen[d] {
			return nil, types.Errorf(types.ErrKindSelection,
				fmt.Sprintf("coords: processing order %v is not a permutation of 0..%d", order, rank-1))
		}
		seen[d] = true
	}
	return append([]int(nil), order...), nil
}

// compute derives the flat offset from the coordinate values under each cursor.
func (ix *Indexer) compute() int {
	if ix.total == 0 {
		return -1
	}
	off := 0
	for d, pos := range ix.cursor {
		off += ix.sel[d][pos] * ix.strides[d]
	}
	return off
}

// Offset returns the flat storage offset of the current cell, or -1 when the
// selection is empty.
func (ix *Indexer) Offset() int { return ix.offset }

// Count returns the number of offsets the Indexer produces in total.
func (ix *Indexer) Count() int { return ix.total }

// Next moves to the following cell. It returns false, leaving the state
// unchanged, once the outermost dimension would overflow.
func (ix *Indexer) Next() bool {
	if ix.total == 0 {
		return false
	}
	for i := len(ix.order) - 1; i >= 0; i-- {
		d := ix.order[i]
		if ix.cursor[d]+1 < len(ix.sel[d]) {
			ix.cursor[d]++
			// Reset every dimension inside d only now that the carry is known to land.
			for _, inner := range ix.order[i+1:] {
				ix.cursor[inner] = 0
			}
			ix.offset = ix.compute()
			return true
		}
	}
	return false
}

// Coords writes the coordinate of the current cell along every storage
// dimension into dst, growing it if needed, and returns it. It returns nil
// when the selection is empty.
func (ix *Indexer) Coords(dst []int) []int {
	if ix.total == 0 {
		return nil
	}
	if cap(dst) < len(ix.cursor) {
		dst = make([]int, len(ix.cursor))
	}
	dst = dst[:len(ix.cursor)]
	for d, pos := range ix.cursor {
		dst[d] = ix.sel[d][pos]
	}
	return dst
}

// Reset rewinds the Indexer to its first cell.
func (ix *Indexer) Reset() {
	clear(ix.cursor)
	ix.offset = ix.compute()
}

// Offsets enumerates every offset from the current position onward.
func (ix *Indexer) Offsets() []int {
	out := make([]int, 0, ix.total)
	if ix.total == 0 {
		return out
	}
	for {
		out = append(out, ix.offset)
		if !ix.Next() {
			return out
		}
	}
}

package px

import "github.com/pxtools/pxkit/px/coords"

// Request describes one selective read: which coordinates to take along every
// dimension and, optionally, the nesting order in which to emit them.
type Request struct {
	Selection coords.Selection
	Order     []int // outermost..innermost dimension positions; nil is storage order
}

// RowsCols joins per-dimension stub (row) and heading (column) selections
// into a storage-order Request.
func RowsCols(rows, cols [][]int) Request {
	sel := make(coords.Selection, 0, len(rows)+len(cols))
	sel = append(sel, rows...)
	sel = append(sel, cols...)
	return Request{Selection: sel}
}

// All requests every cell of a table with the given shape.
func All(dims []int) Request {
	return Request{Selection: coords.All(dims)}
}

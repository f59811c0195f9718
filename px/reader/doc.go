// Package reader extracts a sub-selection of cells from the data section of a
// PX table without materializing the rest of it.
//
// A read bounds-checks the selection, enumerates the requested storage
// offsets with a coords.Indexer, sorts them, and then makes a single forward
// pass over the whitespace-delimited tokens. Only tokens at wanted offsets
// are decoded; everything else is skipped unparsed, and the pass stops at the
// last wanted offset. The same cell may be requested more than once; it is
// decoded once and written to every slot that asked for it.
//
// Three output modes exist: exact decimals, float64 values, and plain numbers
// with sentinels mapped through a datavalue.SentinelMap. The first two come
// in a validating and an unchecked flavour. Unchecked reads assume the section
// was validated upstream (see Validate) and have unspecified results on
// malformed input.
//
// Reads honor context cancellation at every buffer refill, and ReadAsync runs
// any read method on a separate goroutine.
package reader

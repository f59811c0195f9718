// Package px opens PC-Axis (.px) statistical tables and reads rectangular
// sub-selections of their data cells.
//
// A File maps the table read-only, parses the header once, and hands out
// independent Readers over the data section, so several selections can be
// read at the same time:
//
//	f, err := px.Open("population.px")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	// rows: region 1 and 2, sex 0 and 1; columns: year 3
//	cells, err := f.ReadDecimal(ctx, px.RowsCols([][]int{{1, 2}, {0, 1}}, [][]int{{3}}))
//
// Lower-level building blocks live in the sub-packages: locate finds header
// keywords on raw bytes, meta decodes the header, coords enumerates storage
// offsets, datavalue decodes individual tokens and reader ties them together.
package px

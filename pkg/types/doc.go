// Package types holds the error taxonomy shared by every pxkit package.
//
// Errors carry an ErrKind so callers branch on intent rather than text:
//
//	n, err := r.ReadDecimal(ctx, dst, 0, sel)
//	switch {
//	case errors.Is(err, types.ErrFormat):
//	    // the file needs to be re-validated upstream
//	case errors.Is(err, types.ErrSelectionBounds):
//	    // fix the request; nothing was read
//	}
//
// Sentinels match through the Unwrap chain: a contextual error satisfies
// errors.Is(err, types.ErrSelectionBounds) only when it wraps that sentinel.
// Errors that merely share a kind do not match; branch on Kind with
// errors.As for coarse classification.
package types

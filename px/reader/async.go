package reader

import (
	"context"

	"github.com/pxtools/pxkit/px/coords"
)

// Result is the outcome of an asynchronous read.
type Result struct {
	N   int
	Err error
}

// ReadFunc is the shape shared by the Reader's checked and unchecked read methods.
type ReadFunc[T any] func(ctx context.Context, dst []T, start int, sel coords.Selection) (int, error)

// ReadAsync runs read on its own goroutine and delivers exactly one Result on
// the returned channel. The caller must not touch dst until the Result arrives.
// Cancelling ctx makes the read return ctx.Err() at its next buffer refill.
//
//	res := <-reader.ReadAsync(ctx, r.ReadFloat, dst, 0, sel)
func ReadAsync[T any](ctx context.Context, read ReadFunc[T], dst []T, start int, sel coords.Selection) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		n, err := read(ctx, dst, start, sel)
		ch <- Result{N: n, Err: err}
	}()
	return ch
}

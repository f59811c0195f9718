package reader

import (
	"log/slog"

	"golang.org/x/text/encoding"
)

// DefaultBufferSize is the initial size of the token window. The window grows
// only when a single token does not fit.
const DefaultBufferSize = 64 * 1024

const minBufferSize = 16

type options struct {
	enc     encoding.Encoding
	bufSize int
	order   []int
	log     *slog.Logger
}

// Option configures a Reader.
type Option func(*options)

// WithEncoding sets the byte encoding of the data section. Encodings that do
// not map the data-section alphabet onto ASCII are transcoded on the fly.
func WithEncoding(enc encoding.Encoding) Option {
	return func(o *options) { o.enc = enc }
}

// WithBufferSize sets the initial token window size in bytes.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n < minBufferSize {
			n = minBufferSize
		}
		o.bufSize = n
	}
}

// WithOrder sets the processing order: dimension positions from outermost to
// innermost. Strides still follow storage order.
func WithOrder(order []int) Option {
	return func(o *options) { o.order = append([]int(nil), order...) }
}

// WithLogger routes the reader's debug output to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

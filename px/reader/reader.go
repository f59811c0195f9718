package reader

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/pxtools/pxkit/internal/buf"
	"github.com/pxtools/pxkit/internal/logger"
	"github.com/pxtools/pxkit/px/coords"
	"github.com/pxtools/pxkit/px/datavalue"
	"github.com/pxtools/pxkit/pkg/types"
)

// Reader decodes selected cells from the data section of one PX table.
//
// The underlying stream must be positioned at the first data token. When it
// also implements io.Seeker, the Reader remembers that position and rewinds to
// it before every read, so one Reader serves any number of sequential reads.
// A non-seekable stream supports a single read.
//
// A Reader is not safe for concurrent use. Open one Reader per goroutine,
// each over its own stream.
type Reader struct {
	src   io.Reader
	dims  []int
	opts  options
	log   *slog.Logger
	start int64 // stream position of the first data token; -1 if not seekable
	used  bool
}

// New returns a Reader over r for a table whose storage shape is dims
// (stub dimensions first, then heading dimensions).
func New(r io.Reader, dims []int, opts ...Option) *Reader {
	o := options{bufSize: DefaultBufferSize}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log
	if log == nil {
		log = logger.L
	}
	return &Reader{
		src:   r,
		dims:  append([]int(nil), dims...),
		opts:  o,
		log:   log,
		start: -1,
	}
}

// Dims returns a copy of the storage shape the Reader was built for.
func (r *Reader) Dims() []int { return append([]int(nil), r.dims...) }

// slot pairs a storage offset with the destination index it fills.
type slot struct {
	off int
	dst int
}

// plan bounds-checks the request and returns the (offset, slot) pairs sorted
// by offset. Nothing is read from the stream.
func (r *Reader) plan(sel coords.Selection, dstLen, start int) ([]slot, error) {
	ix, err := coords.New(r.dims, sel, r.opts.order)
	if err != nil {
		return nil, err
	}
	count := ix.Count()
	if _, err := buf.CheckRange(dstLen, start, count); err != nil {
		return nil, types.Wrap(types.ErrKindSelection,
			fmt.Sprintf("reader: destination of length %d cannot hold %d cells from %d", dstLen, count, start), err)
	}
	pairs := make([]slot, 0, count)
	for i := start; count > 0; i++ {
		pairs = append(pairs, slot{off: ix.Offset(), dst: i})
		if !ix.Next() {
			break
		}
	}
	slices.SortFunc(pairs, func(a, b slot) int { return cmp.Compare(a.off, b.off) })
	return pairs, nil
}

// open positions the stream at the first data token and returns a tokenizer
// over it.
func (r *Reader) open(ctx context.Context) (*tokenizer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seeker, seekable := r.src.(io.Seeker)
	switch {
	case !r.used && seekable:
		pos, err := seeker.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, fmt.Errorf("reader: record data position: %w", err)
		}
		r.start = pos
	case r.used && seekable && r.start >= 0:
		if _, err := seeker.Seek(r.start, io.SeekStart); err != nil {
			return nil, fmt.Errorf("reader: rewind to data: %w", err)
		}
	case r.used:
		return nil, types.Errorf(types.ErrKindState, "reader: stream is not seekable and was already consumed")
	}
	r.used = true

	src := r.src
	if !asciiCompatible(r.opts.enc) {
		src = transform.NewReader(src, r.opts.enc.NewDecoder())
	}
	return newTokenizer(ctx, src, r.opts.bufSize), nil
}

// dataAlphabet is every byte that may appear in a well-formed data section.
const dataAlphabet = "0123456789-.\" ,;\t\r\n"

// asciiCompatible reports whether enc decodes the data alphabet to itself,
// in which case the raw bytes can be tokenized without transcoding.
func asciiCompatible(enc encoding.Encoding) bool {
	if enc == nil || enc == unicode.UTF8 || enc == encoding.Nop {
		return true
	}
	cm, ok := enc.(*charmap.Charmap)
	if !ok {
		return false
	}
	for i := 0; i < len(dataAlphabet); i++ {
		if cm.DecodeByte(dataAlphabet[i]) != rune(dataAlphabet[i]) {
			return false
		}
	}
	return true
}

// scan walks the data section once, calling emit for every token whose
// offset is wanted with the run of pairs mapped to it. It stops as soon as
// the last pair is served and returns the number of tokens consumed.
func (r *Reader) scan(ctx context.Context, pairs []slot, emit func(tok []byte, run []slot) error) (int, error) {
	if len(pairs) == 0 {
		return 0, nil
	}
	tz, err := r.open(ctx)
	if err != nil {
		return 0, err
	}
	p := 0
	cell := 0
	for ; p < len(pairs); cell++ {
		tok, err := tz.next()
		if errors.Is(err, io.EOF) {
			return cell, types.Wrap(types.ErrKindTruncated,
				fmt.Sprintf("reader: data section ends after %d cells, cell %d requested", cell, pairs[p].off),
				types.ErrShortData)
		}
		if err != nil {
			return cell, err
		}
		if cell != pairs[p].off {
			continue
		}
		q := p + 1
		for q < len(pairs) && pairs[q].off == cell {
			q++
		}
		if err := emit(tok, pairs[p:q]); err != nil {
			return cell + 1, fmt.Errorf("reader: cell %d: %w", cell, err)
		}
		p = q
	}
	return cell, nil
}

// read is the shared selective read loop; decode turns one token into T.
func read[T any](ctx context.Context, r *Reader, mode string, dst []T, start int, sel coords.Selection,
	decode func(tok []byte) (T, error)) (int, error) {
	pairs, err := r.plan(sel, len(dst), start)
	if err != nil {
		return 0, err
	}
	written := 0
	scanned, err := r.scan(ctx, pairs, func(tok []byte, run []slot) error {
		v, err := decode(tok)
		if err != nil {
			return err
		}
		for _, s := range run {
			dst[s.dst] = v
		}
		written += len(run)
		return nil
	})
	if err != nil {
		r.log.Debug("px read failed", "mode", mode, "cells", len(pairs), "scanned", scanned, "err", err)
		return written, err
	}
	r.log.Debug("px read", "mode", mode, "cells", len(pairs), "scanned", scanned)
	return len(pairs), nil
}

// ReadDecimal decodes the selected cells into dst[start:] as exact decimals,
// validating every decoded token. It returns the number of cells written;
// on error that is how many slots were filled before the failure, in no
// particular order.
func (r *Reader) ReadDecimal(ctx context.Context, dst []datavalue.Decimal, start int, sel coords.Selection) (int, error) {
	return read(ctx, r, "decimal", dst, start, sel, datavalue.ParseDecimal)
}

// ReadDecimalUnchecked is ReadDecimal without token validation. The data
// section must already be known to be well-formed.
func (r *Reader) ReadDecimalUnchecked(ctx context.Context, dst []datavalue.Decimal, start int, sel coords.Selection) (int, error) {
	return read(ctx, r, "decimal-unchecked", dst, start, sel, func(tok []byte) (datavalue.Decimal, error) {
		return datavalue.ParseDecimalUnchecked(tok), nil
	})
}

// ReadFloat decodes the selected cells into dst[start:] as float64 values,
// validating every decoded token.
func (r *Reader) ReadFloat(ctx context.Context, dst []datavalue.Float, start int, sel coords.Selection) (int, error) {
	return read(ctx, r, "float", dst, start, sel, datavalue.ParseFloat)
}

// ReadFloatUnchecked is ReadFloat without token validation.
func (r *Reader) ReadFloatUnchecked(ctx context.Context, dst []datavalue.Float, start int, sel coords.Selection) (int, error) {
	return read(ctx, r, "float-unchecked", dst, start, sel, func(tok []byte) (datavalue.Float, error) {
		return datavalue.ParseFloatUnchecked(tok), nil
	})
}

// ReadNumbersUnchecked decodes the selected cells into plain numbers. Sentinel
// cells are replaced by their entry in m; a nil m maps every sentinel to NaN.
func (r *Reader) ReadNumbersUnchecked(ctx context.Context, dst []float64, start int, sel coords.Selection, m *datavalue.SentinelMap) (int, error) {
	if m == nil {
		nan := datavalue.NaNSentinels()
		m = &nan
	}
	return read(ctx, r, "numbers-unchecked", dst, start, sel, func(tok []byte) (float64, error) {
		return datavalue.ParseNumberUnchecked(tok, m), nil
	})
}

// Validate scans the whole data section, checking every token, and returns
// the number of cells found. A section holding fewer cells than the declared
// shape yields ErrShortData; more cells is a format error.
func (r *Reader) Validate(ctx context.Context) (int, error) {
	want, err := buf.Product(r.dims)
	if err != nil {
		return 0, types.Wrap(types.ErrKindSelection, "reader: table size", err)
	}
	tz, err := r.open(ctx)
	if err != nil {
		return 0, err
	}
	cells := 0
	for {
		tok, err := tz.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return cells, err
		}
		if err := datavalue.Validate(tok); err != nil {
			return cells, fmt.Errorf("reader: cell %d: %w", cells, err)
		}
		cells++
	}
	switch {
	case cells < want:
		return cells, types.Wrap(types.ErrKindTruncated,
			fmt.Sprintf("reader: data section holds %d cells, shape declares %d", cells, want), types.ErrShortData)
	case cells > want:
		return cells, types.Wrap(types.ErrKindFormat,
			fmt.Sprintf("reader: data section holds %d cells, shape declares %d", cells, want), types.ErrFormat)
	}
	r.log.Debug("px data validated", "cells", cells)
	return cells, nil
}

package px

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pxtools/pxkit/internal/logger"
	"github.com/pxtools/pxkit/internal/mmfile"
	"github.com/pxtools/pxkit/pkg/types"
	"github.com/pxtools/pxkit/px/coords"
	"github.com/pxtools/pxkit/px/datavalue"
	"github.com/pxtools/pxkit/px/meta"
	"github.com/pxtools/pxkit/px/reader"
)

// File is an open PX table. The file contents are mapped read-only and
// shared by every Reader the File hands out.
type File struct {
	mu      sync.RWMutex
	data    []byte
	release func() error
	closed  bool

	hdr     *meta.Header
	dims    []meta.Dimension
	sizes   []int
	stubLen int
}

// Open maps the PX file at path and parses its header.
// The caller must call Close when done.
//
// Example:
//
//	f, err := px.Open("population.px")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//	cells, err := f.ReadFloat(ctx, px.RowsCols([][]int{{0}, {1}}, [][]int{{2, 3}}))
func Open(path string) (*File, error) {
	data, release, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("px: open %s: %w", path, err)
	}
	f, err := newFile(data, release)
	if err != nil {
		_ = release()
		return nil, fmt.Errorf("px: open %s: %w", path, err)
	}
	logger.L.Debug("px file opened", "path", path, "size", len(data), "dims", f.sizes)
	return f, nil
}

// OpenBytes parses a PX table held in memory. data must not be modified
// while the File is in use.
func OpenBytes(data []byte) (*File, error) {
	return newFile(data, func() error { return nil })
}

func newFile(data []byte, release func() error) (*File, error) {
	hdr, err := meta.ParseHeader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	dims, err := hdr.Dimensions("")
	if err != nil {
		return nil, err
	}
	sizes, stubLen, err := hdr.Sizes("")
	if err != nil {
		return nil, err
	}
	return &File{
		data:    data,
		release: release,
		hdr:     hdr,
		dims:    dims,
		sizes:   sizes,
		stubLen: stubLen,
	}, nil
}

// Header returns the parsed metadata.
func (f *File) Header() *meta.Header { return f.hdr }

// Dims returns the size of every dimension in storage order.
func (f *File) Dims() []int { return append([]int(nil), f.sizes...) }

// StubLen returns how many leading dimensions are row (stub) dimensions.
func (f *File) StubLen() int { return f.stubLen }

// DimensionNames returns dimension names in storage order, in the default language.
func (f *File) DimensionNames() []string {
	names := make([]string, len(f.dims))
	for i, d := range f.dims {
		names[i] = d.Name
	}
	return names
}

// Close releases the mapping. It waits for in-flight reads to finish their
// current copy; any Reader obtained from the File fails with ErrClosed on its
// next read.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return types.ErrClosed
	}
	f.closed = true
	err := f.release()
	f.data = nil
	return err
}

// NewReader returns a Reader over an independent cursor positioned at the
// start of the data section, decoding with the file's codepage. opts are
// applied after the codepage so callers may override it.
func (f *File) NewReader(opts ...reader.Option) (*reader.Reader, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return nil, types.ErrClosed
	}
	src := &section{f: f, size: int64(len(f.data)), off: f.hdr.DataOffset}
	all := append([]reader.Option{reader.WithEncoding(f.hdr.Encoding)}, opts...)
	return reader.New(src, f.sizes, all...), nil
}

// section is a cursor over the mapping. Every Read holds the File's read
// lock so the pages stay mapped for the duration of the copy.
type section struct {
	f    *File
	size int64
	off  int64
}

func (s *section) Read(p []byte) (int, error) {
	s.f.mu.RLock()
	defer s.f.mu.RUnlock()
	if s.f.closed {
		return 0, types.ErrClosed
	}
	if s.off >= s.size {
		return 0, io.EOF
	}
	n := copy(p, s.f.data[s.off:])
	s.off += int64(n)
	return n, nil
}

func (s *section) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = s.off + offset
	case io.SeekEnd:
		abs = s.size + offset
	default:
		return 0, fmt.Errorf("px: seek: invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("px: seek: negative position %d", abs)
	}
	s.off = abs
	return abs, nil
}

// prepare sizes the output of req and builds a Reader honoring its order.
func (f *File) prepare(req Request, opts []reader.Option) (*reader.Reader, int, error) {
	ix, err := coords.New(f.sizes, req.Selection, req.Order)
	if err != nil {
		return nil, 0, err
	}
	all := make([]reader.Option, 0, len(opts)+1)
	all = append(all, opts...)
	r, err := f.NewReader(append(all, reader.WithOrder(req.Order))...)
	if err != nil {
		return nil, 0, err
	}
	return r, ix.Count(), nil
}

// ReadDecimal returns the cells of req as validated exact decimals.
func (f *File) ReadDecimal(ctx context.Context, req Request, opts ...reader.Option) ([]datavalue.Decimal, error) {
	r, n, err := f.prepare(req, opts)
	if err != nil {
		return nil, err
	}
	dst := make([]datavalue.Decimal, n)
	if _, err := r.ReadDecimal(ctx, dst, 0, req.Selection); err != nil {
		return nil, err
	}
	return dst, nil
}

// ReadFloat returns the cells of req as validated float64 values.
func (f *File) ReadFloat(ctx context.Context, req Request, opts ...reader.Option) ([]datavalue.Float, error) {
	r, n, err := f.prepare(req, opts)
	if err != nil {
		return nil, err
	}
	dst := make([]datavalue.Float, n)
	if _, err := r.ReadFloat(ctx, dst, 0, req.Selection); err != nil {
		return nil, err
	}
	return dst, nil
}

// ReadNumbers returns the cells of req as plain numbers, with sentinels
// replaced through m (NaN when m is nil). Tokens are not validated; run
// Validate first on untrusted input.
func (f *File) ReadNumbers(ctx context.Context, req Request, m *datavalue.SentinelMap, opts ...reader.Option) ([]float64, error) {
	r, n, err := f.prepare(req, opts)
	if err != nil {
		return nil, err
	}
	dst := make([]float64, n)
	if _, err := r.ReadNumbersUnchecked(ctx, dst, 0, req.Selection, m); err != nil {
		return nil, err
	}
	return dst, nil
}

// Validate checks every token of the data section against the declared shape
// and returns the number of cells.
func (f *File) Validate(ctx context.Context, opts ...reader.Option) (int, error) {
	r, err := f.NewReader(opts...)
	if err != nil {
		return 0, err
	}
	return r.Validate(ctx)
}

// ReadConcurrent serves every request on its own Reader in parallel. Results
// are returned in request order. The first failure cancels the remaining reads.
func (f *File) ReadConcurrent(ctx context.Context, reqs []Request, opts ...reader.Option) ([][]datavalue.Float, error) {
	out := make([][]datavalue.Float, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, req := range reqs {
		g.Go(func() error {
			cells, err := f.ReadFloat(gctx, req, opts...)
			if err != nil {
				return fmt.Errorf("px: request %d: %w", i, err)
			}
			out[i] = cells
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

package reader

import (
	"context"
	"errors"
	"io"
)

// sectionEnd terminates the data section.
const sectionEnd = ';'

// tokenizer splits the data section into value tokens over a refillable window.
// Tokens alias the window and stay valid only until the next call to next.
type tokenizer struct {
	ctx        context.Context
	r          io.Reader
	buf        []byte
	start, end int // unread bytes are buf[start:end]
	eof        bool
	done       bool // sectionEnd seen
}

func newTokenizer(ctx context.Context, r io.Reader, size int) *tokenizer {
	return &tokenizer{ctx: ctx, r: r, buf: make([]byte, size)}
}

func isDelim(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == ','
}

// next returns the next token, or io.EOF once the section terminator or the
// end of input is reached.
func (t *tokenizer) next() ([]byte, error) {
	if t.done {
		return nil, io.EOF
	}
	// Skip delimiters.
	for {
		for t.start < t.end && isDelim(t.buf[t.start]) {
			t.start++
		}
		if t.start < t.end {
			break
		}
		if err := t.fill(); err != nil {
			return nil, err
		}
	}
	if t.buf[t.start] == sectionEnd {
		t.done = true
		return nil, io.EOF
	}

	n := 0 // bytes of the token seen so far
	for {
		for i := t.start + n; i < t.end; i++ {
			if c := t.buf[i]; isDelim(c) || c == sectionEnd {
				tok := t.buf[t.start:i]
				t.start = i
				return tok, nil
			}
		}
		n = t.end - t.start
		if err := t.fill(); err != nil {
			if errors.Is(err, io.EOF) {
				tok := t.buf[t.start : t.start+n]
				t.start += n
				return tok, nil
			}
			return nil, err
		}
	}
}

// fill compacts the window and reads more input. It is the only place a scan
// can block, so it is also where cancellation is observed.
func (t *tokenizer) fill() error {
	if t.eof {
		return io.EOF
	}
	if err := t.ctx.Err(); err != nil {
		return err
	}
	if t.start > 0 {
		t.end = copy(t.buf, t.buf[t.start:t.end])
		t.start = 0
	}
	if t.end == len(t.buf) {
		// A single token fills the window; grow it.
		grown := make([]byte, 2*len(t.buf))
		copy(grown, t.buf[:t.end])
		t.buf = grown
	}
	for {
		n, err := t.r.Read(t.buf[t.end:])
		t.end += n
		if errors.Is(err, io.EOF) {
			t.eof = true
			if n > 0 {
				return nil
			}
			return io.EOF
		}
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
	}
}

package reader

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, tz *tokenizer) []string {
	t.Helper()
	var out []string
	for {
		tok, err := tz.next()
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
		out = append(out, string(tok))
	}
}

func TestTokenizerDelimiters(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"spaces", "1 2 3;", []string{"1", "2", "3"}},
		{"mixed whitespace", "\r\n 1\t2\r\n3 ;", []string{"1", "2", "3"}},
		{"commas", "1,2, 3 ,4;", []string{"1", "2", "3", "4"}},
		{"terminator glued", `1 ".." "-";`, []string{"1", `".."`, `"-"`}},
		{"stops at terminator", "1 2; 3 4", []string{"1", "2"}},
		{"no terminator", "1 2 3", []string{"1", "2", "3"}},
		{"empty section", " ;", nil},
		{"empty input", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tz := newTokenizer(t.Context(), strings.NewReader(tt.in), 64)
			assert.Equal(t, tt.want, drain(t, tz))
		})
	}
}

func TestTokenizerRefillAcrossWindow(t *testing.T) {
	in := "12345 -0.5 \"......\" 7;"
	tz := newTokenizer(t.Context(), iotest.OneByteReader(strings.NewReader(in)), 4)
	assert.Equal(t, []string{"12345", "-0.5", `"......"`, "7"}, drain(t, tz))
}

func TestTokenizerGrowsForLongToken(t *testing.T) {
	long := strings.Repeat("9", 100)
	tz := newTokenizer(t.Context(), strings.NewReader("1 "+long+" 2"), 8)
	assert.Equal(t, []string{"1", long, "2"}, drain(t, tz))
}

func TestTokenizerReadError(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(strings.NewReader("1 2 "), iotest.ErrReader(boom))
	tz := newTokenizer(t.Context(), r, 64)

	for _, want := range []string{"1", "2"} {
		tok, err := tz.next()
		require.NoError(t, err)
		assert.Equal(t, want, string(tok))
	}
	_, err := tz.next()
	assert.ErrorIs(t, err, boom)
}

func TestTokenizerObservesCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	tz := newTokenizer(ctx, strings.NewReader("1 2 3;"), 64)
	_, err := tz.next()
	assert.ErrorIs(t, err, context.Canceled)
}

package types

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesWrappedSentinel(t *testing.T) {
	err := Wrap(ErrKindFormat, "reader: cell 4: bad token", ErrFormat)
	assert.ErrorIs(t, err, ErrFormat)
	assert.NotErrorIs(t, err, ErrShortData)
	assert.NotErrorIs(t, err, ErrSelectionBounds)

	wrapped := fmt.Errorf("px: open: %w", err)
	assert.ErrorIs(t, wrapped, ErrFormat)
}

func TestErrorIsIgnoresSharedKind(t *testing.T) {
	order := Errorf(ErrKindSelection, "coords: processing order [0 0] is not a permutation of 0..1")
	assert.NotErrorIs(t, order, ErrSelectionBounds)

	consumed := Errorf(ErrKindState, "reader: stream is not seekable and was already consumed")
	assert.NotErrorIs(t, consumed, ErrClosed)

	var te *Error
	assert.True(t, errors.As(order, &te))
	assert.Equal(t, ErrKindSelection, te.Kind)
}

func TestErrorIsMatchesSentinelCopy(t *testing.T) {
	clone := *ErrClosed
	assert.ErrorIs(t, &clone, ErrClosed)
}

func TestShortDataIsDistinctFromFormat(t *testing.T) {
	assert.NotErrorIs(t, ErrShortData, ErrFormat)
	assert.NotErrorIs(t, ErrFormat, ErrShortData)
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrKindFormat, "meta: unterminated CODEPAGE value", io.EOF)
	assert.ErrorIs(t, err, io.EOF)
	assert.NotErrorIs(t, err, ErrFormat)
	assert.Equal(t, "meta: unterminated CODEPAGE value: EOF", err.Error())

	var te *Error
	assert.True(t, errors.As(fmt.Errorf("outer: %w", err), &te))
	assert.Equal(t, ErrKindFormat, te.Kind)
}

func TestNilError(t *testing.T) {
	var err *Error
	assert.Equal(t, "<nil>", err.Error())
	assert.False(t, err.Is(ErrFormat))
	assert.False(t, ErrFormat.Is(io.EOF))
}

func TestErrKindString(t *testing.T) {
	for kind, want := range map[ErrKind]string{
		ErrKindFormat:      "format",
		ErrKindSelection:   "selection",
		ErrKindNotFound:    "not found",
		ErrKindUnsupported: "unsupported",
		ErrKindState:       "state",
		ErrKindTruncated:   "truncated",
		ErrKind(99):        "unknown",
	} {
		assert.Equal(t, want, kind.String())
	}
}

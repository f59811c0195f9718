package datavalue

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pxtools/pxkit/pkg/types"
)

var sentinelCases = []struct {
	tok  string
	kind Kind
}{
	{`"-"`, Nill},
	{`"."`, Missing},
	{`".."`, CanNotRepresent},
	{`"..."`, Confidential},
	{`"...."`, NotAcquired},
	{`"....."`, NotAsked},
	{`"......"`, Empty},
}

func TestParseDecimalSentinels(t *testing.T) {
	for _, tc := range sentinelCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			v, err := ParseDecimal([]byte(tc.tok))
			require.NoError(t, err)
			assert.Equal(t, tc.kind, v.Kind)
			_, ok := v.Number()
			assert.False(t, ok, "sentinel must not carry a payload")
			assert.True(t, v.Num.IsZero())
		})
	}
}

func TestParseFloatSentinels(t *testing.T) {
	for _, tc := range sentinelCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			v, err := ParseFloat([]byte(tc.tok))
			require.NoError(t, err)
			assert.Equal(t, tc.kind, v.Kind)
			assert.Zero(t, v.Num)
		})
	}
}

func TestParseDecimalNumbers(t *testing.T) {
	tests := []struct {
		tok  string
		want string
	}{
		{"0", "0"},
		{"7", "7"},
		{"-7", "-7"},
		{"1234.56", "1234.56"},
		{"1234.56000", "1234.56"},
		{"-1234.56789", "-1234.56789"},
		{"0.001", "0.001"},
		{"000123", "123"},
		{"12345678901234567890123.5", "12345678901234567890123.5"},
	}
	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			v, err := ParseDecimal([]byte(tt.tok))
			require.NoError(t, err)
			require.Equal(t, Exists, v.Kind)
			want := decimal.RequireFromString(tt.want)
			assert.True(t, v.Num.Equal(want), "got %s want %s", v.Num, want)
		})
	}
}

func TestParseFloatNumbers(t *testing.T) {
	tests := []struct {
		tok  string
		want float64
	}{
		{"0", 0},
		{"42", 42},
		{"-1234.56789", -1234.56789},
		{"1234.56000", 1234.56},
		{"0.1", 0.1},
		{"99999999999999999999.25", 99999999999999999999.25},
	}
	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			v, err := ParseFloat([]byte(tt.tok))
			require.NoError(t, err)
			require.Equal(t, Exists, v.Kind)
			assert.Equal(t, tt.want, v.Num)
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	tests := []struct {
		tok    string
		reason Reason
	}{
		{`..`, ReasonMissingDigits},
		{`--32`, ReasonMultipleSigns},
		{`3..2`, ReasonMultipleSeparators},
		{`3rz2`, ReasonDisallowedChar},
		{``, ReasonEmpty},
		{`"..`, ReasonUnmatchedQuote},
		{`.."`, ReasonMissingDigits},
		{`12"`, ReasonUnmatchedQuote},
		{`""`, ReasonSentinelLength},
		{`"......."`, ReasonSentinelLength},
		{`"x"`, ReasonSentinelChar},
		{`"--"`, ReasonSentinelChar},
		{`3-2`, ReasonMisplacedSign},
		{`-`, ReasonMissingDigits},
		{`3.`, ReasonMissingDigits},
		{`.5`, ReasonMissingDigits},
		{`1e5`, ReasonDisallowedChar},
		{`"`, ReasonUnmatchedQuote},
	}
	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			_, err := ParseDecimal([]byte(tt.tok))
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrFormat)

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.reason, fe.Reason, fe.Error())

			_, err = ParseFloat([]byte(tt.tok))
			assert.ErrorIs(t, err, types.ErrFormat)
			assert.ErrorIs(t, Validate([]byte(tt.tok)), types.ErrFormat)
		})
	}
}

func TestUncheckedMatchesChecked(t *testing.T) {
	tokens := []string{"0", "5", "-5", "1234.56000", "-1234.56789", "0.000001", "123456789012345678901234"}
	for _, tc := range sentinelCases {
		tokens = append(tokens, tc.tok)
	}
	for _, tok := range tokens {
		t.Run(tok, func(t *testing.T) {
			dc, err := ParseDecimal([]byte(tok))
			require.NoError(t, err)
			du := ParseDecimalUnchecked([]byte(tok))
			assert.Equal(t, dc.Kind, du.Kind)
			assert.True(t, dc.Num.Equal(du.Num))

			fc, err := ParseFloat([]byte(tok))
			require.NoError(t, err)
			assert.Equal(t, fc, ParseFloatUnchecked([]byte(tok)))
		})
	}
}

func TestParseNumberUnchecked(t *testing.T) {
	m := SentinelMap{0, 1, 2, 3, 4, 5, 6}
	for i, tc := range sentinelCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			assert.Equal(t, float64(i), ParseNumberUnchecked([]byte(tc.tok), &m))
		})
	}
	assert.Equal(t, -1234.56789, ParseNumberUnchecked([]byte("-1234.56789"), &m))
	assert.Equal(t, 17.0, ParseNumberUnchecked([]byte("17"), &m))
}

func TestUncheckedMalformedSentinelDoesNotPanic(t *testing.T) {
	m := SentinelMap{0, 1, 2, 3, 4, 5, 6}
	for _, tok := range []string{`"`, `""`, `"........"`, `"-`} {
		assert.NotPanics(t, func() {
			ParseNumberUnchecked([]byte(tok), &m)
			ParseFloatUnchecked([]byte(tok))
			ParseDecimalUnchecked([]byte(tok))
		}, tok)
		_, err := ParseFloat([]byte(tok))
		assert.Error(t, err, tok)
	}
}

func TestNaNSentinels(t *testing.T) {
	m := NaNSentinels()
	got := ParseNumberUnchecked([]byte(`"..."`), &m)
	assert.True(t, math.IsNaN(got))
}

func TestValueString(t *testing.T) {
	d, err := ParseDecimal([]byte("-12.50"))
	require.NoError(t, err)
	assert.Equal(t, "-12.5", d.String())

	f, err := ParseFloat([]byte("3.25"))
	require.NoError(t, err)
	assert.Equal(t, "3.25", f.String())

	for _, tc := range sentinelCases {
		v, err := ParseFloat([]byte(tc.tok))
		require.NoError(t, err)
		assert.Equal(t, tc.tok, v.String())
	}
}

func TestKind(t *testing.T) {
	assert.False(t, Exists.IsSentinel())
	assert.Equal(t, "", Exists.Token())
	for _, tc := range sentinelCases {
		assert.True(t, tc.kind.IsSentinel())
		assert.Equal(t, tc.tok, tc.kind.Token())
	}
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

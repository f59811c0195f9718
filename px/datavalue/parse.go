package datavalue

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// maxExactMantissa bounds the mantissa for which mant*10+9 still fits in int64,
// so decimal.New never sees a truncated value.
const maxExactMantissa = (math.MaxInt64 - 9) / 10

// float64 represents every integer up to 2^53 exactly, and 10^22 is the largest
// exact power of ten, so mant/10^frac is a single correctly rounded division.
const (
	maxExactFloatMantissa = 1 << 53
	maxExactFloatPow10    = 22
)

var pow10 = [maxExactFloatPow10 + 1]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10,
	1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19, 1e20, 1e21, 1e22,
}

// number is the accumulated form of a numeric token shared by both payload paths.
type number struct {
	neg      bool
	mant     uint64
	frac     int  // digits after the decimal separator
	overflow bool // mant stopped accumulating; reparse the token text
}

func (n number) decimal(tok []byte) decimal.Decimal {
	if n.overflow {
		d, err := decimal.NewFromString(string(tok))
		if err == nil {
			return d
		}
	}
	v := int64(n.mant)
	if n.neg {
		v = -v
	}
	return decimal.New(v, int32(-n.frac))
}

func (n number) float(tok []byte) float64 {
	if n.overflow || n.mant > maxExactFloatMantissa || n.frac > maxExactFloatPow10 {
		f, err := strconv.ParseFloat(string(tok), 64)
		if err == nil {
			return f
		}
	}
	f := float64(n.mant) / pow10[min(n.frac, maxExactFloatPow10)]
	if n.neg {
		f = -f
	}
	return f
}

// ParseDecimal decodes tok with full grammar validation into an exact decimal value.
func ParseDecimal(tok []byte) (Decimal, error) {
	k, n, err := classify(tok)
	if err != nil {
		return Decimal{}, err
	}
	if k != Exists {
		return Sentinel[decimal.Decimal](k), nil
	}
	return Present(n.decimal(tok)), nil
}

// ParseFloat decodes tok with full grammar validation into a float64 value.
func ParseFloat(tok []byte) (Float, error) {
	k, n, err := classify(tok)
	if err != nil {
		return Float{}, err
	}
	if k != Exists {
		return Sentinel[float64](k), nil
	}
	return Present(n.float(tok)), nil
}

// Validate checks tok against the grammar without building a value.
func Validate(tok []byte) error {
	_, _, err := classify(tok)
	return err
}

// classify scans tok once, rejecting anything outside
//
//	[-]digit+[.digit+] | "-" | "." .. "......"
func classify(tok []byte) (Kind, number, error) {
	if len(tok) == 0 {
		return 0, number{}, formatErr(tok, ReasonEmpty, 0)
	}
	if tok[0] == '"' {
		k, err := classifySentinel(tok)
		return k, number{}, err
	}

	var (
		n         number
		seenDot   bool
		intDigits int
		fracDigit int
	)
	for i, c := range tok {
		switch {
		case c >= '0' && c <= '9':
			if seenDot {
				fracDigit++
			} else {
				intDigits++
			}
			n.push(c)
		case c == '-':
			if n.neg {
				return 0, number{}, formatErr(tok, ReasonMultipleSigns, i)
			}
			if i != 0 {
				return 0, number{}, formatErr(tok, ReasonMisplacedSign, i)
			}
			n.neg = true
		case c == '.':
			if seenDot {
				return 0, number{}, formatErr(tok, ReasonMultipleSeparators, i)
			}
			if intDigits == 0 {
				return 0, number{}, formatErr(tok, ReasonMissingDigits, i)
			}
			seenDot = true
		case c == '"':
			return 0, number{}, formatErr(tok, ReasonUnmatchedQuote, i)
		default:
			return 0, number{}, formatErr(tok, ReasonDisallowedChar, i)
		}
	}
	if intDigits == 0 || (seenDot && fracDigit == 0) {
		return 0, number{}, formatErr(tok, ReasonMissingDigits, len(tok))
	}
	n.frac = fracDigit
	return Exists, n, nil
}

func classifySentinel(tok []byte) (Kind, error) {
	last := len(tok) - 1
	if last == 0 || tok[last] != '"' {
		return 0, formatErr(tok, ReasonUnmatchedQuote, 0)
	}
	inner := tok[1:last]
	if len(inner) == 1 && inner[0] == '-' {
		return Nill, nil
	}
	for i, c := range inner {
		switch c {
		case '.':
		case '"':
			return 0, formatErr(tok, ReasonUnmatchedQuote, i+1)
		default:
			return 0, formatErr(tok, ReasonSentinelChar, i+1)
		}
	}
	if len(inner) == 0 || len(inner) > MaxSentinelDots {
		return 0, formatErr(tok, ReasonSentinelLength, 1)
	}
	return kindForDots(len(inner)), nil
}

// push appends one decimal digit to the mantissa. Leading zeros never overflow.
func (n *number) push(c byte) {
	if n.overflow {
		return
	}
	if n.mant > maxExactMantissa {
		n.overflow = true
		return
	}
	n.mant = n.mant*10 + uint64(c-'0')
}

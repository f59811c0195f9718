package datavalue

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Kind tags a decoded data cell. Exists is the only kind that carries a number.
type Kind uint8

const (
	Exists          Kind = iota // a present numeric value
	Nill                        // quoted "-"
	Missing                     // quoted "."
	CanNotRepresent             // quoted ".."
	Confidential                // quoted "..."
	NotAcquired                 // quoted "...."
	NotAsked                    // quoted "....."
	Empty                       // quoted "......"
)

// MaxSentinelDots is the longest run of dots a sentinel token may carry.
const MaxSentinelDots = 6

var kindNames = [...]string{
	Exists:          "Exists",
	Nill:            "Nill",
	Missing:         "Missing",
	CanNotRepresent: "CanNotRepresent",
	Confidential:    "Confidential",
	NotAcquired:     "NotAcquired",
	NotAsked:        "NotAsked",
	Empty:           "Empty",
}

var kindTokens = [...]string{
	Nill:            `"-"`,
	Missing:         `"."`,
	CanNotRepresent: `".."`,
	Confidential:    `"..."`,
	NotAcquired:     `"...."`,
	NotAsked:        `"....."`,
	Empty:           `"......"`,
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsSentinel reports whether k is one of the non-numeric data states.
func (k Kind) IsSentinel() bool { return k >= Nill && k <= Empty }

// Token returns the quoted PX text for a sentinel kind, or "" for Exists.
func (k Kind) Token() string {
	if !k.IsSentinel() {
		return ""
	}
	return kindTokens[k]
}

// kindForDots maps a dot count in 1..MaxSentinelDots to its sentinel kind.
func kindForDots(n int) Kind { return Missing + Kind(n-1) }

// Number is the set of numeric payload representations a caller may choose per read.
type Number interface {
	decimal.Decimal | float64
}

// Value is one decoded data cell. Num is meaningful only when Kind == Exists;
// for sentinel kinds it is the zero value of T.
type Value[T Number] struct {
	Kind Kind
	Num  T
}

type (
	// Decimal is a cell decoded with exact base-10 arithmetic.
	Decimal = Value[decimal.Decimal]
	// Float is a cell decoded into binary floating point.
	Float = Value[float64]
)

// Number returns the payload and true when the cell holds a present value.
func (v Value[T]) Number() (T, bool) {
	if v.Kind != Exists {
		var zero T
		return zero, false
	}
	return v.Num, true
}

// String renders the cell as PX token text: the number for Exists, the quoted
// sentinel otherwise.
func (v Value[T]) String() string {
	if v.Kind != Exists {
		return v.Kind.Token()
	}
	switch n := any(v.Num).(type) {
	case decimal.Decimal:
		return n.String()
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

// Sentinel builds a payload-free value of kind k.
func Sentinel[T Number](k Kind) Value[T] { return Value[T]{Kind: k} }

// Present builds an Exists value carrying n.
func Present[T Number](n T) Value[T] { return Value[T]{Kind: Exists, Num: n} }

// SentinelMap supplies the plain numbers substituted for sentinel cells in
// unchecked numeric mode, indexed
// [Nill, Missing, CanNotRepresent, Confidential, NotAcquired, NotAsked, Empty].
type SentinelMap [7]float64

// Lookup returns the number mapped to sentinel kind k. k must be a sentinel kind.
func (m *SentinelMap) Lookup(k Kind) float64 { return m[k-Nill] }

// NaNSentinels maps every sentinel to NaN.
func NaNSentinels() SentinelMap {
	nan := math.NaN()
	return SentinelMap{nan, nan, nan, nan, nan, nan, nan}
}

// Package datavalue decodes single PX data-section tokens into typed values.
//
// # Token Grammar
//
// A token is one value between delimiters, already trimmed:
//
//	-1234.56      present number: [-]digit+[.digit+]
//	"-"           Nill
//	"."           Missing
//	".."          CanNotRepresent
//	"..."         Confidential
//	"...."        NotAcquired
//	"....."       NotAsked
//	"......"      Empty
//
// # Checked and Unchecked Decoding
//
// ParseDecimal and ParseFloat validate every byte and return a *FormatError on
// a malformed token. ParseDecimalUnchecked, ParseFloatUnchecked and
// ParseNumberUnchecked skip validation entirely; they are meant for hot read
// loops over data that was validated once upstream. The two modes are separate
// functions rather than a flag so call sites show which contract they rely on.
//
// # Payloads
//
// Value[T] is a tagged cell. Only Kind == Exists carries a number:
//
//	v, err := datavalue.ParseDecimal([]byte("1234.56000"))
//	if n, ok := v.Number(); ok {
//	    fmt.Println(n.Equal(decimal.RequireFromString("1234.56"))) // true
//	}
//
// Decimal payloads are exact (github.com/shopspring/decimal). Float payloads are
// float64 and may differ from the decimal result in the last binary digit.
//
// In unchecked numeric mode a SentinelMap substitutes a plain number for each
// sentinel so downstream code never branches on the cell kind.
//
// # Thread Safety
//
// All functions are pure and safe for concurrent use.
package datavalue

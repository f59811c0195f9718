package datavalue

import (
	"fmt"

	"github.com/pxtools/pxkit/pkg/types"
)

// Reason identifies which grammar rule a rejected token broke.
type Reason uint8

const (
	ReasonEmpty Reason = iota + 1
	ReasonUnmatchedQuote
	ReasonMultipleSigns
	ReasonMisplacedSign
	ReasonMultipleSeparators
	ReasonDisallowedChar
	ReasonMissingDigits
	ReasonSentinelLength
	ReasonSentinelChar
)

var reasonText = [...]string{
	ReasonEmpty:              "empty token",
	ReasonUnmatchedQuote:     "unmatched quote",
	ReasonMultipleSigns:      "more than one '-' sign",
	ReasonMisplacedSign:      "'-' sign not leading",
	ReasonMultipleSeparators: "more than one decimal separator",
	ReasonDisallowedChar:     "disallowed character",
	ReasonMissingDigits:      "missing digits",
	ReasonSentinelLength:     "sentinel dot count outside 1..6",
	ReasonSentinelChar:       "sentinel must be '-' or dots",
}

func (r Reason) String() string {
	if int(r) < len(reasonText) && reasonText[r] != "" {
		return reasonText[r]
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// FormatError reports a data token that does not match the numeric/sentinel grammar.
// It matches types.ErrFormat under errors.Is.
type FormatError struct {
	Token  string
	Reason Reason
	Pos    int // byte index in Token where the violation was detected
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("datavalue: %s at byte %d in %q", e.Reason, e.Pos, e.Token)
}

// Unwrap ties FormatError into the shared taxonomy.
func (e *FormatError) Unwrap() error { return types.ErrFormat }

func formatErr(tok []byte, r Reason, pos int) error {
	return &FormatError{Token: string(tok), Reason: r, Pos: pos}
}

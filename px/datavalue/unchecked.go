package datavalue

import "github.com/shopspring/decimal"

// The Unchecked decoders trust that tok already passed Validate (for example
// during an earlier full-file validation pass) and perform no grammar checks.
// Their output on a token that would fail Validate is unspecified; callers must
// not use them on unvalidated input.

// ParseDecimalUnchecked decodes a pre-validated token into an exact decimal value.
func ParseDecimalUnchecked(tok []byte) Decimal {
	if tok[0] == '"' {
		return Sentinel[decimal.Decimal](sentinelUnchecked(tok))
	}
	n := accumulate(tok)
	return Present(n.decimal(tok))
}

// ParseFloatUnchecked decodes a pre-validated token into a float64 value.
func ParseFloatUnchecked(tok []byte) Float {
	if tok[0] == '"' {
		return Sentinel[float64](sentinelUnchecked(tok))
	}
	n := accumulate(tok)
	return Present(n.float(tok))
}

// ParseNumberUnchecked decodes a pre-validated token into a plain number,
// substituting m's entry for sentinel tokens.
func ParseNumberUnchecked(tok []byte, m *SentinelMap) float64 {
	if tok[0] == '"' {
		return m.Lookup(sentinelUnchecked(tok))
	}
	n := accumulate(tok)
	return n.float(tok)
}

// sentinelUnchecked clamps the dot count so a malformed token still maps to
// some sentinel kind instead of indexing out of range.
func sentinelUnchecked(tok []byte) Kind {
	if len(tok) > 1 && tok[1] == '-' {
		return Nill
	}
	return kindForDots(min(max(len(tok)-2, 1), MaxSentinelDots))
}

func accumulate(tok []byte) number {
	var n number
	i := 0
	if tok[0] == '-' {
		n.neg = true
		i = 1
	}
	for ; i < len(tok); i++ {
		c := tok[i]
		if c == '.' {
			n.frac = len(tok) - i - 1
			continue
		}
		n.push(c)
	}
	return n
}

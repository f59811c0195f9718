package meta

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pxtools/pxkit/pkg/types"
)

// KeywordTimeval declares a time dimension, either listing its periods or
// giving a range to expand.
const KeywordTimeval = "TIMEVAL"

// periodsPerYear maps a TLIST time unit to the number of periods in a year.
// W1 is absent; week numbering does not expand arithmetically.
var periodsPerYear = map[string]int{"A1": 1, "H1": 2, "Q1": 4, "M1": 12}

// TimevalValues returns the periods of a TIMEVAL entry. Both the list form
//
//	TLIST(A1),"2001","2002","2003"
//
// and the range form
//
//	TLIST(Q1, "20011"-"20024")
//
// are accepted.
func TimevalValues(e Entry) ([]string, error) {
	v := strings.TrimSpace(e.Value)
	const prefix = "TLIST("
	if !strings.HasPrefix(v, prefix) {
		return nil, timevalErr("missing TLIST in %q", v)
	}
	inner, rest, ok := strings.Cut(v[len(prefix):], ")")
	if !ok {
		return nil, timevalErr("unterminated TLIST in %q", v)
	}
	unit, rng, ranged := strings.Cut(inner, ",")
	unit = strings.TrimSpace(unit)
	if ranged {
		return expandTimeRange(unit, strings.TrimSpace(rng))
	}
	rest = strings.TrimLeft(rest, ", \t\r\n")
	if rest == "" {
		return nil, timevalErr("TLIST(%s) lists no periods", unit)
	}
	return Entry{Value: rest}.Values(), nil
}

// expandTimeRange expands `"from"-"to"` in the given unit. Periods are
// written as the year followed by the period number: one digit for halves and
// quarters, two for months.
func expandTimeRange(unit, rng string) ([]string, error) {
	per, ok := periodsPerYear[unit]
	if !ok {
		return nil, types.Wrap(types.ErrKindUnsupported,
			fmt.Sprintf("meta: TIMEVAL range in unit %q", unit), types.ErrUnsupported)
	}
	from, to, ok := strings.Cut(rng, "-")
	if !ok {
		return nil, timevalErr("bad range %q", rng)
	}
	lo, err := parsePeriod(strings.Trim(strings.TrimSpace(from), `"`), per)
	if err != nil {
		return nil, err
	}
	hi, err := parsePeriod(strings.Trim(strings.TrimSpace(to), `"`), per)
	if err != nil {
		return nil, err
	}
	if hi < lo {
		return nil, timevalErr("range %q runs backwards", rng)
	}
	out := make([]string, 0, hi-lo+1)
	for p := lo; p <= hi; p++ {
		year, n := p/per, p%per+1
		switch per {
		case 1:
			out = append(out, strconv.Itoa(year))
		case 12:
			out = append(out, fmt.Sprintf("%d%02d", year, n))
		default:
			out = append(out, fmt.Sprintf("%d%d", year, n))
		}
	}
	return out, nil
}

// parsePeriod converts a period label to a running index year*per+(n-1).
func parsePeriod(s string, per int) (int, error) {
	digits := 0
	switch {
	case per == 12:
		digits = 2
	case per > 1:
		digits = 1
	}
	if len(s) <= digits {
		return 0, timevalErr("bad period %q", s)
	}
	year, err := strconv.Atoi(s[:len(s)-digits])
	if err != nil || year < 0 {
		return 0, timevalErr("bad period %q", s)
	}
	n := 1
	if digits > 0 {
		n, err = strconv.Atoi(s[len(s)-digits:])
		if err != nil || n < 1 || n > per {
			return 0, timevalErr("bad period %q", s)
		}
	}
	return year*per + n - 1, nil
}

func timevalErr(format string, args ...any) error {
	return types.Wrap(types.ErrKindFormat, "meta: TIMEVAL: "+fmt.Sprintf(format, args...), types.ErrFormat)
}

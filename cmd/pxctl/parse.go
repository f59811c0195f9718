package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pxtools/pxkit/px/coords"
)

const (
	modeDecimal = "decimal"
	modeFloat   = "float"
	modeNumeric = "numeric"
)

func parseMode(s string) (string, error) {
	switch strings.ToLower(s) {
	case modeDecimal, "":
		return modeDecimal, nil
	case modeFloat:
		return modeFloat, nil
	case modeNumeric:
		return modeNumeric, nil
	default:
		return "", fmt.Errorf("unknown mode %q (must be decimal, float or numeric)", s)
	}
}

// parseIndexList parses a comma separated list of indices and half-open
// ranges, e.g. "0,3,5:8". "*" or "all" selects every index below size.
func parseIndexList(s string, size int) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "*" || strings.EqualFold(s, "all") {
		return coords.Range(0, size), nil
	}
	if s == "" {
		return []int{}, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if from, to, ok := strings.Cut(part, ":"); ok {
			lo, err := parseIndex(from, 0)
			if err != nil {
				return nil, err
			}
			hi, err := parseIndex(to, size)
			if err != nil {
				return nil, err
			}
			out = append(out, coords.Range(lo, hi)...)
			continue
		}
		i, err := parseIndex(part, -1)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, nil
}

// parseIndex parses a non-negative index; an empty string yields def when
// def is non-negative.
func parseIndex(s string, def int) (int, error) {
	if s == "" && def >= 0 {
		return def, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return i, nil
}

// parseSelection turns one --sel value per dimension into a Selection.
// Missing trailing dimensions select everything.
func parseSelection(vals []string, dims []int) (coords.Selection, error) {
	if len(vals) > len(dims) {
		return nil, fmt.Errorf("got %d --sel values for %d dimensions", len(vals), len(dims))
	}
	sel := make(coords.Selection, len(dims))
	for d, size := range dims {
		arg := "*"
		if d < len(vals) {
			arg = vals[d]
		}
		idx, err := parseIndexList(arg, size)
		if err != nil {
			return nil, fmt.Errorf("dimension %d: %w", d, err)
		}
		sel[d] = idx
	}
	return sel, nil
}

// parseOrder parses a processing order such as "1,0,2". Empty means storage order.
func parseOrder(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := parseIndex(strings.TrimSpace(p), -1)
		if err != nil {
			return nil, fmt.Errorf("order: %w", err)
		}
		out[i] = v
	}
	return out, nil
}

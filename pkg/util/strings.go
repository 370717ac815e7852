package util

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// FormatUSD renders a price with a dollar sign and thousands separators.
// Prices of one dollar and above keep two decimals; sub-dollar prices keep
// up to six significant decimals with trailing zeros removed.
func FormatUSD(d decimal.Decimal) string {
	neg := d.IsNegative()
	d = d.Abs()

	var s string
	if d.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		s = d.StringFixed(2)
	} else {
		s = strings.TrimRight(d.StringFixed(6), "0")
		s = strings.TrimSuffix(s, ".")
		if s == "" || s == "0" {
			s = "0.00"
		}
	}

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// ParseUSD extracts the first number out of text like "$107,607.12 → live". It
// returns false when no number is present.
func ParseUSD(s string) (decimal.Decimal, bool) {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			start = i
			break
		}
	}
	if start < 0 {
		return decimal.Zero, false
	}

	var b strings.Builder
	seenDot := false
scan:
	for _, r := range s[start:] {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ',':
		case r == '.' && !seenDot:
			seenDot = true
			b.WriteRune(r)
		default:
			break scan
		}
	}
	num := strings.TrimSuffix(b.String(), ".")
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

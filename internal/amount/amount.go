// Package amount converts between literal money strings and signed integer
// cents. No engine value is ever stored as a float.
package amount

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseCents converts a literal amount to signed integer cents. Accepted
// forms: "1500", "1500.00", "1,500.00", "$1,500.00", "(500)", "-500",
// "500-". Parentheses, a leading minus, or a trailing minus denote a
// negative (credit-direction) amount. Digits past two decimal places are
// dropped. An empty string parses to zero.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if strings.HasSuffix(s, "-") {
		neg = true
		s = s[:len(s)-1]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	cents := d.Truncate(2).Mul(hundred).IntPart()
	if neg {
		cents = -cents
	}
	return cents, nil
}

// Format renders cents for display: zero is a dash, negative amounts are
// parenthesized credits. This is a presentation rule only; stored signs
// never change.
func Format(cents int64) string {
	if cents == 0 {
		return "—"
	}
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := group(cents/100) + fmt.Sprintf(".%02d", cents%100)
	if neg {
		return "(" + s + ")"
	}
	return s
}

// FormatPlain renders cents with a minus sign instead of parentheses, and
// "0.00" for zero. Used for machine-readable exports.
func FormatPlain(cents int64) string {
	if cents == 0 {
		return "0.00"
	}
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := group(cents/100) + fmt.Sprintf(".%02d", cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// group inserts thousands separators into a non-negative integer.
func group(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}

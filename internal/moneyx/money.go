// Package moneyx parses and formats monetary amounts at the dialogue
// boundary. Parsing goes through shopspring/decimal so that input like
// "1e309" or "NaN" is rejected before it reaches the store.
package moneyx

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/akarpov/savingsbot/internal/common"
)

// Parse converts user input into a positive amount. Thousands separators
// are tolerated ("1,250.50").
func Parse(s string) (float64, error) {
	d, err := parseDecimal(s)
	if err != nil {
		return 0, err
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("%w: amount must be positive", common.ErrInvalidAmount)
	}
	f, _ := d.Float64()
	return f, nil
}

// ParseSigned converts input like "+50", "-20" or "50" into a signed,
// non-zero delta. A missing sign means positive.
func ParseSigned(s string) (float64, error) {
	d, err := parseDecimal(s)
	if err != nil {
		return 0, err
	}
	if d.IsZero() {
		return 0, fmt.Errorf("%w: delta must be non-zero", common.ErrInvalidAmount)
	}
	f, _ := d.Float64()
	return f, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a number", common.ErrInvalidAmount, s)
	}
	return d, nil
}

// Format renders an amount with two decimals and thousands separators,
// e.g. 1234567.8 -> "1,234,567.80".
func Format(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

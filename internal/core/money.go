// Package core provides amount parsing and formatting utilities.
//
// Amounts are kept as decimals end to end so that what the user typed is what
// the backend receives, without binary float rounding.
package core

import (
	"errors"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount converts a user-entered decimal string to a non-negative decimal.
//
// Both dot (12.34) and comma (12,34) separators are accepted. Blank input is
// zero. Signs are rejected: "-1" yields ErrNegativeAmount and "+1" ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("1200")   -> 1200, nil
//	ParseAmount("12,50")  -> 12.5, nil
//	ParseAmount("")       -> 0, nil
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrNegativeAmount
	}
	if strings.HasPrefix(s, "+") || strings.Count(s, ".") > 1 {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return d, nil
}

// ParseFormAmount is the lenient form of ParseAmount used for row inputs:
// anything that is not a valid non-negative number becomes zero.
func ParseFormAmount(s string) decimal.Decimal {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatAmount renders an amount in its shortest decimal form ("1200", "12.5").
func FormatAmount(d decimal.Decimal) string {
	return d.String()
}

// FormatTotal renders d with thousands separators and two decimals, followed
// by the currency code when one is known: "1,234.50 CHF".
func FormatTotal(d decimal.Decimal, currency string) string {
	d = d.Round(2)
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")
	n, _ := new(big.Int).SetString(whole, 10)

	s := humanize.BigComma(n) + "." + frac
	if d.IsNegative() {
		s = "-" + s
	}
	return strings.TrimSpace(s + " " + strings.TrimSpace(currency))
}

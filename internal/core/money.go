// Package core holds the deal record and the pure computations the page is
// rendered from.
//
// This file contains amount parsing and formatting.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts user input into a signed decimal amount.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted and a
// leading sign is kept, so "-200" is a liability. Blank input returns
// ErrEmptyAmount so callers can tell "nothing entered" from "garbage entered".
//
// Examples:
//
//	ParseAmount("1000")   -> 1000, nil
//	ParseAmount("-12,50") -> -12.5, nil
//	ParseAmount("abc")    -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.ContainsAny(s, "eE") {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatAmount renders an amount with two decimals, e.g. "-200.00".
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

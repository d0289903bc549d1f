// Package core holds the domain value types shared by the statement
// pipeline: transactions, categories, verdicts, and amount parsing.
//
// This file contains functions for parsing monetary amounts as they are
// printed on a statement and converting between decimal and cents
// representations.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a statement amount string to an exact decimal value.
//
// It accepts the statement locale: an optional leading dollar sign, comma
// thousands separators, and exactly two decimal digits. Only positive
// amounts are accepted; the extractor never emits credits or zero lines.
//
// Examples:
//
//	ParseAmount("12.34")     -> 12.34, nil
//	ParseAmount("$1,234.56") -> 1234.56, nil
//	ParseAmount("-5.00")     -> error (credits are not purchases)
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", "")

	parts := strings.Split(s, ".")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return decimal.Zero, ErrInvalidAmount
	}
	for _, part := range parts {
		if part == "" {
			return decimal.Zero, ErrInvalidAmount
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return decimal.Zero, ErrInvalidAmount
			}
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Cents converts a two-decimal amount to integer cents for storage.
func Cents(d decimal.Decimal) int64 {
	return d.Shift(2).IntPart()
}

// FromCents converts stored integer cents back to an exact decimal amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatAmount renders an amount with two decimal places for display and
// spreadsheet rows.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

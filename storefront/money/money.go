// Package money formats and parses cent amounts without floating point.
package money

import (
	"errors"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Format renders cents as dollars, e.g. 2600 -> "$26.00".
func Format(cents *big.Int) string {
	return "$" + decimal.NewFromBigInt(cents, -2).StringFixed(2)
}

// FormatCents is Format for a plain price.
func FormatCents(cents uint64) string {
	return Format(new(big.Int).SetUint64(cents))
}

// ParseCents converts a dollar amount such as "12.5" or "$3.999" to cents,
// rounding half away from zero to a whole cent.
func ParseCents(s string) (uint64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	cents := d.Mul(hundred).Round(0)
	if cents.Sign() < 0 {
		return 0, errors.New("amount is negative")
	}
	if !cents.BigInt().IsUint64() {
		return 0, errors.New("amount is too large")
	}
	return cents.BigInt().Uint64(), nil
}

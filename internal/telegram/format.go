package telegram

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// minorUnitsPerPeso converts between the ledger's integer minor units
// and the displayed currency.
var minorUnitsPerPeso = decimal.NewFromInt(100)

// FormatMoney renders minor units as a currency string, e.g. 12345 ->
// "$123.45".
func FormatMoney(minor int64) string {
	return "$" + decimal.NewFromInt(minor).Div(minorUnitsPerPeso).StringFixed(2)
}

// ParseMoney parses a human amount like "10.50" into minor units.
func ParseMoney(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	minor := d.Mul(minorUnitsPerPeso)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("amount %q has sub-cent precision", s)
	}
	if minor.IsNegative() {
		return 0, fmt.Errorf("amount %q is negative", s)
	}
	return minor.IntPart(), nil
}

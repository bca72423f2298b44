// Package format canonicalizes optical prescription values and currency
// amounts for display and storage.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var inr = message.NewPrinter(language.MustParse("en-IN"))

// Placeholder is rendered for an absent currency amount. An absent amount is
// never shown as "0": zero is a real value, absence is not.
const Placeholder = "-"

// OpticalValue canonicalizes a free-text SPH/CYL/ADD field. Optical power
// notation is directional, so non-negative values are rendered with an
// explicit leading "+" unless the original text already carried a "-".
// Empty and lone-minus inputs are edit-in-progress states and pass through
// unchanged, as does anything that fails to parse.
func OpticalValue(raw string) string {
	if raw == "" || raw == "-" {
		return raw
	}
	val, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}
	fixed := val.StringFixed(2)
	if !strings.Contains(raw, "-") && !strings.HasPrefix(fixed, "-") {
		return "+" + fixed
	}
	return fixed
}

// Axis canonicalizes an axis field to an unsigned integer string with no
// sign and no decimals. Unparseable input passes through unchanged.
func Axis(raw string) string {
	if raw == "" || raw == "-" {
		return raw
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return raw
	}
	return strconv.FormatInt(int64(math.Abs(val)), 10)
}

// Currency renders an amount with two fraction digits and Indian digit
// grouping.
func Currency(amount decimal.Decimal) string {
	val, _ := amount.Round(2).Float64()
	return inr.Sprint(number.Decimal(val,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// CurrencyPtr renders an optional amount; nil renders the placeholder.
func CurrencyPtr(amount *decimal.Decimal) string {
	if amount == nil {
		return Placeholder
	}
	return Currency(*amount)
}

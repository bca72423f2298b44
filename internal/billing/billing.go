// Package billing holds the pure invoice arithmetic: line totals, discount,
// tax and the grand total. All computation is decimal so long item lists do
// not accumulate cent-level drift.
package billing

import (
	"github.com/shopspring/decimal"

	"lenspos/m/domain"
)

var hundred = decimal.NewFromInt(100)

// Totals is the derived monetary state of an invoice or purchase, rounded to
// two places and persisted as-is at save time.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
}

// LineTotal computes price × qty with an optional per-line discount applied
// before the line contributes to the subtotal (purchase flow).
func LineTotal(unitPrice decimal.Decimal, qty int64, discountType string, discountValue decimal.Decimal) decimal.Decimal {
	total := unitPrice.Mul(decimal.NewFromInt(qty))
	switch discountType {
	case domain.DiscountPercentage:
		total = total.Sub(total.Mul(discountValue).Div(hundred))
	case domain.DiscountAmount:
		total = total.Sub(discountValue)
	}
	return total.Round(2)
}

// Subtotal sums line totals, skipping lines with a zero or negative total.
// Blank rows on the form come through as zero totals and must not poison the
// sum; the skip is deliberate policy, not an error.
func Subtotal(lineTotals []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range lineTotals {
		if t.IsPositive() {
			sum = sum.Add(t)
		}
	}
	return sum.Round(2)
}

// DiscountAmount resolves the header discount configuration against a
// subtotal. Negative values clamp to zero. A discount larger than the
// subtotal is accepted unchanged; the store has always allowed it and
// historical records depend on that.
func DiscountAmount(subtotal decimal.Decimal, discountType string, value decimal.Decimal) decimal.Decimal {
	if value.IsNegative() {
		return decimal.Zero
	}
	if discountType == domain.DiscountPercentage {
		return subtotal.Mul(value).Div(hundred).Round(2)
	}
	return value.Round(2)
}

// TaxAmount applies a tax option's rate to the taxable amount. Split options
// are still one undivided amount here; the CGST/SGST halving happens only in
// period reporting.
func TaxAmount(taxable decimal.Decimal, opt domain.TaxOption) decimal.Decimal {
	return taxable.Mul(opt.Rate).Div(hundred).Round(2)
}

// Compute derives the full monetary state from line totals, the header
// discount, a tax option and freight.
func Compute(lineTotals []decimal.Decimal, discountType string, discountValue decimal.Decimal, opt domain.TaxOption, freight decimal.Decimal) Totals {
	subtotal := Subtotal(lineTotals)
	discount := DiscountAmount(subtotal, discountType, discountValue)
	tax := TaxAmount(subtotal.Sub(discount), opt)
	total := subtotal.Sub(discount).Add(tax).Add(freight).Round(2)
	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		Total:          total,
	}
}

// BalanceDue is the display-side balance, clamped at zero. The persisted
// balance_due column stores the plain subtraction instead; the two sites are
// intentionally distinct.
func BalanceDue(total, paid decimal.Decimal) decimal.Decimal {
	due := total.Sub(paid)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due.Round(2)
}

// PaymentStatus classifies an invoice by how much of the total was paid.
func PaymentStatus(total, paid decimal.Decimal) string {
	switch {
	case !paid.IsPositive():
		return domain.PaymentUnpaid
	case paid.GreaterThanOrEqual(total):
		return domain.PaymentPaid
	default:
		return domain.PaymentPartial
	}
}

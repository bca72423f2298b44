package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"lenspos/m/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, "1000.00", LineTotal(dec("500"), 2, "", decimal.Zero).StringFixed(2))
	assert.Equal(t, "900.00", LineTotal(dec("500"), 2, domain.DiscountPercentage, dec("10")).StringFixed(2))
	assert.Equal(t, "950.00", LineTotal(dec("500"), 2, domain.DiscountAmount, dec("50")).StringFixed(2))
}

func TestSubtotalSkipsNonPositiveLines(t *testing.T) {
	totals := []decimal.Decimal{dec("200"), decimal.Zero, dec("-5")}
	assert.Equal(t, "200.00", Subtotal(totals).StringFixed(2))
}

func TestSubtotalOrderIndependent(t *testing.T) {
	a := []decimal.Decimal{dec("10.10"), dec("20.20"), dec("30.30")}
	b := []decimal.Decimal{dec("30.30"), dec("10.10"), dec("20.20")}
	assert.True(t, Subtotal(a).Equal(Subtotal(b)))
}

func TestSubtotalNoDrift(t *testing.T) {
	// 1000 lines of 0.10 must sum to exactly 100.00, not 99.999…
	totals := make([]decimal.Decimal, 1000)
	for i := range totals {
		totals[i] = dec("0.10")
	}
	assert.Equal(t, "100.00", Subtotal(totals).StringFixed(2))
}

func TestDiscountAmount(t *testing.T) {
	assert.Equal(t, "100.00", DiscountAmount(dec("1000"), domain.DiscountPercentage, dec("10")).StringFixed(2))
	assert.Equal(t, "75.00", DiscountAmount(dec("1000"), domain.DiscountAmount, dec("75")).StringFixed(2))

	// Both zero variants are identity.
	assert.True(t, DiscountAmount(dec("1000"), domain.DiscountPercentage, decimal.Zero).IsZero())
	assert.True(t, DiscountAmount(dec("1000"), domain.DiscountAmount, decimal.Zero).IsZero())

	// Negative clamps to zero; exceeding the subtotal does not.
	assert.True(t, DiscountAmount(dec("1000"), domain.DiscountAmount, dec("-5")).IsZero())
	assert.Equal(t, "1500.00", DiscountAmount(dec("1000"), domain.DiscountAmount, dec("1500")).StringFixed(2))
}

func TestTaxAmountUndividedForSplitOptions(t *testing.T) {
	opt, ok := domain.TaxOptionByID("CGST_SGST_12")
	assert.True(t, ok)
	assert.True(t, opt.Split)
	assert.Equal(t, "108.00", TaxAmount(dec("900"), opt).StringFixed(2))
}

func TestComputeEndToEnd(t *testing.T) {
	opt, _ := domain.TaxOptionByID("CGST_SGST_12")
	totals := Compute(
		[]decimal.Decimal{dec("1000")},
		domain.DiscountPercentage, dec("10"),
		opt, dec("50"),
	)
	assert.Equal(t, "1000.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "100.00", totals.DiscountAmount.StringFixed(2))
	assert.Equal(t, "108.00", totals.TaxAmount.StringFixed(2))
	assert.Equal(t, "1058.00", totals.Total.StringFixed(2))
}

func TestComputeInvariantHolds(t *testing.T) {
	optIDs := []string{"TAX_FREE", "CGST_SGST_5", "CGST_SGST_18", "IGST_12", "IGST_28"}
	discounts := []struct {
		typ   string
		value string
	}{
		{domain.DiscountPercentage, "0"},
		{domain.DiscountPercentage, "12.5"},
		{domain.DiscountAmount, "0"},
		{domain.DiscountAmount, "33.33"},
	}
	lines := []decimal.Decimal{dec("199.99"), dec("0.01"), dec("450")}
	freight := dec("25")

	for _, id := range optIDs {
		opt, ok := domain.TaxOptionByID(id)
		assert.True(t, ok, id)
		for _, d := range discounts {
			totals := Compute(lines, d.typ, dec(d.value), opt, freight)
			want := totals.Subtotal.Sub(totals.DiscountAmount).Add(totals.TaxAmount).Add(freight).Round(2)
			assert.True(t, totals.Total.Equal(want),
				"%s %s %s: total %s != %s", id, d.typ, d.value, totals.Total, want)
		}
	}
}

func TestBalanceDueClampsAtZero(t *testing.T) {
	assert.Equal(t, "58.00", BalanceDue(dec("1058"), dec("1000")).StringFixed(2))
	assert.True(t, BalanceDue(dec("1000"), dec("1058")).IsZero())
}

func TestPaymentStatus(t *testing.T) {
	assert.Equal(t, domain.PaymentUnpaid, PaymentStatus(dec("100"), decimal.Zero))
	assert.Equal(t, domain.PaymentPartial, PaymentStatus(dec("100"), dec("40")))
	assert.Equal(t, domain.PaymentPaid, PaymentStatus(dec("100"), dec("100")))
	assert.Equal(t, domain.PaymentPaid, PaymentStatus(dec("100"), dec("150")))
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"lenspos/m/domain"
)

var two = decimal.NewFromInt(2)

// GSTSummary rolls invoices and purchases in [startDate, endDate] (inclusive
// both ends) into the regulatory buckets. It reads the persisted totals only;
// nothing is recomputed here.
func (s *Service) GSTSummary(ctx context.Context, startDate, endDate string) (domain.GSTSummary, error) {
	summary := domain.GSTSummary{StartDate: startDate, EndDate: endDate}

	invoices, err := s.repo.ListInvoicesBetween(ctx, startDate, endDate)
	if err != nil {
		return domain.GSTSummary{}, fmt.Errorf("load invoices: %w", err)
	}
	for _, inv := range invoices {
		summary.InvoiceCount++
		if strings.TrimSpace(inv.CustomerGST) != "" {
			summary.B2B.Count++
			summary.B2B.TotalAmount = summary.B2B.TotalAmount.Add(inv.TotalAmount)
			summary.B2B.TaxAmount = summary.B2B.TaxAmount.Add(inv.TaxAmount)
		} else {
			summary.B2C.Count++
			summary.B2C.TotalAmount = summary.B2C.TotalAmount.Add(inv.TotalAmount)
			summary.B2C.TaxAmount = summary.B2C.TaxAmount.Add(inv.TaxAmount)
		}
		addToBuckets(&summary.Outward, inv.TaxOptionID, inv.TaxAmount)
	}
	summary.TotalAmount = summary.B2B.TotalAmount.Add(summary.B2C.TotalAmount)
	summary.TotalTax = summary.B2B.TaxAmount.Add(summary.B2C.TaxAmount)

	purchases, err := s.repo.ListPurchasesBetween(ctx, startDate, endDate)
	if err != nil {
		return domain.GSTSummary{}, fmt.Errorf("load purchases: %w", err)
	}
	for _, p := range purchases {
		summary.PurchaseCount++
		addToBuckets(&summary.InputCredit, p.TaxOptionID, p.TaxAmount)
	}

	roundBuckets(&summary.Outward)
	roundBuckets(&summary.InputCredit)

	// Unused credit does not carry over and is never reported as negative
	// liability.
	summary.Payable = domain.TaxBuckets{
		Integrated: payable(summary.Outward.Integrated, summary.InputCredit.Integrated),
		Central:    payable(summary.Outward.Central, summary.InputCredit.Central),
		State:      payable(summary.Outward.State, summary.InputCredit.State),
	}
	return summary, nil
}

// addToBuckets classifies a stored tax amount by its tax option id. Split
// options contribute two equal halves to central and state; integrated
// options contribute whole.
func addToBuckets(b *domain.TaxBuckets, taxOptionID string, tax decimal.Decimal) {
	switch {
	case strings.Contains(taxOptionID, "CGST_SGST"):
		half := tax.Div(two)
		b.Central = b.Central.Add(half)
		b.State = b.State.Add(half)
	case strings.Contains(taxOptionID, "IGST"):
		b.Integrated = b.Integrated.Add(tax)
	}
}

func roundBuckets(b *domain.TaxBuckets) {
	b.Integrated = b.Integrated.Round(2)
	b.Central = b.Central.Round(2)
	b.State = b.State.Round(2)
}

func payable(outward, credit decimal.Decimal) decimal.Decimal {
	due := outward.Sub(credit)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// SuggestItems matches the catalog by name or category for the invoice form.
func (s *Service) SuggestItems(ctx context.Context, query string) ([]domain.Item, error) {
	return s.repo.SearchItems(ctx, strings.TrimSpace(query))
}

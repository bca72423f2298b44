package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"lenspos/m/domain"
	"lenspos/m/internal/billing"
	"lenspos/m/internal/format"
	"lenspos/m/internal/store"
)

// LineInput is one row of the invoice form. The line total is derived from
// unit price and quantity at save time; rows left blank arrive with a zero
// total and are silently dropped.
type LineInput struct {
	ItemName  string          `json:"item_name"`
	Sph       string          `json:"sph"`
	Cyl       string          `json:"cyl"`
	Axis      string          `json:"axis"`
	Add       string          `json:"add"`
	Qty       int64           `json:"qty"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	OrderRef  string          `json:"order_ref"`
}

type SaveInvoiceRequest struct {
	CustomerID    string          `json:"customer_id"`
	InvoiceDate   string          `json:"invoice_date"`
	DueDate       string          `json:"due_date"`
	Notes         string          `json:"notes"`
	Items         []LineInput     `json:"items"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	TaxOptionID   string          `json:"tax_option_id"`
	Freight       decimal.Decimal `json:"freight"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
}

// SaveInvoiceResult carries the persisted invoice plus the per-order
// reconciliation outcomes. A failed reconciliation never fails the save;
// callers observe partial failure here instead of grepping logs.
type SaveInvoiceResult struct {
	Invoice         domain.Invoice       `json:"invoice"`
	Items           []domain.InvoiceItem `json:"items"`
	Reconciliations []ReconcileOutcome   `json:"reconciliations"`
}

// SaveInvoice validates, computes totals, persists the invoice, then
// reconciles every line that references an order. Persistence completes
// before any reconciliation starts, so a crash mid-reconciliation can leave
// orders unreconciled but never an invoice half-saved.
func (s *Service) SaveInvoice(ctx context.Context, req SaveInvoiceRequest) (SaveInvoiceResult, error) {
	if strings.TrimSpace(req.CustomerID) == "" {
		return SaveInvoiceResult{}, ErrCustomerRequired
	}
	customer, err := s.repo.GetCustomer(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return SaveInvoiceResult{}, ErrCustomerRequired
		}
		return SaveInvoiceResult{}, fmt.Errorf("load customer: %w", err)
	}

	taxID := req.TaxOptionID
	if taxID == "" {
		taxID = "TAX_FREE"
	}
	taxOption, ok := domain.TaxOptionByID(taxID)
	if !ok {
		return SaveInvoiceResult{}, ErrUnknownTaxOption
	}

	items, lineTotals := buildInvoiceItems(req.Items)
	if len(items) == 0 {
		return SaveInvoiceResult{}, ErrNoItems
	}

	totals := billing.Compute(lineTotals, req.DiscountType, req.DiscountValue, taxOption, req.Freight)

	invoiceDate := req.InvoiceDate
	if invoiceDate == "" {
		invoiceDate = time.Now().Format("2006-01-02")
	}

	inv := domain.Invoice{
		CustomerID:     customer.ID,
		CustomerName:   customer.Name,
		CustomerPhone:  customer.Phone,
		CustomerGST:    customer.GSTNumber,
		InvoiceDate:    invoiceDate,
		DueDate:        req.DueDate,
		Notes:          req.Notes,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		TaxOptionID:    taxOption.ID,
		Freight:        req.Freight.Round(2),
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		TaxAmount:      totals.TaxAmount,
		TotalAmount:    totals.Total,
		AmountPaid:     req.AmountPaid.Round(2),
		// Stored balance is the plain subtraction; only the display side
		// clamps at zero.
		BalanceDue:    totals.Total.Sub(req.AmountPaid).Round(2),
		PaymentStatus: billing.PaymentStatus(totals.Total, req.AmountPaid),
	}

	inv, items, err = s.repo.CreateInvoice(ctx, inv, items)
	if err != nil {
		return SaveInvoiceResult{}, fmt.Errorf("persist invoice: %w", err)
	}

	result := SaveInvoiceResult{Invoice: inv, Items: items}
	for _, item := range items {
		if item.OrderDisplayID == "" {
			continue
		}
		result.Reconciliations = append(result.Reconciliations, s.Reconcile(ctx, item.OrderDisplayID))
	}
	return result, nil
}

// buildInvoiceItems filters out zero-total rows and renormalizes the
// prescription fields. Fields are normalized again even though the form
// already did it on blur; save time is the last chance to catch a raw value.
func buildInvoiceItems(lines []LineInput) ([]domain.InvoiceItem, []decimal.Decimal) {
	var (
		items      []domain.InvoiceItem
		lineTotals []decimal.Decimal
	)
	for _, line := range lines {
		total := billing.LineTotal(line.UnitPrice, line.Qty, "", decimal.Zero)
		if !total.IsPositive() {
			continue
		}
		unit := line.Unit
		if unit == "" {
			unit = domain.UnitPairs
		}
		items = append(items, domain.InvoiceItem{
			ItemName:       strings.TrimSpace(line.ItemName),
			Sph:            format.OpticalValue(line.Sph),
			Cyl:            format.OpticalValue(line.Cyl),
			Axis:           format.Axis(line.Axis),
			Add:            format.OpticalValue(line.Add),
			Qty:            line.Qty,
			Unit:           unit,
			UnitPrice:      line.UnitPrice.Round(2),
			Total:          total,
			OrderDisplayID: strings.TrimSpace(line.OrderRef),
		})
		lineTotals = append(lineTotals, total)
	}
	return items, lineTotals
}

// PurchaseLineInput mirrors LineInput for the purchase flow and adds the
// per-line discount applied before the line contributes to the subtotal.
type PurchaseLineInput struct {
	ItemName          string          `json:"item_name"`
	Qty               int64           `json:"qty"`
	Unit              string          `json:"unit"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	ItemDiscountType  string          `json:"item_discount_type"`
	ItemDiscountValue decimal.Decimal `json:"item_discount_value"`
}

type SavePurchaseRequest struct {
	SupplierName  string              `json:"supplier_name"`
	SupplierGST   string              `json:"supplier_gst"`
	BillNo        string              `json:"bill_no"`
	PurchaseDate  string              `json:"purchase_date"`
	Notes         string              `json:"notes"`
	Items         []PurchaseLineInput `json:"items"`
	DiscountType  string              `json:"discount_type"`
	DiscountValue decimal.Decimal     `json:"discount_value"`
	TaxOptionID   string              `json:"tax_option_id"`
	Freight       decimal.Decimal     `json:"freight"`
	AmountPaid    decimal.Decimal     `json:"amount_paid"`
}

type SavePurchaseResult struct {
	Purchase domain.Purchase       `json:"purchase"`
	Items    []domain.PurchaseItem `json:"items"`
}

// SavePurchase is the partial mirror of SaveInvoice for supplier bills: same
// totals pipeline, no reconciliation.
func (s *Service) SavePurchase(ctx context.Context, req SavePurchaseRequest) (SavePurchaseResult, error) {
	if strings.TrimSpace(req.SupplierName) == "" {
		return SavePurchaseResult{}, ErrSupplierRequired
	}

	taxID := req.TaxOptionID
	if taxID == "" {
		taxID = "TAX_FREE"
	}
	taxOption, ok := domain.TaxOptionByID(taxID)
	if !ok {
		return SavePurchaseResult{}, ErrUnknownTaxOption
	}

	var (
		items      []domain.PurchaseItem
		lineTotals []decimal.Decimal
	)
	for _, line := range req.Items {
		total := billing.LineTotal(line.UnitPrice, line.Qty, line.ItemDiscountType, line.ItemDiscountValue)
		if !total.IsPositive() {
			continue
		}
		unit := line.Unit
		if unit == "" {
			unit = domain.UnitPieces
		}
		items = append(items, domain.PurchaseItem{
			ItemName:          strings.TrimSpace(line.ItemName),
			Qty:               line.Qty,
			Unit:              unit,
			UnitPrice:         line.UnitPrice.Round(2),
			ItemDiscountType:  line.ItemDiscountType,
			ItemDiscountValue: line.ItemDiscountValue,
			Total:             total,
		})
		lineTotals = append(lineTotals, total)
	}
	if len(items) == 0 {
		return SavePurchaseResult{}, ErrNoItems
	}

	totals := billing.Compute(lineTotals, req.DiscountType, req.DiscountValue, taxOption, req.Freight)

	purchaseDate := req.PurchaseDate
	if purchaseDate == "" {
		purchaseDate = time.Now().Format("2006-01-02")
	}

	p := domain.Purchase{
		BillNo:         req.BillNo,
		SupplierName:   strings.TrimSpace(req.SupplierName),
		SupplierGST:    strings.TrimSpace(req.SupplierGST),
		PurchaseDate:   purchaseDate,
		Notes:          req.Notes,
		DiscountType:   req.DiscountType,
		DiscountValue:  req.DiscountValue,
		TaxOptionID:    taxOption.ID,
		Freight:        req.Freight.Round(2),
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		TaxAmount:      totals.TaxAmount,
		TotalAmount:    totals.Total,
		AmountPaid:     req.AmountPaid.Round(2),
		BalanceDue:     totals.Total.Sub(req.AmountPaid).Round(2),
		PaymentStatus:  billing.PaymentStatus(totals.Total, req.AmountPaid),
	}

	p, items, err := s.repo.CreatePurchase(ctx, p, items)
	if err != nil {
		return SavePurchaseResult{}, fmt.Errorf("persist purchase: %w", err)
	}
	return SavePurchaseResult{Purchase: p, Items: items}, nil
}

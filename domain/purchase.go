package domain

import "github.com/shopspring/decimal"

// Purchase is a supplier bill. Its totals feed the input-tax-credit side of
// the GST summary.
type Purchase struct {
	ID             string          `db:"id" json:"id"`
	BillNo         string          `db:"bill_no" json:"bill_no"`
	SupplierName   string          `db:"supplier_name" json:"supplier_name"`
	SupplierGST    string          `db:"supplier_gst" json:"supplier_gst"`
	PurchaseDate   string          `db:"purchase_date" json:"purchase_date"`
	Notes          string          `db:"notes" json:"notes"`
	DiscountType   string          `db:"discount_type" json:"discount_type"`
	DiscountValue  decimal.Decimal `db:"discount_value" json:"discount_value"`
	TaxOptionID    string          `db:"tax_option_id" json:"tax_option_id"`
	Freight        decimal.Decimal `db:"freight" json:"freight"`
	Subtotal       decimal.Decimal `db:"subtotal" json:"subtotal"`
	DiscountAmount decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	TaxAmount      decimal.Decimal `db:"tax_amount" json:"tax_amount"`
	TotalAmount    decimal.Decimal `db:"total_amount" json:"total_amount"`
	AmountPaid     decimal.Decimal `db:"amount_paid" json:"amount_paid"`
	BalanceDue     decimal.Decimal `db:"balance_due" json:"balance_due"`
	PaymentStatus  string          `db:"payment_status" json:"payment_status"`
	CreatedAt      string          `db:"created_at" json:"created_at"`
}

// PurchaseItem carries an optional per-line discount applied before the line
// contributes to the purchase subtotal.
type PurchaseItem struct {
	ID                string          `db:"id" json:"id"`
	PurchaseID        string          `db:"purchase_id" json:"purchase_id"`
	ItemName          string          `db:"item_name" json:"item_name"`
	Qty               int64           `db:"qty" json:"qty"`
	Unit              string          `db:"unit" json:"unit"`
	UnitPrice         decimal.Decimal `db:"unit_price" json:"unit_price"`
	ItemDiscountType  string          `db:"item_discount_type" json:"item_discount_type"`
	ItemDiscountValue decimal.Decimal `db:"item_discount_value" json:"item_discount_value"`
	Total             decimal.Decimal `db:"total" json:"total"`
}

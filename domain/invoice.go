package domain

import "github.com/shopspring/decimal"

// Discount types shared by the invoice header and purchase line items.
const (
	DiscountAmount     = "amount"
	DiscountPercentage = "percentage"
)

// Payment statuses.
const (
	PaymentUnpaid  = "UNPAID"
	PaymentPartial = "PARTIAL"
	PaymentPaid    = "PAID"
)

// Line item units.
const (
	UnitPairs  = "Pairs"
	UnitPieces = "Pieces"
	UnitDozen  = "Dozen"
	UnitPack   = "Pack"
	UnitBox    = "Box"
)

// Invoice is a persisted sales invoice. The customer fields are a snapshot
// taken at save time, and all monetary fields are computed once at save time
// and never recomputed on read.
type Invoice struct {
	ID             string          `db:"id" json:"id"`
	InvoiceNo      string          `db:"invoice_no" json:"invoice_no"`
	CustomerID     string          `db:"customer_id" json:"customer_id"`
	CustomerName   string          `db:"customer_name" json:"customer_name"`
	CustomerPhone  string          `db:"customer_phone" json:"customer_phone"`
	CustomerGST    string          `db:"customer_gst" json:"customer_gst"`
	InvoiceDate    string          `db:"invoice_date" json:"invoice_date"`
	DueDate        string          `db:"due_date" json:"due_date"`
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

type InvoiceItem struct {
	ID             string          `db:"id" json:"id"`
	InvoiceID      string          `db:"invoice_id" json:"invoice_id"`
	ItemName       string          `db:"item_name" json:"item_name"`
	Sph            string          `db:"sph" json:"sph"`
	Cyl            string          `db:"cyl" json:"cyl"`
	Axis           string          `db:"axis" json:"axis"`
	Add            string          `db:"add_power" json:"add"`
	Qty            int64           `db:"qty" json:"qty"`
	Unit           string          `db:"unit" json:"unit"`
	UnitPrice      decimal.Decimal `db:"unit_price" json:"unit_price"`
	Total          decimal.Decimal `db:"total" json:"total"`
	OrderDisplayID string          `db:"order_display_id" json:"order_display_id"`
}

package domain

import "github.com/shopspring/decimal"

// PartitionSummary sums one side of the B2B/B2C invoice split.
type PartitionSummary struct {
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
}

// TaxBuckets decomposes tax amounts into the regulatory components.
type TaxBuckets struct {
	Integrated decimal.Decimal `json:"integrated"`
	Central    decimal.Decimal `json:"central"`
	State      decimal.Decimal `json:"state"`
}

// GSTSummary is the period roll-up of outward supplies, input tax credit and
// net tax payable. It reads persisted invoice and purchase totals only.
type GSTSummary struct {
	StartDate     string           `json:"start_date"`
	EndDate       string           `json:"end_date"`
	InvoiceCount  int64            `json:"invoice_count"`
	PurchaseCount int64            `json:"purchase_count"`
	B2B           PartitionSummary `json:"b2b"`
	B2C           PartitionSummary `json:"b2c"`
	TotalAmount   decimal.Decimal  `json:"total_amount"`
	TotalTax      decimal.Decimal  `json:"total_tax"`
	Outward       TaxBuckets       `json:"outward"`
	InputCredit   TaxBuckets       `json:"input_credit"`
	Payable       TaxBuckets       `json:"payable"`
}

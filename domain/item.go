package domain

import "github.com/shopspring/decimal"

// Item is a catalog row used to suggest names and prices on the invoice form.
type Item struct {
	ID       int64           `db:"id" json:"id"`
	Name     string          `db:"name" json:"name"`
	Category string          `db:"category" json:"category"`
	Unit     string          `db:"unit" json:"unit"`
	Price    decimal.Decimal `db:"price" json:"price"`
}

package domain

import "github.com/shopspring/decimal"

// TaxOption is an entry in the fixed GST rate catalog. Split options divide
// their rate into two equal CGST and SGST halves at reporting time; the
// stored tax amount itself is always the undivided total.
type TaxOption struct {
	ID    string          `json:"id"`
	Label string          `json:"label"`
	Rate  decimal.Decimal `json:"rate"`
	Split bool            `json:"split"`
}

var taxCatalog = []TaxOption{
	{ID: "TAX_FREE", Label: "Tax Free", Rate: decimal.Zero},
	{ID: "CGST_SGST_5", Label: "GST 5% (CGST 2.5% + SGST 2.5%)", Rate: decimal.NewFromInt(5), Split: true},
	{ID: "CGST_SGST_12", Label: "GST 12% (CGST 6% + SGST 6%)", Rate: decimal.NewFromInt(12), Split: true},
	{ID: "CGST_SGST_18", Label: "GST 18% (CGST 9% + SGST 9%)", Rate: decimal.NewFromInt(18), Split: true},
	{ID: "CGST_SGST_28", Label: "GST 28% (CGST 14% + SGST 14%)", Rate: decimal.NewFromInt(28), Split: true},
	{ID: "IGST_5", Label: "IGST 5%", Rate: decimal.NewFromInt(5)},
	{ID: "IGST_12", Label: "IGST 12%", Rate: decimal.NewFromInt(12)},
	{ID: "IGST_18", Label: "IGST 18%", Rate: decimal.NewFromInt(18)},
	{ID: "IGST_28", Label: "IGST 28%", Rate: decimal.NewFromInt(28)},
}

// TaxOptions returns the full catalog.
func TaxOptions() []TaxOption {
	out := make([]TaxOption, len(taxCatalog))
	copy(out, taxCatalog)
	return out
}

// TaxOptionByID looks up a catalog entry. Unknown ids report false.
func TaxOptionByID(id string) (TaxOption, bool) {
	for _, opt := range taxCatalog {
		if opt.ID == id {
			return opt, true
		}
	}
	return TaxOption{}, false
}

package finance

import (
	"github.com/Furkanefeabus/teklif-backend/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals holds the derived amounts of a quotation
type Totals struct {
	Subtotal      decimal.Decimal
	TaxableAmount decimal.Decimal
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
}

// ComputeTotals derives the quotation amounts from its item snapshots,
// a discount amount and an integer tax-rate percentage:
//
//	subtotal = sum of item totals
//	taxable  = subtotal - discount
//	tax      = taxable * rate / 100
//	total    = taxable + tax
//
// The taxable amount is not clamped; a discount larger than the
// subtotal yields a negative taxable amount, matching the persisted
// behavior callers rely on.
func ComputeTotals(items []model.QuotationItem, discount decimal.Decimal, taxRate int) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total)
	}

	taxable := subtotal.Sub(discount)
	tax := taxable.Mul(decimal.NewFromInt(int64(taxRate))).Div(hundred)

	return Totals{
		Subtotal:      subtotal,
		TaxableAmount: taxable,
		TaxAmount:     tax,
		Total:         taxable.Add(tax),
	}
}

package pdf

import (
	"fmt"

	"github.com/Furkanefeabus/teklif-backend/internal/model"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
)

// Text fields are cut to these bounds so they fit the fixed layout;
// there is no word wrap.
const (
	maxProductNameLen    = 40
	maxSpecificationsLen = 60
	maxNotesLen          = 100
)

const currencySymbol = "₺"

// Truncate cuts s to at most max runes
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func money(d decimal.Decimal) string {
	return currencySymbol + d.StringFixed(2)
}

// RenderQuotation lays out a single quotation as an A4 PDF and returns
// the document bytes. The customer block tolerates a missing customer
// (deleted after the quotation was issued).
func RenderQuotation(q *model.Quotation, issuer *model.User) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRows(
		text.NewRow(12, "QUOTATION", props.Text{Size: 18, Style: fontstyle.Bold}),
		text.NewRow(5, "Quotation No: "+q.QuotationNumber, props.Text{Size: 9}),
		text.NewRow(5, "Date: "+q.CreatedAt.Format("2006-01-02"), props.Text{Size: 9}),
	)

	addPartyBlocks(m, q, issuer)

	addItemTable(m, q.Items)

	addTotals(m, q)

	if q.Notes != "" {
		m.AddRows(
			text.NewRow(8, "Notes:", props.Text{Top: 3, Size: 10, Style: fontstyle.Bold}),
			text.NewRow(5, Truncate(q.Notes, maxNotesLen), props.Text{Size: 9}),
		)
	}

	document, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quotation pdf: %w", err)
	}
	return document.GetBytes(), nil
}

// addPartyBlocks prints the issuer profile on the left and the customer
// profile on the right, skipping absent fields
func addPartyBlocks(m core.Maroto, q *model.Quotation, issuer *model.User) {
	left := []string{}
	if issuer.Company != "" {
		left = append(left, issuer.Company)
	}
	if issuer.CompanyAddress != "" {
		left = append(left, issuer.CompanyAddress)
	}
	if issuer.Phone != "" {
		left = append(left, "Tel: "+issuer.Phone)
	}

	right := []string{}
	if c := q.Customer; c != nil {
		if c.Name != "" {
			right = append(right, c.Name)
		}
		if c.Company != "" {
			right = append(right, c.Company)
		}
		if c.Address != "" {
			right = append(right, c.Address)
		}
		if c.Phone != "" {
			right = append(right, "Tel: "+c.Phone)
		}
	}

	m.AddRow(8,
		text.NewCol(6, "From:", props.Text{Top: 3, Size: 11, Style: fontstyle.Bold}),
		text.NewCol(6, "Bill To:", props.Text{Top: 3, Size: 11, Style: fontstyle.Bold, Align: align.Right}),
	)

	lines := len(left)
	if len(right) > lines {
		lines = len(right)
	}
	for i := 0; i < lines; i++ {
		var l, r string
		if i < len(left) {
			l = left[i]
		}
		if i < len(right) {
			r = right[i]
		}
		m.AddRow(5,
			text.NewCol(6, l, props.Text{Size: 9}),
			text.NewCol(6, r, props.Text{Size: 9, Align: align.Right}),
		)
	}
}

func addItemTable(m core.Maroto, items []model.QuotationItem) {
	m.AddRow(8,
		text.NewCol(5, "Product/Service", props.Text{Top: 2, Size: 10, Style: fontstyle.Bold}),
		text.NewCol(1, "Qty", props.Text{Top: 2, Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Unit", props.Text{Top: 2, Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Unit Price", props.Text{Top: 2, Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(2, "Total", props.Text{Top: 2, Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRows(line.NewRow(2))

	for _, item := range items {
		m.AddRow(5,
			text.NewCol(5, Truncate(item.ProductName, maxProductNameLen), props.Text{Size: 9}),
			text.NewCol(1, fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Unit, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(item.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(item.Total), props.Text{Size: 9, Align: align.Right}),
		)
		if item.Specifications != "" {
			m.AddRow(4,
				text.NewCol(12, Truncate(item.Specifications, maxSpecificationsLen), props.Text{Left: 4, Size: 8}),
			)
		}
	}

	m.AddRows(line.NewRow(2))
}

func addTotals(m core.Maroto, q *model.Quotation) {
	totalRow := func(label, value string, ps props.Text) core.Row {
		labelProps := ps
		labelProps.Align = align.Right
		valueProps := ps
		valueProps.Align = align.Right
		return row.New(5).Add(
			col.New(9).Add(text.New(label, labelProps)),
			col.New(3).Add(text.New(value, valueProps)),
		)
	}

	rows := []core.Row{
		totalRow("Subtotal:", money(q.Subtotal), props.Text{Size: 10}),
	}
	if q.DiscountAmount.IsPositive() {
		rows = append(rows, totalRow("Discount:", "-"+money(q.DiscountAmount), props.Text{Size: 10}))
	}
	rows = append(rows,
		totalRow(fmt.Sprintf("VAT (%d%%):", q.TaxRate), money(q.TaxAmount), props.Text{Size: 10}),
		totalRow("Grand Total:", money(q.Total), props.Text{Size: 12, Style: fontstyle.Bold}),
	)
	m.AddRows(rows...)
}

// Package pdf renders the printable visit list for a debtor batch.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Batch name          │  Generated date              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: # | Company | VAT | Address | Quick ratio | Cash     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: case count                                          │
//	└─────────────────────────────────────────────────────────────┘
//
// Rows arrive already ranked worst-liquidity-first; the rank column simply
// numbers them in order.
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/incassopro/incasso-api/internal/application/debtor"
	"github.com/incassopro/incasso-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 30, Green: 58, Blue: 95}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPDFGenerator implements debtor.VisitListGenerator using Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator builds the generator.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

var _ debtor.VisitListGenerator = (*MarotoPDFGenerator)(nil)

// VisitList renders the ranked cases of a batch and returns the PDF bytes.
func (g *MarotoPDFGenerator) VisitList(
	_ context.Context,
	batch *entity.DebtorBatch,
	cases []*entity.Case,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Visit list: "+batch.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(batch))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for i, c := range cases {
		m.AddRows(caseRow(i+1, c))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(cases)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: batch name (left) and generation date (right).
func headerRow(batch *entity.DebtorBatch) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(batch.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Visit list, ordered by liquidity risk", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(time.Now().Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Company", 3, align.Left),
		h("VAT", 2, align.Left),
		h("Address", 3, align.Left),
		h("Quick ratio", 2, align.Right),
		h("Cash", 1, align.Right),
	)
}

// caseRow: one ranked case per row. Companies never imported without a
// snapshot, but guard against a nil join anyway.
func caseRow(rank int, c *entity.Case) core.Row {
	name, vat, address := "", "", ""
	quick, cash := "—", "—"
	if co := c.Company; co != nil {
		name, vat, address = co.Name, co.VATNumber, co.Address
		quick = metric(co.QuickRatio, 2)
		cash = metric(co.Cash, 0)
	}
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		cell(fmt.Sprintf("%d", rank), 1, align.Center),
		cell(name, 3, align.Left),
		cell(vat, 2, align.Left),
		cell(address, 3, align.Left),
		cell(quick, 2, align.Right),
		cell(cash, 1, align.Right),
	)
}

func footerRow(count int) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("%d companies on this list", count), props.Text{
				Size: 8, Top: 2, Color: colorGray,
			}),
		),
	)
}

func metric(d decimal.NullDecimal, places int32) string {
	if !d.Valid {
		return "—"
	}
	return d.Decimal.StringFixed(places)
}

// Package receipt renders a sale as a one-page PDF receipt.
package receipt

import (
	"fmt"
	"strconv"

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

	"tienda/internal/domain"
	"tienda/internal/format"
)

var (
	accent = &props.Color{Red: 33, Green: 82, Blue: 62}
	muted  = &props.Color{Red: 110, Green: 110, Blue: 110}
)

// Render lays out the sale header, one row per line and the total. The
// total printed is the stored one, which may differ from the lines' sum.
func Render(shop string, sale domain.Sale, items []domain.SaleItem) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Sale %d", sale.ID), true).
		WithAuthor(shop, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(header(shop, sale))
	m.AddRows(line.NewRow(1, props.Line{Color: accent, Thickness: 0.4}))
	m.AddRows(columns())
	m.AddRows(lines(items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: accent, Thickness: 0.3}))
	m.AddRows(total(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("receipt: generate sale %d: %w", sale.ID, err)
	}
	return doc.GetBytes(), nil
}

func header(shop string, sale domain.Sale) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(shop, props.Text{Style: fontstyle.Bold, Size: 13, Color: accent, Top: 1}),
			text.New("Client: "+sale.ClientName, props.Text{Size: 9, Top: 10}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("Sale #%d", sale.ID), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1}),
			text.New(format.DateTime(sale.CreatedAt), props.Text{Size: 8, Align: align.Right, Top: 8, Color: muted}),
			text.New("Status: "+sale.Status, props.Text{Size: 8, Align: align.Right, Top: 13, Color: muted}),
		),
	)
}

func columns() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Top: 2}))
	}
	return row.New(8).Add(
		h("Product", 6, align.Left),
		h("Qty", 1, align.Center),
		h("Price", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func lines(items []domain.SaleItem) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		out = append(out, row.New(7).Add(
			col.New(6).Add(text.New(it.ProductName, props.Text{Size: 8, Top: 1})),
			col.New(1).Add(text.New(strconv.Itoa(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New("$"+format.COP(it.Price), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New("$"+format.COP(it.Subtotal()), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return out
}

func total(sale domain.Sale) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: accent, Top: 2})),
		col.New(3).Add(text.New("$"+format.COP(sale.Total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: accent, Top: 2})),
	)
}

package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	invoicedomain "github.com/maderas/backend/internal/invoice/domain"
)

var (
	header = props.Text{Style: fontstyle.Bold, Size: 9}
	cell   = props.Text{Size: 9}
	right  = props.Text{Size: 9, Align: align.Right}
	strong = props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}
)

func newDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
		}).
		Build()
	return maroto.New(cfg)
}

func (p *PDFProvider) title(m core.Maroto, title, subtitle string) {
	m.AddRow(10,
		text.NewCol(8, p.company, props.Text{Size: 16, Style: fontstyle.Bold}),
		text.NewCol(4, title, props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(6,
		col.New(8),
		text.NewCol(4, subtitle, props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(4, line.NewCol(12))
}

func (p *PDFProvider) Invoice(ctx context.Context, invoice invoicedomain.Invoice, collections []invoicedomain.Collection) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := newDocument()
	p.title(m, "FACTURA", invoice.FacturaNro)

	m.AddRow(22,
		col.New(6).Add(
			text.New("Cliente", header),
			text.New(deref(invoice.ClienteNombre), props.Text{Size: 9, Top: 5}),
			text.New("Guía: "+deref(invoice.GuiaNro), props.Text{Size: 9, Top: 10}),
		),
		col.New(6).Add(
			text.New("Fecha: "+date(invoice.Fecha), props.Text{Size: 9, Align: align.Right}),
			text.New("Estado: "+invoice.Estado, props.Text{Size: 9, Top: 5, Align: align.Right}),
		),
	)
	if d := deref(invoice.Descripcion); d != "" {
		m.AddRow(10, text.NewCol(12, d, cell))
	}

	m.AddRow(8,
		text.NewCol(6, "Producto", header),
		text.NewCol(2, "Cantidad", strong),
		text.NewCol(2, "P. unit.", strong),
		text.NewCol(2, "Subtotal", strong),
	)
	m.AddRow(2, line.NewCol(12))
	for _, item := range invoice.Items {
		m.AddRow(7,
			text.NewCol(6, item.Producto, cell),
			text.NewCol(2, number(item.Cantidad, 2), right),
			text.NewCol(2, money(item.PrecioUnit), right),
			text.NewCol(2, money(item.Subtotal()), right),
		)
	}
	m.AddRow(4, line.NewCol(12))

	totals := []struct {
		label string
		value float64
	}{
		{"Total", invoice.Total},
		{"IGV " + percent(invoice.IGVPct), invoice.IGV},
		{"Total con IGV", invoice.TotalConIGV},
		{"Detracción " + percent(invoice.DetraccionPct), invoice.Detraccion},
		{"Cobrado", invoice.Cobrado},
	}
	for _, t := range totals {
		m.AddRow(6,
			col.New(7),
			text.NewCol(3, t.label, cell),
			text.NewCol(2, money(t.value), right),
		)
	}
	m.AddRow(7,
		col.New(7),
		text.NewCol(3, "Saldo", header),
		text.NewCol(2, money(invoice.Saldo), strong),
	)

	if len(collections) > 0 {
		m.AddRow(12, text.NewCol(12, "Cobranzas", props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}))
		m.AddRow(7,
			text.NewCol(4, "Fecha", header),
			text.NewCol(4, "Anticipo", strong),
			text.NewCol(4, "Entregado", strong),
		)
		for _, c := range collections {
			m.AddRow(6,
				text.NewCol(4, date(c.Fecha), cell),
				text.NewCol(4, money(c.Anticipo), right),
				text.NewCol(4, money(c.Entregado), right),
			)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

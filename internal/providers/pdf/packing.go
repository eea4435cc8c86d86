package pdf

import (
	"context"
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/props"
	packingdomain "github.com/maderas/backend/internal/packing/domain"
)

func (p *PDFProvider) PackingList(ctx context.Context, packing packingdomain.Packing) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := newDocument()
	p.title(m, "PACKING LIST", date(packing.Fecha))

	m.AddRow(18,
		col.New(6).Add(
			text.New("Cliente", header),
			text.New(deref(packing.ClienteNombre), props.Text{Size: 9, Top: 5}),
		),
		col.New(6).Add(
			text.New("Especie: "+deref(packing.Especie), props.Text{Size: 9, Align: align.Right}),
			text.New("Tipo de madera: "+deref(packing.TipoMadera), props.Text{Size: 9, Top: 5, Align: align.Right}),
		),
	)

	m.AddRow(8,
		text.NewCol(1, "#", header),
		text.NewCol(2, "Piezas", strong),
		text.NewCol(2, "E (pulg)", strong),
		text.NewCol(2, "A (pulg)", strong),
		text.NewCol(2, "L (pies)", strong),
		text.NewCol(1, "Cat.", header),
		text.NewCol(2, "Volumen PT", strong),
	)
	m.AddRow(2, line.NewCol(12))
	for i, item := range packing.Items {
		m.AddRow(6,
			text.NewCol(1, strconv.Itoa(i+1), cell),
			text.NewCol(2, strconv.Itoa(item.CantidadPiezas), right),
			text.NewCol(2, number(item.E, 2), right),
			text.NewCol(2, number(item.A, 2), right),
			text.NewCol(2, number(item.L, 2), right),
			text.NewCol(1, deref(item.Categoria), cell),
			text.NewCol(2, number(item.VolumenPT, 2), right),
		)
	}
	m.AddRow(4, line.NewCol(12))
	m.AddRow(7,
		text.NewCol(1, "Total", header),
		text.NewCol(2, strconv.Itoa(packing.TotalPiezas()), strong),
		col.New(7),
		text.NewCol(2, number(packing.TotalVolumen(), 2), strong),
	)

	if obs := deref(packing.Observaciones); obs != "" {
		m.AddRow(14, text.NewCol(12, "Observaciones: "+obs, props.Text{Size: 9, Top: 5}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate packing pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

package pdf

import (
	"context"
	"testing"
	"time"

	invoicedomain "github.com/maderas/backend/internal/invoice/domain"
	packingdomain "github.com/maderas/backend/internal/packing/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }

func TestInvoiceRendersPDF(t *testing.T) {
	invoice := invoicedomain.Invoice{
		Fecha:         time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		ClienteNombre: strPtr("Maderera del Norte SAC"),
		FacturaNro:    "F001-000123",
		IGVPct:        0.18,
		DetraccionPct: 0.04,
		Estado:        "EMITIDA",
		Total:         1000,
		IGV:           180,
		TotalConIGV:   1180,
		Detraccion:    47.2,
		Cobrado:       500,
		Saldo:         632.8,
		Items: []invoicedomain.Item{
			{Producto: "Tornillo 2x4x10", Cantidad: 10, PrecioUnit: 100},
		},
	}
	collections := []invoicedomain.Collection{
		{Fecha: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), Anticipo: 200, Entregado: 300},
	}

	out, err := New().Invoice(context.Background(), invoice, collections)
	require.NoError(t, err)
	assert.True(t, len(out) > 4 && string(out[:4]) == "%PDF")
}

func TestPackingListRendersPDF(t *testing.T) {
	packing := packingdomain.Packing{
		Fecha:         time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		ClienteNombre: strPtr("Exportadora Amazonica"),
		Especie:       strPtr("Shihuahuaco"),
		Items: []packingdomain.Item{
			{CantidadPiezas: 10, E: 2, A: 4, L: 10, VolumenPT: 66.67},
			{CantidadPiezas: 5, E: 1, A: 6, L: 8, VolumenPT: 20, Categoria: strPtr("A")},
		},
	}

	out, err := New().PackingList(context.Background(), packing)
	require.NoError(t, err)
	assert.True(t, len(out) > 4 && string(out[:4]) == "%PDF")
}

func TestRenderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().PackingList(ctx, packingdomain.Packing{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNumberFormatting(t *testing.T) {
	assert.Equal(t, "1,234,567.89", number(1234567.891, 2))
	assert.Equal(t, "-1,000.00", number(-1000, 2))
	assert.Equal(t, "999.50", number(999.5, 2))
	assert.Equal(t, "S/ 632.80", money(632.8))
	assert.Equal(t, "18%", percent(0.18))
}

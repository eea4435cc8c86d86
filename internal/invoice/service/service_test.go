package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/config"
	"github.com/maderas/backend/internal/dbtest"
	"github.com/maderas/backend/internal/invoice/domain"
	"github.com/maderas/backend/internal/invoice/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const clienteID = "200"

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	conn := dbtest.OpenWithSchema(t)
	require.NoError(t, conn.Exec(
		`INSERT INTO clientes (id, razon_social, estado) VALUES (200, 'Maderera del Oriente SAC', 'ACTIVO')`).Error)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:       conn,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.Provide(),
		Config:   config.Config{DBAcquireTimeout: 2 * time.Second},
		Defaults: config.StaticDefaults(config.DefaultBusinessDefaults()),
	})
	return svc, conn
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func countRows(t *testing.T, conn *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, conn.Raw("SELECT COUNT(*) FROM "+table).Scan(&n).Error)
	return n
}

func header(nro, fecha string) domain.InvoiceRequest {
	return domain.InvoiceRequest{ClienteID: clienteID, Fecha: fecha, FacturaNro: nro}
}

func TestCreateAppliesDefaultsAndComputesTotals(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		InvoiceRequest: header("F001-0001", "2024-03-01"),
		Items: []domain.ItemRequest{
			{Producto: "Tornillo 2x4", Cantidad: floatPtr(10), PrecioUnit: floatPtr(100)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "EMITIDA", created.Estado)
	assert.InDelta(t, 0.18, created.IGVPct, 1e-9)
	assert.InDelta(t, 0.04, created.DetraccionPct, 1e-9)
	require.Len(t, created.Items, 1)

	_, err = svc.AddCollection(ctx, domain.CollectionRequest{
		FacturaID: created.ID.String(),
		Fecha:     "2024-03-05",
		Anticipo:  floatPtr(200),
		Entregado: floatPtr(300),
	})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", got.Fecha.Format("2006-01-02"))
	require.NotNil(t, got.ClienteNombre)
	assert.Equal(t, "Maderera del Oriente SAC", *got.ClienteNombre)
	assert.InDelta(t, 1000, got.Total, 1e-6)
	assert.InDelta(t, 180, got.IGV, 1e-6)
	assert.InDelta(t, 1180, got.TotalConIGV, 1e-6)
	assert.InDelta(t, 47.2, got.Detraccion, 1e-6)
	assert.InDelta(t, 500, got.Cobrado, 1e-6)
	assert.InDelta(t, 632.8, got.Saldo, 1e-6)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Tornillo 2x4", got.Items[0].Producto)
}

func TestCreateValidatesHeader(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  domain.InvoiceRequest
		want error
	}{
		{"missing client", domain.InvoiceRequest{Fecha: "2024-03-01", FacturaNro: "F1"}, domain.ErrInvalidCliente},
		{"missing date", domain.InvoiceRequest{ClienteID: clienteID, FacturaNro: "F1"}, domain.ErrInvalidFecha},
		{"bad date", domain.InvoiceRequest{ClienteID: clienteID, Fecha: "01/03/2024", FacturaNro: "F1"}, domain.ErrInvalidFecha},
		{"missing number", domain.InvoiceRequest{ClienteID: clienteID, Fecha: "2024-03-01", FacturaNro: "  "}, domain.ErrInvalidFacturaNro},
		{"rate out of range", domain.InvoiceRequest{ClienteID: clienteID, Fecha: "2024-03-01", FacturaNro: "F1", IGVPct: floatPtr(18)}, domain.ErrInvalidRate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, domain.CreateInvoiceRequest{InvoiceRequest: tc.req})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreateRollsBackWhenThirdItemIsInvalid(t *testing.T) {
	svc, conn := newTestService(t)

	items := make([]domain.ItemRequest, 0, 5)
	for i := 0; i < 5; i++ {
		item := domain.ItemRequest{Producto: fmt.Sprintf("Item %d", i+1), Cantidad: floatPtr(1), PrecioUnit: floatPtr(10)}
		if i == 2 {
			item.Cantidad = nil
		}
		items = append(items, item)
	}

	_, err := svc.Create(context.Background(), domain.CreateInvoiceRequest{
		InvoiceRequest: header("F001-0002", "2024-03-01"),
		Items:          items,
	})
	require.ErrorIs(t, err, domain.ErrInvalidItem)
	assert.Zero(t, countRows(t, conn, "facturas"))
	assert.Zero(t, countRows(t, conn, "factura_items"))
}

func TestCreateWithUnknownClientIsValidationError(t *testing.T) {
	svc, conn := newTestService(t)

	req := header("F001-0003", "2024-03-01")
	req.ClienteID = "999"
	_, err := svc.Create(context.Background(), domain.CreateInvoiceRequest{InvoiceRequest: req})
	require.ErrorIs(t, err, domain.ErrInvalidCliente)
	assert.Zero(t, countRows(t, conn, "facturas"))
}

func TestDeleteRemovesItemsCollectionsAndHeader(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		InvoiceRequest: header("F001-0004", "2024-03-01"),
		Items: []domain.ItemRequest{
			{Producto: "Cedro", Cantidad: floatPtr(2), PrecioUnit: floatPtr(50)},
			{Producto: "Caoba", Cantidad: floatPtr(3), PrecioUnit: floatPtr(70)},
		},
	})
	require.NoError(t, err)
	_, err = svc.AddCollection(ctx, domain.CollectionRequest{
		FacturaID: created.ID.String(), Fecha: "2024-03-02", Entregado: floatPtr(50),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID.String()))
	assert.Zero(t, countRows(t, conn, "facturas"))
	assert.Zero(t, countRows(t, conn, "factura_items"))
	assert.Zero(t, countRows(t, conn, "cobranzas"))

	assert.ErrorIs(t, svc.Delete(ctx, created.ID.String()), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "abc"), domain.ErrInvalidID)
}

func TestUpdateOverwritesHeaderAndKeepsItems(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := header("F001-0005", "2024-03-01")
	req.GuiaNro = strPtr("G-77")
	req.IGVPct = floatPtr(0.1)
	created, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		InvoiceRequest: req,
		Items:          []domain.ItemRequest{{Producto: "Cedro", Cantidad: floatPtr(1), PrecioUnit: floatPtr(100)}},
	})
	require.NoError(t, err)

	update := header("F001-0005-A", "2024-03-10")
	update.Estado = "ANULADA"
	_, err = svc.Update(ctx, domain.UpdateInvoiceRequest{ID: created.ID.String(), InvoiceRequest: update})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "F001-0005-A", got.FacturaNro)
	assert.Equal(t, "2024-03-10", got.Fecha.Format("2006-01-02"))
	assert.Nil(t, got.GuiaNro)
	assert.InDelta(t, 0.18, got.IGVPct, 1e-9)
	assert.Equal(t, "ANULADA", got.Estado)
	assert.Len(t, got.Items, 1)

	_, err = svc.Update(ctx, domain.UpdateInvoiceRequest{ID: "4242", InvoiceRequest: update})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListFiltersAndOrdering(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	require.NoError(t, conn.Exec(
		`INSERT INTO clientes (id, razon_social, estado) VALUES (201, 'Forestal Amazonica', 'ACTIVO')`).Error)

	fixtures := []struct {
		cliente, nro, fecha, estado string
		guia                        *string
	}{
		{clienteID, "F001-0010", "2024-01-05", "EMITIDA", nil},
		{clienteID, "F001-0011", "2024-02-05", "PAGADA", strPtr("GR-100%")},
		{"201", "F002-0001", "2024-03-05", "EMITIDA", nil},
		{"201", "F002-0002", "2024-04-05", "EMITIDA", strPtr("GR-200")},
	}
	for _, f := range fixtures {
		req := domain.InvoiceRequest{ClienteID: f.cliente, Fecha: f.fecha, FacturaNro: f.nro, Estado: f.estado, GuiaNro: f.guia}
		_, err := svc.Create(ctx, domain.CreateInvoiceRequest{InvoiceRequest: req})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, domain.ListInvoiceRequest{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "F002-0002", all[0].FacturaNro)
	assert.Equal(t, "F001-0010", all[3].FacturaNro)

	byClient, err := svc.List(ctx, domain.ListInvoiceRequest{ClienteID: "201", Estado: "EMITIDA"})
	require.NoError(t, err)
	require.Len(t, byClient, 2)
	assert.Equal(t, "Forestal Amazonica", *byClient[0].ClienteNombre)

	byGuia, err := svc.List(ctx, domain.ListInvoiceRequest{Q: "100%"})
	require.NoError(t, err)
	require.Len(t, byGuia, 1)
	assert.Equal(t, "F001-0011", byGuia[0].FacturaNro)

	desde := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	ranged, err := svc.List(ctx, domain.ListInvoiceRequest{Desde: &desde, Hasta: &hasta})
	require.NoError(t, err)
	require.Len(t, ranged, 2)

	none, err := svc.List(ctx, domain.ListInvoiceRequest{Q: "zzz"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestItemMaintenance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateInvoiceRequest{
		InvoiceRequest: header("F001-0020", "2024-03-01"),
		Items: []domain.ItemRequest{
			{Producto: "Cedro", Cantidad: floatPtr(1), PrecioUnit: floatPtr(100)},
			{Producto: "Caoba", Cantidad: floatPtr(2), PrecioUnit: floatPtr(80)},
		},
	})
	require.NoError(t, err)
	itemID := created.Items[0].ID.String()

	updated, err := svc.UpdateItem(ctx, domain.UpdateItemRequest{
		ID:          itemID,
		ItemRequest: domain.ItemRequest{Producto: "Cedro rojo", Cantidad: floatPtr(4), PrecioUnit: floatPtr(110)},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.FacturaID)
	assert.Equal(t, "Cedro rojo", updated.Producto)

	require.NoError(t, svc.DeleteItem(ctx, itemID))
	assert.ErrorIs(t, svc.DeleteItem(ctx, itemID), domain.ErrItemNotFound)

	_, err = svc.UpdateItem(ctx, domain.UpdateItemRequest{
		ID:          itemID,
		ItemRequest: domain.ItemRequest{Producto: "X", Cantidad: floatPtr(1), PrecioUnit: floatPtr(1)},
	})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	items, err := svc.ListItems(ctx, created.ID.String())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Caoba", items[0].Producto)

	got, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.InDelta(t, 160, got.Total, 1e-6)
}

func TestAddCollectionRequiresExistingInvoice(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddCollection(ctx, domain.CollectionRequest{FacturaID: "31337", Fecha: "2024-03-01", Entregado: floatPtr(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidFactura)

	_, err = svc.AddCollection(ctx, domain.CollectionRequest{FacturaID: "31337"})
	assert.ErrorIs(t, err, domain.ErrInvalidFecha)

	_, err = svc.AddCollection(ctx, domain.CollectionRequest{FacturaID: "31337", Fecha: "2024-03-01", Anticipo: floatPtr(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidCollection)

	collections, err := svc.ListCollections(ctx, "31337")
	require.NoError(t, err)
	assert.Empty(t, collections)
}

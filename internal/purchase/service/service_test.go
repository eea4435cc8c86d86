package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/config"
	"github.com/maderas/backend/internal/dbtest"
	"github.com/maderas/backend/internal/purchase/domain"
	"github.com/maderas/backend/internal/purchase/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const proveedorID = "100"

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	conn := dbtest.OpenWithSchema(t)
	require.NoError(t, conn.Exec(
		`INSERT INTO proveedores (id, nombre, estado) VALUES (100, 'Aserradero Ucayali', 'ACTIVO')`).Error)

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

func TestCreateWithExpensesAppliesDefaults(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreatePurchaseRequest{
		PurchaseRequest: domain.PurchaseRequest{
			ProveedorID:  proveedorID,
			Fecha:        "2024-01-15",
			TipoProducto: strPtr("Tornillo"),
			CantidadPT:   floatPtr(1200),
			PrecioPT:     floatPtr(2.5),
		},
		Gastos: []domain.ExpenseRequest{
			{Concepto: "Estiba", Monto: floatPtr(80)},
			{Concepto: "Peaje", Monto: floatPtr(35.5), Fecha: strPtr("2024-01-16")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "PENDIENTE", created.Estado)
	assert.Zero(t, created.Anticipo)

	got, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", got.Fecha.Format("2006-01-02"))
	assert.Equal(t, "Tornillo", *got.TipoProducto)
	assert.InDelta(t, 1200, *got.CantidadPT, 1e-9)
	assert.InDelta(t, 2.5, *got.PrecioPT, 1e-9)
	assert.Equal(t, "PENDIENTE", got.Estado)
	require.NotNil(t, got.ProveedorNombre)
	assert.Equal(t, "Aserradero Ucayali", *got.ProveedorNombre)

	gastos, err := svc.ListExpenses(ctx, created.ID.String())
	require.NoError(t, err)
	require.Len(t, gastos, 2)
	assert.Equal(t, int64(2), countRows(t, conn, "compras_gastos"))
}

func TestCreateRequiresSupplierAndDate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreatePurchaseRequest{PurchaseRequest: domain.PurchaseRequest{Fecha: "2024-01-15"}})
	assert.ErrorIs(t, err, domain.ErrInvalidProveedor)

	_, err = svc.Create(ctx, domain.CreatePurchaseRequest{PurchaseRequest: domain.PurchaseRequest{ProveedorID: proveedorID}})
	assert.ErrorIs(t, err, domain.ErrInvalidFecha)
}

func TestCreateRollsBackWhenAnExpenseIsInvalid(t *testing.T) {
	svc, conn := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreatePurchaseRequest{
		PurchaseRequest: domain.PurchaseRequest{ProveedorID: proveedorID, Fecha: "2024-01-15"},
		Gastos: []domain.ExpenseRequest{
			{Concepto: "Estiba", Monto: floatPtr(80)},
			{Concepto: "Peaje", Monto: floatPtr(10)},
			{Concepto: "", Monto: floatPtr(5)},
			{Concepto: "Flete", Monto: floatPtr(200)},
		},
	})
	require.ErrorIs(t, err, domain.ErrInvalidExpense)
	assert.Zero(t, countRows(t, conn, "compras"))
	assert.Zero(t, countRows(t, conn, "compras_gastos"))
}

func TestCreateWithUnknownSupplierIsValidationError(t *testing.T) {
	svc, conn := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreatePurchaseRequest{
		PurchaseRequest: domain.PurchaseRequest{ProveedorID: "999", Fecha: "2024-01-15"},
		Gastos:          []domain.ExpenseRequest{{Concepto: "Estiba", Monto: floatPtr(80)}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidProveedor)
	assert.Zero(t, countRows(t, conn, "compras"))
	assert.Zero(t, countRows(t, conn, "compras_gastos"))
}

func TestListComposesFiltersAndOrdersByDateDesc(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for day := 1; day <= 31; day += 3 {
		estado := "PENDIENTE"
		if day%2 == 0 {
			estado = "PAGADO"
		}
		_, err := svc.Create(ctx, domain.CreatePurchaseRequest{PurchaseRequest: domain.PurchaseRequest{
			ProveedorID: proveedorID,
			Fecha:       fmt.Sprintf("2024-01-%02d", day),
			Estado:      estado,
		}})
		require.NoError(t, err)
	}

	desde := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	filtered, err := svc.List(ctx, domain.ListPurchaseRequest{Desde: &desde, Estado: "PENDIENTE"})
	require.NoError(t, err)

	var days []string
	for _, p := range filtered {
		assert.Equal(t, "PENDIENTE", p.Estado)
		days = append(days, p.Fecha.Format("02"))
	}
	assert.Equal(t, []string{"31", "25", "19", "13"}, days)

	all, err := svc.List(ctx, domain.ListPurchaseRequest{})
	require.NoError(t, err)
	require.Len(t, all, 11)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].Fecha.After(all[i-1].Fecha), "rows must be ordered by fecha desc")
	}

	hasta := time.Date(2024, 1, 4, 23, 59, 59, 0, time.UTC)
	early, err := svc.List(ctx, domain.ListPurchaseRequest{Hasta: &hasta})
	require.NoError(t, err)
	assert.Len(t, early, 2)

	_, err = svc.List(ctx, domain.ListPurchaseRequest{ProveedorID: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidProveedor)
}

func TestUpdateMissingPurchaseIsNotFound(t *testing.T) {
	svc, conn := newTestService(t)

	_, err := svc.Update(context.Background(), domain.UpdatePurchaseRequest{
		ID:              "12345",
		PurchaseRequest: domain.PurchaseRequest{ProveedorID: proveedorID, Fecha: "2024-02-01"},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, countRows(t, conn, "compras"))
}

func TestUpdateOverwritesHeader(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreatePurchaseRequest{PurchaseRequest: domain.PurchaseRequest{
		ProveedorID:  proveedorID,
		Fecha:        "2024-01-15",
		TipoProducto: strPtr("Cedro"),
		Anticipo:     floatPtr(500),
	}})
	require.NoError(t, err)

	_, err = svc.Update(ctx, domain.UpdatePurchaseRequest{
		ID: created.ID.String(),
		PurchaseRequest: domain.PurchaseRequest{
			ProveedorID: proveedorID,
			Fecha:       "2024-01-20",
			Estado:      "PAGADO",
		},
	})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "2024-01-20", got.Fecha.Format("2006-01-02"))
	assert.Nil(t, got.TipoProducto)
	assert.Zero(t, got.Anticipo)
	assert.Equal(t, "PAGADO", got.Estado)
}

func TestDeleteRemovesExpensesAndHeader(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreatePurchaseRequest{
		PurchaseRequest: domain.PurchaseRequest{ProveedorID: proveedorID, Fecha: "2024-01-15"},
		Gastos:          []domain.ExpenseRequest{{Concepto: "Estiba", Monto: floatPtr(80)}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID.String()))
	assert.Zero(t, countRows(t, conn, "compras"))
	assert.Zero(t, countRows(t, conn, "compras_gastos"))

	assert.ErrorIs(t, svc.Delete(ctx, created.ID.String()), domain.ErrNotFound)
}

func TestAddExpense(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreatePurchaseRequest{
		PurchaseRequest: domain.PurchaseRequest{ProveedorID: proveedorID, Fecha: "2024-01-15"},
	})
	require.NoError(t, err)

	expense, err := svc.AddExpense(ctx, domain.ExpenseRequest{
		CompraID: created.ID.String(),
		Concepto: "Secado",
		Monto:    floatPtr(150),
		Fecha:    strPtr("2024-01-18"),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, expense.CompraID)

	_, err = svc.AddExpense(ctx, domain.ExpenseRequest{CompraID: "777", Concepto: "Secado", Monto: floatPtr(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidCompra)

	_, err = svc.AddExpense(ctx, domain.ExpenseRequest{CompraID: created.ID.String(), Concepto: "Secado"})
	assert.ErrorIs(t, err, domain.ErrInvalidExpense)
}

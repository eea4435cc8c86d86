package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/carrier/domain"
	"github.com/maderas/backend/internal/carrier/repository"
	"github.com/maderas/backend/internal/config"
	"github.com/maderas/backend/internal/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	conn := dbtest.OpenWithSchema(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:       conn,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.Provide(),
		Defaults: config.StaticDefaults(config.DefaultBusinessDefaults()),
	})
	return svc, conn
}

func strPtr(v string) *string { return &v }

func TestCreateAppliesDefaultsAndRoundTrips(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CarrierRequest{
		Nombre: "  Transportes Huallaga ",
		RUC:    strPtr("20123456789"),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "ACTIVO", created.Estado)

	got, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Equal(t, "Transportes Huallaga", got.Nombre)
	assert.Nil(t, got.Contacto)
}

func TestCreateRequiresNombre(t *testing.T) {
	svc, conn := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CarrierRequest{Nombre: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidNombre)

	var n int64
	require.NoError(t, conn.Raw("SELECT COUNT(*) FROM transportistas").Scan(&n).Error)
	assert.Zero(t, n)
}

func TestGetByIDErrors(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetByID(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.GetByID(context.Background(), "12345")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateOverwritesEveryField(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CarrierRequest{
		Nombre:   "Cargas Andinas",
		RUC:      strPtr("20999999999"),
		Contacto: strPtr("Ana"),
		Estado:   "INACTIVO",
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, domain.UpdateCarrierRequest{
		ID:             created.ID.String(),
		CarrierRequest: domain.CarrierRequest{Nombre: "Cargas Andinas SRL"},
	})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Cargas Andinas SRL", got.Nombre)
	assert.Nil(t, got.RUC)
	assert.Nil(t, got.Contacto)
	assert.Equal(t, "ACTIVO", got.Estado)
}

func TestUpdateMissingCarrierIsNotFound(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	existing, err := svc.Create(ctx, domain.CarrierRequest{Nombre: "Existente"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, domain.UpdateCarrierRequest{
		ID:             "999",
		CarrierRequest: domain.CarrierRequest{Nombre: "Fantasma"},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	var names []string
	require.NoError(t, conn.Raw("SELECT nombre FROM transportistas").Scan(&names).Error)
	assert.Equal(t, []string{existing.Nombre}, names)
}

func TestListFiltersAndOrders(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, req := range []domain.CarrierRequest{
		{Nombre: "Trucks Selva", Contacto: strPtr("Rosa")},
		{Nombre: "Camiones 100% Selva", Estado: "INACTIVO"},
		{Nombre: "Movil Lima", RUC: strPtr("20555")},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, domain.ListCarrierRequest{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Camiones 100% Selva", all[0].Nombre)
	assert.Equal(t, "Movil Lima", all[1].Nombre)
	assert.Equal(t, "Trucks Selva", all[2].Nombre)

	byContact, err := svc.List(ctx, domain.ListCarrierRequest{Q: "ROSA"})
	require.NoError(t, err)
	require.Len(t, byContact, 1)
	assert.Equal(t, "Trucks Selva", byContact[0].Nombre)

	literalPercent, err := svc.List(ctx, domain.ListCarrierRequest{Q: "100%"})
	require.NoError(t, err)
	require.Len(t, literalPercent, 1)

	activeLima, err := svc.List(ctx, domain.ListCarrierRequest{Q: "ma", Estado: "ACTIVO"})
	require.NoError(t, err)
	require.Len(t, activeLima, 1)
	assert.Equal(t, "Movil Lima", activeLima[0].Nombre)

	none, err := svc.List(ctx, domain.ListCarrierRequest{Q: "zzz"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestDeleteReferencedCarrierIsConflict(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	carrier, err := svc.Create(ctx, domain.CarrierRequest{Nombre: "Con Fletes"})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(`INSERT INTO fletes (id, fecha, transportista_id, adelanto, pago, estado) VALUES (1, '2024-01-10', ?, 0, 0, 'PENDIENTE')`, carrier.ID).Error)

	err = svc.Delete(ctx, carrier.ID.String())
	require.ErrorIs(t, err, domain.ErrHasDependents)

	_, err = svc.GetByID(ctx, carrier.ID.String())
	assert.NoError(t, err)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	carrier, err := svc.Create(ctx, domain.CarrierRequest{Nombre: "Temporal"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, carrier.ID.String()))
	assert.ErrorIs(t, svc.Delete(ctx, carrier.ID.String()), domain.ErrNotFound)

	_, err = svc.GetByID(ctx, carrier.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

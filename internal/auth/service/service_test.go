package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/auth/domain"
	"github.com/maderas/backend/internal/auth/repository"
	"github.com/maderas/backend/internal/auth/token"
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
	issuer, err := token.New("unit-test-secret", time.Hour)
	require.NoError(t, err)

	svc := New(Params{
		DB:       conn,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.Provide(),
		Tokens:   issuer,
		Defaults: config.StaticDefaults(config.DefaultBusinessDefaults()),
	})
	return svc, conn
}

func register(t *testing.T, svc domain.Service, email string) domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), domain.RegisterRequest{
		Nombre:   "Rosa Huaman",
		Email:    email,
		Password: "clave-segura",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterAppliesDefaultsAndHashes(t *testing.T) {
	svc, conn := newTestService(t)

	user := register(t, svc, "  Rosa@Maderas.PE ")
	assert.Equal(t, "rosa@maderas.pe", user.Email)
	assert.Equal(t, domain.RoleUser, user.Rol)
	assert.Equal(t, "ACTIVO", user.Estado)

	var stored string
	require.NoError(t, conn.Raw(`SELECT password FROM usuarios WHERE id = ?`, user.ID).Scan(&stored).Error)
	assert.NotEqual(t, "clave-segura", stored)
	assert.Contains(t, stored, "$2a$10$")
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  domain.RegisterRequest
		want error
	}{
		{"missing name", domain.RegisterRequest{Email: "a@b.pe", Password: "x"}, domain.ErrInvalidNombre},
		{"bad email", domain.RegisterRequest{Nombre: "A", Email: "a@b", Password: "x"}, domain.ErrInvalidEmail},
		{"missing password", domain.RegisterRequest{Nombre: "A", Email: "a@b.pe"}, domain.ErrInvalidPassword},
		{"unknown role", domain.RegisterRequest{Nombre: "A", Email: "a@b.pe", Password: "x", Rol: "root"}, domain.ErrInvalidRole},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "dup@maderas.pe")

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Nombre: "Otra", Email: "DUP@maderas.pe", Password: "otra-clave",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginIssuesToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	user := register(t, svc, "login@maderas.pe")

	res, err := svc.Login(ctx, domain.LoginRequest{Email: "login@maderas.pe", Password: "clave-segura"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, user.ID, res.User.ID)
	assert.Equal(t, "Rosa Huaman", res.User.Nombre)

	principal, err := svc.ValidateToken(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), principal.ID)
	assert.Equal(t, domain.RoleUser, principal.Rol)

	_, err = svc.ValidateToken(ctx, res.Token+"x")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	user := register(t, svc, "inactivo@maderas.pe")

	_, wrongPassword := svc.Login(ctx, domain.LoginRequest{Email: "inactivo@maderas.pe", Password: "nope"})
	_, unknown := svc.Login(ctx, domain.LoginRequest{Email: "nadie@maderas.pe", Password: "clave-segura"})

	require.NoError(t, svc.Delete(ctx, user.ID.String()))
	_, inactive := svc.Login(ctx, domain.LoginRequest{Email: "inactivo@maderas.pe", Password: "clave-segura"})

	for _, err := range []error{wrongPassword, unknown, inactive} {
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Equal(t, domain.ErrInvalidCredentials.Error(), err.Error())
	}
}

func TestDeleteIsLogical(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	user := register(t, svc, "baja@maderas.pe")

	require.NoError(t, svc.Delete(ctx, user.ID.String()))

	got, err := svc.GetByID(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "INACTIVO", got.Estado)

	assert.ErrorIs(t, svc.Delete(ctx, "123"), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "x"), domain.ErrInvalidID)
}

func TestUpdateKeepsPasswordUnlessSupplied(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	user := register(t, svc, "cambio@maderas.pe")

	_, err := svc.Update(ctx, domain.UpdateUserRequest{
		ID:     user.ID.String(),
		Nombre: "Rosa H.",
		Email:  "cambio@maderas.pe",
		Rol:    domain.RoleAdmin,
	})
	require.NoError(t, err)

	res, err := svc.Login(ctx, domain.LoginRequest{Email: "cambio@maderas.pe", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, res.User.Rol)
	assert.Equal(t, "Rosa H.", res.User.Nombre)

	_, err = svc.Update(ctx, domain.UpdateUserRequest{
		ID:       user.ID.String(),
		Nombre:   "Rosa H.",
		Email:    "cambio@maderas.pe",
		Password: "nueva-clave",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "cambio@maderas.pe", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(ctx, domain.LoginRequest{Email: "cambio@maderas.pe", Password: "nueva-clave"})
	assert.NoError(t, err)

	_, err = svc.Update(ctx, domain.UpdateUserRequest{ID: "999", Nombre: "X", Email: "x@maderas.pe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateToTakenEmailIsDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "uno@maderas.pe")
	other := register(t, svc, "dos@maderas.pe")

	_, err := svc.Update(context.Background(), domain.UpdateUserRequest{
		ID: other.ID.String(), Nombre: "Dos", Email: "uno@maderas.pe",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestListFilters(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{Nombre: "Zoila", Email: "zoila@maderas.pe", Password: "x", Rol: "admin"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, domain.RegisterRequest{Nombre: "Alberto", Email: "alberto@maderas.pe", Password: "x"})
	require.NoError(t, err)

	all, err := svc.List(ctx, domain.ListUserRequest{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alberto", all[0].Nombre)

	admins, err := svc.List(ctx, domain.ListUserRequest{Rol: "admin"})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "Zoila", admins[0].Nombre)

	byEmail, err := svc.List(ctx, domain.ListUserRequest{Q: "ALBERTO@"})
	require.NoError(t, err)
	assert.Len(t, byEmail, 1)
}

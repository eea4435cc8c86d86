package seed

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/maderas/backend/internal/auth/domain"
	"github.com/maderas/backend/internal/auth/repository"
	"github.com/maderas/backend/internal/auth/service"
	"github.com/maderas/backend/internal/auth/token"
	"github.com/maderas/backend/internal/config"
	"github.com/maderas/backend/internal/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(t *testing.T) authdomain.Service {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	issuer, err := token.New("seed-test-secret", time.Hour)
	require.NoError(t, err)

	return service.New(service.Params{
		DB:       dbtest.OpenWithSchema(t),
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     repository.Provide(),
		Tokens:   issuer,
		Defaults: config.StaticDefaults(config.DefaultBusinessDefaults()),
	})
}

func TestEnsureAdminCreatesOnce(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	created, err := EnsureAdmin(ctx, svc, AdminRequest{Email: "jefe@maderas.pe", Password: "clave-segura"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = EnsureAdmin(ctx, svc, AdminRequest{Email: "otro@maderas.pe", Password: "clave-segura"})
	require.NoError(t, err)
	assert.False(t, created)

	admins, err := svc.List(ctx, authdomain.ListUserRequest{Rol: authdomain.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "jefe@maderas.pe", admins[0].Email)
	assert.Equal(t, defaultAdminNombre, admins[0].Nombre)
}

func TestEnsureAdminRequiresCredentials(t *testing.T) {
	svc := newAuthService(t)

	_, err := EnsureAdmin(context.Background(), svc, AdminRequest{Email: "jefe@maderas.pe"})
	assert.ErrorIs(t, err, ErrAdminCredentials)
}

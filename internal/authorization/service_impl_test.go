package authorization

import (
	"context"
	"testing"

	auditdomain "github.com/maderas/backend/internal/audit/domain"
	"github.com/maderas/backend/internal/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type auditMock struct {
	mock.Mock
}

func (m *auditMock) AuditLog(ctx context.Context, action string, targetType string, targetID *string, metadata map[string]any) error {
	args := m.Called(ctx, action, targetType, targetID, metadata)
	return args.Error(0)
}

func (m *auditMock) List(ctx context.Context, req auditdomain.ListAuditLogRequest) (auditdomain.ListAuditLogResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(auditdomain.ListAuditLogResponse), args.Error(1)
}

func newTestService(t *testing.T, audit auditdomain.Service) Service {
	t.Helper()

	enforcer, err := NewEnforcer(dbtest.Open(t))
	require.NoError(t, err)

	return NewService(Params{Log: zap.NewNop(), Enforcer: enforcer, AuditSvc: audit})
}

func TestUserManagesBusinessObjects(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	for _, object := range []string{ObjectCliente, ObjectFactura, ObjectPacking, ObjectCobranza} {
		for _, action := range []string{ActionView, ActionCreate, ActionUpdate, ActionDelete} {
			assert.NoError(t, svc.Authorize(ctx, "user", object, action), "%s %s", object, action)
		}
	}
}

func TestUserCannotManageUsuarios(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Authorize(ctx, "user", ObjectUsuario, ActionView), ErrForbidden)
	assert.ErrorIs(t, svc.Authorize(ctx, "user", ObjectUsuario, ActionUpdate), ErrForbidden)
	assert.ErrorIs(t, svc.Authorize(ctx, "user", ObjectAuditLog, ActionView), ErrForbidden)
}

func TestAdminInheritsUserPolicies(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	assert.NoError(t, svc.Authorize(ctx, "admin", ObjectUsuario, ActionDelete))
	assert.NoError(t, svc.Authorize(ctx, "ADMIN", ObjectAuditLog, ActionView))
	assert.NoError(t, svc.Authorize(ctx, "admin", ObjectCompra, ActionCreate))
	assert.ErrorIs(t, svc.Authorize(ctx, "admin", ObjectAuditLog, ActionDelete), ErrForbidden)
}

func TestUnknownRoleIsForbidden(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Authorize(ctx, "guest", ObjectCliente, ActionView), ErrForbidden)
	assert.ErrorIs(t, svc.Authorize(ctx, "", ObjectCliente, ActionView), ErrInvalidRole)
	assert.ErrorIs(t, svc.Authorize(ctx, "user", "", ActionView), ErrInvalidObject)
	assert.ErrorIs(t, svc.Authorize(ctx, "user", ObjectCliente, ""), ErrInvalidAction)
}

func TestDeniedRequestsAreAudited(t *testing.T) {
	audit := &auditMock{}
	audit.On("AuditLog", mock.Anything, "authorization.denied", "authorization", (*string)(nil), mock.MatchedBy(func(m map[string]any) bool {
		return m["object"] == ObjectUsuario && m["action"] == ActionCreate && m["role"] == "user"
	})).Return(nil).Once()

	svc := newTestService(t, audit)
	assert.ErrorIs(t, svc.Authorize(context.Background(), "user", ObjectUsuario, ActionCreate), ErrForbidden)
	audit.AssertExpectations(t)
}

func TestSeedingTwiceIsIdempotent(t *testing.T) {
	conn := dbtest.Open(t)

	_, err := NewEnforcer(conn)
	require.NoError(t, err)
	enforcer, err := NewEnforcer(conn)
	require.NoError(t, err)

	policies, err := enforcer.GetPolicy()
	require.NoError(t, err)
	assert.Len(t, policies, 8*4+2)
}

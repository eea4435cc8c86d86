package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/maderas/backend/internal/audit/domain"
	"github.com/maderas/backend/internal/audit/repository"
	"github.com/maderas/backend/internal/dbtest"
	obscontext "github.com/maderas/backend/internal/observability/context"
	"github.com/maderas/backend/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:    dbtest.OpenWithSchema(t),
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	}).(*Service)

	base := time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return svc
}

func TestAuditLogCapturesRequestContext(t *testing.T) {
	svc := newTestService(t)

	ctx := obscontext.WithRequestID(context.Background(), "req-123")
	ctx = obscontext.WithActor(ctx, obscontext.Actor{ID: "77", Role: "admin"})
	ctx = obscontext.WithClient(ctx, "10.0.0.1", "curl/8.0")

	target := "555"
	require.NoError(t, svc.AuditLog(ctx, "factura.create", "factura", &target, map[string]any{
		"factura_nro": "F001-1",
		"password":    "no-deberia-verse",
	}))

	res, err := svc.List(context.Background(), auditdomain.ListAuditLogRequest{})
	require.NoError(t, err)
	require.Len(t, res.AuditLogs, 1)

	entry := res.AuditLogs[0]
	assert.Equal(t, "factura.create", entry.Action)
	require.NotNil(t, entry.ActorID)
	assert.Equal(t, "77", *entry.ActorID)
	require.NotNil(t, entry.TargetID)
	assert.Equal(t, "555", *entry.TargetID)
	require.NotNil(t, entry.IPAddress)
	assert.Equal(t, "10.0.0.1", *entry.IPAddress)
	assert.Equal(t, "req-123", entry.Metadata["request_id"])
	assert.Equal(t, "admin", entry.Metadata["actor_role"])
	assert.Equal(t, "F001-1", entry.Metadata["factura_nro"])
	assert.NotEqual(t, "no-deberia-verse", entry.Metadata["password"])
}

func TestAuditLogRequiresAction(t *testing.T) {
	svc := newTestService(t)
	err := svc.AuditLog(context.Background(), " ", "cliente", nil, nil)
	assert.ErrorIs(t, err, auditdomain.ErrInvalidAction)
}

func TestListPagesNewestFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, action := range []string{"cliente.create", "cliente.update", "cliente.delete", "flete.create", "flete.update"} {
		require.NoError(t, svc.AuditLog(ctx, action, "entity", nil, nil))
	}

	first, err := svc.List(ctx, auditdomain.ListAuditLogRequest{Pagination: pagination.Pagination{PageSize: 2}})
	require.NoError(t, err)
	require.Len(t, first.AuditLogs, 2)
	assert.True(t, first.HasMore)
	assert.Equal(t, "flete.update", first.AuditLogs[0].Action)
	assert.Equal(t, "flete.create", first.AuditLogs[1].Action)

	second, err := svc.List(ctx, auditdomain.ListAuditLogRequest{
		Pagination: pagination.Pagination{PageSize: 2, PageToken: first.NextPageToken},
	})
	require.NoError(t, err)
	require.Len(t, second.AuditLogs, 2)
	assert.Equal(t, "cliente.delete", second.AuditLogs[0].Action)

	third, err := svc.List(ctx, auditdomain.ListAuditLogRequest{
		Pagination: pagination.Pagination{PageSize: 2, PageToken: second.NextPageToken},
	})
	require.NoError(t, err)
	require.Len(t, third.AuditLogs, 1)
	assert.False(t, third.HasMore)
	assert.Equal(t, "cliente.create", third.AuditLogs[0].Action)

	filtered, err := svc.List(ctx, auditdomain.ListAuditLogRequest{Action: "flete.create"})
	require.NoError(t, err)
	assert.Len(t, filtered.AuditLogs, 1)
}

func TestListRejectsBadInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.List(ctx, auditdomain.ListAuditLogRequest{Pagination: pagination.Pagination{PageToken: "###"}})
	assert.ErrorIs(t, err, auditdomain.ErrInvalidPageToken)

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	_, err = svc.List(ctx, auditdomain.ListAuditLogRequest{StartAt: &start, EndAt: &end})
	assert.ErrorIs(t, err, auditdomain.ErrInvalidTimeRange)
}

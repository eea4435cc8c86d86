package authorization

import (
	"context"
	_ "embed"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	auditdomain "github.com/maderas/backend/internal/audit/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

const (
	ObjectCliente       = "clientes"
	ObjectProveedor     = "proveedores"
	ObjectTransportista = "transportistas"
	ObjectCompra        = "compras"
	ObjectFactura       = "facturas"
	ObjectCobranza      = "cobranzas"
	ObjectFlete         = "fletes"
	ObjectPacking       = "packing"
	ObjectUsuario       = "usuarios"
	ObjectAuditLog      = "audit_logs"
)

const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

const (
	RoleAdmin = "role:admin"
	RoleUser  = "role:user"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
	AuditSvc auditdomain.Service `optional:"true"`
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
	auditSvc auditdomain.Service
}

// NewEnforcer loads policies from casbin_rule and seeds the built-in ones.
func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	if err := enforcer.BuildRoleLinks(); err != nil {
		return nil, err
	}
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
		auditSvc: p.AuditSvc,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, role string, object string, action string) error {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return ErrInvalidRole
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	allowed, err := s.enforcer.Enforce(subject(role), object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.auditDenied(ctx, role, object, action)
		return ErrForbidden
	}
	return nil
}

func (s *ServiceImpl) auditDenied(ctx context.Context, role string, object string, action string) {
	if s.auditSvc == nil {
		return
	}
	if err := s.auditSvc.AuditLog(ctx, "authorization.denied", "authorization", nil, map[string]any{
		"object": object,
		"action": action,
		"role":   role,
	}); err != nil {
		s.log.Warn("failed to audit denied request", zap.Error(err))
	}
}

func subject(role string) string {
	if strings.HasPrefix(role, "role:") {
		return role
	}
	return "role:" + role
}

func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	business := []string{
		ObjectCliente,
		ObjectProveedor,
		ObjectTransportista,
		ObjectCompra,
		ObjectFactura,
		ObjectCobranza,
		ObjectFlete,
		ObjectPacking,
	}

	policies := make([][]string, 0, len(business)*4+2)
	for _, object := range business {
		for _, action := range []string{ActionView, ActionCreate, ActionUpdate, ActionDelete} {
			policies = append(policies, []string{RoleUser, object, action})
		}
	}
	policies = append(policies,
		[]string{RoleAdmin, ObjectUsuario, "*"},
		[]string{RoleAdmin, ObjectAuditLog, ActionView},
	)

	for _, policy := range policies {
		if _, err := enforcer.AddPolicy(policy); err != nil {
			return err
		}
	}

	// Admins inherit everything users may do.
	_, err := enforcer.AddGroupingPolicy(RoleAdmin, RoleUser)
	return err
}

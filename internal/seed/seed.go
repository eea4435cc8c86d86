// Package seed bootstraps the first administrator account.
package seed

import (
	"context"
	"errors"
	"strings"

	authdomain "github.com/maderas/backend/internal/auth/domain"
	"github.com/maderas/backend/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const defaultAdminNombre = "Administrador"

var Module = fx.Module("seed",
	fx.Invoke(bootstrap),
)

var ErrAdminCredentials = errors.New("admin email and password are required")

type AdminRequest struct {
	Nombre   string
	Email    string
	Password string
}

// EnsureAdmin registers an admin account unless one already exists. It
// reports whether a new account was created.
func EnsureAdmin(ctx context.Context, svc authdomain.Service, req AdminRequest) (bool, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return false, ErrAdminCredentials
	}

	admins, err := svc.List(ctx, authdomain.ListUserRequest{Rol: authdomain.RoleAdmin})
	if err != nil {
		return false, err
	}
	if len(admins) > 0 {
		return false, nil
	}

	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		nombre = defaultAdminNombre
	}
	_, err = svc.Register(ctx, authdomain.RegisterRequest{
		Nombre:   nombre,
		Email:    email,
		Password: req.Password,
		Rol:      authdomain.RoleAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func bootstrap(lc fx.Lifecycle, cfg config.Config, svc authdomain.Service, log *zap.Logger) {
	if cfg.BootstrapAdminEmail == "" || cfg.BootstrapAdminPassword == "" {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			created, err := EnsureAdmin(ctx, svc, AdminRequest{
				Email:    cfg.BootstrapAdminEmail,
				Password: cfg.BootstrapAdminPassword,
			})
			if err != nil {
				return err
			}
			if created {
				log.Info("bootstrap admin created", zap.String("email", cfg.BootstrapAdminEmail))
			}
			return nil
		},
	})
}

// Command maderas-admin runs one-off maintenance tasks against the database.
//
//	maderas-admin migrate
//	maderas-admin create-user -email ana@maderas.pe -nombre "Ana" -rol admin
//
// create-user reads the password from MADERAS_ADMIN_PASSWORD when -password
// is not given.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/auth"
	authdomain "github.com/maderas/backend/internal/auth/domain"
	"github.com/maderas/backend/internal/config"
	"github.com/maderas/backend/internal/migration"
	"github.com/maderas/backend/internal/observability"
	"github.com/maderas/backend/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "migrate":
		err = runMigrate()
	case "create-user":
		err = runCreateUser(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: maderas-admin <migrate|create-user> [flags]")
}

func runMigrate() error {
	return runOnce(fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := migration.RunMigrations(sqlDB, cfg.DBType); err != nil {
			return err
		}
		log.Info("migrations finished", zap.String("type", cfg.DBType))
		return nil
	}))
}

func runCreateUser(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	nombre := fs.String("nombre", "", "display name")
	rol := fs.String("rol", authdomain.RoleAdmin, "admin or user")
	password := fs.String("password", "", "account password (defaults to $MADERAS_ADMIN_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		*password = os.Getenv("MADERAS_ADMIN_PASSWORD")
	}
	if *email == "" || *password == "" {
		return errors.New("create-user needs -email and a password")
	}

	return runOnce(
		migration.Module,
		auth.Module,
		fx.Invoke(func(lc fx.Lifecycle, svc authdomain.Service, log *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					user, err := svc.Register(ctx, authdomain.RegisterRequest{
						Nombre:   *nombre,
						Email:    *email,
						Password: *password,
						Rol:      *rol,
					})
					if err != nil {
						return err
					}
					log.Info("user created",
						zap.String("user_id", user.ID.String()),
						zap.String("email", user.Email),
						zap.String("rol", user.Rol),
					)
					return nil
				},
			})
		}),
	)
}

// runOnce builds the database stack with opts, runs the start hooks and stops.
func runOnce(opts ...fx.Option) error {
	base := []fx.Option{
		fx.NopLogger,
		config.Module,
		observability.Module,
		fx.Provide(func() (*snowflake.Node, error) { return snowflake.NewNode(1) }),
		db.Module,
	}
	app := fx.New(append(base, opts...)...)
	if err := app.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		return err
	}
	return app.Stop(ctx)
}

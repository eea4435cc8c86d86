package auth

import (
	"github.com/maderas/backend/internal/auth/repository"
	"github.com/maderas/backend/internal/auth/service"
	"github.com/maderas/backend/internal/auth/token"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(token.NewFromConfig),
	fx.Provide(service.New),
)

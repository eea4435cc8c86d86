package client

import (
	"github.com/maderas/backend/internal/client/repository"
	"github.com/maderas/backend/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

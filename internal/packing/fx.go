package packing

import (
	"github.com/maderas/backend/internal/packing/repository"
	"github.com/maderas/backend/internal/packing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("packing.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package supplier

import (
	"github.com/maderas/backend/internal/supplier/repository"
	"github.com/maderas/backend/internal/supplier/service"
	"go.uber.org/fx"
)

var Module = fx.Module("supplier.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

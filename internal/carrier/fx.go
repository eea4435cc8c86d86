package carrier

import (
	"github.com/maderas/backend/internal/carrier/repository"
	"github.com/maderas/backend/internal/carrier/service"
	"go.uber.org/fx"
)

var Module = fx.Module("carrier.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

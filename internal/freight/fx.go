package freight

import (
	"github.com/maderas/backend/internal/freight/repository"
	"github.com/maderas/backend/internal/freight/service"
	"go.uber.org/fx"
)

var Module = fx.Module("freight.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

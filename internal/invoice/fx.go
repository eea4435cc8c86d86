package invoice

import (
	"github.com/maderas/backend/internal/invoice/repository"
	"github.com/maderas/backend/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

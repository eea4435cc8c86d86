package purchase

import (
	"github.com/maderas/backend/internal/purchase/repository"
	"github.com/maderas/backend/internal/purchase/service"
	"go.uber.org/fx"
)

var Module = fx.Module("purchase.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

package audit

import (
	"github.com/maderas/backend/internal/audit/repository"
	"github.com/maderas/backend/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)

package notification

import (
	"github.com/parishlabs/tdrms/internal/notification/repository"
	"github.com/parishlabs/tdrms/internal/notification/service"
	"go.uber.org/fx"
)

var Module = fx.Module("notification.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

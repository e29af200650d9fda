package receipt

import (
	"github.com/parishlabs/tdrms/internal/receipt/repository"
	"github.com/parishlabs/tdrms/internal/receipt/service"
	"go.uber.org/fx"
)

var Module = fx.Module("receipt.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

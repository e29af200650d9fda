package verification

import (
	"github.com/parishlabs/tdrms/internal/verification/service"
	"go.uber.org/fx"
)

var Module = fx.Module("verification.service",
	fx.Provide(service.New),
)

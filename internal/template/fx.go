package template

import (
	"github.com/parishlabs/tdrms/internal/template/repository"
	"github.com/parishlabs/tdrms/internal/template/service"
	"go.uber.org/fx"
)

var Module = fx.Module("template.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

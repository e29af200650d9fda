package auth

import (
	"github.com/parishlabs/tdrms/internal/auth/repository"
	"github.com/parishlabs/tdrms/internal/auth/service"
	"github.com/parishlabs/tdrms/internal/auth/session"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.ProvideUserRepository),
	fx.Provide(repository.ProvideSessionRepository),
	fx.Provide(service.New),
	fx.Provide(session.NewManager),
)

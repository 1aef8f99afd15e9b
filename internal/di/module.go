package di

import (
	"github.com/polkiloo/passmint/internal/adapter/ledger"
	"github.com/polkiloo/passmint/internal/adapter/oracle"
	"github.com/polkiloo/passmint/internal/app"
	"github.com/polkiloo/passmint/internal/config"
	"github.com/polkiloo/passmint/internal/logger"
	"github.com/polkiloo/passmint/internal/pkg/auth"
	"github.com/polkiloo/passmint/internal/server/http/handlers"
	"github.com/polkiloo/passmint/internal/server/http/router"
	"github.com/polkiloo/passmint/internal/storage/postgres"
	"github.com/polkiloo/passmint/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		oracle.Module,
		ledger.Module,
		usecase.Module,
		fx.Provide(func(f *app.PassmintFacade) handlers.PassmintFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/passmint/internal/adapter/oracle"
	"github.com/polkiloo/passmint/internal/config"
	pkgAuth "github.com/polkiloo/passmint/internal/pkg/auth"
	"github.com/polkiloo/passmint/internal/usecase"
	"github.com/polkiloo/passmint/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newFacade,
		newHTTPServer,
		newPriceSampler,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Pricing    *usecase.PricingUseCase
	Membership *usecase.MembershipUseCase
	Oracles    *oracle.Gateway
	Guard      *pkgAuth.PrincipalGuard
	Logger     *slog.Logger
	Config     *config.Config
}

func newFacade(p facadeParams) *PassmintFacade {
	return NewPassmintFacade(p.Pricing, p.Membership, p.Oracles, p.Guard, p.Logger, p.Config.DescriptorBaseURI)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type samplerParams struct {
	fx.In

	Facade *PassmintFacade
	Config *config.Config
	Logger *slog.Logger
}

func newPriceSampler(p samplerParams) *worker.PriceSampler {
	return worker.NewPriceSampler(p.Facade, p.Config.PriceSampleInterval, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Ctx        context.Context
	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Sampler    *worker.PriceSampler
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting passmint", slog.String("addr", p.Server.Addr))
			// the hook context dies when startup finishes; the sampler
			// runs for the process lifetime, so it gets the process
			// context instead.
			p.Sampler.Start(p.Ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Sampler.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("passmint stopped")
			return nil
		},
	})
}

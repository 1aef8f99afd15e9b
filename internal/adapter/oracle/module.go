package oracle

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/passmint/internal/config"
)

// Module exposes the oracle gateway to the fx graph.
var Module = fx.Provide(newGateway)

type gatewayParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newGateway(p gatewayParams) (*Gateway, error) {
	mtop, err := NewHTTPSource(p.Config.MtopOracleAddress, p.Logger)
	if err != nil {
		return nil, err
	}
	native, err := NewHTTPSource(p.Config.NativeOracleAddress, p.Logger)
	if err != nil {
		return nil, err
	}
	return NewGateway(mtop, native), nil
}

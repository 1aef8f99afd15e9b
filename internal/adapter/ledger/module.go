package ledger

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/passmint/internal/config"
)

// Module exposes the ledger client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.LedgerAddress, p.Logger)
}

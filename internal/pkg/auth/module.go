package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/passmint/internal/config"
)

// Module provides the admin principal guard via fx.
var Module = fx.Provide(newPrincipalGuard)

type guardParams struct {
	fx.In

	Config *config.Config
}

func newPrincipalGuard(p guardParams) (*PrincipalGuard, error) {
	return NewPrincipalGuard(p.Config.AdminKey)
}

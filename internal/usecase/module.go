package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/passmint/internal/adapter/ledger"
	"github.com/polkiloo/passmint/internal/adapter/oracle"
	"github.com/polkiloo/passmint/internal/config"
	"github.com/polkiloo/passmint/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newPricingUseCase,
	newMembershipUseCase,
)

type pricingParams struct {
	fx.In

	Gateway *oracle.Gateway
	Config  *config.Config
}

func newPricingUseCase(p pricingParams) *PricingUseCase {
	return NewPricingUseCase(p.Gateway, p.Config.MtopDecimals)
}

type membershipParams struct {
	fx.In

	Passes  repository.PassRepository
	Pricing *PricingUseCase
	Funds   ledger.Client
	Config  *config.Config
}

func newMembershipUseCase(p membershipParams) *MembershipUseCase {
	return NewMembershipUseCase(p.Passes, p.Pricing, p.Funds, p.Config.FeeCollector, p.Config.CustodyAccount)
}

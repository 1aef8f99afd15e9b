package usecase

import (
	"context"
	"math/big"

	"github.com/polkiloo/passmint/internal/adapter/oracle"
	"github.com/polkiloo/passmint/internal/catalog"
	"github.com/polkiloo/passmint/internal/domain/model"
	"github.com/polkiloo/passmint/internal/pkg/fixedpoint"
)

// workingDecimals is the precision of intermediate division results
// before the final rescale to a currency's native precision.
const workingDecimals = 12

// paymentDecimals is the payment currency's native precision.
const paymentDecimals = 18

// PriceGateway reads current USD prices for the two assets.
type PriceGateway interface {
	CurrentPrice(ctx context.Context, asset oracle.Asset) (*big.Int, error)
}

// PricingUseCase converts catalog USD prices into payable amounts of
// the two currencies using live oracle reads.
type PricingUseCase struct {
	oracles      PriceGateway
	mtopDecimals uint8
}

// NewPricingUseCase constructs PricingUseCase.
func NewPricingUseCase(oracles PriceGateway, mtopDecimals uint8) *PricingUseCase {
	return &PricingUseCase{oracles: oracles, mtopDecimals: mtopDecimals}
}

// Quote prices one pass of the tier. The reference USD amount is twice
// the catalog price for every tier; consumers depend on the doubling.
func (u *PricingUseCase) Quote(ctx context.Context, tier model.Tier) (*model.Quote, error) {
	params, err := catalog.Lookup(tier)
	if err != nil {
		return nil, err
	}

	quote := model.ZeroQuote()
	if params.Purchasable {
		mtopAmount, err := u.convert(ctx, params.USDPrice, oracle.AssetMtop, u.mtopDecimals)
		if err != nil {
			return nil, err
		}
		paymentAmount, err := u.convert(ctx, params.USDPrice, oracle.AssetNative, paymentDecimals)
		if err != nil {
			return nil, err
		}
		quote.MtopAmount = mtopAmount
		quote.PaymentAmount = paymentAmount
	}

	// doubled on purpose, for every tier; see Quote doc
	quote.ReferenceUSD = new(big.Int).Mul(params.USDPrice, big.NewInt(2))
	return quote, nil
}

// convert turns a USD amount at 18 decimals into the target currency's
// native precision via one oracle read.
func (u *PricingUseCase) convert(ctx context.Context, usd *big.Int, asset oracle.Asset, targetDecimals uint8) (*big.Int, error) {
	price, err := u.oracles.CurrentPrice(ctx, asset)
	if err != nil {
		return nil, err
	}

	nUSD, nPrice, err := fixedpoint.NormalizePair(
		fixedpoint.NewAmount(usd, catalog.USDDecimals),
		fixedpoint.NewAmount(price, oracle.PriceDecimals),
	)
	if err != nil {
		return nil, err
	}

	intermediate, err := fixedpoint.Div(nUSD.Value, nPrice.Value, workingDecimals)
	if err != nil {
		return nil, err
	}

	return fixedpoint.Rescale(intermediate, workingDecimals, targetDecimals)
}

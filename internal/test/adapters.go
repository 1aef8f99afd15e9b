package test

import (
	"context"
	"math/big"

	"github.com/polkiloo/passmint/internal/adapter/oracle"
)

// PriceGatewayStub serves fixed per-asset prices or a shared error.
type PriceGatewayStub struct {
	Prices map[oracle.Asset]*big.Int
	Err    error
}

// CurrentPrice returns the configured price for the asset.
func (s *PriceGatewayStub) CurrentPrice(ctx context.Context, asset oracle.Asset) (*big.Int, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if price, ok := s.Prices[asset]; ok {
		return new(big.Int).Set(price), nil
	}
	return nil, oracle.ErrUnknownAsset
}

// LedgerTransfer records one executed fund movement.
type LedgerTransfer struct {
	Asset  string
	From   string
	To     string
	Amount *big.Int
}

// LedgerStub records transfers and serves configurable balances.
type LedgerStub struct {
	Transfers      []LedgerTransfer
	Balances       map[string]*big.Int // keyed asset+"/"+account
	TransferFromFn func(ctx context.Context, asset, from, to string, amount *big.Int) error
	TransferFn     func(ctx context.Context, asset, to string, amount *big.Int) error
	BalanceFn      func(ctx context.Context, asset, account string) (*big.Int, error)
}

// TransferFrom records the movement unless an override is installed.
func (s *LedgerStub) TransferFrom(ctx context.Context, asset, from, to string, amount *big.Int) error {
	if s.TransferFromFn != nil {
		if err := s.TransferFromFn(ctx, asset, from, to, amount); err != nil {
			return err
		}
	}
	s.Transfers = append(s.Transfers, LedgerTransfer{Asset: asset, From: from, To: to, Amount: new(big.Int).Set(amount)})
	return nil
}

// Transfer records a custody-out movement unless an override is installed.
func (s *LedgerStub) Transfer(ctx context.Context, asset, to string, amount *big.Int) error {
	if s.TransferFn != nil {
		if err := s.TransferFn(ctx, asset, to, amount); err != nil {
			return err
		}
	}
	s.Transfers = append(s.Transfers, LedgerTransfer{Asset: asset, To: to, Amount: new(big.Int).Set(amount)})
	return nil
}

// Balance serves the configured balance, defaulting to zero.
func (s *LedgerStub) Balance(ctx context.Context, asset, account string) (*big.Int, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, asset, account)
	}
	if b, ok := s.Balances[asset+"/"+account]; ok {
		return new(big.Int).Set(b), nil
	}
	return new(big.Int), nil
}

package dto

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// ErrBadAmount indicates an amount string that is not a valid quantity
// at the asset's precision.
var ErrBadAmount = errors.New("malformed amount")

// FormatUnits renders base units as a decimal string at the given
// precision, e.g. 15e18 at 18 decimals becomes "15".
func FormatUnits(v *big.Int, decimals uint8) string {
	return decimal.NewFromBigInt(v, -int32(decimals)).String()
}

// ParseUnits converts a decimal string into base units at the given
// precision. Quantities finer than one base unit are rejected rather
// than rounded, so a wire amount always round-trips exactly.
func ParseUnits(s string, decimals uint8) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, ErrBadAmount
	}
	shifted := d.Shift(int32(decimals))
	if !shifted.IsInteger() || shifted.Sign() < 0 {
		return nil, ErrBadAmount
	}
	return shifted.BigInt(), nil
}

package errors

import "errors"

var (
	ErrPassNotFound       = errors.New("pass not found")
	ErrPassAlreadyExists  = errors.New("pass already exists")
	ErrUnknownTier        = errors.New("unknown tier")
	ErrTierNotPurchasable = errors.New("tier is not purchasable")
	ErrPaymentMismatch    = errors.New("attached payment does not match quote")
)

package model

import "math/big"

// Quote is the price of one pass at the moment of the oracle reads.
// MtopAmount is denominated in the membership token's native decimals,
// PaymentAmount in the payment currency's 18 decimals. ReferenceUSD is
// twice the catalog USD price for every tier; downstream consumers
// depend on the doubling, so it must not be "corrected".
type Quote struct {
	MtopAmount    *big.Int
	PaymentAmount *big.Int
	ReferenceUSD  *big.Int
}

// ZeroQuote returns the quote for a tier that cannot be purchased.
func ZeroQuote() *Quote {
	return &Quote{
		MtopAmount:    new(big.Int),
		PaymentAmount: new(big.Int),
		ReferenceUSD:  new(big.Int),
	}
}

package dto

import "time"

// PurchaseRequest describes a pass purchase. Payment is a decimal
// string in whole units of the payment currency and must match the
// quoted amount exactly.
type PurchaseRequest struct {
	Buyer     string `json:"buyer"`
	Recipient string `json:"recipient"`
	Tier      string `json:"tier"`
	Payment   string `json:"payment"`
}

// GrantRequest describes an administrative grant.
type GrantRequest struct {
	Recipient string `json:"recipient"`
	Tier      string `json:"tier"`
}

// PassResponse describes one issued pass. For an unknown identifier the
// lookup endpoint answers 404 with a zero expires_at sentinel.
type PassResponse struct {
	ID        uint64    `json:"id"`
	Owner     string    `json:"owner,omitempty"`
	Tier      string    `json:"tier,omitempty"`
	ExpiresAt uint64    `json:"expires_at"`
	IssuedAt  time.Time `json:"issued_at,omitzero"`
}

// DescriptorResponse carries the descriptor URI of a pass.
type DescriptorResponse struct {
	Descriptor string `json:"descriptor"`
}

// StatusResponse summarizes registry state.
type StatusResponse struct {
	IssuedPasses uint64 `json:"issued_passes"`
	FeeCollector string `json:"fee_collector"`
}

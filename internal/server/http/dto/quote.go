package dto

// QuoteResponse carries the price of one pass. Amounts are decimal
// strings in whole units of the respective asset.
type QuoteResponse struct {
	Tier          string `json:"tier"`
	MtopAmount    string `json:"mtop_amount"`
	PaymentAmount string `json:"payment_amount"`
	ReferenceUSD  string `json:"reference_usd"`
}

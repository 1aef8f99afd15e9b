package dto

// OracleSwapRequest replaces one price source with a new feed URL.
type OracleSwapRequest struct {
	Address string `json:"address"`
}

// FeeCollectorRequest replaces the fee collector ledger account.
type FeeCollectorRequest struct {
	Account string `json:"account"`
}

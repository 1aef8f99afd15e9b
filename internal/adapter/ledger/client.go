package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/url"
	"path"
	"time"
)

// Asset names used on the ledger wire.
const (
	AssetMtop   = "mtop"
	AssetNative = "native"
)

// ErrBadBalance indicates the ledger returned a malformed balance.
var ErrBadBalance = errors.New("ledger returned malformed balance")

// TransferDeclinedError is a settlement refusal reported by the ledger,
// as opposed to a transport failure. Both abort an issuance.
type TransferDeclinedError struct {
	Reason string
}

func (e TransferDeclinedError) Error() string {
	return fmt.Sprintf("transfer declined: %s", e.Reason)
}

// Client exposes the fund-movement primitives the issuance flow needs.
// Every call is synchronous; there is no partial settlement.
type Client interface {
	TransferFrom(ctx context.Context, asset, from, to string, amount *big.Int) error
	Transfer(ctx context.Context, asset, to string, amount *big.Int) error
	Balance(ctx context.Context, asset, account string) (*big.Int, error)
}

// HTTPClient implements Client against the token-ledger HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type transferRequest struct {
	Asset  string `json:"asset"`
	From   string `json:"from,omitempty"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type declineResponse struct {
	Reason string `json:"reason"`
}

type balanceResponse struct {
	Balance string `json:"balance"`
}

// NewHTTPClient creates a ledger client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse ledger url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("ledger url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// TransferFrom moves amount of asset from payer to payee on the payer's
// prior authorization.
func (c *HTTPClient) TransferFrom(ctx context.Context, asset, from, to string, amount *big.Int) error {
	return c.post(ctx, "/api/transfer-from", transferRequest{Asset: asset, From: from, To: to, Amount: amount.String()})
}

// Transfer moves amount of asset out of the service custody account.
func (c *HTTPClient) Transfer(ctx context.Context, asset, to string, amount *big.Int) error {
	return c.post(ctx, "/api/transfer", transferRequest{Asset: asset, To: to, Amount: amount.String()})
}

// Balance reads the current asset balance of an account.
func (c *HTTPClient) Balance(ctx context.Context, asset, account string) (*big.Int, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/balances/", asset, account)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("ledger balance request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("ledger error: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var data balanceResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}
	balance, ok := new(big.Int).SetString(data.Balance, 10)
	if !ok || balance.Sign() < 0 {
		return nil, ErrBadBalance
	}
	return balance, nil
}

func (c *HTTPClient) post(ctx context.Context, relPath string, payload transferRequest) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, relPath)

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusPaymentRequired, http.StatusUnprocessableEntity:
		respBody, _ := io.ReadAll(resp.Body)
		var decline declineResponse
		_ = json.Unmarshal(respBody, &decline)
		if decline.Reason == "" {
			decline.Reason = resp.Status
		}
		return TransferDeclinedError{Reason: decline.Reason}
	default:
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("ledger transfer failed", slog.Int("status", resp.StatusCode), slog.String("body", string(respBody)))
		return fmt.Errorf("ledger error: %s", resp.Status)
	}
}

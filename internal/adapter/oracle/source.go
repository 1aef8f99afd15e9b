package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/url"
	"time"
)

// PriceDecimals is the fixed precision of every oracle read.
const PriceDecimals = 8

// ErrBadPrice indicates the oracle returned a malformed or negative price.
var ErrBadPrice = errors.New("oracle returned malformed price")

// Source is one external price feed. Each call is a fresh synchronous
// read; staleness and failure handling live inside the oracle, not here.
type Source interface {
	CurrentPrice(ctx context.Context) (*big.Int, error)
}

// HTTPSource reads the current price from an HTTP price feed.
type HTTPSource struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// response mirrors the JSON payload of the price feed. The price is an
// integer string at 8 decimals.
type response struct {
	Price string `json:"price"`
}

// NewHTTPSource creates an HTTP price source with default timeout.
func NewHTTPSource(baseURL string, logger *slog.Logger) (*HTTPSource, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse oracle url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("oracle url must be absolute")
	}
	return &HTTPSource{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CurrentPrice fetches the latest price from the feed.
func (s *HTTPSource) CurrentPrice(ctx context.Context) (*big.Int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		s.logger.Error("oracle request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("oracle error: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var data response
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}

	price, ok := new(big.Int).SetString(data.Price, 10)
	if !ok || price.Sign() < 0 {
		return nil, ErrBadPrice
	}
	return price, nil
}

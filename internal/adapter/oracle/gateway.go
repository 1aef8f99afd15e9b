package oracle

import (
	"context"
	"errors"
	"math/big"
	"sync"
)

// Asset names the two priced assets.
type Asset string

const (
	AssetMtop   Asset = "mtop"   // membership token / USD
	AssetNative Asset = "native" // payment currency / USD
)

// ErrUnknownAsset indicates an asset outside the two priced feeds.
var ErrUnknownAsset = errors.New("unknown oracle asset")

// ParseAsset maps a wire string onto a priced asset.
func ParseAsset(s string) (Asset, bool) {
	switch Asset(s) {
	case AssetMtop, AssetNative:
		return Asset(s), true
	}
	return "", false
}

// Gateway holds the two swappable price sources. Replacing a source
// has no transition validation: readers that already obtained the old
// source finish with it, later reads use the new one.
type Gateway struct {
	mu      sync.RWMutex
	sources map[Asset]Source
}

// NewGateway builds a gateway over the two initial sources.
func NewGateway(mtop, native Source) *Gateway {
	return &Gateway{
		sources: map[Asset]Source{
			AssetMtop:   mtop,
			AssetNative: native,
		},
	}
}

// CurrentPrice performs one fresh read from the source of the asset.
func (g *Gateway) CurrentPrice(ctx context.Context, asset Asset) (*big.Int, error) {
	g.mu.RLock()
	src, ok := g.sources[asset]
	g.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownAsset
	}
	return src.CurrentPrice(ctx)
}

// Replace swaps the source for an asset. Restricted to the privileged
// principal at the HTTP boundary.
func (g *Gateway) Replace(asset Asset, src Source) error {
	if _, ok := ParseAsset(string(asset)); !ok {
		return ErrUnknownAsset
	}
	g.mu.Lock()
	g.sources[asset] = src
	g.mu.Unlock()
	return nil
}

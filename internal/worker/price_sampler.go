package worker

import (
	"context"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/polkiloo/passmint/internal/adapter/oracle"
)

// PriceReader exposes the subset of application functionality the
// sampler needs.
type PriceReader interface {
	SamplePrice(ctx context.Context, asset oracle.Asset) (*big.Int, error)
}

// PriceSampler periodically reads both oracle feeds and logs the
// prices. Observability only: samples never feed back into pricing,
// every quote still reads the oracles directly.
type PriceSampler struct {
	reader   PriceReader
	interval time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPriceSampler constructs the background price sampler.
func NewPriceSampler(reader PriceReader, interval time.Duration, logger *slog.Logger) *PriceSampler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &PriceSampler{
		reader:   reader,
		interval: interval,
		logger:   logger,
	}
}

// Start launches background sampling.
func (s *PriceSampler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(runCtx)
}

// Stop waits for the sampling loop to finish.
func (s *PriceSampler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *PriceSampler) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sample(ctx)
		}
	}
}

func (s *PriceSampler) sample(ctx context.Context) {
	for _, asset := range []oracle.Asset{oracle.AssetMtop, oracle.AssetNative} {
		price, err := s.reader.SamplePrice(ctx, asset)
		if err != nil {
			s.logger.Error("price sample failed",
				slog.String("asset", string(asset)),
				slog.String("error", err.Error()),
			)
			continue
		}
		s.logger.Info("price sample",
			slog.String("asset", string(asset)),
			slog.String("price", price.String()),
		)
	}
}

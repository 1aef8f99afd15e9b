package worker

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/polkiloo/passmint/internal/adapter/oracle"
)

type readerStub struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (r *readerStub) SamplePrice(ctx context.Context, asset oracle.Asset) (*big.Int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return big.NewInt(100_000_000), nil
}

func (r *readerStub) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func TestPriceSamplerSamplesBothAssets(t *testing.T) {
	reader := &readerStub{}
	var buf bytes.Buffer
	var bufMu sync.Mutex
	logger := slog.New(slog.NewJSONHandler(&syncWriter{mu: &bufMu, buf: &buf}, nil))

	sampler := NewPriceSampler(reader, 10*time.Millisecond, logger)
	sampler.Start(context.Background())

	deadline := time.After(2 * time.Second)
	for reader.callCount() < 2 {
		select {
		case <-deadline:
			t.Fatal("sampler never read both feeds")
		case <-time.After(5 * time.Millisecond):
		}
	}
	sampler.Stop()

	bufMu.Lock()
	out := buf.String()
	bufMu.Unlock()
	if !strings.Contains(out, string(oracle.AssetMtop)) || !strings.Contains(out, string(oracle.AssetNative)) {
		t.Fatalf("expected samples for both assets, got %s", out)
	}
}

func TestPriceSamplerLogsErrors(t *testing.T) {
	reader := &readerStub{err: errors.New("oracle down")}
	var buf bytes.Buffer
	var bufMu sync.Mutex
	logger := slog.New(slog.NewJSONHandler(&syncWriter{mu: &bufMu, buf: &buf}, nil))

	sampler := NewPriceSampler(reader, 10*time.Millisecond, logger)
	sampler.Start(context.Background())

	deadline := time.After(2 * time.Second)
	for reader.callCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("sampler never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}
	sampler.Stop()

	bufMu.Lock()
	out := buf.String()
	bufMu.Unlock()
	if !strings.Contains(out, "price sample failed") {
		t.Fatalf("expected failure log, got %s", out)
	}
}

func TestPriceSamplerStopIsIdempotent(t *testing.T) {
	sampler := NewPriceSampler(&readerStub{}, time.Hour, slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)))
	sampler.Start(context.Background())
	sampler.Stop()
	sampler.Stop()
}

type syncWriter struct {
	mu  *sync.Mutex
	buf *bytes.Buffer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

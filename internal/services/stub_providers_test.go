package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stocklens/stocklens/internal/models"
)

func fptr(v float64) *float64 { return &v }

// stubPriceProvider serves canned prices and records call counts.
type stubPriceProvider struct {
	mu     sync.Mutex
	prices map[string]float64
	errs   map[string]error
	delay  time.Duration
	calls  map[string]int
}

func newStubPriceProvider(prices map[string]float64) *stubPriceProvider {
	return &stubPriceProvider{
		prices: prices,
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

func (p *stubPriceProvider) Name() string { return "stub" }

func (p *stubPriceProvider) Quote(ctx context.Context, ticker string) (float64, error) {
	p.mu.Lock()
	p.calls[ticker]++
	p.mu.Unlock()

	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}

	if err, ok := p.errs[ticker]; ok {
		return 0, err
	}
	price, ok := p.prices[ticker]
	if !ok {
		return 0, fmt.Errorf("no price data for %s", ticker)
	}
	return price, nil
}

func (p *stubPriceProvider) callCount(ticker string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[ticker]
}

// stubStatsProvider serves canned fundamentals.
type stubStatsProvider struct {
	mu    sync.Mutex
	stats map[string]models.MarketData
	errs  map[string]error
	calls map[string]int
}

func newStubStatsProvider(stats map[string]models.MarketData) *stubStatsProvider {
	return &stubStatsProvider{
		stats: stats,
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

func (p *stubStatsProvider) Name() string { return "stub" }

func (p *stubStatsProvider) Stats(ctx context.Context, ticker string, exchange models.Exchange) (models.MarketData, error) {
	p.mu.Lock()
	p.calls[ticker]++
	p.mu.Unlock()

	if err, ok := p.errs[ticker]; ok {
		return models.MarketData{}, err
	}
	return p.stats[ticker], nil
}

func (p *stubStatsProvider) callCount(ticker string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[ticker]
}

package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stocklens/stocklens/internal/cache"
	"github.com/stocklens/stocklens/internal/services/quotes"
)

// PriceService resolves batches of tickers to current prices. Lookups
// run concurrently and settle independently: a ticker whose lookup
// fails is simply missing from the result map, it never fails or delays
// the rest of the batch.
type PriceService struct {
	provider quotes.PriceProvider
	cache    *cache.Cache[float64]
	timeout  time.Duration
	log      zerolog.Logger
}

// NewPriceService wires a provider to its cache. The cache TTL should
// match the UI refresh cadence so polling neither defeats the cache nor
// serves data older than one interval.
func NewPriceService(provider quotes.PriceProvider, c *cache.Cache[float64], timeout time.Duration, log zerolog.Logger) *PriceService {
	return &PriceService{
		provider: provider,
		cache:    c,
		timeout:  timeout,
		log:      log.With().Str("component", "prices").Str("provider", provider.Name()).Logger(),
	}
}

// GetPrices returns a ticker -> price map for every ticker that could
// be resolved. The input is deduplicated first; the call returns once
// every lookup has settled.
func (s *PriceService) GetPrices(ctx context.Context, tickers []string) map[string]float64 {
	unique := dedupe(tickers)

	results := make(map[string]float64, len(unique))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, ticker := range unique {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()
			price, ok := s.lookup(ctx, ticker)
			if !ok {
				return
			}
			mu.Lock()
			results[ticker] = price
			mu.Unlock()
		}(ticker)
	}

	wg.Wait()
	return results
}

func (s *PriceService) lookup(ctx context.Context, ticker string) (float64, bool) {
	if price, ok := s.cache.Get(ticker); ok {
		s.log.Debug().Str("ticker", ticker).Float64("price", price).Msg("Price cache hit")
		return price, true
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	price, err := s.provider.Quote(ctx, ticker)
	if err != nil {
		s.log.Warn().Err(err).Str("ticker", ticker).Msg("Price lookup failed")
		return 0, false
	}
	if price <= 0 {
		s.log.Warn().Str("ticker", ticker).Float64("price", price).Msg("Ignoring non-positive price")
		return 0, false
	}

	s.cache.Set(ticker, price)
	s.log.Debug().Str("ticker", ticker).Float64("price", price).Msg("Price fetched")
	return price, true
}

func dedupe(tickers []string) []string {
	seen := make(map[string]struct{}, len(tickers))
	unique := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}
	return unique
}

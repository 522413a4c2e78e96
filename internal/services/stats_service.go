package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stocklens/stocklens/internal/cache"
	"github.com/stocklens/stocklens/internal/models"
	"github.com/stocklens/stocklens/internal/services/quotes"
)

// TickerExchange is the lookup key for fundamentals: the same ticker
// can trade on several venues and the provider needs both parts.
type TickerExchange struct {
	Ticker   string
	Exchange models.Exchange
}

// StatsService resolves batches of (ticker, exchange) pairs to
// fundamentals, with the same cache-then-fetch and partial-failure
// isolation as PriceService. Fundamentals move slowly, so its cache is
// configured with a much longer TTL.
type StatsService struct {
	provider quotes.StatsProvider
	cache    *cache.Cache[models.MarketData]
	timeout  time.Duration
	log      zerolog.Logger
}

// NewStatsService wires a stats provider to its cache.
func NewStatsService(provider quotes.StatsProvider, c *cache.Cache[models.MarketData], timeout time.Duration, log zerolog.Logger) *StatsService {
	return &StatsService{
		provider: provider,
		cache:    c,
		timeout:  timeout,
		log:      log.With().Str("component", "stats").Str("provider", provider.Name()).Logger(),
	}
}

// GetStats returns a ticker -> fundamentals map. Pairs are deduplicated
// by ticker; a failed lookup leaves its ticker out of the map and never
// affects the other lookups.
func (s *StatsService) GetStats(ctx context.Context, pairs []TickerExchange) map[string]models.MarketData {
	unique := dedupePairs(pairs)

	results := make(map[string]models.MarketData, len(unique))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, pair := range unique {
		wg.Add(1)
		go func(pair TickerExchange) {
			defer wg.Done()
			md, ok := s.lookup(ctx, pair)
			if !ok {
				return
			}
			mu.Lock()
			results[pair.Ticker] = md
			mu.Unlock()
		}(pair)
	}

	wg.Wait()
	return results
}

func (s *StatsService) lookup(ctx context.Context, pair TickerExchange) (models.MarketData, bool) {
	key := pair.Ticker + "_" + string(pair.Exchange)

	if md, ok := s.cache.Get(key); ok {
		s.log.Debug().Str("ticker", pair.Ticker).Msg("Stats cache hit")
		return md, true
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	md, err := s.provider.Stats(ctx, pair.Ticker, pair.Exchange)
	if err != nil {
		s.log.Warn().Err(err).Str("ticker", pair.Ticker).Str("exchange", string(pair.Exchange)).Msg("Stats lookup failed")
		return models.MarketData{}, false
	}

	// An empty result is still cached: the page simply has no P/E or
	// EPS rows for this listing and refetching will not change that
	// within the TTL.
	s.cache.Set(key, md)
	return md, true
}

func dedupePairs(pairs []TickerExchange) []TickerExchange {
	seen := make(map[string]struct{}, len(pairs))
	unique := make([]TickerExchange, 0, len(pairs))
	for _, p := range pairs {
		if _, ok := seen[p.Ticker]; ok {
			continue
		}
		seen[p.Ticker] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}

package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"portfolio-tracker/internal/config"
	"portfolio-tracker/internal/marketdata"
)

// QuoteRequest identifies one symbol in a batch quote request.
type QuoteRequest struct {
	Symbol string `json:"symbol" binding:"required"`
	Type   string `json:"type"`
}

// BatchQuote is one row of a batch response. Failed symbols carry an error
// message instead of failing the whole batch.
type BatchQuote struct {
	*marketdata.Quote
	Symbol string `json:"symbol"`
	Error  string `json:"error,omitempty"`
}

// MarketDataService fronts the quote provider with a Redis quote cache and a
// token-bucket limiter so a burst of portfolio refreshes can't hammer the
// upstream.
type MarketDataService struct {
	provider marketdata.Provider
	cache    Cache
	limiter  *rate.Limiter
}

// NewMarketDataService creates the market data service.
func NewMarketDataService(provider marketdata.Provider, cache Cache, cfg config.MarketDataConfig) *MarketDataService {
	rpm := cfg.RequestsPerMinute
	if rpm < 1 {
		rpm = 60
	}
	return &MarketDataService{
		provider: provider,
		cache:    cache,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm),
	}
}

// GetQuote serves a quote from cache when fresh, otherwise waits for limiter
// capacity and asks the provider.
func (s *MarketDataService) GetQuote(ctx context.Context, symbol, assetType string) (*marketdata.Quote, error) {
	var cached marketdata.Quote
	if err := s.cache.GetQuote(ctx, symbol, &cached); err == nil {
		return &cached, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	quote, err := s.provider.GetQuote(ctx, symbol, assetType)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetQuote(ctx, quote.Symbol, quote); err != nil {
		logrus.WithError(err).Debug("quote cache write failed")
	}
	return quote, nil
}

// GetQuotes resolves a batch of symbols. Per-symbol failures are reported
// inline so one bad symbol never fails the batch.
func (s *MarketDataService) GetQuotes(ctx context.Context, requests []QuoteRequest) []BatchQuote {
	results := make([]BatchQuote, 0, len(requests))
	for _, req := range requests {
		quote, err := s.GetQuote(ctx, req.Symbol, req.Type)
		if err != nil {
			results = append(results, BatchQuote{Symbol: req.Symbol, Error: err.Error()})
			continue
		}
		results = append(results, BatchQuote{Quote: quote, Symbol: quote.Symbol})
	}
	return results
}

// GetHistorical returns candles for a symbol over a period.
func (s *MarketDataService) GetHistorical(ctx context.Context, symbol, period, interval string) (*marketdata.HistoricalData, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.provider.GetHistorical(ctx, symbol, period, interval)
}

// Search queries the provider's asset catalog.
func (s *MarketDataService) Search(ctx context.Context, query, assetType string) ([]marketdata.SearchResult, error) {
	return s.provider.Search(ctx, query, assetType)
}

// Trending returns the provider's trending list.
func (s *MarketDataService) Trending(ctx context.Context, assetType string, limit int) ([]marketdata.TrendingAsset, error) {
	return s.provider.Trending(ctx, assetType, limit)
}

package marketdata

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// MockProvider generates randomized market data. It exists so the rest of
// the service can be exercised without keys for a real data vendor; every
// price it returns is fabricated.
type MockProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockProvider seeds a dedicated RNG so quotes vary across restarts.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Name identifies the provider.
func (p *MockProvider) Name() string {
	return "mock"
}

func (p *MockProvider) float() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Float64()
}

// GetQuote fabricates a quote: price in [50, 1050), change in [-10, 10),
// change percent in [-5, 5).
func (p *MockProvider) GetQuote(ctx context.Context, symbol, assetType string) (*Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Quote{
		Symbol:        strings.ToUpper(symbol),
		Price:         p.float()*1000 + 50,
		Change:        (p.float() - 0.5) * 20,
		ChangePercent: (p.float() - 0.5) * 10,
		Volume:        int64(p.float() * 1000000),
		MarketCap:     int64(p.float() * 1000000000),
		High52Week:    p.float()*1200 + 100,
		Low52Week:     p.float()*100 + 10,
		LastUpdated:   time.Now(),
	}, nil
}

// periodDays maps a period string to the number of daily candles.
func periodDays(period string) int {
	switch period {
	case "1Y":
		return 365
	case "6M":
		return 180
	case "3M":
		return 90
	default:
		return 30
	}
}

// GetHistorical fabricates one daily candle per day of the period, oldest
// first, ending today.
func (p *MockProvider) GetHistorical(ctx context.Context, symbol, period, interval string) (*HistoricalData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if period == "" {
		period = "1M"
	}
	if interval == "" {
		interval = "daily"
	}

	days := periodDays(period)
	candles := make([]Candle, 0, days+1)
	for i := days; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i)
		candles = append(candles, Candle{
			Date:   date.Format("2006-01-02"),
			Open:   p.float()*1000 + 50,
			High:   p.float()*1100 + 100,
			Low:    p.float()*900 + 25,
			Close:  p.float()*1000 + 50,
			Volume: int64(p.float() * 1000000),
		})
	}

	return &HistoricalData{
		Symbol:   strings.ToUpper(symbol),
		Period:   period,
		Interval: interval,
		Data:     candles,
	}, nil
}

var mockCatalog = []SearchResult{
	{Symbol: "AAPL", Name: "Apple Inc.", Type: "stock", Exchange: "NASDAQ"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Type: "stock", Exchange: "NASDAQ"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Type: "stock", Exchange: "NASDAQ"},
	{Symbol: "TSLA", Name: "Tesla, Inc.", Type: "stock", Exchange: "NASDAQ"},
	{Symbol: "BTC", Name: "Bitcoin", Type: "cryptocurrency", Exchange: "Crypto"},
	{Symbol: "ETH", Name: "Ethereum", Type: "cryptocurrency", Exchange: "Crypto"},
}

// Search matches the static catalog by symbol or name substring,
// case-insensitive, optionally narrowed by asset type.
func (p *MockProvider) Search(ctx context.Context, query, assetType string) ([]SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	results := []SearchResult{}
	for _, item := range mockCatalog {
		if assetType != "" && assetType != "all" && item.Type != assetType {
			continue
		}
		if strings.Contains(strings.ToLower(item.Symbol), q) ||
			strings.Contains(strings.ToLower(item.Name), q) {
			results = append(results, item)
		}
	}
	return results, nil
}

var mockTrending = []TrendingAsset{
	{Symbol: "AAPL", Name: "Apple Inc.", Type: "stock", Change: 2.5, Volume: 50000000},
	{Symbol: "TSLA", Name: "Tesla, Inc.", Type: "stock", Change: -1.8, Volume: 30000000},
	{Symbol: "BTC", Name: "Bitcoin", Type: "cryptocurrency", Change: 5.2, Volume: 25000000},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Type: "stock", Change: 1.2, Volume: 20000000},
	{Symbol: "ETH", Name: "Ethereum", Type: "cryptocurrency", Change: 3.8, Volume: 18000000},
}

// Trending returns the static trending list, optionally narrowed by asset
// type and capped at limit.
func (p *MockProvider) Trending(ctx context.Context, assetType string, limit int) ([]TrendingAsset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = 10
	}

	results := []TrendingAsset{}
	for _, item := range mockTrending {
		if assetType != "" && assetType != "all" && item.Type != assetType {
			continue
		}
		results = append(results, item)
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

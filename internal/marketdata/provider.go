package marketdata

import (
	"context"
	"fmt"
	"time"

	"portfolio-tracker/internal/config"
)

// Quote is a point-in-time market snapshot for a symbol.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Volume        int64     `json:"volume"`
	MarketCap     int64     `json:"marketCap"`
	High52Week    float64   `json:"high52Week"`
	Low52Week     float64   `json:"low52Week"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// Candle is one bar of historical price data.
type Candle struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// HistoricalData bundles candles with the request that produced them.
type HistoricalData struct {
	Symbol   string   `json:"symbol"`
	Period   string   `json:"period"`
	Interval string   `json:"interval"`
	Data     []Candle `json:"data"`
}

// SearchResult is one asset catalog entry matched by a search.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Exchange string `json:"exchange"`
}

// TrendingAsset is one row of the trending list.
type TrendingAsset struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Change float64 `json:"change"`
	Volume int64   `json:"volume"`
}

// Provider serves market data. Implementations must be safe for concurrent
// use; all methods honor context cancellation.
type Provider interface {
	GetQuote(ctx context.Context, symbol, assetType string) (*Quote, error)
	GetHistorical(ctx context.Context, symbol, period, interval string) (*HistoricalData, error)
	Search(ctx context.Context, query, assetType string) ([]SearchResult, error)
	Trending(ctx context.Context, assetType string, limit int) ([]TrendingAsset, error)
	Name() string
}

// NewProvider builds the configured provider. Only the mock provider ships
// today; real integrations (Alpha Vantage, CoinGecko) plug in here.
func NewProvider(cfg config.MarketDataConfig) (Provider, error) {
	switch cfg.Provider {
	case "", "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown market data provider %q", cfg.Provider)
	}
}

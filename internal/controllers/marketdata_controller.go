package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio-tracker/internal/marketdata"
	"portfolio-tracker/internal/services"
)

// QuoteProvider is the slice of the market data service the controller
// needs.
type QuoteProvider interface {
	GetQuote(ctx context.Context, symbol, assetType string) (*marketdata.Quote, error)
	GetQuotes(ctx context.Context, requests []services.QuoteRequest) []services.BatchQuote
	GetHistorical(ctx context.Context, symbol, period, interval string) (*marketdata.HistoricalData, error)
	Search(ctx context.Context, query, assetType string) ([]marketdata.SearchResult, error)
	Trending(ctx context.Context, assetType string, limit int) ([]marketdata.TrendingAsset, error)
}

// MarketDataController handles /api/market-data.
type MarketDataController struct {
	service QuoteProvider
}

// NewMarketDataController creates the market data controller.
func NewMarketDataController(service QuoteProvider) *MarketDataController {
	return &MarketDataController{service: service}
}

type batchQuotesRequest struct {
	Symbols []services.QuoteRequest `json:"symbols" binding:"required,min=1,dive"`
}

// Quote handles GET /api/market-data/quote/:symbol.
func (mc *MarketDataController) Quote(c *gin.Context) {
	quote, err := mc.service.GetQuote(c.Request.Context(), c.Param("symbol"), c.DefaultQuery("type", "stock"))
	if err != nil {
		respondServiceError(c, err, "Symbol not found")
		return
	}
	respondOK(c, quote)
}

// Quotes handles POST /api/market-data/quotes. Per-symbol failures are
// reported inline; the batch itself always succeeds.
func (mc *MarketDataController) Quotes(c *gin.Context) {
	var req batchQuotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	respondOK(c, mc.service.GetQuotes(c.Request.Context(), req.Symbols))
}

// Historical handles GET /api/market-data/historical/:symbol.
func (mc *MarketDataController) Historical(c *gin.Context) {
	data, err := mc.service.GetHistorical(c.Request.Context(),
		c.Param("symbol"),
		c.DefaultQuery("period", "1M"),
		c.DefaultQuery("interval", "daily"))
	if err != nil {
		respondServiceError(c, err, "Symbol not found")
		return
	}
	respondOK(c, data)
}

// Search handles GET /api/market-data/search.
func (mc *MarketDataController) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondError(c, http.StatusBadRequest, "Search query is required")
		return
	}

	results, err := mc.service.Search(c.Request.Context(), query, c.DefaultQuery("type", "all"))
	if err != nil {
		respondServiceError(c, err, "Symbol not found")
		return
	}
	respondOK(c, results)
}

// Trending handles GET /api/market-data/trending.
func (mc *MarketDataController) Trending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	results, err := mc.service.Trending(c.Request.Context(), c.DefaultQuery("type", "all"), limit)
	if err != nil {
		respondServiceError(c, err, "Symbol not found")
		return
	}
	respondOK(c, results)
}

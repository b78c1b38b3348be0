package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-tracker/internal/models"
)

func newAnalyticsService() (*AnalyticsService, *MockPortfolioRepository, *MockTransactionRepository) {
	portfolioRepo := new(MockPortfolioRepository)
	transactionRepo := new(MockTransactionRepository)
	return NewAnalyticsService(portfolioRepo, transactionRepo, stubCache{}), portfolioRepo, transactionRepo
}

func valuedPortfolio(userID primitive.ObjectID, name string, assets ...models.Holding) *models.Portfolio {
	p := activePortfolio(userID, assets...)
	p.Name = name
	recalculate(p)
	return p
}

func TestOverview(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	t.Run("sums totals across portfolios", func(t *testing.T) {
		svc, portfolioRepo, transactionRepo := newAnalyticsService()

		first := models.NewHolding("AAPL", "Apple Inc.", models.AssetTypeStock, 10, 100)
		first.CurrentPrice = 150
		second := models.NewHolding("BND", "Bond Fund", models.AssetTypeBond, 10, 50)

		portfolioRepo.On("ListActive", ctx, userID).Return([]*models.Portfolio{
			valuedPortfolio(userID, "Growth", first),
			valuedPortfolio(userID, "Income", second),
		}, nil)
		tx := models.NewTransaction(userID, primitive.NewObjectID(), models.TransactionBuy,
			"AAPL", "Apple Inc.", models.AssetTypeStock, 10, 100, 0)
		tx.ID = primitive.NewObjectID()
		transactionRepo.On("ListRecent", ctx, userID, 10).Return([]*models.Transaction{tx}, nil)

		overview, err := svc.Overview(ctx, userID)

		require.NoError(t, err)
		assert.InDelta(t, 2000.0, overview.Summary.TotalValue, 1e-9)
		assert.InDelta(t, 1500.0, overview.Summary.TotalInvestment, 1e-9)
		assert.InDelta(t, 500.0, overview.Summary.TotalGainLoss, 1e-9)
		assert.InDelta(t, 100.0/3, overview.Summary.TotalGainLossPercentage, 1e-9)
		assert.Equal(t, 2, overview.Summary.PortfolioCount)
		assert.Equal(t, 2, overview.Summary.TotalAssets)
		require.Len(t, overview.RecentActivity, 1)
		assert.Equal(t, "AAPL", overview.RecentActivity[0].Symbol)
		require.Len(t, overview.Portfolios, 2)
		assert.Equal(t, "Growth", overview.Portfolios[0].Name)
		assert.Equal(t, 1, overview.Portfolios[0].AssetCount)
	})

	t.Run("no portfolios yields zeroed summary", func(t *testing.T) {
		svc, portfolioRepo, transactionRepo := newAnalyticsService()

		portfolioRepo.On("ListActive", ctx, userID).Return([]*models.Portfolio{}, nil)
		transactionRepo.On("ListRecent", ctx, userID, 10).Return([]*models.Transaction{}, nil)

		overview, err := svc.Overview(ctx, userID)

		require.NoError(t, err)
		assert.Zero(t, overview.Summary.TotalValue)
		assert.Zero(t, overview.Summary.TotalGainLossPercentage)
		assert.Empty(t, overview.RecentActivity)
		assert.Empty(t, overview.Portfolios)
	})
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	t.Run("unions the same symbol across portfolios", func(t *testing.T) {
		svc, portfolioRepo, _ := newAnalyticsService()

		inFirst := models.NewHolding("AAPL", "Apple Inc.", models.AssetTypeStock, 10, 100)
		inFirst.CurrentPrice = 150
		inSecond := models.NewHolding("AAPL", "Apple Inc.", models.AssetTypeStock, 10, 200)
		inSecond.CurrentPrice = 150

		portfolioRepo.On("ListActive", ctx, userID).Return([]*models.Portfolio{
			valuedPortfolio(userID, "Growth", inFirst),
			valuedPortfolio(userID, "Retirement", inSecond),
		}, nil)

		summary, err := svc.Summary(ctx, userID)

		require.NoError(t, err)
		require.Len(t, summary.Assets, 1)
		entry := summary.Assets[0]
		assert.Equal(t, "AAPL", entry.Symbol)
		assert.InDelta(t, 20.0, entry.Quantity, 1e-9)
		assert.InDelta(t, 3000.0, entry.TotalValue, 1e-9)
		assert.InDelta(t, 3000.0, entry.TotalInvestment, 1e-9)
		assert.InDelta(t, 150.0, entry.AveragePrice, 1e-9)
		assert.InDelta(t, 150.0, entry.CurrentPrice, 1e-9)
		assert.Equal(t, 1, summary.Summary.AssetCount)
		assert.Equal(t, 2, summary.Summary.PortfolioCount)
	})

	t.Run("gain loss is derived per symbol", func(t *testing.T) {
		svc, portfolioRepo, _ := newAnalyticsService()

		winner := models.NewHolding("AAPL", "Apple Inc.", models.AssetTypeStock, 10, 100)
		winner.CurrentPrice = 150

		portfolioRepo.On("ListActive", ctx, userID).Return([]*models.Portfolio{
			valuedPortfolio(userID, "Growth", winner),
		}, nil)

		summary, err := svc.Summary(ctx, userID)

		require.NoError(t, err)
		entry := summary.Assets[0]
		assert.InDelta(t, 500.0, entry.GainLoss, 1e-9)
		assert.InDelta(t, 50.0, entry.GainLossPercentage, 1e-9)
		assert.InDelta(t, 500.0, summary.Summary.TotalGainLoss, 1e-9)
	})
}

func TestPortfolioAnalytics(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	t.Run("performance loads the owner-scoped portfolio", func(t *testing.T) {
		svc, portfolioRepo, _ := newAnalyticsService()
		h := models.NewHolding("AAPL", "Apple Inc.", models.AssetTypeStock, 10, 100)
		h.CurrentPrice = 150
		portfolio := valuedPortfolio(userID, "Growth", h)

		portfolioRepo.On("GetByID", ctx, portfolio.ID, userID).Return(portfolio, nil)

		report, err := svc.Performance(ctx, userID, portfolio.ID)

		require.NoError(t, err)
		assert.Equal(t, 1, report.AssetCount)
		assert.InDelta(t, 1500.0, report.TotalValue, 1e-9)
		require.Len(t, report.TopPerformers, 1)
		assert.InDelta(t, 50.0, report.TopPerformers[0].GainLossPercentage, 1e-9)
	})

	t.Run("risk report reflects the mix", func(t *testing.T) {
		svc, portfolioRepo, _ := newAnalyticsService()
		portfolio := valuedPortfolio(userID, "Crypto",
			models.NewHolding("BTC", "Bitcoin", models.AssetTypeCrypto, 1, 40000))

		portfolioRepo.On("GetByID", ctx, portfolio.ID, userID).Return(portfolio, nil)

		report, err := svc.Risk(ctx, userID, portfolio.ID)

		require.NoError(t, err)
		assert.Equal(t, 100, report.RiskScore)
		assert.Equal(t, "High", report.RiskLevel)
	})
}

func TestRecalculateStampsLastUpdated(t *testing.T) {
	p := activePortfolio(primitive.NewObjectID(),
		models.NewHolding("AAPL", "Apple Inc.", models.AssetTypeStock, 1, 100))
	before := p.LastUpdated

	time.Sleep(time.Millisecond)
	recalculate(p)

	assert.True(t, p.LastUpdated.After(before))
	assert.InDelta(t, 100.0, p.TotalValue, 1e-9)
}

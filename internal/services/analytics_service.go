package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-tracker/internal/calculator"
	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/repositories"
)

const recentActivityLimit = 10

// OverviewSummary is the cross-portfolio headline block.
type OverviewSummary struct {
	TotalValue              float64 `json:"totalValue"`
	TotalInvestment         float64 `json:"totalInvestment"`
	TotalGainLoss           float64 `json:"totalGainLoss"`
	TotalGainLossPercentage float64 `json:"totalGainLossPercentage"`
	PortfolioCount          int     `json:"portfolioCount"`
	TotalAssets             int     `json:"totalAssets"`
}

// ActivityEntry is one recent transaction in the overview feed.
type ActivityEntry struct {
	ID          primitive.ObjectID     `json:"id"`
	Type        models.TransactionType `json:"type"`
	Symbol      string                 `json:"symbol"`
	AssetName   string                 `json:"assetName"`
	Quantity    float64                `json:"quantity"`
	Price       float64                `json:"price"`
	TotalAmount float64                `json:"totalAmount"`
	ExecutedAt  time.Time              `json:"executedAt"`
}

// PortfolioDigest is the per-portfolio row in the overview.
type PortfolioDigest struct {
	ID                      primitive.ObjectID `json:"id"`
	Name                    string             `json:"name"`
	TotalValue              float64            `json:"totalValue"`
	TotalGainLoss           float64            `json:"totalGainLoss"`
	TotalGainLossPercentage float64            `json:"totalGainLossPercentage"`
	AssetCount              int                `json:"assetCount"`
}

// Overview aggregates everything a dashboard needs in one response.
type Overview struct {
	Summary        OverviewSummary   `json:"summary"`
	RecentActivity []ActivityEntry   `json:"recentActivity"`
	Portfolios     []PortfolioDigest `json:"portfolios"`
}

// AssetSummaryEntry is one symbol unioned across portfolios.
type AssetSummaryEntry struct {
	Symbol             string           `json:"symbol"`
	Name               string           `json:"name"`
	Type               models.AssetType `json:"type"`
	Sector             string           `json:"sector,omitempty"`
	Quantity           float64          `json:"quantity"`
	TotalValue         float64          `json:"totalValue"`
	TotalInvestment    float64          `json:"totalInvestment"`
	GainLoss           float64          `json:"gainLoss"`
	GainLossPercentage float64          `json:"gainLossPercentage"`
	AveragePrice       float64          `json:"averagePrice"`
	CurrentPrice       float64          `json:"currentPrice"`
}

// AssetSummary is the cross-portfolio holding report.
type AssetSummary struct {
	Assets  []AssetSummaryEntry `json:"assets"`
	Summary struct {
		TotalValue              float64 `json:"totalValue"`
		TotalInvestment         float64 `json:"totalInvestment"`
		TotalGainLoss           float64 `json:"totalGainLoss"`
		TotalGainLossPercentage float64 `json:"totalGainLossPercentage"`
		AssetCount              int     `json:"assetCount"`
		PortfolioCount          int     `json:"portfolioCount"`
	} `json:"summary"`
}

// AnalyticsService computes read-only reports over current holdings. Reports
// are recomputed per request; per-portfolio sections sit behind a short
// cache TTL.
type AnalyticsService struct {
	portfolioRepo   repositories.PortfolioRepository
	transactionRepo repositories.TransactionRepository
	cache           Cache
}

// NewAnalyticsService creates the analytics service.
func NewAnalyticsService(portfolioRepo repositories.PortfolioRepository, transactionRepo repositories.TransactionRepository, cache Cache) *AnalyticsService {
	return &AnalyticsService{
		portfolioRepo:   portfolioRepo,
		transactionRepo: transactionRepo,
		cache:           cache,
	}
}

// Performance returns the ranked per-holding report for one portfolio.
func (s *AnalyticsService) Performance(ctx context.Context, userID, portfolioID primitive.ObjectID) (*calculator.PerformanceReport, error) {
	var cached calculator.PerformanceReport
	if err := s.cache.GetAnalytics(ctx, userID.Hex(), portfolioID.Hex(), "performance", &cached); err == nil {
		return &cached, nil
	}

	portfolio, err := s.portfolioRepo.GetByID(ctx, portfolioID, userID)
	if err != nil {
		return nil, err
	}

	report := calculator.Performance(portfolio)
	s.cacheReport(ctx, userID, portfolioID, "performance", report)
	return &report, nil
}

// Diversification returns the distribution report for one portfolio.
func (s *AnalyticsService) Diversification(ctx context.Context, userID, portfolioID primitive.ObjectID) (*calculator.DiversificationReport, error) {
	var cached calculator.DiversificationReport
	if err := s.cache.GetAnalytics(ctx, userID.Hex(), portfolioID.Hex(), "diversification", &cached); err == nil {
		return &cached, nil
	}

	portfolio, err := s.portfolioRepo.GetByID(ctx, portfolioID, userID)
	if err != nil {
		return nil, err
	}

	report := calculator.Diversification(portfolio)
	s.cacheReport(ctx, userID, portfolioID, "diversification", report)
	return &report, nil
}

// Risk returns the weighted risk report for one portfolio.
func (s *AnalyticsService) Risk(ctx context.Context, userID, portfolioID primitive.ObjectID) (*calculator.RiskReport, error) {
	var cached calculator.RiskReport
	if err := s.cache.GetAnalytics(ctx, userID.Hex(), portfolioID.Hex(), "risk", &cached); err == nil {
		return &cached, nil
	}

	portfolio, err := s.portfolioRepo.GetByID(ctx, portfolioID, userID)
	if err != nil {
		return nil, err
	}

	report := calculator.Risk(portfolio)
	s.cacheReport(ctx, userID, portfolioID, "risk", report)
	return &report, nil
}

func (s *AnalyticsService) cacheReport(ctx context.Context, userID, portfolioID primitive.ObjectID, section string, report interface{}) {
	if err := s.cache.SetAnalytics(ctx, userID.Hex(), portfolioID.Hex(), section, report); err != nil {
		logrus.WithError(err).Debug("analytics cache write failed")
	}
}

// Overview sums totals across active portfolios and attaches the ten most
// recent transactions plus a per-portfolio digest.
func (s *AnalyticsService) Overview(ctx context.Context, userID primitive.ObjectID) (*Overview, error) {
	portfolios, err := s.portfolioRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactionRepo.ListRecent(ctx, userID, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		RecentActivity: []ActivityEntry{},
		Portfolios:     []PortfolioDigest{},
	}
	for _, p := range portfolios {
		overview.Summary.TotalValue += p.TotalValue
		overview.Summary.TotalInvestment += p.TotalInvestment
		overview.Summary.TotalAssets += len(p.Assets)
		overview.Portfolios = append(overview.Portfolios, PortfolioDigest{
			ID:                      p.ID,
			Name:                    p.Name,
			TotalValue:              p.TotalValue,
			TotalGainLoss:           p.TotalGainLoss,
			TotalGainLossPercentage: p.TotalGainLossPercentage,
			AssetCount:              len(p.Assets),
		})
	}
	overview.Summary.PortfolioCount = len(portfolios)
	overview.Summary.TotalGainLoss = overview.Summary.TotalValue - overview.Summary.TotalInvestment
	if overview.Summary.TotalInvestment > 0 {
		overview.Summary.TotalGainLossPercentage = overview.Summary.TotalGainLoss / overview.Summary.TotalInvestment * 100
	}

	for _, tx := range transactions {
		overview.RecentActivity = append(overview.RecentActivity, ActivityEntry{
			ID:          tx.ID,
			Type:        tx.Type,
			Symbol:      tx.Symbol,
			AssetName:   tx.AssetName,
			Quantity:    tx.Quantity,
			Price:       tx.Price,
			TotalAmount: tx.TotalAmount,
			ExecutedAt:  tx.ExecutedAt,
		})
	}
	return overview, nil
}

// Summary unions holdings by symbol across all active portfolios. Per-symbol
// average and current prices are derived from the summed investment and
// value.
func (s *AnalyticsService) Summary(ctx context.Context, userID primitive.ObjectID) (*AssetSummary, error) {
	portfolios, err := s.portfolioRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	bySymbol := map[string]*AssetSummaryEntry{}
	order := []string{}
	totalValue := 0.0
	totalInvestment := 0.0

	for _, p := range portfolios {
		for i := range p.Assets {
			h := &p.Assets[i]
			value := calculator.HoldingValue(h)
			investment := calculator.HoldingInvestment(h)

			entry, ok := bySymbol[h.Symbol]
			if !ok {
				entry = &AssetSummaryEntry{
					Symbol: h.Symbol,
					Name:   h.Name,
					Type:   h.Type,
					Sector: h.Sector,
				}
				bySymbol[h.Symbol] = entry
				order = append(order, h.Symbol)
			}
			entry.Quantity += h.Quantity
			entry.TotalValue += value
			entry.TotalInvestment += investment

			totalValue += value
			totalInvestment += investment
		}
	}

	summary := &AssetSummary{Assets: []AssetSummaryEntry{}}
	for _, symbol := range order {
		entry := bySymbol[symbol]
		entry.GainLoss = entry.TotalValue - entry.TotalInvestment
		if entry.TotalInvestment > 0 {
			entry.GainLossPercentage = entry.GainLoss / entry.TotalInvestment * 100
		}
		if entry.Quantity > 0 {
			entry.AveragePrice = entry.TotalInvestment / entry.Quantity
			entry.CurrentPrice = entry.TotalValue / entry.Quantity
		}
		summary.Assets = append(summary.Assets, *entry)
	}

	summary.Summary.TotalValue = totalValue
	summary.Summary.TotalInvestment = totalInvestment
	summary.Summary.TotalGainLoss = totalValue - totalInvestment
	if totalInvestment > 0 {
		summary.Summary.TotalGainLossPercentage = summary.Summary.TotalGainLoss / totalInvestment * 100
	}
	summary.Summary.AssetCount = len(summary.Assets)
	summary.Summary.PortfolioCount = len(portfolios)
	return summary, nil
}

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

// Cache is the subset of the Redis client the services depend on. Cache
// failures are never allowed to fail a request; they are logged and the
// request proceeds against Mongo.
type Cache interface {
	GetPortfolio(ctx context.Context, userID, portfolioID string, dest interface{}) error
	SetPortfolio(ctx context.Context, userID, portfolioID string, portfolio interface{}) error
	InvalidatePortfolio(ctx context.Context, userID, portfolioID string) error
	GetAnalytics(ctx context.Context, userID, portfolioID, section string, dest interface{}) error
	SetAnalytics(ctx context.Context, userID, portfolioID, section string, report interface{}) error
	GetQuote(ctx context.Context, symbol string, dest interface{}) error
	SetQuote(ctx context.Context, symbol string, quote interface{}) error
}

// AddAssetInput is a validated request to add (or merge) a holding.
type AddAssetInput struct {
	Symbol               string
	Name                 string
	Type                 models.AssetType
	Quantity             float64
	AveragePurchasePrice float64
	Sector               string
	Exchange             string
}

// UpdateAssetInput carries optional field updates for a holding. Nil means
// "leave unchanged".
type UpdateAssetInput struct {
	Quantity             *float64
	AveragePurchasePrice *float64
	CurrentPrice         *float64
	Name                 *string
	Sector               *string
	Exchange             *string
}

// PortfolioService implements portfolio CRUD and holding mutations. Every
// mutation recomputes totals in memory and persists the document once, then
// invalidates the cache.
type PortfolioService struct {
	portfolioRepo   repositories.PortfolioRepository
	transactionRepo repositories.TransactionRepository
	cache           Cache
}

// NewPortfolioService creates the portfolio service.
func NewPortfolioService(portfolioRepo repositories.PortfolioRepository, transactionRepo repositories.TransactionRepository, cache Cache) *PortfolioService {
	return &PortfolioService{
		portfolioRepo:   portfolioRepo,
		transactionRepo: transactionRepo,
		cache:           cache,
	}
}

// recalculate refreshes the denormalized totals and the lastUpdated stamp.
func recalculate(p *models.Portfolio) {
	totals := calculator.Aggregate(p.Assets)
	p.TotalValue = totals.TotalValue
	p.TotalInvestment = totals.TotalInvestment
	p.TotalGainLoss = totals.TotalGainLoss
	p.TotalGainLossPercentage = totals.TotalGainLossPercentage
	p.LastUpdated = time.Now()
}

func (s *PortfolioService) invalidate(ctx context.Context, p *models.Portfolio) {
	if err := s.cache.InvalidatePortfolio(ctx, p.User.Hex(), p.ID.Hex()); err != nil {
		logrus.WithError(err).Debug("portfolio cache invalidation failed")
	}
}

// CreatePortfolio creates an empty active portfolio.
func (s *PortfolioService) CreatePortfolio(ctx context.Context, userID primitive.ObjectID, name, description string) (*models.Portfolio, error) {
	portfolio := models.NewPortfolio(userID, name, description)
	if err := s.portfolioRepo.Create(ctx, portfolio); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":      userID.Hex(),
		"portfolio_id": portfolio.ID.Hex(),
	}).Info("portfolio created")
	return portfolio, nil
}

// ListPortfolios returns the owner's active portfolios, newest first.
func (s *PortfolioService) ListPortfolios(ctx context.Context, userID primitive.ObjectID) ([]*models.Portfolio, error) {
	return s.portfolioRepo.ListActive(ctx, userID)
}

// GetPortfolio returns one owner-scoped portfolio, served from cache when
// fresh.
func (s *PortfolioService) GetPortfolio(ctx context.Context, userID, portfolioID primitive.ObjectID) (*models.Portfolio, error) {
	var cached models.Portfolio
	if err := s.cache.GetPortfolio(ctx, userID.Hex(), portfolioID.Hex(), &cached); err == nil {
		return &cached, nil
	}

	portfolio, err := s.portfolioRepo.GetByID(ctx, portfolioID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetPortfolio(ctx, userID.Hex(), portfolioID.Hex(), portfolio); err != nil {
		logrus.WithError(err).Debug("portfolio cache write failed")
	}
	return portfolio, nil
}

// UpdatePortfolio changes name and/or description.
func (s *PortfolioService) UpdatePortfolio(ctx context.Context, userID, portfolioID primitive.ObjectID, name, description *string) (*models.Portfolio, error) {
	portfolio, err := s.portfolioRepo.GetByID(ctx, portfolioID, userID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		portfolio.Name = *name
	}
	if description != nil {
		portfolio.Description = *description
	}
	portfolio.LastUpdated = time.Now()

	if err := s.portfolioRepo.Update(ctx, portfolio); err != nil {
		return nil, err
	}
	s.invalidate(ctx, portfolio)
	return portfolio, nil
}

// DeletePortfolio soft-deletes: the document stays for history, list and get
// stop returning it once inactive.
func (s *PortfolioService) DeletePortfolio(ctx context.Context, userID, portfolioID primitive.ObjectID) error {
	if err := s.portfolioRepo.SoftDelete(ctx, portfolioID, userID); err != nil {
		return err
	}
	if err := s.cache.InvalidatePortfolio(ctx, userID.Hex(), portfolioID.Hex()); err != nil {
		logrus.WithError(err).Debug("portfolio cache invalidation failed")
	}

	logrus.WithFields(logrus.Fields{
		"user_id":      userID.Hex(),
		"portfolio_id": portfolioID.Hex(),
	}).Info("portfolio deleted")
	return nil
}

// AddAsset merges the lot into an existing holding with the same symbol
// (quantity-weighted average price) or appends a new holding, then records a
// buy transaction for the incoming lot.
func (s *PortfolioService) AddAsset(ctx context.Context, userID, portfolioID primitive.ObjectID, input AddAssetInput) (*models.Portfolio, error) {
	portfolio, err := s.portfolioRepo.GetByID(ctx, portfolioID, userID)
	if err != nil {
		return nil, err
	}

	if existing := portfolio.FindHoldingBySymbol(input.Symbol); existing != nil {
		existing.Quantity, existing.AveragePurchasePrice = calculator.MergeLot(
			existing.Quantity, existing.AveragePurchasePrice,
			input.Quantity, input.AveragePurchasePrice,
		)
	} else {
		holding := models.NewHolding(input.Symbol, input.Name, input.Type, input.Quantity, input.AveragePurchasePrice)
		holding.Sector = input.Sector
		holding.Exchange = input.Exchange
		portfolio.Assets = append(portfolio.Assets, holding)
	}

	recalculate(portfolio)
	if err := s.portfolioRepo.Update(ctx, portfolio); err != nil {
		return nil, err
	}
	s.invalidate(ctx, portfolio)

	tx := models.NewTransaction(userID, portfolio.ID, models.TransactionBuy,
		input.Symbol, input.Name, input.Type, input.Quantity, input.AveragePurchasePrice, 0)
	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":      userID.Hex(),
		"portfolio_id": portfolio.ID.Hex(),
		"symbol":       tx.Symbol,
		"quantity":     input.Quantity,
	}).Info("asset added")
	return portfolio, nil
}

// UpdateAsset applies field updates to a holding addressed by its id.
func (s *PortfolioService) UpdateAsset(ctx context.Context, userID, portfolioID, assetID primitive.ObjectID, input UpdateAssetInput) (*models.Portfolio, error) {
	portfolio, err := s.portfolioRepo.GetByID(ctx, portfolioID, userID)
	if err != nil {
		return nil, err
	}

	holding := portfolio.FindHoldingByID(assetID)
	if holding == nil {
		return nil, repositories.ErrNotFound
	}

	if input.Quantity != nil {
		holding.Quantity = *input.Quantity
	}
	if input.AveragePurchasePrice != nil {
		holding.AveragePurchasePrice = *input.AveragePurchasePrice
	}
	if input.CurrentPrice != nil {
		holding.CurrentPrice = *input.CurrentPrice
	}
	if input.Name != nil {
		holding.Name = *input.Name
	}
	if input.Sector != nil {
		holding.Sector = *input.Sector
	}
	if input.Exchange != nil {
		holding.Exchange = *input.Exchange
	}

	recalculate(portfolio)
	if err := s.portfolioRepo.Update(ctx, portfolio); err != nil {
		return nil, err
	}
	s.invalidate(ctx, portfolio)
	return portfolio, nil
}

// RemoveAsset records a sell transaction for the full position at the
// effective price, then drops the holding.
func (s *PortfolioService) RemoveAsset(ctx context.Context, userID, portfolioID, assetID primitive.ObjectID) (*models.Portfolio, error) {
	portfolio, err := s.portfolioRepo.GetByID(ctx, portfolioID, userID)
	if err != nil {
		return nil, err
	}

	holding := portfolio.FindHoldingByID(assetID)
	if holding == nil {
		return nil, repositories.ErrNotFound
	}

	tx := models.NewTransaction(userID, portfolio.ID, models.TransactionSell,
		holding.Symbol, holding.Name, holding.Type, holding.Quantity, holding.EffectivePrice(), 0)
	if err := s.transactionRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	portfolio.RemoveHolding(assetID)
	recalculate(portfolio)
	if err := s.portfolioRepo.Update(ctx, portfolio); err != nil {
		return nil, err
	}
	s.invalidate(ctx, portfolio)

	logrus.WithFields(logrus.Fields{
		"user_id":      userID.Hex(),
		"portfolio_id": portfolio.ID.Hex(),
		"symbol":       tx.Symbol,
	}).Info("asset removed")
	return portfolio, nil
}

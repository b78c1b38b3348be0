package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/services"
)

// PortfolioManager is the slice of the portfolio service the controller
// needs.
type PortfolioManager interface {
	CreatePortfolio(ctx context.Context, userID primitive.ObjectID, name, description string) (*models.Portfolio, error)
	ListPortfolios(ctx context.Context, userID primitive.ObjectID) ([]*models.Portfolio, error)
	GetPortfolio(ctx context.Context, userID, portfolioID primitive.ObjectID) (*models.Portfolio, error)
	UpdatePortfolio(ctx context.Context, userID, portfolioID primitive.ObjectID, name, description *string) (*models.Portfolio, error)
	DeletePortfolio(ctx context.Context, userID, portfolioID primitive.ObjectID) error
	AddAsset(ctx context.Context, userID, portfolioID primitive.ObjectID, input services.AddAssetInput) (*models.Portfolio, error)
	UpdateAsset(ctx context.Context, userID, portfolioID, assetID primitive.ObjectID, input services.UpdateAssetInput) (*models.Portfolio, error)
	RemoveAsset(ctx context.Context, userID, portfolioID, assetID primitive.ObjectID) (*models.Portfolio, error)
}

// PortfolioController handles /api/portfolios.
type PortfolioController struct {
	service PortfolioManager
}

// NewPortfolioController creates the portfolio controller.
func NewPortfolioController(service PortfolioManager) *PortfolioController {
	return &PortfolioController{service: service}
}

type createPortfolioRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

type updatePortfolioRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

type addAssetRequest struct {
	Symbol               string  `json:"symbol" binding:"required,min=1"`
	Name                 string  `json:"name" binding:"required,min=1"`
	Type                 string  `json:"type" binding:"required,oneof=stock cryptocurrency bond etf mutual_fund commodity"`
	Quantity             float64 `json:"quantity" binding:"required,gt=0"`
	AveragePurchasePrice float64 `json:"averagePurchasePrice" binding:"gte=0"`
	Sector               string  `json:"sector"`
	Exchange             string  `json:"exchange"`
}

type updateAssetRequest struct {
	Quantity             *float64 `json:"quantity" binding:"omitempty,gt=0"`
	AveragePurchasePrice *float64 `json:"averagePurchasePrice" binding:"omitempty,gte=0"`
	CurrentPrice         *float64 `json:"currentPrice" binding:"omitempty,gte=0"`
	Name                 *string  `json:"name" binding:"omitempty,min=1"`
	Sector               *string  `json:"sector"`
	Exchange             *string  `json:"exchange"`
}

// List handles GET /api/portfolios.
func (pc *PortfolioController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	portfolios, err := pc.service.ListPortfolios(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Portfolio not found")
		return
	}
	respondList(c, len(portfolios), portfolios)
}

// Get handles GET /api/portfolios/:id.
func (pc *PortfolioController) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	portfolioID, ok := pathObjectID(c, "id", "Portfolio not found")
	if !ok {
		return
	}

	portfolio, err := pc.service.GetPortfolio(c.Request.Context(), userID, portfolioID)
	if err != nil {
		respondServiceError(c, err, "Portfolio not found")
		return
	}
	respondOK(c, portfolio)
}

// Create handles POST /api/portfolios.
func (pc *PortfolioController) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createPortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	portfolio, err := pc.service.CreatePortfolio(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err, "Portfolio not found")
		return
	}
	respondCreated(c, portfolio)
}

// Update handles PUT /api/portfolios/:id.
func (pc *PortfolioController) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	portfolioID, ok := pathObjectID(c, "id", "Portfolio not found")
	if !ok {
		return
	}

	var req updatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	portfolio, err := pc.service.UpdatePortfolio(c.Request.Context(), userID, portfolioID, req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err, "Portfolio not found")
		return
	}
	respondOK(c, portfolio)
}

// Delete handles DELETE /api/portfolios/:id.
func (pc *PortfolioController) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	portfolioID, ok := pathObjectID(c, "id", "Portfolio not found")
	if !ok {
		return
	}

	if err := pc.service.DeletePortfolio(c.Request.Context(), userID, portfolioID); err != nil {
		respondServiceError(c, err, "Portfolio not found")
		return
	}
	respondMessage(c, "Portfolio deleted successfully")
}

// AddAsset handles POST /api/portfolios/:id/assets.
func (pc *PortfolioController) AddAsset(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	portfolioID, ok := pathObjectID(c, "id", "Portfolio not found")
	if !ok {
		return
	}

	var req addAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	portfolio, err := pc.service.AddAsset(c.Request.Context(), userID, portfolioID, services.AddAssetInput{
		Symbol:               req.Symbol,
		Name:                 req.Name,
		Type:                 models.AssetType(req.Type),
		Quantity:             req.Quantity,
		AveragePurchasePrice: req.AveragePurchasePrice,
		Sector:               req.Sector,
		Exchange:             req.Exchange,
	})
	if err != nil {
		respondServiceError(c, err, "Portfolio not found")
		return
	}
	respondOK(c, portfolio)
}

// UpdateAsset handles PUT /api/portfolios/:id/assets/:assetId.
func (pc *PortfolioController) UpdateAsset(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	portfolioID, ok := pathObjectID(c, "id", "Portfolio not found")
	if !ok {
		return
	}
	assetID, ok := pathObjectID(c, "assetId", "Asset not found")
	if !ok {
		return
	}

	var req updateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	portfolio, err := pc.service.UpdateAsset(c.Request.Context(), userID, portfolioID, assetID, services.UpdateAssetInput{
		Quantity:             req.Quantity,
		AveragePurchasePrice: req.AveragePurchasePrice,
		CurrentPrice:         req.CurrentPrice,
		Name:                 req.Name,
		Sector:               req.Sector,
		Exchange:             req.Exchange,
	})
	if err != nil {
		respondServiceError(c, err, "Asset not found")
		return
	}
	respondOK(c, portfolio)
}

// RemoveAsset handles DELETE /api/portfolios/:id/assets/:assetId.
func (pc *PortfolioController) RemoveAsset(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	portfolioID, ok := pathObjectID(c, "id", "Portfolio not found")
	if !ok {
		return
	}
	assetID, ok := pathObjectID(c, "assetId", "Asset not found")
	if !ok {
		return
	}

	portfolio, err := pc.service.RemoveAsset(c.Request.Context(), userID, portfolioID, assetID)
	if err != nil {
		respondServiceError(c, err, "Asset not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Asset removed successfully", "data": portfolio})
}

package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/repositories"
	"portfolio-tracker/internal/services"
)

// TransactionReader is the slice of the transaction service the controller
// needs.
type TransactionReader interface {
	List(ctx context.Context, userID primitive.ObjectID, filter repositories.TransactionFilter) ([]*models.Transaction, *services.Pagination, error)
	Get(ctx context.Context, userID, transactionID primitive.ObjectID) (*models.Transaction, error)
}

// SummaryProvider produces the cross-portfolio asset summary.
type SummaryProvider interface {
	Summary(ctx context.Context, userID primitive.ObjectID) (*services.AssetSummary, error)
}

// AssetController handles /api/assets: transaction history and the
// cross-portfolio summary.
type AssetController struct {
	transactions TransactionReader
	analytics    SummaryProvider
}

// NewAssetController creates the asset controller.
func NewAssetController(transactions TransactionReader, analytics SummaryProvider) *AssetController {
	return &AssetController{
		transactions: transactions,
		analytics:    analytics,
	}
}

// ListTransactions handles GET /api/assets/transactions.
func (ac *AssetController) ListTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filter := repositories.TransactionFilter{
		Symbol: c.Query("symbol"),
		Type:   models.TransactionType(c.Query("type")),
	}
	if raw := c.Query("portfolio"); raw != "" {
		portfolioID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid portfolio id")
			return
		}
		filter.Portfolio = portfolioID
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	transactions, pagination, err := ac.transactions.List(c.Request.Context(), userID, filter)
	if err != nil {
		respondServiceError(c, err, "Transaction not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       transactions,
		"pagination": pagination,
	})
}

// GetTransaction handles GET /api/assets/transactions/:id.
func (ac *AssetController) GetTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	transactionID, ok := pathObjectID(c, "id", "Transaction not found")
	if !ok {
		return
	}

	transaction, err := ac.transactions.Get(c.Request.Context(), userID, transactionID)
	if err != nil {
		respondServiceError(c, err, "Transaction not found")
		return
	}
	respondOK(c, transaction)
}

// Summary handles GET /api/assets/summary.
func (ac *AssetController) Summary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summary, err := ac.analytics.Summary(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Portfolio not found")
		return
	}
	respondOK(c, summary)
}

package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-tracker/internal/calculator"
	"portfolio-tracker/internal/services"
)

// AnalyticsProvider is the slice of the analytics service the controller
// needs.
type AnalyticsProvider interface {
	Performance(ctx context.Context, userID, portfolioID primitive.ObjectID) (*calculator.PerformanceReport, error)
	Diversification(ctx context.Context, userID, portfolioID primitive.ObjectID) (*calculator.DiversificationReport, error)
	Risk(ctx context.Context, userID, portfolioID primitive.ObjectID) (*calculator.RiskReport, error)
	Overview(ctx context.Context, userID primitive.ObjectID) (*services.Overview, error)
}

// AnalyticsController handles /api/analytics.
type AnalyticsController struct {
	service AnalyticsProvider
}

// NewAnalyticsController creates the analytics controller.
func NewAnalyticsController(service AnalyticsProvider) *AnalyticsController {
	return &AnalyticsController{service: service}
}

// Performance handles GET /api/analytics/portfolio/:id/performance.
func (ac *AnalyticsController) Performance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	portfolioID, ok := pathObjectID(c, "id", "Portfolio not found")
	if !ok {
		return
	}

	report, err := ac.service.Performance(c.Request.Context(), userID, portfolioID)
	if err != nil {
		respondServiceError(c, err, "Portfolio not found")
		return
	}
	respondOK(c, report)
}

// Diversification handles GET /api/analytics/portfolio/:id/diversification.
func (ac *AnalyticsController) Diversification(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	portfolioID, ok := pathObjectID(c, "id", "Portfolio not found")
	if !ok {
		return
	}

	report, err := ac.service.Diversification(c.Request.Context(), userID, portfolioID)
	if err != nil {
		respondServiceError(c, err, "Portfolio not found")
		return
	}
	respondOK(c, report)
}

// Risk handles GET /api/analytics/portfolio/:id/risk.
func (ac *AnalyticsController) Risk(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	portfolioID, ok := pathObjectID(c, "id", "Portfolio not found")
	if !ok {
		return
	}

	report, err := ac.service.Risk(c.Request.Context(), userID, portfolioID)
	if err != nil {
		respondServiceError(c, err, "Portfolio not found")
		return
	}
	respondOK(c, report)
}

// Overview handles GET /api/analytics/overview.
func (ac *AnalyticsController) Overview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	overview, err := ac.service.Overview(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Portfolio not found")
		return
	}
	respondOK(c, overview)
}

package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/repositories"
	"portfolio-tracker/internal/services"
)

// AlertManager is the slice of the alert service the controller needs.
type AlertManager interface {
	CreateAlert(ctx context.Context, userID primitive.ObjectID, input services.CreateAlertInput) (*models.Alert, error)
	ListAlerts(ctx context.Context, userID primitive.ObjectID, filter repositories.AlertFilter) ([]*models.Alert, error)
	UpdateAlert(ctx context.Context, userID, alertID primitive.ObjectID, input services.UpdateAlertInput) (*models.Alert, error)
	DeleteAlert(ctx context.Context, userID, alertID primitive.ObjectID) error
}

// AlertController handles /api/alerts.
type AlertController struct {
	service AlertManager
}

// NewAlertController creates the alert controller.
func NewAlertController(service AlertManager) *AlertController {
	return &AlertController{service: service}
}

type createAlertRequest struct {
	Symbol      string  `json:"symbol" binding:"required,min=1"`
	AssetName   string  `json:"assetName" binding:"required,min=1"`
	AlertType   string  `json:"alertType" binding:"required,oneof=price_above price_below percentage_change volume_spike"`
	TargetValue float64 `json:"targetValue" binding:"required,gt=0"`
}

type updateAlertRequest struct {
	AlertType    *string  `json:"alertType" binding:"omitempty,oneof=price_above price_below percentage_change volume_spike"`
	TargetValue  *float64 `json:"targetValue" binding:"omitempty,gt=0"`
	CurrentValue *float64 `json:"currentValue" binding:"omitempty,gte=0"`
	IsActive     *bool    `json:"isActive"`
}

// List handles GET /api/alerts. Unless an isActive filter is given, only
// active alerts are returned.
func (ac *AlertController) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	active := true
	filter := repositories.AlertFilter{IsActive: &active}
	if raw, present := c.GetQuery("isActive"); present {
		value := raw == "true"
		filter.IsActive = &value
	}
	if raw, present := c.GetQuery("isTriggered"); present {
		value := raw == "true"
		filter.IsTriggered = &value
	}

	alerts, err := ac.service.ListAlerts(c.Request.Context(), userID, filter)
	if err != nil {
		respondServiceError(c, err, "Alert not found")
		return
	}
	respondList(c, len(alerts), alerts)
}

// Create handles POST /api/alerts.
func (ac *AlertController) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	alert, err := ac.service.CreateAlert(c.Request.Context(), userID, services.CreateAlertInput{
		Symbol:      req.Symbol,
		AssetName:   req.AssetName,
		AlertType:   models.AlertType(req.AlertType),
		TargetValue: req.TargetValue,
	})
	if err != nil {
		respondServiceError(c, err, "Alert not found")
		return
	}
	respondCreated(c, alert)
}

// Update handles PUT /api/alerts/:id.
func (ac *AlertController) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	alertID, ok := pathObjectID(c, "id", "Alert not found")
	if !ok {
		return
	}

	var req updateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	input := services.UpdateAlertInput{
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		IsActive:     req.IsActive,
	}
	if req.AlertType != nil {
		alertType := models.AlertType(*req.AlertType)
		input.AlertType = &alertType
	}

	alert, err := ac.service.UpdateAlert(c.Request.Context(), userID, alertID, input)
	if err != nil {
		respondServiceError(c, err, "Alert not found")
		return
	}
	respondOK(c, alert)
}

// Delete handles DELETE /api/alerts/:id.
func (ac *AlertController) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	alertID, ok := pathObjectID(c, "id", "Alert not found")
	if !ok {
		return
	}

	if err := ac.service.DeleteAlert(c.Request.Context(), userID, alertID); err != nil {
		respondServiceError(c, err, "Alert not found")
		return
	}
	respondMessage(c, "Alert deleted successfully")
}

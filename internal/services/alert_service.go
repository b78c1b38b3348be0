package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/repositories"
)

// CreateAlertInput is a validated request to create an alert.
type CreateAlertInput struct {
	Symbol      string
	AssetName   string
	AlertType   models.AlertType
	TargetValue float64
}

// UpdateAlertInput carries optional field updates for an alert. Nil means
// "leave unchanged". Trigger state is not updatable through the API.
type UpdateAlertInput struct {
	AlertType    *models.AlertType
	TargetValue  *float64
	CurrentValue *float64
	IsActive     *bool
}

// AlertService manages alert records. Alerts are plain records: nothing in
// the service evaluates them against market prices.
type AlertService struct {
	alertRepo repositories.AlertRepository
}

// NewAlertService creates the alert service.
func NewAlertService(alertRepo repositories.AlertRepository) *AlertService {
	return &AlertService{alertRepo: alertRepo}
}

// CreateAlert stores a new active alert.
func (s *AlertService) CreateAlert(ctx context.Context, userID primitive.ObjectID, input CreateAlertInput) (*models.Alert, error) {
	alert := models.NewAlert(userID, input.Symbol, input.AssetName, input.AlertType, input.TargetValue)
	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID.Hex(),
		"alert_id": alert.ID.Hex(),
		"symbol":   alert.Symbol,
	}).Info("alert created")
	return alert, nil
}

// ListAlerts returns the owner's alerts, filtered.
func (s *AlertService) ListAlerts(ctx context.Context, userID primitive.ObjectID, filter repositories.AlertFilter) ([]*models.Alert, error) {
	return s.alertRepo.List(ctx, userID, filter)
}

// UpdateAlert applies field updates to an owner-scoped alert.
func (s *AlertService) UpdateAlert(ctx context.Context, userID, alertID primitive.ObjectID, input UpdateAlertInput) (*models.Alert, error) {
	alert, err := s.alertRepo.GetByID(ctx, alertID, userID)
	if err != nil {
		return nil, err
	}

	if input.AlertType != nil {
		alert.AlertType = *input.AlertType
	}
	if input.TargetValue != nil {
		alert.TargetValue = *input.TargetValue
	}
	if input.CurrentValue != nil {
		alert.CurrentValue = *input.CurrentValue
	}
	if input.IsActive != nil {
		alert.IsActive = *input.IsActive
	}

	if err := s.alertRepo.Update(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

// DeleteAlert removes an alert permanently.
func (s *AlertService) DeleteAlert(ctx context.Context, userID, alertID primitive.ObjectID) error {
	return s.alertRepo.Delete(ctx, alertID, userID)
}

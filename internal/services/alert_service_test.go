package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/repositories"
)

func TestAlertService(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	t.Run("create uppercases the symbol and starts active", func(t *testing.T) {
		alertRepo := new(MockAlertRepository)
		svc := NewAlertService(alertRepo)

		alertRepo.On("Create", ctx, mock.AnythingOfType("*models.Alert")).Return(nil)

		alert, err := svc.CreateAlert(ctx, userID, CreateAlertInput{
			Symbol:      "btc",
			AssetName:   "Bitcoin",
			AlertType:   models.AlertPriceAbove,
			TargetValue: 50000,
		})

		require.NoError(t, err)
		assert.Equal(t, "BTC", alert.Symbol)
		assert.True(t, alert.IsActive)
		assert.False(t, alert.IsTriggered)
		assert.Nil(t, alert.TriggeredAt)
	})

	t.Run("update leaves trigger state untouched", func(t *testing.T) {
		alertRepo := new(MockAlertRepository)
		svc := NewAlertService(alertRepo)

		existing := models.NewAlert(userID, "BTC", "Bitcoin", models.AlertPriceAbove, 50000)
		existing.ID = primitive.NewObjectID()

		alertRepo.On("GetByID", ctx, existing.ID, userID).Return(existing, nil)
		alertRepo.On("Update", ctx, mock.AnythingOfType("*models.Alert")).Return(nil)

		target := 60000.0
		inactive := false
		alert, err := svc.UpdateAlert(ctx, userID, existing.ID, UpdateAlertInput{
			TargetValue: &target,
			IsActive:    &inactive,
		})

		require.NoError(t, err)
		assert.InDelta(t, 60000.0, alert.TargetValue, 1e-9)
		assert.False(t, alert.IsActive)
		assert.False(t, alert.IsTriggered)
		assert.False(t, alert.NotificationSent)
	})

	t.Run("delete of a foreign alert is not found", func(t *testing.T) {
		alertRepo := new(MockAlertRepository)
		svc := NewAlertService(alertRepo)
		alertID := primitive.NewObjectID()

		alertRepo.On("Delete", ctx, alertID, userID).Return(repositories.ErrNotFound)

		err := svc.DeleteAlert(ctx, userID, alertID)

		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

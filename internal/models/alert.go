package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AlertType enumerates the supported alert conditions.
type AlertType string

const (
	AlertPriceAbove       AlertType = "price_above"
	AlertPriceBelow       AlertType = "price_below"
	AlertPercentageChange AlertType = "percentage_change"
	AlertVolumeSpike      AlertType = "volume_spike"
)

// IsValid reports whether t is a known alert type.
func (t AlertType) IsValid() bool {
	switch t {
	case AlertPriceAbove, AlertPriceBelow, AlertPercentageChange, AlertVolumeSpike:
		return true
	}
	return false
}

// Alert is a user-defined price alert record. Trigger state (IsTriggered,
// TriggeredAt, NotificationSent) is persisted for forward compatibility but
// no evaluation loop writes it.
type Alert struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User             primitive.ObjectID `bson:"user" json:"user"`
	Symbol           string             `bson:"symbol" json:"symbol"`
	AssetName        string             `bson:"assetName" json:"assetName"`
	AlertType        AlertType          `bson:"alertType" json:"alertType"`
	TargetValue      float64            `bson:"targetValue" json:"targetValue"`
	CurrentValue     float64            `bson:"currentValue" json:"currentValue"`
	IsTriggered      bool               `bson:"isTriggered" json:"isTriggered"`
	IsActive         bool               `bson:"isActive" json:"isActive"`
	TriggeredAt      *time.Time         `bson:"triggeredAt,omitempty" json:"triggeredAt,omitempty"`
	NotificationSent bool               `bson:"notificationSent" json:"notificationSent"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

// NewAlert creates an active, untriggered alert for the given owner.
func NewAlert(userID primitive.ObjectID, symbol, assetName string, alertType AlertType, targetValue float64) *Alert {
	return &Alert{
		User:        userID,
		Symbol:      strings.ToUpper(symbol),
		AssetName:   assetName,
		AlertType:   alertType,
		TargetValue: targetValue,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
}

// Validate checks structural invariants before persisting.
func (a *Alert) Validate() error {
	if a.User.IsZero() {
		return fmt.Errorf("alert owner is required")
	}
	if a.Symbol == "" {
		return fmt.Errorf("alert symbol is required")
	}
	if a.AssetName == "" {
		return fmt.Errorf("alert asset name is required")
	}
	if !a.AlertType.IsValid() {
		return fmt.Errorf("invalid alert type %q", a.AlertType)
	}
	return nil
}

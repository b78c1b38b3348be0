package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssetType enumerates the kinds of holdings a portfolio can carry.
type AssetType string

const (
	AssetTypeStock      AssetType = "stock"
	AssetTypeCrypto     AssetType = "cryptocurrency"
	AssetTypeBond       AssetType = "bond"
	AssetTypeETF        AssetType = "etf"
	AssetTypeMutualFund AssetType = "mutual_fund"
	AssetTypeCommodity  AssetType = "commodity"
)

// AssetTypes lists every valid asset type.
var AssetTypes = []AssetType{
	AssetTypeStock,
	AssetTypeCrypto,
	AssetTypeBond,
	AssetTypeETF,
	AssetTypeMutualFund,
	AssetTypeCommodity,
}

// IsValid reports whether t is a known asset type.
func (t AssetType) IsValid() bool {
	for _, known := range AssetTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Holding is an asset position embedded in a portfolio document. Each holding
// gets its own ObjectID at creation so later mutations can address it by id
// rather than by array index.
type Holding struct {
	ID                   primitive.ObjectID `bson:"_id" json:"id"`
	Symbol               string             `bson:"symbol" json:"symbol"`
	Name                 string             `bson:"name" json:"name"`
	Type                 AssetType          `bson:"type" json:"type"`
	Quantity             float64            `bson:"quantity" json:"quantity"`
	AveragePurchasePrice float64            `bson:"averagePurchasePrice" json:"averagePurchasePrice"`
	CurrentPrice         float64            `bson:"currentPrice" json:"currentPrice"`
	Sector               string             `bson:"sector,omitempty" json:"sector,omitempty"`
	Exchange             string             `bson:"exchange,omitempty" json:"exchange,omitempty"`
	AddedAt              time.Time          `bson:"addedAt" json:"addedAt"`
}

// NewHolding builds a holding with a fresh id and an uppercased symbol.
func NewHolding(symbol, name string, assetType AssetType, quantity, avgPrice float64) Holding {
	return Holding{
		ID:                   primitive.NewObjectID(),
		Symbol:               strings.ToUpper(symbol),
		Name:                 name,
		Type:                 assetType,
		Quantity:             quantity,
		AveragePurchasePrice: avgPrice,
		AddedAt:              time.Now(),
	}
}

// EffectivePrice is the price used for valuation: the live price when one is
// known, otherwise the average purchase price.
func (h *Holding) EffectivePrice() float64 {
	if h.CurrentPrice > 0 {
		return h.CurrentPrice
	}
	return h.AveragePurchasePrice
}

// Portfolio is the root aggregate: a named collection of holdings owned by a
// single user, with denormalized totals recomputed before every persist.
type Portfolio struct {
	ID                      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User                    primitive.ObjectID `bson:"user" json:"user"`
	Name                    string             `bson:"name" json:"name"`
	Description             string             `bson:"description,omitempty" json:"description,omitempty"`
	Assets                  []Holding          `bson:"assets" json:"assets"`
	TotalValue              float64            `bson:"totalValue" json:"totalValue"`
	TotalInvestment         float64            `bson:"totalInvestment" json:"totalInvestment"`
	TotalGainLoss           float64            `bson:"totalGainLoss" json:"totalGainLoss"`
	TotalGainLossPercentage float64            `bson:"totalGainLossPercentage" json:"totalGainLossPercentage"`
	IsActive                bool               `bson:"isActive" json:"isActive"`
	LastUpdated             time.Time          `bson:"lastUpdated" json:"lastUpdated"`
	CreatedAt               time.Time          `bson:"createdAt" json:"createdAt"`
}

// NewPortfolio creates an empty active portfolio for the given owner.
func NewPortfolio(userID primitive.ObjectID, name, description string) *Portfolio {
	now := time.Now()
	return &Portfolio{
		User:        userID,
		Name:        name,
		Description: description,
		Assets:      []Holding{},
		IsActive:    true,
		LastUpdated: now,
		CreatedAt:   now,
	}
}

// FindHoldingBySymbol returns the holding with the given symbol
// (case-insensitive), or nil.
func (p *Portfolio) FindHoldingBySymbol(symbol string) *Holding {
	upper := strings.ToUpper(symbol)
	for i := range p.Assets {
		if p.Assets[i].Symbol == upper {
			return &p.Assets[i]
		}
	}
	return nil
}

// FindHoldingByID returns the holding with the given id, or nil.
func (p *Portfolio) FindHoldingByID(id primitive.ObjectID) *Holding {
	for i := range p.Assets {
		if p.Assets[i].ID == id {
			return &p.Assets[i]
		}
	}
	return nil
}

// RemoveHolding deletes the holding with the given id, reporting whether it
// was present.
func (p *Portfolio) RemoveHolding(id primitive.ObjectID) bool {
	for i := range p.Assets {
		if p.Assets[i].ID == id {
			p.Assets = append(p.Assets[:i], p.Assets[i+1:]...)
			return true
		}
	}
	return false
}

// Validate checks structural invariants before persisting.
func (p *Portfolio) Validate() error {
	if p.User.IsZero() {
		return fmt.Errorf("portfolio owner is required")
	}
	if len(p.Name) == 0 || len(p.Name) > 100 {
		return fmt.Errorf("portfolio name must be between 1 and 100 characters")
	}
	if len(p.Description) > 500 {
		return fmt.Errorf("description must be less than 500 characters")
	}
	for i := range p.Assets {
		h := &p.Assets[i]
		if !h.Type.IsValid() {
			return fmt.Errorf("holding %s has invalid asset type %q", h.Symbol, h.Type)
		}
		if h.Quantity < 0 {
			return fmt.Errorf("holding %s has negative quantity", h.Symbol)
		}
		if h.AveragePurchasePrice < 0 {
			return fmt.Errorf("holding %s has negative purchase price", h.Symbol)
		}
	}
	return nil
}

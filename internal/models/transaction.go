package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionType is the side of a recorded trade.
type TransactionType string

const (
	TransactionBuy  TransactionType = "buy"
	TransactionSell TransactionType = "sell"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == TransactionBuy || t == TransactionSell
}

// Transaction is an immutable trade record. Records are written when assets
// enter or leave a portfolio and are never updated or deleted afterwards.
type Transaction struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	Portfolio   primitive.ObjectID `bson:"portfolio" json:"portfolio"`
	Type        TransactionType    `bson:"type" json:"type"`
	Symbol      string             `bson:"symbol" json:"symbol"`
	AssetName   string             `bson:"assetName" json:"assetName"`
	AssetType   AssetType          `bson:"assetType" json:"assetType"`
	Quantity    float64            `bson:"quantity" json:"quantity"`
	Price       float64            `bson:"price" json:"price"`
	Fees        float64            `bson:"fees" json:"fees"`
	TotalAmount float64            `bson:"totalAmount" json:"totalAmount"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	ExecutedAt  time.Time          `bson:"executedAt" json:"executedAt"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// NewTransaction builds a trade record with TotalAmount computed up front
// (quantity*price + fees), mirroring how totals are fixed at creation time.
func NewTransaction(userID, portfolioID primitive.ObjectID, txType TransactionType, symbol, assetName string, assetType AssetType, quantity, price, fees float64) *Transaction {
	now := time.Now()
	return &Transaction{
		User:        userID,
		Portfolio:   portfolioID,
		Type:        txType,
		Symbol:      strings.ToUpper(symbol),
		AssetName:   assetName,
		AssetType:   assetType,
		Quantity:    quantity,
		Price:       price,
		Fees:        fees,
		TotalAmount: quantity*price + fees,
		ExecutedAt:  now,
		CreatedAt:   now,
	}
}

// Validate checks structural invariants before persisting.
func (t *Transaction) Validate() error {
	if t.User.IsZero() || t.Portfolio.IsZero() {
		return fmt.Errorf("transaction owner and portfolio are required")
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("invalid transaction type %q", t.Type)
	}
	if t.Symbol == "" {
		return fmt.Errorf("transaction symbol is required")
	}
	if !t.AssetType.IsValid() {
		return fmt.Errorf("invalid asset type %q", t.AssetType)
	}
	if t.Quantity <= 0 {
		return fmt.Errorf("transaction quantity must be positive")
	}
	if t.Price < 0 {
		return fmt.Errorf("transaction price must be non-negative")
	}
	if t.Fees < 0 {
		return fmt.Errorf("transaction fees must be non-negative")
	}
	if len(t.Notes) > 500 {
		return fmt.Errorf("notes must be less than 500 characters")
	}
	return nil
}

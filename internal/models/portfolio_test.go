package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHolding(t *testing.T) {
	t.Run("new holding uppercases the symbol and gets an id", func(t *testing.T) {
		h := NewHolding("aapl", "Apple Inc.", AssetTypeStock, 10, 100)

		assert.Equal(t, "AAPL", h.Symbol)
		assert.False(t, h.ID.IsZero())
		assert.False(t, h.AddedAt.IsZero())
	})

	t.Run("effective price falls back to purchase price", func(t *testing.T) {
		h := NewHolding("AAPL", "Apple Inc.", AssetTypeStock, 10, 100)

		assert.InDelta(t, 100.0, h.EffectivePrice(), 1e-9)

		h.CurrentPrice = 150
		assert.InDelta(t, 150.0, h.EffectivePrice(), 1e-9)
	})
}

func TestPortfolioHoldings(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("find by symbol is case insensitive", func(t *testing.T) {
		p := NewPortfolio(userID, "Growth", "")
		p.Assets = append(p.Assets, NewHolding("AAPL", "Apple Inc.", AssetTypeStock, 10, 100))

		require.NotNil(t, p.FindHoldingBySymbol("aapl"))
		assert.Nil(t, p.FindHoldingBySymbol("MSFT"))
	})

	t.Run("remove holding by id", func(t *testing.T) {
		p := NewPortfolio(userID, "Growth", "")
		keep := NewHolding("AAPL", "Apple Inc.", AssetTypeStock, 10, 100)
		drop := NewHolding("MSFT", "Microsoft", AssetTypeStock, 5, 200)
		p.Assets = append(p.Assets, keep, drop)

		assert.True(t, p.RemoveHolding(drop.ID))
		assert.False(t, p.RemoveHolding(drop.ID))
		require.Len(t, p.Assets, 1)
		assert.Equal(t, "AAPL", p.Assets[0].Symbol)
	})
}

func TestPortfolioValidate(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("valid portfolio passes", func(t *testing.T) {
		p := NewPortfolio(userID, "Growth", "tech heavy")
		p.Assets = append(p.Assets, NewHolding("AAPL", "Apple Inc.", AssetTypeStock, 10, 100))

		assert.NoError(t, p.Validate())
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		p := NewPortfolio(userID, "", "")
		assert.Error(t, p.Validate())
	})

	t.Run("invalid asset type is rejected", func(t *testing.T) {
		p := NewPortfolio(userID, "Growth", "")
		h := NewHolding("X", "X", AssetType("house"), 1, 1)
		p.Assets = append(p.Assets, h)

		assert.Error(t, p.Validate())
	})
}

func TestTransactionTotal(t *testing.T) {
	tx := NewTransaction(primitive.NewObjectID(), primitive.NewObjectID(),
		TransactionBuy, "aapl", "Apple Inc.", AssetTypeStock, 10, 100, 2.5)

	assert.Equal(t, "AAPL", tx.Symbol)
	assert.InDelta(t, 1002.5, tx.TotalAmount, 1e-9)
	assert.NoError(t, tx.Validate())
}

func TestAlertDefaults(t *testing.T) {
	alert := NewAlert(primitive.NewObjectID(), "btc", "Bitcoin", AlertPriceAbove, 50000)

	assert.Equal(t, "BTC", alert.Symbol)
	assert.True(t, alert.IsActive)
	assert.False(t, alert.IsTriggered)
	assert.False(t, alert.NotificationSent)
	assert.Nil(t, alert.TriggeredAt)
	assert.NoError(t, alert.Validate())
}

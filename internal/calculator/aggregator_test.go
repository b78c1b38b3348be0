package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portfolio-tracker/internal/models"
)

func holding(symbol string, assetType models.AssetType, qty, avg, current float64) models.Holding {
	h := models.NewHolding(symbol, symbol+" Inc", assetType, qty, avg)
	h.CurrentPrice = current
	return h
}

func TestAggregate(t *testing.T) {
	t.Run("empty holdings produce zero totals", func(t *testing.T) {
		totals := Aggregate(nil)

		assert.Zero(t, totals.TotalValue)
		assert.Zero(t, totals.TotalInvestment)
		assert.Zero(t, totals.TotalGainLoss)
		assert.Zero(t, totals.TotalGainLossPercentage)
	})

	t.Run("buy 10 at 100 with current price 150", func(t *testing.T) {
		totals := Aggregate([]models.Holding{
			holding("AAPL", models.AssetTypeStock, 10, 100, 150),
		})

		assert.InDelta(t, 1500.0, totals.TotalValue, 1e-9)
		assert.InDelta(t, 1000.0, totals.TotalInvestment, 1e-9)
		assert.InDelta(t, 500.0, totals.TotalGainLoss, 1e-9)
		assert.InDelta(t, 50.0, totals.TotalGainLossPercentage, 1e-9)
	})

	t.Run("missing current price falls back to purchase price", func(t *testing.T) {
		totals := Aggregate([]models.Holding{
			holding("BTC", models.AssetTypeCrypto, 2, 30000, 0),
		})

		assert.InDelta(t, 60000.0, totals.TotalValue, 1e-9)
		assert.InDelta(t, 60000.0, totals.TotalInvestment, 1e-9)
		assert.Zero(t, totals.TotalGainLoss)
		assert.Zero(t, totals.TotalGainLossPercentage)
	})

	t.Run("zero investment yields zero percentage", func(t *testing.T) {
		totals := Aggregate([]models.Holding{
			holding("FREE", models.AssetTypeStock, 10, 0, 25),
		})

		assert.InDelta(t, 250.0, totals.TotalValue, 1e-9)
		assert.Zero(t, totals.TotalInvestment)
		assert.Zero(t, totals.TotalGainLossPercentage)
	})

	t.Run("gain loss equals value minus investment", func(t *testing.T) {
		totals := Aggregate([]models.Holding{
			holding("AAPL", models.AssetTypeStock, 3, 120.5, 131.25),
			holding("VTI", models.AssetTypeETF, 7.5, 210.1, 0),
			holding("GLD", models.AssetTypeCommodity, 1.25, 180, 192.4),
		})

		assert.InDelta(t, totals.TotalValue-totals.TotalInvestment, totals.TotalGainLoss, 1e-9)
	})
}

func TestMergeLot(t *testing.T) {
	t.Run("weighted average of two lots", func(t *testing.T) {
		qty, avg := MergeLot(10, 100, 10, 200)

		assert.InDelta(t, 20.0, qty, 1e-9)
		assert.InDelta(t, 150.0, avg, 1e-9)
	})

	t.Run("uneven lots", func(t *testing.T) {
		qty, avg := MergeLot(1, 100, 3, 200)

		assert.InDelta(t, 4.0, qty, 1e-9)
		assert.InDelta(t, 175.0, avg, 1e-9)
	})

	t.Run("zero combined quantity guards division", func(t *testing.T) {
		qty, avg := MergeLot(0, 0, 0, 500)

		assert.Zero(t, qty)
		assert.Zero(t, avg)
	})
}

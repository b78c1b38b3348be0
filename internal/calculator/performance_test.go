package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-tracker/internal/models"
)

func portfolioWith(assets ...models.Holding) *models.Portfolio {
	p := models.NewPortfolio(primitive.NewObjectID(), "Test", "")
	p.Assets = assets
	totals := Aggregate(p.Assets)
	p.TotalValue = totals.TotalValue
	p.TotalInvestment = totals.TotalInvestment
	p.TotalGainLoss = totals.TotalGainLoss
	p.TotalGainLossPercentage = totals.TotalGainLossPercentage
	return p
}

func TestPerformance(t *testing.T) {
	t.Run("ranks by price return", func(t *testing.T) {
		report := Performance(portfolioWith(
			holding("LOSER", models.AssetTypeStock, 1, 100, 50),   // -50%
			holding("FLAT", models.AssetTypeStock, 1, 100, 100),   // 0%
			holding("WINNER", models.AssetTypeStock, 1, 100, 200), // +100%
		))

		assert.Equal(t, 3, report.AssetCount)
		assert.Equal(t, "WINNER", report.TopPerformers[0].Symbol)
		assert.Equal(t, "LOSER", report.WorstPerformers[0].Symbol)
		assert.InDelta(t, 100.0, report.TopPerformers[0].GainLossPercentage, 1e-9)
		assert.InDelta(t, -50.0, report.WorstPerformers[0].GainLossPercentage, 1e-9)
	})

	t.Run("caps both lists at five entries", func(t *testing.T) {
		assets := make([]models.Holding, 0, 7)
		for i := 0; i < 7; i++ {
			assets = append(assets, holding(string(rune('A'+i)), models.AssetTypeStock, 1, 100, 100+float64(i)*10))
		}
		report := Performance(portfolioWith(assets...))

		assert.Len(t, report.TopPerformers, 5)
		assert.Len(t, report.WorstPerformers, 5)
	})

	t.Run("ties keep holding order", func(t *testing.T) {
		report := Performance(portfolioWith(
			holding("FIRST", models.AssetTypeStock, 1, 100, 110),
			holding("SECOND", models.AssetTypeStock, 2, 100, 110),
		))

		assert.Equal(t, "FIRST", report.TopPerformers[0].Symbol)
		assert.Equal(t, "SECOND", report.TopPerformers[1].Symbol)
	})

	t.Run("zero purchase price yields zero percentage", func(t *testing.T) {
		report := Performance(portfolioWith(
			holding("GIFT", models.AssetTypeStock, 5, 0, 40),
		))

		assert.Zero(t, report.TopPerformers[0].GainLossPercentage)
		assert.InDelta(t, 200.0, report.TopPerformers[0].GainLoss, 1e-9)
	})

	t.Run("gain loss uses position size", func(t *testing.T) {
		report := Performance(portfolioWith(
			holding("AAPL", models.AssetTypeStock, 10, 100, 150),
		))

		assert.InDelta(t, 500.0, report.TopPerformers[0].GainLoss, 1e-9)
		assert.InDelta(t, 50.0, report.TopPerformers[0].GainLossPercentage, 1e-9)
	})
}

package calculator

import (
	"sort"

	"portfolio-tracker/internal/models"
)

// AssetPerformance is one ranked row in a performance report.
type AssetPerformance struct {
	Symbol             string  `json:"symbol"`
	Name               string  `json:"name"`
	GainLoss           float64 `json:"gainLoss"`
	GainLossPercentage float64 `json:"gainLossPercentage"`
}

// PerformanceReport ranks a portfolio's holdings by price return.
type PerformanceReport struct {
	TotalValue              float64            `json:"totalValue"`
	TotalInvestment         float64            `json:"totalInvestment"`
	TotalGainLoss           float64            `json:"totalGainLoss"`
	TotalGainLossPercentage float64            `json:"totalGainLossPercentage"`
	AssetCount              int                `json:"assetCount"`
	TopPerformers           []AssetPerformance `json:"topPerformers"`
	WorstPerformers         []AssetPerformance `json:"worstPerformers"`
}

const performersLimit = 5

// Performance builds the ranked report for a portfolio. Per-holding
// percentage is the price return (effective vs average purchase price), 0
// when the purchase price is 0. Sorting is stable so equal percentages keep
// holding order.
func Performance(p *models.Portfolio) PerformanceReport {
	rows := make([]AssetPerformance, 0, len(p.Assets))
	for i := range p.Assets {
		h := &p.Assets[i]
		row := AssetPerformance{
			Symbol:   h.Symbol,
			Name:     h.Name,
			GainLoss: HoldingValue(h) - HoldingInvestment(h),
		}
		if h.AveragePurchasePrice > 0 {
			row.GainLossPercentage = (h.EffectivePrice() - h.AveragePurchasePrice) / h.AveragePurchasePrice * 100
		}
		rows = append(rows, row)
	}

	top := make([]AssetPerformance, len(rows))
	copy(top, rows)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].GainLossPercentage > top[j].GainLossPercentage
	})

	worst := make([]AssetPerformance, len(rows))
	copy(worst, rows)
	sort.SliceStable(worst, func(i, j int) bool {
		return worst[i].GainLossPercentage < worst[j].GainLossPercentage
	})

	return PerformanceReport{
		TotalValue:              p.TotalValue,
		TotalInvestment:         p.TotalInvestment,
		TotalGainLoss:           p.TotalGainLoss,
		TotalGainLossPercentage: p.TotalGainLossPercentage,
		AssetCount:              len(p.Assets),
		TopPerformers:           truncate(top, performersLimit),
		WorstPerformers:         truncate(worst, performersLimit),
	}
}

func truncate(rows []AssetPerformance, n int) []AssetPerformance {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}

package calculator

import (
	"math"

	"portfolio-tracker/internal/models"
)

// DiversificationReport describes how a portfolio's value is spread across
// asset types and sectors, with a Herfindahl-based concentration score.
type DiversificationReport struct {
	AssetTypeDistribution map[string]float64 `json:"assetTypeDistribution"`
	SectorDistribution    map[string]float64 `json:"sectorDistribution"`
	DiversificationScore  int                `json:"diversificationScore"`
	TotalAssets           int                `json:"totalAssets"`
	Recommendations       []string           `json:"recommendations"`
}

// Diversification computes value-weighted percentage distributions over
// asset types and sectors (holdings without a sector fall under "Unknown")
// and scores concentration as round(max(0, (1 - HHI) * 100)) where HHI is
// the sum of squared asset-type shares. 100 means perfectly spread, 0 means
// a single type.
func Diversification(p *models.Portfolio) DiversificationReport {
	typeValues := make(map[string]float64)
	sectorValues := make(map[string]float64)
	totalValue := 0.0

	for i := range p.Assets {
		h := &p.Assets[i]
		value := HoldingValue(h)
		totalValue += value

		typeValues[string(h.Type)] += value

		sector := h.Sector
		if sector == "" {
			sector = "Unknown"
		}
		sectorValues[sector] += value
	}

	typePct := make(map[string]float64, len(typeValues))
	for t, v := range typeValues {
		if totalValue > 0 {
			typePct[t] = v / totalValue * 100
		} else {
			typePct[t] = 0
		}
	}
	sectorPct := make(map[string]float64, len(sectorValues))
	for s, v := range sectorValues {
		if totalValue > 0 {
			sectorPct[s] = v / totalValue * 100
		} else {
			sectorPct[s] = 0
		}
	}

	hhi := 0.0
	for _, pct := range typePct {
		share := pct / 100
		hhi += share * share
	}
	score := math.Max(0, (1-hhi)*100)

	recommendations := []string{"Portfolio shows good diversification"}
	if score < 50 {
		recommendations = []string{
			"Consider diversifying across more asset types",
			"Add assets from different sectors",
		}
	}

	return DiversificationReport{
		AssetTypeDistribution: typePct,
		SectorDistribution:    sectorPct,
		DiversificationScore:  int(math.Round(score)),
		TotalAssets:           len(p.Assets),
		Recommendations:       recommendations,
	}
}

package calculator

import (
	"math"
	"sort"

	"portfolio-tracker/internal/models"
)

// riskWeights assigns a volatility weight to each asset type. Unknown types
// fall back to defaultRiskWeight.
var riskWeights = map[models.AssetType]float64{
	models.AssetTypeStock:      0.7,
	models.AssetTypeCrypto:     1.0,
	models.AssetTypeBond:       0.3,
	models.AssetTypeETF:        0.5,
	models.AssetTypeMutualFund: 0.4,
	models.AssetTypeCommodity:  0.8,
}

const defaultRiskWeight = 0.5

// RiskWeight returns the volatility weight for an asset type.
func RiskWeight(t models.AssetType) float64 {
	if w, ok := riskWeights[t]; ok {
		return w
	}
	return defaultRiskWeight
}

// RiskFactor is one holding's contribution to portfolio risk.
type RiskFactor struct {
	Symbol     string           `json:"symbol"`
	Name       string           `json:"name"`
	Type       models.AssetType `json:"type"`
	RiskWeight float64          `json:"riskWeight"`
	Allocation float64          `json:"allocation"`
}

// RiskReport scores a portfolio by the value-weighted mean of its holdings'
// risk weights.
type RiskReport struct {
	RiskScore       int          `json:"riskScore"`
	RiskLevel       string       `json:"riskLevel"`
	RiskFactors     []RiskFactor `json:"riskFactors"`
	Recommendations []string     `json:"recommendations"`
}

// Risk computes the weighted risk score (0..100), its level (High above 70,
// Medium above 40, otherwise Low), per-holding factors sorted by weight
// descending, and tiered recommendation text. An empty portfolio scores 0.
func Risk(p *models.Portfolio) RiskReport {
	weighted := 0.0
	totalValue := 0.0
	for i := range p.Assets {
		h := &p.Assets[i]
		value := HoldingValue(h)
		weighted += value * RiskWeight(h.Type)
		totalValue += value
	}

	score := 0.0
	if totalValue > 0 {
		score = weighted / totalValue * 100
	}

	level := "Low"
	switch {
	case score > 70:
		level = "High"
	case score > 40:
		level = "Medium"
	}

	factors := make([]RiskFactor, 0, len(p.Assets))
	for i := range p.Assets {
		h := &p.Assets[i]
		allocation := 0.0
		if totalValue > 0 {
			allocation = HoldingValue(h) / totalValue * 100
		}
		factors = append(factors, RiskFactor{
			Symbol:     h.Symbol,
			Name:       h.Name,
			Type:       h.Type,
			RiskWeight: RiskWeight(h.Type),
			Allocation: allocation,
		})
	}
	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].RiskWeight > factors[j].RiskWeight
	})

	var recommendations []string
	switch {
	case score > 70:
		recommendations = []string{
			"Consider reducing high-risk assets",
			"Add more stable investments like bonds",
		}
	case score > 40:
		recommendations = []string{
			"Portfolio has moderate risk",
			"Monitor volatile assets closely",
		}
	default:
		recommendations = []string{
			"Portfolio has conservative risk profile",
			"Consider adding growth assets for higher returns",
		}
	}

	return RiskReport{
		RiskScore:       int(math.Round(score)),
		RiskLevel:       level,
		RiskFactors:     factors,
		Recommendations: recommendations,
	}
}

package calculator

import (
	"github.com/shopspring/decimal"

	"portfolio-tracker/internal/models"
)

// Totals is the denormalized valuation of a set of holdings.
type Totals struct {
	TotalValue              float64
	TotalInvestment         float64
	TotalGainLoss           float64
	TotalGainLossPercentage float64
}

var hundred = decimal.NewFromInt(100)

// HoldingValue returns the current market value of a holding:
// quantity times the effective price (live price, falling back to the
// average purchase price when no live price is known).
func HoldingValue(h *models.Holding) float64 {
	v := decimal.NewFromFloat(h.Quantity).Mul(decimal.NewFromFloat(h.EffectivePrice()))
	return v.InexactFloat64()
}

// HoldingInvestment returns the cost basis of a holding:
// quantity times the average purchase price.
func HoldingInvestment(h *models.Holding) float64 {
	v := decimal.NewFromFloat(h.Quantity).Mul(decimal.NewFromFloat(h.AveragePurchasePrice))
	return v.InexactFloat64()
}

// Aggregate computes portfolio totals from its holdings. The gain/loss
// percentage is 0 when nothing has been invested. Arithmetic runs in decimal
// to keep sums stable across many float-typed holdings.
func Aggregate(holdings []models.Holding) Totals {
	value := decimal.Zero
	investment := decimal.Zero

	for i := range holdings {
		h := &holdings[i]
		qty := decimal.NewFromFloat(h.Quantity)
		value = value.Add(qty.Mul(decimal.NewFromFloat(h.EffectivePrice())))
		investment = investment.Add(qty.Mul(decimal.NewFromFloat(h.AveragePurchasePrice)))
	}

	gainLoss := value.Sub(investment)
	pct := decimal.Zero
	if investment.IsPositive() {
		pct = gainLoss.Div(investment).Mul(hundred)
	}

	return Totals{
		TotalValue:              value.InexactFloat64(),
		TotalInvestment:         investment.InexactFloat64(),
		TotalGainLoss:           gainLoss.InexactFloat64(),
		TotalGainLossPercentage: pct.InexactFloat64(),
	}
}

// MergeLot folds a new purchase lot into an existing position and returns the
// combined quantity and the quantity-weighted average price. A zero combined
// quantity yields a zero average.
func MergeLot(existingQty, existingAvg, qty, price float64) (newQty, newAvg float64) {
	eq := decimal.NewFromFloat(existingQty)
	nq := decimal.NewFromFloat(qty)
	total := eq.Add(nq)
	if total.IsZero() {
		return 0, 0
	}
	cost := eq.Mul(decimal.NewFromFloat(existingAvg)).Add(nq.Mul(decimal.NewFromFloat(price)))
	return total.InexactFloat64(), cost.Div(total).InexactFloat64()
}

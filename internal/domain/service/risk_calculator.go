package service

import (
	"github.com/shopspring/decimal"

	"github.com/akashent3/redflags-sub001/internal/domain/model"
	"github.com/akashent3/redflags-sub001/internal/domain/valueobject"
)

// RiskCalculator combines category scores into the overall 0-100 risk score
// and its band. The computation is pure and deterministic: the same category
// scores always produce the same overall score.
type RiskCalculator struct{}

// NewRiskCalculator builds a risk calculator.
func NewRiskCalculator() *RiskCalculator {
	return &RiskCalculator{}
}

// Compute returns the weighted overall score rounded to one decimal place
// (half rounds up) and the risk level derived from the rounded value. Null
// categories are excluded and the surviving weights renormalized, so a report
// with skipped categories still lands in [0,100]. If every category is null
// there is nothing to score and the computation fails with
// DataIncompleteError.
func (c *RiskCalculator) Compute(scores []model.CategoryScore) (decimal.Decimal, valueobject.RiskLevel, error) {
	weighted := decimal.Zero
	weightSum := decimal.Zero
	for _, cs := range scores {
		if cs.IsNull() {
			continue
		}
		w := decimal.NewFromFloat(cs.Weight)
		weighted = weighted.Add(w.Mul(decimal.NewFromFloat(*cs.Score)))
		weightSum = weightSum.Add(w)
	}

	if !weightSum.IsPositive() {
		return decimal.Decimal{}, valueobject.RiskLevel{}, &DataIncompleteError{
			Field:  "category_scores",
			Reason: "every category was skipped",
		}
	}

	// Round half away from zero: on a non-negative score this is half-up.
	overall := weighted.Div(weightSum).Round(1)
	level := valueobject.RiskLevelFromScore(overall.InexactFloat64())
	return overall, level, nil
}

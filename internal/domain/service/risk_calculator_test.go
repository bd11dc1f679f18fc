package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashent3/redflags-sub001/internal/domain/model"
	"github.com/akashent3/redflags-sub001/internal/domain/valueobject"
)

func scoreOf(v float64) *float64 { return &v }

func fullScores(perCategory map[valueobject.Category]float64) []model.CategoryScore {
	weights := DefaultCategoryWeights()
	scores := make([]model.CategoryScore, 0, 8)
	for _, cat := range valueobject.AllCategories() {
		cs := model.CategoryScore{Category: cat, Weight: weights[cat]}
		if v, ok := perCategory[cat]; ok {
			cs.Score = scoreOf(v)
		}
		scores = append(scores, cs)
	}
	return scores
}

func TestComputeWeightedScore(t *testing.T) {
	calc := NewRiskCalculator()
	perCategory := map[valueobject.Category]float64{}
	for _, cat := range valueobject.AllCategories() {
		perCategory[cat] = 50
	}

	overall, level, err := calc.Compute(fullScores(perCategory))
	require.NoError(t, err)
	assert.Equal(t, "50.0", overall.StringFixed(1))
	assert.True(t, level.Equal(valueobject.RiskLevelMedium))
}

func TestComputeRenormalizesNullCategories(t *testing.T) {
	calc := NewRiskCalculator()
	// Auditor (weight 20) is null; the other seven carry score 80. The
	// surviving weights renormalize so the overall stays 80, not 64.
	perCategory := map[valueobject.Category]float64{}
	for _, cat := range valueobject.AllCategories() {
		if cat.Equal(valueobject.CategoryAuditor) {
			continue
		}
		perCategory[cat] = 80
	}

	overall, level, err := calc.Compute(fullScores(perCategory))
	require.NoError(t, err)
	assert.Equal(t, "80.0", overall.StringFixed(1))
	assert.True(t, level.Equal(valueobject.RiskLevelHigh))
}

func TestComputeRoundsHalfUp(t *testing.T) {
	calc := NewRiskCalculator()
	// Single surviving category, so the overall equals its score.
	scores := fullScores(map[valueobject.Category]float64{
		valueobject.CategoryCashFlow: 39.95,
	})

	overall, level, err := calc.Compute(scores)
	require.NoError(t, err)
	assert.Equal(t, "40.0", overall.StringFixed(1))
	assert.True(t, level.Equal(valueobject.RiskLevelMedium), "band uses the rounded value")
}

func TestComputeIsDeterministic(t *testing.T) {
	calc := NewRiskCalculator()
	scores := fullScores(map[valueobject.Category]float64{
		valueobject.CategoryAuditor:      68.75,
		valueobject.CategoryCashFlow:     41.2,
		valueobject.CategoryRelatedParty: 13.9,
		valueobject.CategoryGovernance:   7.5,
	})

	first, _, err := calc.Compute(scores)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		again, _, err := calc.Compute(scores)
		require.NoError(t, err)
		assert.True(t, first.Equal(again))
	}
}

func TestComputeAllCategoriesNull(t *testing.T) {
	calc := NewRiskCalculator()
	_, _, err := calc.Compute(fullScores(nil))
	var incomplete *DataIncompleteError
	require.ErrorAs(t, err, &incomplete)
}

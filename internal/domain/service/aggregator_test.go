package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashent3/redflags-sub001/internal/domain/model"
	"github.com/akashent3/redflags-sub001/internal/domain/valueobject"
)

func newTestAggregator(t *testing.T) *Aggregator {
	t.Helper()
	agg, err := NewAggregator(DefaultSeverityPoints(), DefaultCategoryWeights())
	require.NoError(t, err)
	return agg
}

func result(id string, cat valueobject.Category, sev valueobject.Severity, status valueobject.CheckStatus) model.CheckResult {
	return model.CheckResult{CheckID: id, Category: cat, Severity: sev, Status: status}
}

func TestAggregateScoresOneCategory(t *testing.T) {
	agg := newTestAggregator(t)
	results := []model.CheckResult{
		result("a", valueobject.CategoryAuditor, valueobject.SeverityCritical, valueobject.CheckStatusTriggered),
		result("b", valueobject.CategoryAuditor, valueobject.SeverityHigh, valueobject.CheckStatusNotTriggered),
		result("c", valueobject.CategoryAuditor, valueobject.SeverityMedium, valueobject.CheckStatusTriggered),
		result("d", valueobject.CategoryAuditor, valueobject.SeverityLow, valueobject.CheckStatusSkipped),
	}

	scores := agg.Aggregate(results)
	require.Len(t, scores, 8)

	auditor := scores[0]
	require.True(t, auditor.Category.Equal(valueobject.CategoryAuditor))
	assert.Equal(t, 2, auditor.Triggered)
	assert.Equal(t, 3, auditor.Evaluated)
	assert.Equal(t, 1, auditor.Skipped)
	assert.Equal(t, 33, auditor.Points)    // 25 + 8
	assert.Equal(t, 48, auditor.MaxPoints) // 25 + 15 + 8, skipped low excluded
	require.NotNil(t, auditor.Score)
	assert.InDelta(t, 68.75, *auditor.Score, 1e-9)
}

func TestAggregateAllSkippedCategoryIsNull(t *testing.T) {
	agg := newTestAggregator(t)
	results := []model.CheckResult{
		result("a", valueobject.CategoryTextual, valueobject.SeverityMedium, valueobject.CheckStatusSkipped),
		result("b", valueobject.CategoryTextual, valueobject.SeverityHigh, valueobject.CheckStatusSkipped),
	}

	scores := agg.Aggregate(results)
	textual := scores[len(scores)-1]
	require.True(t, textual.Category.Equal(valueobject.CategoryTextual))
	assert.True(t, textual.IsNull())
	assert.Equal(t, 2, textual.Skipped)
	assert.Equal(t, 0, textual.Evaluated)
}

func TestAggregateCategoryWithNoChecksIsNull(t *testing.T) {
	agg := newTestAggregator(t)
	scores := agg.Aggregate(nil)
	for _, s := range scores {
		assert.True(t, s.IsNull(), "category %s", s.Category)
	}
}

func TestAggregatePointsCappedAtHundred(t *testing.T) {
	agg := newTestAggregator(t)
	// Five triggered criticals: 125 raw points against 125 max, capped to
	// 100 before the ratio, so the score is 80 rather than 100.
	var results []model.CheckResult
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		results = append(results,
			result(id, valueobject.CategoryGovernance, valueobject.SeverityCritical, valueobject.CheckStatusTriggered))
	}

	scores := agg.Aggregate(results)
	gov := scores[4]
	require.True(t, gov.Category.Equal(valueobject.CategoryGovernance))
	require.NotNil(t, gov.Score)
	assert.InDelta(t, 80.0, *gov.Score, 1e-9)
}

func TestAggregateFlippingOneCheckNeverLowersScore(t *testing.T) {
	agg := newTestAggregator(t)
	base := []model.CheckResult{
		result("a", valueobject.CategoryAuditor, valueobject.SeverityCritical, valueobject.CheckStatusNotTriggered),
		result("b", valueobject.CategoryAuditor, valueobject.SeverityCritical, valueobject.CheckStatusTriggered),
		result("c", valueobject.CategoryAuditor, valueobject.SeverityHigh, valueobject.CheckStatusTriggered),
		result("d", valueobject.CategoryAuditor, valueobject.SeverityMedium, valueobject.CheckStatusNotTriggered),
		result("e", valueobject.CategoryAuditor, valueobject.SeverityLow, valueobject.CheckStatusNotTriggered),
	}
	auditorScore := func(results []model.CheckResult) float64 {
		s := agg.Aggregate(results)[0]
		require.NotNil(t, s.Score)
		return *s.Score
	}

	before := auditorScore(base)
	for i, r := range base {
		if !r.Status.Equal(valueobject.CheckStatusNotTriggered) {
			continue
		}
		flipped := make([]model.CheckResult, len(base))
		copy(flipped, base)
		flipped[i].Status = valueobject.CheckStatusTriggered
		assert.GreaterOrEqual(t, auditorScore(flipped), before, "flipping %s", r.CheckID)
	}
}

func TestAggregateFlipAtPointsCapDoesNotLowerScore(t *testing.T) {
	agg := newTestAggregator(t)
	// Five triggered criticals already sit past the 100-point cap; flipping
	// a sixth must not move the score downwards.
	var base []model.CheckResult
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		base = append(base,
			result(id, valueobject.CategoryGovernance, valueobject.SeverityCritical, valueobject.CheckStatusTriggered))
	}
	base = append(base,
		result("f", valueobject.CategoryGovernance, valueobject.SeverityCritical, valueobject.CheckStatusNotTriggered))

	before := agg.Aggregate(base)[4]
	require.NotNil(t, before.Score)

	base[5].Status = valueobject.CheckStatusTriggered
	after := agg.Aggregate(base)[4]
	require.NotNil(t, after.Score)
	assert.GreaterOrEqual(t, *after.Score, *before.Score)

	// Points carries the raw severity-point sum; the cap applies only to
	// the score ratio.
	assert.Equal(t, 150, after.Points)
	assert.InDelta(t, 100.0/150.0*100, *after.Score, 1e-9)
}

func TestAggregateFullTriggerIsHundred(t *testing.T) {
	agg := newTestAggregator(t)
	results := []model.CheckResult{
		result("a", valueobject.CategoryRevenue, valueobject.SeverityMedium, valueobject.CheckStatusTriggered),
		result("b", valueobject.CategoryRevenue, valueobject.SeverityHigh, valueobject.CheckStatusTriggered),
	}

	scores := agg.Aggregate(results)
	rev := scores[6]
	require.True(t, rev.Category.Equal(valueobject.CategoryRevenue))
	require.NotNil(t, rev.Score)
	assert.InDelta(t, 100.0, *rev.Score, 1e-9)
}

func TestNewAggregatorRejectsBadTables(t *testing.T) {
	_, err := NewAggregator(SeverityPoints{Critical: 10, High: 10, Medium: 8, Low: 3}, DefaultCategoryWeights())
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)

	badWeights := DefaultCategoryWeights()
	badWeights[valueobject.CategoryAuditor] = 50 // sum now 130
	_, err = NewAggregator(DefaultSeverityPoints(), badWeights)
	require.ErrorAs(t, err, &cfgErr)
}

package service

import (
	"github.com/akashent3/redflags-sub001/internal/domain/model"
	"github.com/akashent3/redflags-sub001/internal/domain/valueobject"
)

// Aggregator folds per-check results into per-category scores.
type Aggregator struct {
	points  SeverityPoints
	weights CategoryWeights
}

// NewAggregator validates the scoring tables and builds an aggregator.
func NewAggregator(points SeverityPoints, weights CategoryWeights) (*Aggregator, error) {
	if err := points.Validate(); err != nil {
		return nil, err
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Aggregator{points: points, weights: weights}, nil
}

// Aggregate computes one CategoryScore per category, in canonical order.
// Skipped checks contribute to neither side of the ratio; a category whose
// checks were all skipped yields a nil score and is later renormalized away.
func (a *Aggregator) Aggregate(results []model.CheckResult) []model.CategoryScore {
	scores := make([]model.CategoryScore, 0, len(valueobject.AllCategories()))
	for _, cat := range valueobject.AllCategories() {
		scores = append(scores, a.aggregateCategory(cat, results))
	}
	return scores
}

func (a *Aggregator) aggregateCategory(cat valueobject.Category, results []model.CheckResult) model.CategoryScore {
	cs := model.CategoryScore{
		Category: cat,
		Weight:   a.weights[cat],
	}

	for _, r := range results {
		if !r.Category.Equal(cat) {
			continue
		}
		if r.Status.IsSkipped() {
			cs.Skipped++
			continue
		}
		cs.Evaluated++
		cs.MaxPoints += a.points.For(r.Severity)
		if r.Status.IsTriggered() {
			cs.Triggered++
			cs.Points += a.points.For(r.Severity)
		}
	}

	if cs.Evaluated == 0 {
		return cs // null category, Score stays nil
	}

	capped := cs.Points
	if capped > 100 {
		capped = 100
	}
	score := float64(capped) / float64(cs.MaxPoints) * 100
	if score > 100 {
		score = 100
	}
	cs.Score = &score
	return cs
}

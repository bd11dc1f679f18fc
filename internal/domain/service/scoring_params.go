package service

import (
	"fmt"

	"github.com/akashent3/redflags-sub001/internal/domain/valueobject"
)

// SeverityPoints maps each severity tier to its category-score contribution.
// The values are tunable configuration, not constants.
type SeverityPoints struct {
	Critical int
	High     int
	Medium   int
	Low      int
}

// DefaultSeverityPoints returns the shipped point table.
func DefaultSeverityPoints() SeverityPoints {
	return SeverityPoints{Critical: 25, High: 15, Medium: 8, Low: 3}
}

// For returns the points for a severity tier.
func (p SeverityPoints) For(s valueobject.Severity) int {
	switch {
	case s.Equal(valueobject.SeverityCritical):
		return p.Critical
	case s.Equal(valueobject.SeverityHigh):
		return p.High
	case s.Equal(valueobject.SeverityMedium):
		return p.Medium
	case s.Equal(valueobject.SeverityLow):
		return p.Low
	default:
		return 0
	}
}

// Validate ensures every tier carries a positive point value and the tiers
// are strictly ordered.
func (p SeverityPoints) Validate() error {
	if p.Low <= 0 {
		return &ConfigurationError{Detail: "severity points must be positive"}
	}
	if !(p.Critical > p.High && p.High > p.Medium && p.Medium > p.Low) {
		return &ConfigurationError{Detail: fmt.Sprintf(
			"severity points must be strictly decreasing, got %d/%d/%d/%d",
			p.Critical, p.High, p.Medium, p.Low)}
	}
	return nil
}

// CategoryWeights holds the static per-category weights used to combine
// category scores into the overall score. Weights must cover all eight
// categories and sum to exactly 100.
type CategoryWeights map[valueobject.Category]float64

// DefaultCategoryWeights returns the shipped weight table.
func DefaultCategoryWeights() CategoryWeights {
	return CategoryWeights{
		valueobject.CategoryAuditor:      20,
		valueobject.CategoryCashFlow:     18,
		valueobject.CategoryRelatedParty: 15,
		valueobject.CategoryPromoter:     15,
		valueobject.CategoryGovernance:   12,
		valueobject.CategoryBalanceSheet: 10,
		valueobject.CategoryRevenue:      5,
		valueobject.CategoryTextual:      5,
	}
}

// Validate ensures the table covers every category with a positive weight and
// the weights sum to 100.
func (w CategoryWeights) Validate() error {
	sum := 0.0
	for _, c := range valueobject.AllCategories() {
		weight, ok := w[c]
		if !ok {
			return &ConfigurationError{Detail: fmt.Sprintf("missing weight for category %s", c)}
		}
		if weight <= 0 {
			return &ConfigurationError{Detail: fmt.Sprintf("weight for category %s must be positive, got %g", c, weight)}
		}
		sum += weight
	}
	if len(w) != len(valueobject.AllCategories()) {
		return &ConfigurationError{Detail: fmt.Sprintf("weight table has %d entries, want %d", len(w), len(valueobject.AllCategories()))}
	}
	const epsilon = 1e-9
	if sum < 100-epsilon || sum > 100+epsilon {
		return &ConfigurationError{Detail: fmt.Sprintf("category weights must sum to 100, got %g", sum)}
	}
	return nil
}

package valueobject

import "fmt"

// PatternRisk is the band assigned to a historical-case similarity match, and
// in aggregate the highest band among a report's surviving matches.
type PatternRisk struct {
	value string
}

var (
	PatternRiskNone     = PatternRisk{value: "NONE"}
	PatternRiskMedium   = PatternRisk{value: "MEDIUM"}
	PatternRiskHigh     = PatternRisk{value: "HIGH"}
	PatternRiskCritical = PatternRisk{value: "CRITICAL"}
)

// PatternRiskFromString reconstructs a PatternRisk from its string representation.
func PatternRiskFromString(s string) (PatternRisk, error) {
	switch s {
	case "NONE":
		return PatternRiskNone, nil
	case "MEDIUM":
		return PatternRiskMedium, nil
	case "HIGH":
		return PatternRiskHigh, nil
	case "CRITICAL":
		return PatternRiskCritical, nil
	default:
		return PatternRisk{}, fmt.Errorf("invalid pattern risk: %s", s)
	}
}

// PatternRiskFromSimilarity bands a Jaccard similarity that has already
// cleared the match floor: >=0.70 CRITICAL, >=0.50 HIGH, otherwise MEDIUM.
func PatternRiskFromSimilarity(j float64) PatternRisk {
	switch {
	case j >= 0.70:
		return PatternRiskCritical
	case j >= 0.50:
		return PatternRiskHigh
	default:
		return PatternRiskMedium
	}
}

// String returns the string representation.
func (p PatternRisk) String() string {
	return p.value
}

// IsZero returns true if the PatternRisk has not been set.
func (p PatternRisk) IsZero() bool {
	return p.value == ""
}

// Equal checks equality with another PatternRisk.
func (p PatternRisk) Equal(other PatternRisk) bool {
	return p.value == other.value
}

// rank orders bands for aggregation; higher is riskier.
func (p PatternRisk) rank() int {
	switch p.value {
	case "CRITICAL":
		return 3
	case "HIGH":
		return 2
	case "MEDIUM":
		return 1
	default:
		return 0
	}
}

// Max returns the riskier of the two bands.
func (p PatternRisk) Max(other PatternRisk) PatternRisk {
	if other.rank() > p.rank() {
		return other
	}
	return p
}

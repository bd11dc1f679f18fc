package valueobject

import "fmt"

// RiskLevel is an immutable value object classifying a 0-100 overall risk score.
type RiskLevel struct {
	value string
}

var (
	RiskLevelClean    = RiskLevel{value: "CLEAN"}
	RiskLevelLow      = RiskLevel{value: "LOW"}
	RiskLevelMedium   = RiskLevel{value: "MEDIUM"}
	RiskLevelElevated = RiskLevel{value: "ELEVATED"}
	RiskLevelHigh     = RiskLevel{value: "HIGH"}
	RiskLevelCritical = RiskLevel{value: "CRITICAL"}
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch s {
	case "CLEAN":
		return RiskLevelClean, nil
	case "LOW":
		return RiskLevelLow, nil
	case "MEDIUM":
		return RiskLevelMedium, nil
	case "ELEVATED":
		return RiskLevelElevated, nil
	case "HIGH":
		return RiskLevelHigh, nil
	case "CRITICAL":
		return RiskLevelCritical, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromScore maps an overall score to its risk band. Bands are
// half-open at the lower bound: [0,20) CLEAN, [20,40) LOW, [40,60) MEDIUM,
// [60,75) ELEVATED, [75,90) HIGH, [90,100] CRITICAL.
func RiskLevelFromScore(score float64) RiskLevel {
	switch {
	case score >= 90:
		return RiskLevelCritical
	case score >= 75:
		return RiskLevelHigh
	case score >= 60:
		return RiskLevelElevated
	case score >= 40:
		return RiskLevelMedium
	case score >= 20:
		return RiskLevelLow
	default:
		return RiskLevelClean
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}

// IsActionable returns true for the HIGH and CRITICAL bands, which trigger
// downstream alerting.
func (r RiskLevel) IsActionable() bool {
	return r.value == "HIGH" || r.value == "CRITICAL"
}

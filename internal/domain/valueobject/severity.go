package valueobject

import "fmt"

// Severity is the fixed per-check tier that determines a triggered check's
// point contribution to its category score. It is set in the check catalog
// and never altered at runtime.
type Severity struct {
	value string
}

var (
	SeverityLow      = Severity{value: "LOW"}
	SeverityMedium   = Severity{value: "MEDIUM"}
	SeverityHigh     = Severity{value: "HIGH"}
	SeverityCritical = Severity{value: "CRITICAL"}
)

// SeverityFromString reconstructs a Severity from its string representation.
func SeverityFromString(s string) (Severity, error) {
	switch s {
	case "LOW":
		return SeverityLow, nil
	case "MEDIUM":
		return SeverityMedium, nil
	case "HIGH":
		return SeverityHigh, nil
	case "CRITICAL":
		return SeverityCritical, nil
	default:
		return Severity{}, fmt.Errorf("invalid severity: %s", s)
	}
}

// String returns the string representation.
func (s Severity) String() string {
	return s.value
}

// IsZero returns true if the Severity has not been set.
func (s Severity) IsZero() bool {
	return s.value == ""
}

// Equal checks equality with another Severity.
func (s Severity) Equal(other Severity) bool {
	return s.value == other.value
}

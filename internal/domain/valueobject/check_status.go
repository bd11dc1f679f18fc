package valueobject

import "fmt"

// CheckStatus is the outcome of evaluating a single check. SKIPPED is a
// distinct state from NOT_TRIGGERED: a skipped check had missing or unusable
// input data and is excluded from its category's scoring denominator.
type CheckStatus struct {
	value string
}

var (
	CheckStatusTriggered    = CheckStatus{value: "TRIGGERED"}
	CheckStatusNotTriggered = CheckStatus{value: "NOT_TRIGGERED"}
	CheckStatusSkipped      = CheckStatus{value: "SKIPPED"}
)

// CheckStatusFromString reconstructs a CheckStatus from its string representation.
func CheckStatusFromString(s string) (CheckStatus, error) {
	switch s {
	case "TRIGGERED":
		return CheckStatusTriggered, nil
	case "NOT_TRIGGERED":
		return CheckStatusNotTriggered, nil
	case "SKIPPED":
		return CheckStatusSkipped, nil
	default:
		return CheckStatus{}, fmt.Errorf("invalid check status: %s", s)
	}
}

// String returns the string representation.
func (c CheckStatus) String() string {
	return c.value
}

// IsZero returns true if the CheckStatus has not been set.
func (c CheckStatus) IsZero() bool {
	return c.value == ""
}

// Equal checks equality with another CheckStatus.
func (c CheckStatus) Equal(other CheckStatus) bool {
	return c.value == other.value
}

// IsTriggered returns true if the check fired.
func (c CheckStatus) IsTriggered() bool {
	return c.value == "TRIGGERED"
}

// IsSkipped returns true if the check was excluded from scoring.
func (c CheckStatus) IsSkipped() bool {
	return c.value == "SKIPPED"
}

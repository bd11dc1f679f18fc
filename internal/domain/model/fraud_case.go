package model

import (
	"github.com/akashent3/redflags-sub001/internal/domain/valueobject"
)

// FraudCase is read-only reference data: a historical accounting fraud with
// the canonical set of flag ids that were present in hindsight.
type FraudCase struct {
	CaseID  string
	Company string
	Year    int
	FlagIDs []string
}

// FlagSet returns the canonical flags as a set.
func (c FraudCase) FlagSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.FlagIDs))
	for _, id := range c.FlagIDs {
		set[id] = struct{}{}
	}
	return set
}

// PatternMatch is one historical case whose flag set cleared the similarity
// floor against the current report's triggered flags.
type PatternMatch struct {
	CaseID           string
	Company          string
	Year             int
	Similarity       float64 // Jaccard, [0,1]
	OverlappingFlags []string
	Band             valueobject.PatternRisk
}

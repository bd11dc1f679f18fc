package model

import (
	"github.com/akashent3/redflags-sub001/internal/domain/valueobject"
)

// CheckResult is the per-analysis outcome of one catalog check. Severity is
// copied verbatim from the check definition and never altered at runtime.
type CheckResult struct {
	CheckID    string
	Category   valueobject.Category
	Severity   valueobject.Severity
	Status     valueobject.CheckStatus
	Confidence float64 // [0,1]; 1.0 for deterministic numeric checks
	Evidence   string
	Pages      []int
	SkipReason string // set only when Status is SKIPPED
}

// CategoryScore is the aggregated 0-100 score for one category. Score is nil
// when every check in the category was skipped; such categories are excluded
// from the overall score with their weight renormalized away.
type CategoryScore struct {
	Category  valueobject.Category
	Score     *float64
	Weight    float64
	Points    int // raw severity points of triggered checks; the score ratio caps them at 100
	MaxPoints int // severity points of all non-skipped checks this run
	Triggered int
	Evaluated int // non-skipped checks
	Skipped   int
}

// IsNull reports whether the category produced no score this run.
func (c CategoryScore) IsNull() bool {
	return c.Score == nil
}

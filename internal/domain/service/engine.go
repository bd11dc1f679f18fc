package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/akashent3/redflags-sub001/internal/domain/model"
	"github.com/akashent3/redflags-sub001/internal/domain/valueobject"
)

// Outcome is the full result of one engine run: everything needed to finalize
// a ReportAssessment. It carries no timestamps; the aggregate stamps itself.
type Outcome struct {
	Results        []model.CheckResult
	CategoryScores []model.CategoryScore
	OverallScore   decimal.Decimal
	RiskLevel      valueobject.RiskLevel
	Matches        []model.PatternMatch
	PatternRisk    valueobject.PatternRisk
}

// Engine is the synchronous analysis pipeline: evaluate all checks, aggregate
// per category, compute the overall score, then rank historical matches. It
// is stateless per run and safe for concurrent use across analyses.
type Engine struct {
	evaluator  *Evaluator
	aggregator *Aggregator
	calculator *RiskCalculator
	matcher    *PatternMatcher
}

// NewEngine wires the pipeline stages together.
func NewEngine(evaluator *Evaluator, aggregator *Aggregator, calculator *RiskCalculator, matcher *PatternMatcher) *Engine {
	return &Engine{
		evaluator:  evaluator,
		aggregator: aggregator,
		calculator: calculator,
		matcher:    matcher,
	}
}

// Analyze runs the full pipeline over a report bundle. It either returns a
// complete Outcome or an error with no partial results; cancellation mid-run
// discards everything.
func (e *Engine) Analyze(ctx context.Context, bundle *model.ReportBundle) (*Outcome, error) {
	results, err := e.evaluator.Evaluate(ctx, bundle)
	if err != nil {
		return nil, err
	}
	if err := e.verifyResults(results); err != nil {
		return nil, err
	}

	// Fan-in barrier: aggregation sees the complete result list or nothing.
	categories := e.aggregator.Aggregate(results)
	overall, level, err := e.calculator.Compute(categories)
	if err != nil {
		return nil, err
	}

	triggered := make([]string, 0)
	for _, r := range results {
		if r.Status.IsTriggered() {
			triggered = append(triggered, r.CheckID)
		}
	}
	matches, patternRisk := e.matcher.Match(triggered)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Outcome{
		Results:        results,
		CategoryScores: categories,
		OverallScore:   overall,
		RiskLevel:      level,
		Matches:        matches,
		PatternRisk:    patternRisk,
	}, nil
}

// verifyResults asserts that every result carries exactly its definition's
// category and severity. A divergence is a code defect and aborts the run.
func (e *Engine) verifyResults(results []model.CheckResult) error {
	defs := e.evaluator.catalog.Checks()
	if len(results) != len(defs) {
		return &InvariantViolationError{Detail: fmt.Sprintf(
			"got %d results for %d catalog checks", len(results), len(defs))}
	}
	for i, r := range results {
		def := defs[i]
		if r.CheckID != def.ID {
			return &InvariantViolationError{Detail: fmt.Sprintf(
				"result %d is for check %q, want %q", i, r.CheckID, def.ID)}
		}
		if !r.Severity.Equal(def.Severity) {
			return &InvariantViolationError{Detail: fmt.Sprintf(
				"check %s result severity %s diverges from definition %s", r.CheckID, r.Severity, def.Severity)}
		}
		if !r.Category.Equal(def.Category) {
			return &InvariantViolationError{Detail: fmt.Sprintf(
				"check %s result category %s diverges from definition %s", r.CheckID, r.Category, def.Category)}
		}
		if r.Status.IsZero() {
			return &InvariantViolationError{Detail: fmt.Sprintf("check %s has no status", r.CheckID)}
		}
	}
	return nil
}

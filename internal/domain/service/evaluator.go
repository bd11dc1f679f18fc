package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/akashent3/redflags-sub001/internal/domain/model"
	"github.com/akashent3/redflags-sub001/internal/domain/port"
	"github.com/akashent3/redflags-sub001/internal/domain/valueobject"
)

const (
	// Textual verdicts below this confidence are treated as NOT_TRIGGERED.
	defaultConfidenceFloor = 0.6
	// Per-call deadline for one classifier invocation.
	defaultClassifierTimeout = 20 * time.Second
)

// Evaluator runs every catalog check against a report bundle. Checks are
// independent and run concurrently; results come back in catalog order.
type Evaluator struct {
	catalog           *Catalog
	classifier        port.TextClassifier
	confidenceFloor   float64
	classifierTimeout time.Duration
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithConfidenceFloor overrides the minimum confidence for textual verdicts.
func WithConfidenceFloor(floor float64) EvaluatorOption {
	return func(e *Evaluator) { e.confidenceFloor = floor }
}

// WithClassifierTimeout overrides the per-call classifier deadline.
func WithClassifierTimeout(d time.Duration) EvaluatorOption {
	return func(e *Evaluator) { e.classifierTimeout = d }
}

// NewEvaluator builds an evaluator over a validated catalog.
func NewEvaluator(catalog *Catalog, classifier port.TextClassifier, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		catalog:           catalog,
		classifier:        classifier,
		confidenceFloor:   defaultConfidenceFloor,
		classifierTimeout: defaultClassifierTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs all checks concurrently and returns one result per catalog
// entry, in catalog order. Cancellation is all-or-nothing: if ctx is done
// before every check has finished, no results are returned.
func (e *Evaluator) Evaluate(ctx context.Context, bundle *model.ReportBundle) ([]model.CheckResult, error) {
	defs := e.catalog.Checks()
	results := make([]model.CheckResult, len(defs))

	var wg sync.WaitGroup
	for i, def := range defs {
		wg.Add(1)
		go func(i int, def CheckDefinition) {
			defer wg.Done()
			results[i] = e.evaluateOne(ctx, def, bundle)
		}(i, def)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Evaluator) evaluateOne(ctx context.Context, def CheckDefinition, bundle *model.ReportBundle) model.CheckResult {
	if def.Kind == KindTextual {
		return e.evaluateTextual(ctx, def, bundle)
	}
	return evaluateNumeric(def, bundle)
}

func evaluateNumeric(def CheckDefinition, bundle *model.ReportBundle) model.CheckResult {
	res := model.CheckResult{
		CheckID:    def.ID,
		Category:   def.Category,
		Severity:   def.Severity,
		Confidence: 1.0,
	}

	finding, err := numericChecks[def.EvalFn](bundle, def.Params)
	if err != nil {
		var incomplete *DataIncompleteError
		if errors.As(err, &incomplete) {
			res.Status = valueobject.CheckStatusSkipped
			res.SkipReason = incomplete.Error()
			res.Confidence = 0
			return res
		}
		// Numeric checks only ever skip; anything else is a defect in the
		// check itself and must not fire a flag.
		res.Status = valueobject.CheckStatusSkipped
		res.SkipReason = err.Error()
		res.Confidence = 0
		return res
	}

	if finding.Triggered {
		res.Status = valueobject.CheckStatusTriggered
		res.Evidence = finding.Evidence
	} else {
		res.Status = valueobject.CheckStatusNotTriggered
	}
	return res
}

func (e *Evaluator) evaluateTextual(ctx context.Context, def CheckDefinition, bundle *model.ReportBundle) model.CheckResult {
	res := model.CheckResult{
		CheckID:  def.ID,
		Category: def.Category,
		Severity: def.Severity,
	}

	excerpt, ok := bundle.Excerpts.Get(def.Section)
	if !ok || excerpt.Text == "" {
		res.Status = valueobject.CheckStatusSkipped
		res.SkipReason = (&DataIncompleteError{Field: "excerpt:" + def.Section, Reason: "section not extracted"}).Error()
		return res
	}

	req := port.ClassifyRequest{CheckID: def.ID, Excerpt: excerpt.Text}
	if prior, ok := bundle.Excerpts.GetPrior(def.Section); ok {
		req.PriorYearExcerpt = prior.Text
	}

	callCtx, cancel := context.WithTimeout(ctx, e.classifierTimeout)
	defer cancel()

	verdict, err := e.classifier.Classify(callCtx, req)
	if err != nil {
		res.Status = valueobject.CheckStatusSkipped
		if errors.Is(err, context.DeadlineExceeded) {
			res.SkipReason = (&ClassifierTimeoutError{CheckID: def.ID}).Error()
		} else {
			res.SkipReason = (&ClassifierUnavailableError{CheckID: def.ID, Cause: err}).Error()
		}
		return res
	}

	res.Confidence = verdict.Confidence
	res.Pages = excerpt.Pages
	if verdict.Triggered && verdict.Confidence >= e.confidenceFloor {
		res.Status = valueobject.CheckStatusTriggered
		res.Evidence = verdict.Rationale
	} else {
		res.Status = valueobject.CheckStatusNotTriggered
	}
	return res
}

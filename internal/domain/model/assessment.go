package model

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/akashent3/redflags-sub001/internal/domain/event"
	"github.com/akashent3/redflags-sub001/internal/domain/valueobject"
)

// ReportAssessment is the aggregate root for annual-report risk assessments.
// It is immutable once finalized: a re-analysis of the same company and year
// produces a new assessment record, never an in-place update.
type ReportAssessment struct {
	analyzedAt        time.Time
	createdAt         time.Time
	companyName       string
	extractionVersion string
	summary           string
	overallScore      decimal.Decimal
	riskLevel         valueobject.RiskLevel
	patternRisk       valueobject.PatternRisk
	categoryScores    []CategoryScore
	checkResults      []CheckResult
	patternMatches    []PatternMatch
	domainEvents      []any
	fiscalYear        int
	companyID         uuid.UUID
	id                uuid.UUID
}

// NewReportAssessment creates an unscored assessment for a company's annual
// report. Call Finalize with the engine outcome to complete it.
func NewReportAssessment(companyID uuid.UUID, companyName string, fiscalYear int, extractionVersion string) (*ReportAssessment, error) {
	if companyID == uuid.Nil {
		return nil, fmt.Errorf("company ID is required")
	}
	if companyName == "" {
		return nil, fmt.Errorf("company name is required")
	}
	if fiscalYear < 1990 || fiscalYear > 2100 {
		return nil, fmt.Errorf("implausible fiscal year: %d", fiscalYear)
	}
	if extractionVersion == "" {
		return nil, fmt.Errorf("extraction version is required")
	}

	return &ReportAssessment{
		id:                uuid.New(),
		companyID:         companyID,
		companyName:       companyName,
		fiscalYear:        fiscalYear,
		extractionVersion: extractionVersion,
		createdAt:         time.Now().UTC(),
	}, nil
}

// Finalize applies the engine outcome to the assessment: the ordered check
// results, category scores, rounded overall score, risk level and pattern
// matches. This is the only state transition and it emits the domain events.
func (a *ReportAssessment) Finalize(
	results []CheckResult,
	categories []CategoryScore,
	overall decimal.Decimal,
	level valueobject.RiskLevel,
	matches []PatternMatch,
	patternRisk valueobject.PatternRisk,
) error {
	score := overall.InexactFloat64()
	if score < 0 || score > 100 {
		return fmt.Errorf("overall score must be in [0,100], got %s", overall)
	}
	if level.IsZero() {
		return fmt.Errorf("risk level is required")
	}
	if len(results) == 0 {
		return fmt.Errorf("check results are required")
	}
	if !a.analyzedAt.IsZero() {
		return fmt.Errorf("assessment %s already finalized", a.id)
	}

	a.checkResults = results
	a.categoryScores = categories
	a.overallScore = overall
	a.riskLevel = level
	a.patternMatches = matches
	a.patternRisk = patternRisk
	a.analyzedAt = time.Now().UTC()
	a.summary = a.buildSummary()

	triggered := a.TriggeredFlagIDs()

	a.domainEvents = append(a.domainEvents, event.AnalysisCompleted{
		AssessmentID:   a.id,
		CompanyID:      a.companyID,
		FiscalYear:     a.fiscalYear,
		OverallScore:   score,
		RiskLevel:      a.riskLevel.String(),
		TriggeredFlags: triggered,
		PatternRisk:    a.patternRisk.String(),
		AnalyzedAt:     a.analyzedAt,
	})

	if a.riskLevel.IsActionable() {
		a.domainEvents = append(a.domainEvents, event.HighRiskDetected{
			AssessmentID:   a.id,
			CompanyID:      a.companyID,
			CompanyName:    a.companyName,
			FiscalYear:     a.fiscalYear,
			OverallScore:   score,
			RiskLevel:      a.riskLevel.String(),
			TriggeredFlags: triggered,
			DetectedAt:     a.analyzedAt,
		})
	}

	return nil
}

// buildSummary produces the human-readable one-liner for the reporting
// surface. It is a pure function of the finalized state.
func (a *ReportAssessment) buildSummary() string {
	triggered, critical, high := 0, 0, 0
	for _, r := range a.checkResults {
		if !r.Status.IsTriggered() {
			continue
		}
		triggered++
		switch {
		case r.Severity.Equal(valueobject.SeverityCritical):
			critical++
		case r.Severity.Equal(valueobject.SeverityHigh):
			high++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s FY%d: risk %s (%s), %d of %d checks triggered",
		a.companyName, a.fiscalYear, a.overallScore.StringFixed(1), a.riskLevel.String(), triggered, len(a.checkResults))
	if critical > 0 || high > 0 {
		fmt.Fprintf(&b, " (%d critical, %d high)", critical, high)
	}

	// Name the worst categories, highest score first.
	scored := make([]CategoryScore, 0, len(a.categoryScores))
	for _, c := range a.categoryScores {
		if !c.IsNull() && *c.Score > 0 {
			scored = append(scored, c)
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return *scored[i].Score > *scored[j].Score })
	if len(scored) > 2 {
		scored = scored[:2]
	}
	if len(scored) > 0 {
		names := make([]string, 0, len(scored))
		for _, c := range scored {
			names = append(names, fmt.Sprintf("%s %.1f", c.Category.String(), *c.Score))
		}
		fmt.Fprintf(&b, "; worst categories: %s", strings.Join(names, ", "))
	}

	if !a.patternRisk.Equal(valueobject.PatternRiskNone) {
		fmt.Fprintf(&b, "; pattern risk %s (%d historical matches)", a.patternRisk.String(), len(a.patternMatches))
	}

	return b.String()
}

// TriggeredFlagIDs returns the ids of all triggered checks in catalog order.
func (a *ReportAssessment) TriggeredFlagIDs() []string {
	ids := make([]string, 0)
	for _, r := range a.checkResults {
		if r.Status.IsTriggered() {
			ids = append(ids, r.CheckID)
		}
	}
	return ids
}

// Reconstruct rebuilds a ReportAssessment from persisted data (no validation,
// no events).
func Reconstruct(
	id, companyID uuid.UUID,
	companyName string,
	fiscalYear int,
	extractionVersion string,
	overallScore decimal.Decimal,
	riskLevel valueobject.RiskLevel,
	patternRisk valueobject.PatternRisk,
	categories []CategoryScore,
	results []CheckResult,
	matches []PatternMatch,
	summary string,
	analyzedAt, createdAt time.Time,
) *ReportAssessment {
	return &ReportAssessment{
		id:                id,
		companyID:         companyID,
		companyName:       companyName,
		fiscalYear:        fiscalYear,
		extractionVersion: extractionVersion,
		overallScore:      overallScore,
		riskLevel:         riskLevel,
		patternRisk:       patternRisk,
		categoryScores:    categories,
		checkResults:      results,
		patternMatches:    matches,
		summary:           summary,
		analyzedAt:        analyzedAt,
		createdAt:         createdAt,
	}
}

// --- Accessors ---

func (a *ReportAssessment) ID() uuid.UUID                        { return a.id }
func (a *ReportAssessment) CompanyID() uuid.UUID                 { return a.companyID }
func (a *ReportAssessment) CompanyName() string                  { return a.companyName }
func (a *ReportAssessment) FiscalYear() int                      { return a.fiscalYear }
func (a *ReportAssessment) ExtractionVersion() string            { return a.extractionVersion }
func (a *ReportAssessment) OverallScore() decimal.Decimal        { return a.overallScore }
func (a *ReportAssessment) RiskLevel() valueobject.RiskLevel     { return a.riskLevel }
func (a *ReportAssessment) PatternRisk() valueobject.PatternRisk { return a.patternRisk }
func (a *ReportAssessment) CategoryScores() []CategoryScore      { return a.categoryScores }
func (a *ReportAssessment) CheckResults() []CheckResult          { return a.checkResults }
func (a *ReportAssessment) PatternMatches() []PatternMatch       { return a.patternMatches }
func (a *ReportAssessment) Summary() string                      { return a.summary }
func (a *ReportAssessment) AnalyzedAt() time.Time                { return a.analyzedAt }
func (a *ReportAssessment) CreatedAt() time.Time                 { return a.createdAt }

// DomainEvents returns all accumulated domain events and clears them.
func (a *ReportAssessment) DomainEvents() []any {
	evts := a.domainEvents
	a.domainEvents = nil
	return evts
}

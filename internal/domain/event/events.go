package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	// EventTypeAnalysisCompleted is emitted when a report analysis finishes.
	EventTypeAnalysisCompleted = "redflags.analysis.completed"

	// EventTypeHighRiskDetected is emitted when the risk level lands in the
	// HIGH or CRITICAL band.
	EventTypeHighRiskDetected = "redflags.high_risk.detected"
)

// AnalysisCompleted is published when a risk assessment has been produced
// for a company's annual report.
type AnalysisCompleted struct {
	AssessmentID   uuid.UUID `json:"assessment_id"`
	CompanyID      uuid.UUID `json:"company_id"`
	FiscalYear     int       `json:"fiscal_year"`
	OverallScore   float64   `json:"overall_score"`
	RiskLevel      string    `json:"risk_level"`
	TriggeredFlags []string  `json:"triggered_flags"`
	PatternRisk    string    `json:"pattern_risk"`
	AnalyzedAt     time.Time `json:"analyzed_at"`
}

// EventType returns the event type identifier.
func (e AnalysisCompleted) EventType() string {
	return EventTypeAnalysisCompleted
}

// AggregateID returns the assessment ID as the aggregate identifier.
func (e AnalysisCompleted) AggregateID() uuid.UUID {
	return e.AssessmentID
}

// HighRiskDetected is published alongside AnalysisCompleted when a report is
// assessed HIGH or CRITICAL, feeding alerting and watchlist surfaces.
type HighRiskDetected struct {
	AssessmentID   uuid.UUID `json:"assessment_id"`
	CompanyID      uuid.UUID `json:"company_id"`
	CompanyName    string    `json:"company_name"`
	FiscalYear     int       `json:"fiscal_year"`
	OverallScore   float64   `json:"overall_score"`
	RiskLevel      string    `json:"risk_level"`
	TriggeredFlags []string  `json:"triggered_flags"`
	DetectedAt     time.Time `json:"detected_at"`
}

// EventType returns the event type identifier.
func (e HighRiskDetected) EventType() string {
	return EventTypeHighRiskDetected
}

// AggregateID returns the assessment ID as the aggregate identifier.
func (e HighRiskDetected) AggregateID() uuid.UUID {
	return e.AssessmentID
}

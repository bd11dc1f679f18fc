package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/akashent3/redflags-sub001/internal/domain/model"
)

// AssessmentRepository defines the persistence port for report assessments.
// Assessments are append-only: Save never updates an existing record.
type AssessmentRepository interface {
	// Save persists a finalized assessment with its check results and
	// pattern matches. Saving a duplicate (company, fiscal year, extraction
	// version) triple is an error.
	Save(ctx context.Context, assessment *model.ReportAssessment) error

	// FindByID retrieves an assessment by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*model.ReportAssessment, error)

	// FindByCompanyYear retrieves the assessment for a company, fiscal year
	// and extraction version.
	FindByCompanyYear(ctx context.Context, companyID uuid.UUID, fiscalYear int, extractionVersion string) (*model.ReportAssessment, error)

	// ListByCompany retrieves assessments for a company, newest first.
	ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*model.ReportAssessment, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	Publish(ctx context.Context, events ...any) error
}

// ClassifyRequest is the input to the external text classifier for one
// AI-assisted textual check.
type ClassifyRequest struct {
	CheckID          string
	Excerpt          string
	PriorYearExcerpt string
}

// Classification is the classifier's verdict for one excerpt.
type Classification struct {
	Triggered  bool
	Confidence float64 // [0,1]
	Rationale  string
}

// TextClassifier is the port for the external AI text classification
// capability consumed by the six textual checks. Implementations must honor
// context cancellation and deadlines.
type TextClassifier interface {
	Classify(ctx context.Context, req ClassifyRequest) (Classification, error)
}

// CaseLibrary is the port for the static, versioned library of historical
// fraud cases. Loaded once per process lifetime, reloadable on demand.
type CaseLibrary interface {
	Cases() []model.FraudCase
	Version() string
}

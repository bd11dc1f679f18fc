package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akashent3/redflags-sub001/internal/application/dto"
	"github.com/akashent3/redflags-sub001/internal/domain/model"
	"github.com/akashent3/redflags-sub001/internal/domain/port"
	"github.com/akashent3/redflags-sub001/internal/domain/service"
	"github.com/akashent3/redflags-sub001/pkg/observability"
)

// ErrInvalidBundle marks an analysis request with no usable report bundle.
var ErrInvalidBundle = errors.New("report bundle is required")

// AnalyzeReport is the use case for running the full analysis pipeline over
// one annual report and persisting the resulting assessment.
type AnalyzeReport struct {
	repo      port.AssessmentRepository
	publisher port.EventPublisher
	engine    *service.Engine
	metrics   *observability.AnalysisMetrics
}

// NewAnalyzeReport creates the AnalyzeReport use case. Metrics may be nil.
func NewAnalyzeReport(
	repo port.AssessmentRepository,
	publisher port.EventPublisher,
	engine *service.Engine,
	metrics *observability.AnalysisMetrics,
) *AnalyzeReport {
	return &AnalyzeReport{
		repo:      repo,
		publisher: publisher,
		engine:    engine,
		metrics:   metrics,
	}
}

// Execute runs the engine, finalizes the assessment aggregate, persists it
// and publishes the domain events. Nothing is persisted when any pipeline
// stage fails or the context is cancelled mid-run.
func (uc *AnalyzeReport) Execute(ctx context.Context, req dto.AnalyzeReportRequest) (dto.AssessmentResponse, error) {
	if req.Bundle == nil {
		return dto.AssessmentResponse{}, ErrInvalidBundle
	}
	ds := req.Bundle.Financials

	assessment, err := model.NewReportAssessment(ds.CompanyID, ds.CompanyName, ds.FiscalYear, ds.ExtractionVersion)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to create assessment: %w", err)
	}

	started := time.Now()
	outcome, err := uc.engine.Analyze(ctx, req.Bundle)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("analysis failed: %w", err)
	}

	if err := assessment.Finalize(
		outcome.Results,
		outcome.CategoryScores,
		outcome.OverallScore,
		outcome.RiskLevel,
		outcome.Matches,
		outcome.PatternRisk,
	); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to finalize assessment: %w", err)
	}

	if err := uc.repo.Save(ctx, assessment); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to save assessment: %w", err)
	}

	events := assessment.DomainEvents()
	if len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			return dto.AssessmentResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	uc.metrics.RecordAnalysis(ctx, assessment.RiskLevel().String(), time.Since(started))
	for _, cs := range outcome.CategoryScores {
		uc.metrics.RecordSkipped(ctx, cs.Category.String(), cs.Skipped)
	}

	return dto.FromModel(assessment), nil
}

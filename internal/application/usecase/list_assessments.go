package usecase

import (
	"context"
	"fmt"

	"github.com/akashent3/redflags-sub001/internal/application/dto"
	"github.com/akashent3/redflags-sub001/internal/domain/port"
)

const defaultListLimit = 20

// ListAssessments is the use case for listing a company's assessments,
// newest fiscal year first.
type ListAssessments struct {
	repo port.AssessmentRepository
}

// NewListAssessments creates the ListAssessments use case.
func NewListAssessments(repo port.AssessmentRepository) *ListAssessments {
	return &ListAssessments{repo: repo}
}

// Execute lists assessments for a company.
func (uc *ListAssessments) Execute(ctx context.Context, req dto.ListAssessmentsRequest) ([]dto.AssessmentResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = defaultListLimit
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	assessments, err := uc.repo.ListByCompany(ctx, req.CompanyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	responses := make([]dto.AssessmentResponse, 0, len(assessments))
	for _, a := range assessments {
		responses = append(responses, dto.FromModel(a))
	}
	return responses, nil
}

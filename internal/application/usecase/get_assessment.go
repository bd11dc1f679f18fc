package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/akashent3/redflags-sub001/internal/application/dto"
	"github.com/akashent3/redflags-sub001/internal/domain/port"
)

// ErrAssessmentNotFound marks a lookup for an assessment that does not exist.
var ErrAssessmentNotFound = errors.New("assessment not found")

// GetAssessment is the use case for retrieving an existing assessment.
type GetAssessment struct {
	repo port.AssessmentRepository
}

// NewGetAssessment creates the GetAssessment use case.
func NewGetAssessment(repo port.AssessmentRepository) *GetAssessment {
	return &GetAssessment{repo: repo}
}

// Execute retrieves an assessment by its identifier.
func (uc *GetAssessment) Execute(ctx context.Context, req dto.GetAssessmentRequest) (dto.AssessmentResponse, error) {
	assessment, err := uc.repo.FindByID(ctx, req.AssessmentID)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to find assessment: %w", err)
	}
	if assessment == nil {
		return dto.AssessmentResponse{}, fmt.Errorf("%w: %s", ErrAssessmentNotFound, req.AssessmentID)
	}
	return dto.FromModel(assessment), nil
}

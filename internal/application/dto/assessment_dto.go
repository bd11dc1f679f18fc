package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/akashent3/redflags-sub001/internal/domain/model"
)

// AnalyzeReportRequest is the input DTO for the AnalyzeReport use case. The
// bundle is the normalized output of the extraction pipeline.
type AnalyzeReportRequest struct {
	Bundle *model.ReportBundle
}

// GetAssessmentRequest is the input DTO for retrieving one assessment.
type GetAssessmentRequest struct {
	AssessmentID uuid.UUID
}

// ListAssessmentsRequest is the input DTO for listing a company's assessments.
type ListAssessmentsRequest struct {
	CompanyID uuid.UUID
	Limit     int
	Offset    int
}

// CheckResultDTO is one check outcome in a response.
type CheckResultDTO struct {
	CheckID    string  `json:"check_id"`
	Category   string  `json:"category"`
	Severity   string  `json:"severity"`
	Status     string  `json:"status"`
	Confidence float64 `json:"confidence"`
	Evidence   string  `json:"evidence,omitempty"`
	Pages      []int   `json:"pages,omitempty"`
	SkipReason string  `json:"skip_reason,omitempty"`
}

// CategoryScoreDTO is one category's aggregate in a response. Score is nil
// when every check in the category was skipped.
type CategoryScoreDTO struct {
	Category  string   `json:"category"`
	Score     *float64 `json:"score"`
	Weight    float64  `json:"weight"`
	Triggered int      `json:"triggered"`
	Evaluated int      `json:"evaluated"`
	Skipped   int      `json:"skipped"`
}

// PatternMatchDTO is one historical-case match in a response.
type PatternMatchDTO struct {
	CaseID           string   `json:"case_id"`
	Company          string   `json:"company"`
	Year             int      `json:"year"`
	Similarity       float64  `json:"similarity"`
	OverlappingFlags []string `json:"overlapping_flags"`
	Band             string   `json:"band"`
}

// AssessmentResponse is the full assessment returned by the use cases.
type AssessmentResponse struct {
	ID                uuid.UUID          `json:"id"`
	CompanyID         uuid.UUID          `json:"company_id"`
	CompanyName       string             `json:"company_name"`
	FiscalYear        int                `json:"fiscal_year"`
	ExtractionVersion string             `json:"extraction_version"`
	OverallScore      string             `json:"overall_score"`
	RiskLevel         string             `json:"risk_level"`
	PatternRisk       string             `json:"pattern_risk"`
	Summary           string             `json:"summary"`
	CategoryScores    []CategoryScoreDTO `json:"category_scores"`
	CheckResults      []CheckResultDTO   `json:"check_results"`
	PatternMatches    []PatternMatchDTO  `json:"pattern_matches"`
	AnalyzedAt        time.Time          `json:"analyzed_at"`
	CreatedAt         time.Time          `json:"created_at"`
}

// FromModel maps the assessment aggregate to the response DTO.
func FromModel(a *model.ReportAssessment) AssessmentResponse {
	results := make([]CheckResultDTO, 0, len(a.CheckResults()))
	for _, r := range a.CheckResults() {
		results = append(results, CheckResultDTO{
			CheckID:    r.CheckID,
			Category:   r.Category.String(),
			Severity:   r.Severity.String(),
			Status:     r.Status.String(),
			Confidence: r.Confidence,
			Evidence:   r.Evidence,
			Pages:      r.Pages,
			SkipReason: r.SkipReason,
		})
	}

	categories := make([]CategoryScoreDTO, 0, len(a.CategoryScores()))
	for _, c := range a.CategoryScores() {
		categories = append(categories, CategoryScoreDTO{
			Category:  c.Category.String(),
			Score:     c.Score,
			Weight:    c.Weight,
			Triggered: c.Triggered,
			Evaluated: c.Evaluated,
			Skipped:   c.Skipped,
		})
	}

	matches := make([]PatternMatchDTO, 0, len(a.PatternMatches()))
	for _, m := range a.PatternMatches() {
		matches = append(matches, PatternMatchDTO{
			CaseID:           m.CaseID,
			Company:          m.Company,
			Year:             m.Year,
			Similarity:       m.Similarity,
			OverlappingFlags: m.OverlappingFlags,
			Band:             m.Band.String(),
		})
	}

	return AssessmentResponse{
		ID:                a.ID(),
		CompanyID:         a.CompanyID(),
		CompanyName:       a.CompanyName(),
		FiscalYear:        a.FiscalYear(),
		ExtractionVersion: a.ExtractionVersion(),
		OverallScore:      a.OverallScore().StringFixed(1),
		RiskLevel:         a.RiskLevel().String(),
		PatternRisk:       a.PatternRisk().String(),
		Summary:           a.Summary(),
		CategoryScores:    categories,
		CheckResults:      results,
		PatternMatches:    matches,
		AnalyzedAt:        a.AnalyzedAt(),
		CreatedAt:         a.CreatedAt(),
	}
}

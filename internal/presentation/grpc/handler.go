package grpc

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/akashent3/redflags-sub001/internal/application/dto"
	"github.com/akashent3/redflags-sub001/internal/application/usecase"
	"github.com/akashent3/redflags-sub001/internal/infrastructure/postgres"
	"github.com/akashent3/redflags-sub001/pkg/auth"
)

// AnalysisHandler implements AnalysisServiceServer on top of the use cases.
type AnalysisHandler struct {
	UnimplementedAnalysisServiceServer

	analyzeReport   *usecase.AnalyzeReport
	getAssessment   *usecase.GetAssessment
	listAssessments *usecase.ListAssessments
	logger          *slog.Logger
}

func NewAnalysisHandler(
	analyzeReport *usecase.AnalyzeReport,
	getAssessment *usecase.GetAssessment,
	listAssessments *usecase.ListAssessments,
	logger *slog.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		analyzeReport:   analyzeReport,
		getAssessment:   getAssessment,
		listAssessments: listAssessments,
		logger:          logger,
	}
}

func (h *AnalysisHandler) AnalyzeReport(ctx context.Context, req *AnalyzeReportRequest) (*AnalyzeReportResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleAnalyst, auth.RoleAPIClient); err != nil {
		return nil, err
	}
	bundle, err := bundleFromRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	resp, err := h.analyzeReport.Execute(ctx, dto.AnalyzeReportRequest{Bundle: bundle})
	if err != nil {
		if errors.Is(err, postgres.ErrDuplicateAssessment) {
			return nil, status.Error(codes.AlreadyExists, "assessment already exists for this company, fiscal year and extraction version")
		}
		if errors.Is(err, usecase.ErrInvalidBundle) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		h.logger.Error("analyze report failed",
			slog.String("company_id", req.CompanyId),
			slog.Int("fiscal_year", int(req.FiscalYear)),
			slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, "analysis failed")
	}
	return &AnalyzeReportResponse{Assessment: assessmentToMsg(&resp)}, nil
}

func (h *AnalysisHandler) GetAssessment(ctx context.Context, req *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleAnalyst, auth.RoleAPIClient); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(req.AssessmentId)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "assessment_id must be a UUID")
	}

	resp, err := h.getAssessment.Execute(ctx, dto.GetAssessmentRequest{AssessmentID: id})
	if err != nil {
		if errors.Is(err, usecase.ErrAssessmentNotFound) {
			return nil, status.Error(codes.NotFound, "assessment not found")
		}
		h.logger.Error("get assessment failed",
			slog.String("assessment_id", req.AssessmentId),
			slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, "lookup failed")
	}
	return &GetAssessmentResponse{Assessment: assessmentToMsg(&resp)}, nil
}

func (h *AnalysisHandler) ListAssessments(ctx context.Context, req *ListAssessmentsRequest) (*ListAssessmentsResponse, error) {
	if err := requireRole(ctx, auth.RoleAdmin, auth.RoleAnalyst, auth.RoleAPIClient); err != nil {
		return nil, err
	}
	companyID, err := uuid.Parse(req.CompanyId)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "company_id must be a UUID")
	}

	responses, err := h.listAssessments.Execute(ctx, dto.ListAssessmentsRequest{
		CompanyID: companyID,
		Limit:     int(req.Limit),
		Offset:    int(req.Offset),
	})
	if err != nil {
		h.logger.Error("list assessments failed",
			slog.String("company_id", req.CompanyId),
			slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, "listing failed")
	}

	msgs := make([]*AssessmentMsg, 0, len(responses))
	for i := range responses {
		msgs = append(msgs, assessmentToMsg(&responses[i]))
	}
	return &ListAssessmentsResponse{Assessments: msgs}, nil
}

func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "missing credentials")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient role")
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashent3/redflags-sub001/internal/application/dto"
	"github.com/akashent3/redflags-sub001/internal/domain/model"
	"github.com/akashent3/redflags-sub001/internal/domain/port"
	"github.com/akashent3/redflags-sub001/internal/domain/service"
	"github.com/akashent3/redflags-sub001/pkg/testutil"
)

// --- hand-rolled mocks ---

type mockRepo struct {
	saved      []*model.ReportAssessment
	saveErr    error
	byID       map[uuid.UUID]*model.ReportAssessment
	listResult []*model.ReportAssessment
	listErr    error

	gotLimit  int
	gotOffset int
}

func (m *mockRepo) Save(_ context.Context, a *model.ReportAssessment) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, a)
	return nil
}

func (m *mockRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ReportAssessment, error) {
	return m.byID[id], nil
}

func (m *mockRepo) FindByCompanyYear(_ context.Context, _ uuid.UUID, _ int, _ string) (*model.ReportAssessment, error) {
	return nil, nil
}

func (m *mockRepo) ListByCompany(_ context.Context, _ uuid.UUID, limit, offset int) ([]*model.ReportAssessment, error) {
	m.gotLimit, m.gotOffset = limit, offset
	return m.listResult, m.listErr
}

type mockPublisher struct {
	published []any
	err       error
}

func (m *mockPublisher) Publish(_ context.Context, events ...any) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, events...)
	return nil
}

type stubClassifier struct{}

func (stubClassifier) Classify(_ context.Context, _ port.ClassifyRequest) (port.Classification, error) {
	return port.Classification{Triggered: false, Confidence: 0.9}, nil
}

func newTestEngine(t *testing.T) *service.Engine {
	t.Helper()
	catalog, err := service.DefaultCatalog()
	require.NoError(t, err)
	agg, err := service.NewAggregator(service.DefaultSeverityPoints(), service.DefaultCategoryWeights())
	require.NoError(t, err)
	return service.NewEngine(
		service.NewEvaluator(catalog, stubClassifier{}),
		agg,
		service.NewRiskCalculator(),
		service.NewPatternMatcher(emptyLibrary{}),
	)
}

type emptyLibrary struct{}

func (emptyLibrary) Cases() []model.FraudCase { return nil }
func (emptyLibrary) Version() string          { return "test" }

// --- AnalyzeReport ---

func TestAnalyzeReportExecute(t *testing.T) {
	repo := &mockRepo{}
	publisher := &mockPublisher{}
	uc := NewAnalyzeReport(repo, publisher, newTestEngine(t), nil)

	resp, err := uc.Execute(context.Background(), dto.AnalyzeReportRequest{Bundle: testutil.HealthyBundle()})
	require.NoError(t, err)

	assert.Equal(t, "Steadfast Industries Ltd", resp.CompanyName)
	assert.Equal(t, 2025, resp.FiscalYear)
	assert.Equal(t, "0.0", resp.OverallScore)
	assert.Equal(t, "CLEAN", resp.RiskLevel)
	assert.Len(t, resp.CheckResults, 54)
	assert.Len(t, resp.CategoryScores, 8)

	require.Len(t, repo.saved, 1)
	require.Len(t, publisher.published, 1, "a clean report still emits AnalysisCompleted")
}

func TestAnalyzeReportNilBundle(t *testing.T) {
	uc := NewAnalyzeReport(&mockRepo{}, &mockPublisher{}, newTestEngine(t), nil)
	_, err := uc.Execute(context.Background(), dto.AnalyzeReportRequest{})
	assert.ErrorIs(t, err, ErrInvalidBundle)
}

func TestAnalyzeReportSaveFailure(t *testing.T) {
	repo := &mockRepo{saveErr: errors.New("connection reset")}
	publisher := &mockPublisher{}
	uc := NewAnalyzeReport(repo, publisher, newTestEngine(t), nil)

	_, err := uc.Execute(context.Background(), dto.AnalyzeReportRequest{Bundle: testutil.HealthyBundle()})
	assert.ErrorContains(t, err, "failed to save assessment")
	assert.Empty(t, publisher.published, "nothing published when persistence fails")
}

func TestAnalyzeReportPublishFailure(t *testing.T) {
	publisher := &mockPublisher{err: errors.New("broker unavailable")}
	uc := NewAnalyzeReport(&mockRepo{}, publisher, newTestEngine(t), nil)

	_, err := uc.Execute(context.Background(), dto.AnalyzeReportRequest{Bundle: testutil.HealthyBundle()})
	assert.ErrorContains(t, err, "failed to publish events")
}

func TestAnalyzeReportCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := &mockRepo{}
	uc := NewAnalyzeReport(repo, &mockPublisher{}, newTestEngine(t), nil)

	_, err := uc.Execute(ctx, dto.AnalyzeReportRequest{Bundle: testutil.HealthyBundle()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, repo.saved)
}

// --- GetAssessment ---

func TestGetAssessmentNotFound(t *testing.T) {
	uc := NewGetAssessment(&mockRepo{byID: map[uuid.UUID]*model.ReportAssessment{}})
	_, err := uc.Execute(context.Background(), dto.GetAssessmentRequest{AssessmentID: uuid.New()})
	assert.ErrorIs(t, err, ErrAssessmentNotFound)
}

func TestGetAssessmentFound(t *testing.T) {
	repo := &mockRepo{}
	publisher := &mockPublisher{}
	analyze := NewAnalyzeReport(repo, publisher, newTestEngine(t), nil)
	created, err := analyze.Execute(context.Background(), dto.AnalyzeReportRequest{Bundle: testutil.HealthyBundle()})
	require.NoError(t, err)

	repo.byID = map[uuid.UUID]*model.ReportAssessment{repo.saved[0].ID(): repo.saved[0]}
	uc := NewGetAssessment(repo)

	resp, err := uc.Execute(context.Background(), dto.GetAssessmentRequest{AssessmentID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, created.Summary, resp.Summary)
}

// --- ListAssessments ---

func TestListAssessmentsClampsPaging(t *testing.T) {
	repo := &mockRepo{}
	uc := NewListAssessments(repo)

	_, err := uc.Execute(context.Background(), dto.ListAssessmentsRequest{
		CompanyID: testutil.TestCompanyID,
		Limit:     -5,
		Offset:    -3,
	})
	require.NoError(t, err)
	assert.Equal(t, defaultListLimit, repo.gotLimit)
	assert.Equal(t, 0, repo.gotOffset)

	_, err = uc.Execute(context.Background(), dto.ListAssessmentsRequest{
		CompanyID: testutil.TestCompanyID,
		Limit:     500,
	})
	require.NoError(t, err)
	assert.Equal(t, defaultListLimit, repo.gotLimit)
}

func TestListAssessmentsMapsResults(t *testing.T) {
	repo := &mockRepo{}
	analyze := NewAnalyzeReport(repo, &mockPublisher{}, newTestEngine(t), nil)
	_, err := analyze.Execute(context.Background(), dto.AnalyzeReportRequest{Bundle: testutil.HealthyBundle()})
	require.NoError(t, err)
	repo.listResult = repo.saved

	uc := NewListAssessments(repo)
	resp, err := uc.Execute(context.Background(), dto.ListAssessmentsRequest{CompanyID: testutil.TestCompanyID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, repo.saved[0].ID(), resp[0].ID)
}

func TestListAssessmentsRepoError(t *testing.T) {
	repo := &mockRepo{listErr: errors.New("timeout")}
	uc := NewListAssessments(repo)
	_, err := uc.Execute(context.Background(), dto.ListAssessmentsRequest{CompanyID: testutil.TestCompanyID})
	assert.ErrorContains(t, err, "failed to list assessments")
}

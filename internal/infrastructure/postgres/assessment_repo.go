// Package postgres persists report assessments. Records are append-only: a
// re-analysis of the same (company, fiscal year, extraction version) triple
// is rejected, never overwritten.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/akashent3/redflags-sub001/internal/domain/model"
	"github.com/akashent3/redflags-sub001/internal/domain/valueobject"
	pkgpostgres "github.com/akashent3/redflags-sub001/pkg/postgres"
)

// ErrDuplicateAssessment is returned when an assessment for the same company,
// fiscal year and extraction version already exists.
var ErrDuplicateAssessment = errors.New("assessment already exists for company, fiscal year and extraction version")

// AssessmentRepository implements port.AssessmentRepository using PostgreSQL.
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates a PostgreSQL-backed assessment repository.
func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

// Save persists a finalized assessment with its check results, category
// scores and pattern matches in one transaction.
func (r *AssessmentRepository) Save(ctx context.Context, a *model.ReportAssessment) error {
	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO report_assessments (
				id, company_id, company_name, fiscal_year, extraction_version,
				overall_score, risk_level, pattern_risk, summary,
				analyzed_at, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`,
			a.ID(), a.CompanyID(), a.CompanyName(), a.FiscalYear(), a.ExtractionVersion(),
			a.OverallScore(), a.RiskLevel().String(), a.PatternRisk().String(), a.Summary(),
			a.AnalyzedAt(), a.CreatedAt(),
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return ErrDuplicateAssessment
			}
			return fmt.Errorf("failed to save assessment: %w", err)
		}

		for i, res := range a.CheckResults() {
			pages := make([]int32, len(res.Pages))
			for j, p := range res.Pages {
				pages[j] = int32(p)
			}
			_, err := tx.Exec(ctx, `
				INSERT INTO check_results (
					assessment_id, position, check_id, category, severity,
					status, confidence, evidence, pages, skip_reason
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			`,
				a.ID(), i, res.CheckID, res.Category.String(), res.Severity.String(),
				res.Status.String(), res.Confidence, res.Evidence, pages, res.SkipReason,
			)
			if err != nil {
				return fmt.Errorf("failed to save check result %s: %w", res.CheckID, err)
			}
		}

		for _, cs := range a.CategoryScores() {
			_, err := tx.Exec(ctx, `
				INSERT INTO category_scores (
					assessment_id, category, score, weight,
					points, max_points, triggered, evaluated, skipped
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			`,
				a.ID(), cs.Category.String(), cs.Score, cs.Weight,
				cs.Points, cs.MaxPoints, cs.Triggered, cs.Evaluated, cs.Skipped,
			)
			if err != nil {
				return fmt.Errorf("failed to save category score %s: %w", cs.Category, err)
			}
		}

		for i, m := range a.PatternMatches() {
			_, err := tx.Exec(ctx, `
				INSERT INTO pattern_matches (
					assessment_id, position, case_id, company, case_year,
					similarity, overlapping_flags, band
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			`,
				a.ID(), i, m.CaseID, m.Company, m.Year,
				m.Similarity, m.OverlappingFlags, m.Band.String(),
			)
			if err != nil {
				return fmt.Errorf("failed to save pattern match %s: %w", m.CaseID, err)
			}
		}

		return nil
	})
}

const assessmentColumns = `
	id, company_id, company_name, fiscal_year, extraction_version,
	overall_score, risk_level, pattern_risk, summary, analyzed_at, created_at
`

// FindByID retrieves an assessment by its unique identifier. Returns nil
// when no record exists.
func (r *AssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ReportAssessment, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+assessmentColumns+` FROM report_assessments WHERE id = $1`, id)
	return r.scanAssessment(ctx, row)
}

// FindByCompanyYear retrieves the assessment for a company, fiscal year and
// extraction version. Returns nil when no record exists.
func (r *AssessmentRepository) FindByCompanyYear(ctx context.Context, companyID uuid.UUID, fiscalYear int, extractionVersion string) (*model.ReportAssessment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+assessmentColumns+`
		FROM report_assessments
		WHERE company_id = $1 AND fiscal_year = $2 AND extraction_version = $3
	`, companyID, fiscalYear, extractionVersion)
	return r.scanAssessment(ctx, row)
}

// ListByCompany retrieves assessments for a company, newest first.
func (r *AssessmentRepository) ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]*model.ReportAssessment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+assessmentColumns+`
		FROM report_assessments
		WHERE company_id = $1
		ORDER BY fiscal_year DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	var heads []assessmentHead
	for rows.Next() {
		head, err := scanHead(rows)
		if err != nil {
			return nil, err
		}
		heads = append(heads, head)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assessments: %w", err)
	}

	assessments := make([]*model.ReportAssessment, 0, len(heads))
	for _, head := range heads {
		a, err := r.assemble(ctx, head)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, a)
	}
	return assessments, nil
}

// assessmentHead is the flat row of report_assessments before children load.
type assessmentHead struct {
	id                uuid.UUID
	companyID         uuid.UUID
	companyName       string
	fiscalYear        int
	extractionVersion string
	overallScore      decimal.Decimal
	riskLevel         string
	patternRisk       string
	summary           string
	analyzedAt        time.Time
	createdAt         time.Time
}

func scanHead(row pgx.Row) (assessmentHead, error) {
	var h assessmentHead
	err := row.Scan(
		&h.id, &h.companyID, &h.companyName, &h.fiscalYear, &h.extractionVersion,
		&h.overallScore, &h.riskLevel, &h.patternRisk, &h.summary,
		&h.analyzedAt, &h.createdAt,
	)
	if err != nil {
		return assessmentHead{}, fmt.Errorf("failed to scan assessment: %w", err)
	}
	return h, nil
}

func (r *AssessmentRepository) scanAssessment(ctx context.Context, row pgx.Row) (*model.ReportAssessment, error) {
	head, err := scanHead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return r.assemble(ctx, head)
}

func (r *AssessmentRepository) assemble(ctx context.Context, head assessmentHead) (*model.ReportAssessment, error) {
	riskLevel, err := valueobject.RiskLevelFromString(head.riskLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse risk level: %w", err)
	}
	patternRisk, err := valueobject.PatternRiskFromString(head.patternRisk)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pattern risk: %w", err)
	}

	results, err := r.loadCheckResults(ctx, head.id)
	if err != nil {
		return nil, err
	}
	categories, err := r.loadCategoryScores(ctx, head.id)
	if err != nil {
		return nil, err
	}
	matches, err := r.loadPatternMatches(ctx, head.id)
	if err != nil {
		return nil, err
	}

	return model.Reconstruct(
		head.id, head.companyID, head.companyName, head.fiscalYear, head.extractionVersion,
		head.overallScore, riskLevel, patternRisk,
		categories, results, matches,
		head.summary, head.analyzedAt, head.createdAt,
	), nil
}

func (r *AssessmentRepository) loadCheckResults(ctx context.Context, assessmentID uuid.UUID) ([]model.CheckResult, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT check_id, category, severity, status, confidence, evidence, pages, skip_reason
		FROM check_results
		WHERE assessment_id = $1
		ORDER BY position
	`, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query check results: %w", err)
	}
	defer rows.Close()

	var results []model.CheckResult
	for rows.Next() {
		var (
			res        model.CheckResult
			category   string
			severity   string
			status     string
			pages      []int32
			skipReason string
		)
		if err := rows.Scan(&res.CheckID, &category, &severity, &status, &res.Confidence, &res.Evidence, &pages, &skipReason); err != nil {
			return nil, fmt.Errorf("failed to scan check result: %w", err)
		}
		if res.Category, err = valueobject.CategoryFromString(category); err != nil {
			return nil, fmt.Errorf("failed to parse category: %w", err)
		}
		if res.Severity, err = valueobject.SeverityFromString(severity); err != nil {
			return nil, fmt.Errorf("failed to parse severity: %w", err)
		}
		if res.Status, err = valueobject.CheckStatusFromString(status); err != nil {
			return nil, fmt.Errorf("failed to parse check status: %w", err)
		}
		res.SkipReason = skipReason
		for _, p := range pages {
			res.Pages = append(res.Pages, int(p))
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

func (r *AssessmentRepository) loadCategoryScores(ctx context.Context, assessmentID uuid.UUID) ([]model.CategoryScore, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT category, score, weight, points, max_points, triggered, evaluated, skipped
		FROM category_scores
		WHERE assessment_id = $1
	`, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query category scores: %w", err)
	}
	defer rows.Close()

	byCategory := make(map[string]model.CategoryScore)
	for rows.Next() {
		var (
			cs       model.CategoryScore
			category string
		)
		if err := rows.Scan(&category, &cs.Score, &cs.Weight, &cs.Points, &cs.MaxPoints, &cs.Triggered, &cs.Evaluated, &cs.Skipped); err != nil {
			return nil, fmt.Errorf("failed to scan category score: %w", err)
		}
		if cs.Category, err = valueobject.CategoryFromString(category); err != nil {
			return nil, fmt.Errorf("failed to parse category: %w", err)
		}
		byCategory[category] = cs
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Canonical category order, independent of row order.
	scores := make([]model.CategoryScore, 0, len(byCategory))
	for _, cat := range valueobject.AllCategories() {
		if cs, ok := byCategory[cat.String()]; ok {
			scores = append(scores, cs)
		}
	}
	return scores, nil
}

func (r *AssessmentRepository) loadPatternMatches(ctx context.Context, assessmentID uuid.UUID) ([]model.PatternMatch, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT case_id, company, case_year, similarity, overlapping_flags, band
		FROM pattern_matches
		WHERE assessment_id = $1
		ORDER BY position
	`, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pattern matches: %w", err)
	}
	defer rows.Close()

	var matches []model.PatternMatch
	for rows.Next() {
		var (
			m    model.PatternMatch
			band string
		)
		if err := rows.Scan(&m.CaseID, &m.Company, &m.Year, &m.Similarity, &m.OverlappingFlags, &band); err != nil {
			return nil, fmt.Errorf("failed to scan pattern match: %w", err)
		}
		if m.Band, err = valueobject.PatternRiskFromString(band); err != nil {
			return nil, fmt.Errorf("failed to parse pattern risk band: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

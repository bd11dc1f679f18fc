package grpc

// Wire messages for AnalysisService. JSON tags mirror the proto field names
// so the stand-in codec stays compatible with generated code.

// FiscalYearMsg carries one fiscal year of extracted figures. Fields are
// grouped by type and keyed by their snake_case metric name so the wire
// format stays stable as the metric set grows.
type FiscalYearMsg struct {
	Year     int32              `json:"year"`
	Figures  map[string]string  `json:"figures,omitempty"`
	Percents map[string]float64 `json:"percents,omitempty"`
	Counts   map[string]int32   `json:"counts,omitempty"`
	Flags    map[string]bool    `json:"flags,omitempty"`
	Text     map[string]string  `json:"text,omitempty"`
}

// ExcerptMsg is a narrative section extracted from the report.
type ExcerptMsg struct {
	Section string  `json:"section"`
	Text    string  `json:"text"`
	Pages   []int32 `json:"pages,omitempty"`
}

type AnalyzeReportRequest struct {
	CompanyId         string           `json:"company_id"`
	CompanyName       string           `json:"company_name"`
	FiscalYear        int32            `json:"fiscal_year"`
	ExtractionVersion string           `json:"extraction_version"`
	Years             []*FiscalYearMsg `json:"years"`
	Excerpts          []*ExcerptMsg    `json:"excerpts,omitempty"`
	PriorExcerpts     []*ExcerptMsg    `json:"prior_excerpts,omitempty"`
}

type AnalyzeReportResponse struct {
	Assessment *AssessmentMsg `json:"assessment"`
}

type GetAssessmentRequest struct {
	AssessmentId string `json:"assessment_id"`
}

type GetAssessmentResponse struct {
	Assessment *AssessmentMsg `json:"assessment"`
}

type ListAssessmentsRequest struct {
	CompanyId string `json:"company_id"`
	Limit     int32  `json:"limit"`
	Offset    int32  `json:"offset"`
}

type ListAssessmentsResponse struct {
	Assessments []*AssessmentMsg `json:"assessments"`
}

type CheckResultMsg struct {
	CheckId    string  `json:"check_id"`
	Category   string  `json:"category"`
	Severity   string  `json:"severity"`
	Status     string  `json:"status"`
	Evidence   string  `json:"evidence,omitempty"`
	SkipReason string  `json:"skip_reason,omitempty"`
	Confidence float64 `json:"confidence"`
	Pages      []int32 `json:"pages,omitempty"`
}

type CategoryScoreMsg struct {
	Category  string   `json:"category"`
	Score     *float64 `json:"score,omitempty"`
	Weight    float64  `json:"weight"`
	Triggered int32    `json:"triggered"`
	Evaluated int32    `json:"evaluated"`
	Skipped   int32    `json:"skipped"`
}

type PatternMatchMsg struct {
	CaseId           string   `json:"case_id"`
	Company          string   `json:"company"`
	Year             int32    `json:"year"`
	Similarity       float64  `json:"similarity"`
	Band             string   `json:"band"`
	OverlappingFlags []string `json:"overlapping_flags,omitempty"`
}

type AssessmentMsg struct {
	Id                string              `json:"id"`
	CompanyId         string              `json:"company_id"`
	CompanyName       string              `json:"company_name"`
	FiscalYear        int32               `json:"fiscal_year"`
	ExtractionVersion string              `json:"extraction_version"`
	OverallScore      string              `json:"overall_score"`
	RiskLevel         string              `json:"risk_level"`
	PatternRisk       string              `json:"pattern_risk"`
	Summary           string              `json:"summary"`
	CheckResults      []*CheckResultMsg   `json:"check_results"`
	CategoryScores    []*CategoryScoreMsg `json:"category_scores"`
	PatternMatches    []*PatternMatchMsg  `json:"pattern_matches"`
	AnalyzedAt        string              `json:"analyzed_at"`
	CreatedAt         string              `json:"created_at"`
}

package grpc

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/akashent3/redflags-sub001/internal/application/dto"
	"github.com/akashent3/redflags-sub001/internal/domain/model"
)

// Setter tables keep the wire format open-ended: the extraction pipeline can
// emit new metrics without a proto change, and unknown keys are rejected here
// instead of silently dropped.

var figureSetters = map[string]func(*model.FiscalYearData, decimal.Decimal){
	"revenue":                   func(y *model.FiscalYearData, v decimal.Decimal) { y.Revenue = &v },
	"operating_profit":          func(y *model.FiscalYearData, v decimal.Decimal) { y.OperatingProfit = &v },
	"pat":                       func(y *model.FiscalYearData, v decimal.Decimal) { y.PAT = &v },
	"other_income":              func(y *model.FiscalYearData, v decimal.Decimal) { y.OtherIncome = &v },
	"interest_expense":          func(y *model.FiscalYearData, v decimal.Decimal) { y.InterestExpense = &v },
	"interest_income":           func(y *model.FiscalYearData, v decimal.Decimal) { y.InterestIncome = &v },
	"depreciation":              func(y *model.FiscalYearData, v decimal.Decimal) { y.Depreciation = &v },
	"cfo":                       func(y *model.FiscalYearData, v decimal.Decimal) { y.CFO = &v },
	"capex":                     func(y *model.FiscalYearData, v decimal.Decimal) { y.Capex = &v },
	"dividend_paid":             func(y *model.FiscalYearData, v decimal.Decimal) { y.DividendPaid = &v },
	"total_debt":                func(y *model.FiscalYearData, v decimal.Decimal) { y.TotalDebt = &v },
	"equity":                    func(y *model.FiscalYearData, v decimal.Decimal) { y.Equity = &v },
	"cash_and_equivalents":      func(y *model.FiscalYearData, v decimal.Decimal) { y.CashAndEquivalents = &v },
	"receivables":               func(y *model.FiscalYearData, v decimal.Decimal) { y.Receivables = &v },
	"inventory":                 func(y *model.FiscalYearData, v decimal.Decimal) { y.Inventory = &v },
	"intangibles":               func(y *model.FiscalYearData, v decimal.Decimal) { y.Intangibles = &v },
	"contingent_liabilities":    func(y *model.FiscalYearData, v decimal.Decimal) { y.ContingentLiabilities = &v },
	"related_party_sales":       func(y *model.FiscalYearData, v decimal.Decimal) { y.RelatedPartySales = &v },
	"related_party_purchases":   func(y *model.FiscalYearData, v decimal.Decimal) { y.RelatedPartyPurchases = &v },
	"related_party_loans":       func(y *model.FiscalYearData, v decimal.Decimal) { y.RelatedPartyLoans = &v },
	"related_party_receivables": func(y *model.FiscalYearData, v decimal.Decimal) { y.RelatedPartyReceivables = &v },
	"related_party_guarantees":  func(y *model.FiscalYearData, v decimal.Decimal) { y.RelatedPartyGuarantees = &v },
	"promoter_remuneration":     func(y *model.FiscalYearData, v decimal.Decimal) { y.PromoterRemuneration = &v },
	"audit_fees":                func(y *model.FiscalYearData, v decimal.Decimal) { y.AuditFees = &v },
	"non_audit_fees":            func(y *model.FiscalYearData, v decimal.Decimal) { y.NonAuditFees = &v },
	"regulatory_penalties":      func(y *model.FiscalYearData, v decimal.Decimal) { y.RegulatoryPenalties = &v },
}

var percentSetters = map[string]func(*model.FiscalYearData, float64){
	"promoter_holding_pct": func(y *model.FiscalYearData, v float64) { y.PromoterHoldingPct = &v },
	"promoter_pledge_pct":  func(y *model.FiscalYearData, v float64) { y.PromoterPledgePct = &v },
}

var countSetters = map[string]func(*model.FiscalYearData, int){
	"subsidiary_count":         func(y *model.FiscalYearData, v int) { y.SubsidiaryCount = &v },
	"auditor_tenure_years":     func(y *model.FiscalYearData, v int) { y.AuditorTenureYears = &v },
	"emphasis_of_matter_count": func(y *model.FiscalYearData, v int) { y.EmphasisOfMatterCount = &v },
	"board_size":               func(y *model.FiscalYearData, v int) { y.BoardSize = &v },
	"independent_directors":    func(y *model.FiscalYearData, v int) { y.IndependentDirectors = &v },
	"director_resignations":    func(y *model.FiscalYearData, v int) { y.DirectorResignations = &v },
	"audit_committee_meetings": func(y *model.FiscalYearData, v int) { y.AuditCommitteeMeetings = &v },
	"rating_downgrade_notches": func(y *model.FiscalYearData, v int) { y.RatingDowngradeNotches = &v },
	"filing_delay_days":        func(y *model.FiscalYearData, v int) { y.FilingDelayDays = &v },
}

var flagSetters = map[string]func(*model.FiscalYearData, bool){
	"going_concern_doubt": func(y *model.FiscalYearData, v bool) { y.GoingConcernDoubt = &v },
	"cfo_changed":         func(y *model.FiscalYearData, v bool) { y.CFOChanged = &v },
	"chair_ceo_same":      func(y *model.FiscalYearData, v bool) { y.ChairCEOSame = &v },
}

var textSetters = map[string]func(*model.FiscalYearData, string){
	"auditor_name":  func(y *model.FiscalYearData, v string) { y.AuditorName = &v },
	"audit_opinion": func(y *model.FiscalYearData, v string) { y.AuditOpinion = &v },
}

func fiscalYearFromMsg(msg *FiscalYearMsg) (model.FiscalYearData, error) {
	year := model.FiscalYearData{Year: int(msg.Year)}
	for key, raw := range msg.Figures {
		set, ok := figureSetters[key]
		if !ok {
			return year, fmt.Errorf("unknown figure %q", key)
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return year, fmt.Errorf("figure %q: %w", key, err)
		}
		set(&year, v)
	}
	for key, v := range msg.Percents {
		set, ok := percentSetters[key]
		if !ok {
			return year, fmt.Errorf("unknown percent %q", key)
		}
		set(&year, v)
	}
	for key, v := range msg.Counts {
		set, ok := countSetters[key]
		if !ok {
			return year, fmt.Errorf("unknown count %q", key)
		}
		set(&year, int(v))
	}
	for key, v := range msg.Flags {
		set, ok := flagSetters[key]
		if !ok {
			return year, fmt.Errorf("unknown flag %q", key)
		}
		set(&year, v)
	}
	for key, v := range msg.Text {
		set, ok := textSetters[key]
		if !ok {
			return year, fmt.Errorf("unknown text field %q", key)
		}
		set(&year, v)
	}
	return year, nil
}

func excerptsFromMsgs(current, prior []*ExcerptMsg) model.TextualExcerpts {
	excerpts := model.TextualExcerpts{}
	if len(current) > 0 {
		excerpts.Sections = make(map[string]model.Excerpt, len(current))
		for _, e := range current {
			excerpts.Sections[e.Section] = excerptFromMsg(e)
		}
	}
	if len(prior) > 0 {
		excerpts.PriorSections = make(map[string]model.Excerpt, len(prior))
		for _, e := range prior {
			excerpts.PriorSections[e.Section] = excerptFromMsg(e)
		}
	}
	return excerpts
}

func excerptFromMsg(e *ExcerptMsg) model.Excerpt {
	pages := make([]int, len(e.Pages))
	for i, p := range e.Pages {
		pages[i] = int(p)
	}
	return model.Excerpt{Section: e.Section, Text: e.Text, Pages: pages}
}

func bundleFromRequest(req *AnalyzeReportRequest) (*model.ReportBundle, error) {
	companyID, err := uuid.Parse(req.CompanyId)
	if err != nil {
		return nil, fmt.Errorf("company_id: %w", err)
	}
	if len(req.Years) == 0 {
		return nil, fmt.Errorf("at least one fiscal year is required")
	}
	years := make([]model.FiscalYearData, 0, len(req.Years))
	for _, y := range req.Years {
		parsed, err := fiscalYearFromMsg(y)
		if err != nil {
			return nil, err
		}
		years = append(years, parsed)
	}
	return &model.ReportBundle{
		Financials: model.FinancialDataset{
			CompanyID:         companyID,
			CompanyName:       req.CompanyName,
			FiscalYear:        int(req.FiscalYear),
			ExtractionVersion: req.ExtractionVersion,
			Years:             years,
		},
		Excerpts: excerptsFromMsgs(req.Excerpts, req.PriorExcerpts),
	}, nil
}

func assessmentToMsg(a *dto.AssessmentResponse) *AssessmentMsg {
	msg := &AssessmentMsg{
		Id:                a.ID.String(),
		CompanyId:         a.CompanyID.String(),
		CompanyName:       a.CompanyName,
		FiscalYear:        int32(a.FiscalYear),
		ExtractionVersion: a.ExtractionVersion,
		OverallScore:      a.OverallScore,
		RiskLevel:         a.RiskLevel,
		PatternRisk:       a.PatternRisk,
		Summary:           a.Summary,
		AnalyzedAt:        a.AnalyzedAt.Format(time.RFC3339),
		CreatedAt:         a.CreatedAt.Format(time.RFC3339),
	}
	msg.CheckResults = make([]*CheckResultMsg, 0, len(a.CheckResults))
	for _, r := range a.CheckResults {
		msg.CheckResults = append(msg.CheckResults, &CheckResultMsg{
			CheckId:    r.CheckID,
			Category:   r.Category,
			Severity:   r.Severity,
			Status:     r.Status,
			Evidence:   r.Evidence,
			SkipReason: r.SkipReason,
			Confidence: r.Confidence,
			Pages:      toInt32s(r.Pages),
		})
	}
	msg.CategoryScores = make([]*CategoryScoreMsg, 0, len(a.CategoryScores))
	for _, s := range a.CategoryScores {
		msg.CategoryScores = append(msg.CategoryScores, &CategoryScoreMsg{
			Category:  s.Category,
			Score:     s.Score,
			Weight:    s.Weight,
			Triggered: int32(s.Triggered),
			Evaluated: int32(s.Evaluated),
			Skipped:   int32(s.Skipped),
		})
	}
	msg.PatternMatches = make([]*PatternMatchMsg, 0, len(a.PatternMatches))
	for _, m := range a.PatternMatches {
		msg.PatternMatches = append(msg.PatternMatches, &PatternMatchMsg{
			CaseId:           m.CaseID,
			Company:          m.Company,
			Year:             int32(m.Year),
			Similarity:       m.Similarity,
			Band:             m.Band,
			OverlappingFlags: m.OverlappingFlags,
		})
	}
	return msg
}

func toInt32s(in []int) []int32 {
	if len(in) == 0 {
		return nil
	}
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = int32(v)
	}
	return out
}

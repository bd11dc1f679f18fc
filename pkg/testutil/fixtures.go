package testutil

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/akashent3/redflags-sub001/internal/domain/model"
)

// Fixed UUIDs for deterministic testing.
var (
	TestCompanyID    = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestAssessmentID = uuid.MustParse("00000000-0000-0000-0000-000000000100")
)

// Dec returns a pointer to the decimal parsed from s. Panics on bad input,
// which is acceptable in fixtures.
func Dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// F64 returns a pointer to v.
func F64(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// Str returns a pointer to v.
func Str(v string) *string { return &v }

// HealthyYear returns fiscal year data for a company with no red flags:
// strong cash conversion, low leverage, clean audit and a stable board.
func HealthyYear(year int) model.FiscalYearData {
	return model.FiscalYearData{
		Year:            year,
		Revenue:         Dec("10000"),
		OperatingProfit: Dec("2000"),
		PAT:             Dec("1500"),
		OtherIncome:     Dec("100"),
		InterestExpense: Dec("120"),
		InterestIncome:  Dec("40"),
		Depreciation:    Dec("400"),

		CFO:          Dec("1600"),
		Capex:        Dec("500"),
		DividendPaid: Dec("300"),

		TotalDebt:             Dec("1000"),
		Equity:                Dec("8000"),
		CashAndEquivalents:    Dec("2000"),
		Receivables:           Dec("1200"),
		Inventory:             Dec("800"),
		Intangibles:           Dec("200"),
		ContingentLiabilities: Dec("400"),

		RelatedPartySales:       Dec("100"),
		RelatedPartyPurchases:   Dec("80"),
		RelatedPartyLoans:       Dec("0"),
		RelatedPartyReceivables: Dec("20"),
		RelatedPartyGuarantees:  Dec("0"),
		SubsidiaryCount:         Int(4),

		PromoterHoldingPct:   F64(55),
		PromoterPledgePct:    F64(0),
		PromoterRemuneration: Dec("30"),

		AuditorName:           Str("S R B C & Co LLP"),
		AuditOpinion:          Str("unqualified"),
		GoingConcernDoubt:     Bool(false),
		AuditFees:             Dec("12"),
		NonAuditFees:          Dec("2"),
		AuditorTenureYears:    Int(5),
		EmphasisOfMatterCount: Int(0),

		BoardSize:              Int(10),
		IndependentDirectors:   Int(5),
		DirectorResignations:   Int(0),
		AuditCommitteeMeetings: Int(6),
		CFOChanged:             Bool(false),
		ChairCEOSame:           Bool(false),
		RegulatoryPenalties:    Dec("0"),
		RatingDowngradeNotches: Int(0),
		FilingDelayDays:        Int(0),
	}
}

// HealthyBundle returns a two-year bundle that triggers no checks.
func HealthyBundle() *model.ReportBundle {
	current := HealthyYear(2025)
	prior := HealthyYear(2024)
	prior.Revenue = Dec("9500")
	prior.Receivables = Dec("1150")
	prior.Inventory = Dec("760")
	prior.TotalDebt = Dec("980")
	prior.Intangibles = Dec("195")
	prior.RelatedPartySales = Dec("95")
	prior.RelatedPartyPurchases = Dec("78")
	prior.AuditFees = Dec("11")
	prior.PAT = Dec("1400")
	prior.CFO = Dec("1500")

	return &model.ReportBundle{
		Financials: model.FinancialDataset{
			CompanyID:         TestCompanyID,
			CompanyName:       "Steadfast Industries Ltd",
			FiscalYear:        2025,
			ExtractionVersion: "v1.4.0",
			Years:             []model.FiscalYearData{current, prior},
		},
		Excerpts: model.TextualExcerpts{
			Sections: map[string]model.Excerpt{
				model.SectionMDNA: {
					Section: model.SectionMDNA,
					Text:    "Management discussion covering steady volume growth.",
					Pages:   []int{42, 43},
				},
				model.SectionRiskFactors: {
					Section: model.SectionRiskFactors,
					Text:    "Standard industry and currency risk disclosures.",
					Pages:   []int{55},
				},
				model.SectionNotes: {
					Section: model.SectionNotes,
					Text:    "Notes to accounts with customary accounting policies.",
					Pages:   []int{88, 89, 90},
				},
				model.SectionAuditReport: {
					Section: model.SectionAuditReport,
					Text:    "Unqualified opinion with no key audit matter escalation.",
					Pages:   []int{30},
				},
			},
			PriorSections: map[string]model.Excerpt{
				model.SectionMDNA: {
					Section: model.SectionMDNA,
					Text:    "Prior year management discussion.",
					Pages:   []int{40},
				},
			},
		},
	}
}

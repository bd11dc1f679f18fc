package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FiscalYearData holds the extracted numeric fields for one fiscal year.
// Every field is a pointer: nil means the extraction pipeline could not find
// the figure, which is legitimate absence and must never be read as zero.
type FiscalYearData struct {
	Year int

	// Income statement.
	Revenue         *decimal.Decimal
	OperatingProfit *decimal.Decimal
	PAT             *decimal.Decimal
	OtherIncome     *decimal.Decimal
	InterestExpense *decimal.Decimal
	InterestIncome  *decimal.Decimal
	Depreciation    *decimal.Decimal

	// Cash flow.
	CFO          *decimal.Decimal
	Capex        *decimal.Decimal
	DividendPaid *decimal.Decimal

	// Balance sheet.
	TotalDebt             *decimal.Decimal
	Equity                *decimal.Decimal
	CashAndEquivalents    *decimal.Decimal
	Receivables           *decimal.Decimal
	Inventory             *decimal.Decimal
	Intangibles           *decimal.Decimal
	ContingentLiabilities *decimal.Decimal

	// Related party disclosures.
	RelatedPartySales       *decimal.Decimal
	RelatedPartyPurchases   *decimal.Decimal
	RelatedPartyLoans       *decimal.Decimal
	RelatedPartyReceivables *decimal.Decimal
	RelatedPartyGuarantees  *decimal.Decimal
	SubsidiaryCount         *int

	// Promoter and shareholding.
	PromoterHoldingPct   *float64
	PromoterPledgePct    *float64
	PromoterRemuneration *decimal.Decimal

	// Auditor.
	AuditorName           *string
	AuditOpinion          *string // "unqualified", "qualified", "adverse", "disclaimer"
	GoingConcernDoubt     *bool
	AuditFees             *decimal.Decimal
	NonAuditFees          *decimal.Decimal
	AuditorTenureYears    *int
	EmphasisOfMatterCount *int

	// Governance.
	BoardSize              *int
	IndependentDirectors   *int
	DirectorResignations   *int
	AuditCommitteeMeetings *int
	CFOChanged             *bool
	ChairCEOSame           *bool
	RegulatoryPenalties    *decimal.Decimal
	RatingDowngradeNotches *int
	FilingDelayDays        *int
}

// FinancialDataset is the immutable per-analysis snapshot of extracted
// figures, covering two to three fiscal years ordered most recent first.
type FinancialDataset struct {
	CompanyID         uuid.UUID
	CompanyName       string
	FiscalYear        int
	ExtractionVersion string
	Years             []FiscalYearData
}

// Current returns the most recent fiscal year's data.
func (d *FinancialDataset) Current() (*FiscalYearData, bool) {
	if len(d.Years) == 0 {
		return nil, false
	}
	return &d.Years[0], true
}

// Prior returns the fiscal year preceding the current one.
func (d *FinancialDataset) Prior() (*FiscalYearData, bool) {
	if len(d.Years) < 2 {
		return nil, false
	}
	return &d.Years[1], true
}

// Excerpt is a named textual section extracted from the annual report,
// together with the pages it was found on.
type Excerpt struct {
	Section string
	Text    string
	Pages   []int
}

// Well-known excerpt section names produced by the extraction pipeline.
const (
	SectionMDNA        = "mdna"
	SectionRiskFactors = "risk_factors"
	SectionNotes       = "notes"
	SectionAuditReport = "audit_report"
)

// TextualExcerpts maps section names to excerpts for the current report and,
// when available, the prior year's report. Only textual checks consume these.
type TextualExcerpts struct {
	Sections      map[string]Excerpt
	PriorSections map[string]Excerpt
}

// Get returns the current-year excerpt for a section.
func (t *TextualExcerpts) Get(section string) (Excerpt, bool) {
	if t == nil || t.Sections == nil {
		return Excerpt{}, false
	}
	e, ok := t.Sections[section]
	return e, ok
}

// GetPrior returns the prior-year excerpt for a section, if extracted.
func (t *TextualExcerpts) GetPrior(section string) (Excerpt, bool) {
	if t == nil || t.PriorSections == nil {
		return Excerpt{}, false
	}
	e, ok := t.PriorSections[section]
	return e, ok
}

// ReportBundle is the full normalized input to one analysis run.
type ReportBundle struct {
	Financials FinancialDataset
	Excerpts   TextualExcerpts
}

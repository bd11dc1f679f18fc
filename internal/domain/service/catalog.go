package service

import (
	"fmt"

	"github.com/akashent3/redflags-sub001/internal/domain/valueobject"
)

// CheckKind distinguishes deterministic numeric checks from AI-assisted
// textual checks.
type CheckKind int

const (
	KindNumeric CheckKind = iota
	KindTextual
)

// Params holds the fixed threshold parameters of one check.
type Params map[string]float64

// CheckDefinition is one entry of the static check catalog: pure data plus an
// evaluation-function id. Dispatch is generic through the function registry,
// so adding a check means adding a row, not a type.
type CheckDefinition struct {
	ID       string
	Title    string
	Category valueobject.Category
	Severity valueobject.Severity
	Kind     CheckKind
	EvalFn   string // numeric checks: key into the numeric function registry
	Section  string // textual checks: excerpt section to classify
	Params   Params
}

// Catalog is the validated, ordered set of check definitions. Evaluation
// results are emitted in catalog order.
type Catalog struct {
	defs []CheckDefinition
	byID map[string]CheckDefinition
}

// NewCatalog validates definitions and builds the catalog. Validation fails
// fast with ConfigurationError: duplicate or empty ids, unknown evaluation
// functions, textual checks without a section, or numeric checks without a
// registered function are all load-time defects.
func NewCatalog(defs []CheckDefinition) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, &ConfigurationError{Detail: "check catalog is empty"}
	}

	byID := make(map[string]CheckDefinition, len(defs))
	for _, def := range defs {
		if def.ID == "" {
			return nil, &ConfigurationError{Detail: "check with empty id"}
		}
		if _, dup := byID[def.ID]; dup {
			return nil, &ConfigurationError{Detail: fmt.Sprintf("duplicate check id %q", def.ID)}
		}
		if def.Category.IsZero() {
			return nil, &ConfigurationError{Detail: fmt.Sprintf("check %s has no category", def.ID)}
		}
		if def.Severity.IsZero() {
			return nil, &ConfigurationError{Detail: fmt.Sprintf("check %s has no severity", def.ID)}
		}
		switch def.Kind {
		case KindNumeric:
			if _, ok := numericChecks[def.EvalFn]; !ok {
				return nil, &ConfigurationError{Detail: fmt.Sprintf("check %s references unknown eval fn %q", def.ID, def.EvalFn)}
			}
		case KindTextual:
			if def.Section == "" {
				return nil, &ConfigurationError{Detail: fmt.Sprintf("textual check %s has no excerpt section", def.ID)}
			}
			if !def.Category.Equal(valueobject.CategoryTextual) {
				return nil, &ConfigurationError{Detail: fmt.Sprintf("textual check %s must be in the TEXTUAL category", def.ID)}
			}
		default:
			return nil, &ConfigurationError{Detail: fmt.Sprintf("check %s has unknown kind %d", def.ID, def.Kind)}
		}
		byID[def.ID] = def
	}

	return &Catalog{defs: defs, byID: byID}, nil
}

// Checks returns the definitions in catalog order.
func (c *Catalog) Checks() []CheckDefinition {
	return c.defs
}

// Lookup returns the definition for a check id.
func (c *Catalog) Lookup(id string) (CheckDefinition, bool) {
	def, ok := c.byID[id]
	return def, ok
}

// Len returns the number of checks in the catalog.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// DefaultCatalog builds the shipped catalog of 54 checks.
func DefaultCatalog() (*Catalog, error) {
	return NewCatalog(defaultCheckDefinitions())
}

func defaultCheckDefinitions() []CheckDefinition {
	var (
		aud = valueobject.CategoryAuditor
		cf  = valueobject.CategoryCashFlow
		rpt = valueobject.CategoryRelatedParty
		pro = valueobject.CategoryPromoter
		gov = valueobject.CategoryGovernance
		bs  = valueobject.CategoryBalanceSheet
		rev = valueobject.CategoryRevenue
		txt = valueobject.CategoryTextual

		low  = valueobject.SeverityLow
		med  = valueobject.SeverityMedium
		high = valueobject.SeverityHigh
		crit = valueobject.SeverityCritical
	)

	return []CheckDefinition{
		// --- Auditor (8) ---
		{ID: "auditor_change", Title: "Statutory auditor changed", Category: aud, Severity: high, EvalFn: "auditor_change"},
		{ID: "audit_opinion_qualified", Title: "Qualified, adverse or disclaimed audit opinion", Category: aud, Severity: crit, EvalFn: "audit_opinion"},
		{ID: "going_concern_doubt", Title: "Going-concern doubt raised", Category: aud, Severity: crit, EvalFn: "going_concern"},
		{ID: "audit_fee_decline", Title: "Audit fees fell while revenue grew", Category: aud, Severity: med, EvalFn: "audit_fee_decline", Params: Params{"min_decline_pct": 20}},
		{ID: "non_audit_fee_excess", Title: "Non-audit fees exceed audit fees", Category: aud, Severity: med, EvalFn: "non_audit_fee_excess"},
		{ID: "audit_fee_to_revenue_low", Title: "Audit fee implausibly small for company size", Category: aud, Severity: med, EvalFn: "audit_fee_ratio_low", Params: Params{"max_ratio": 0.0001}},
		{ID: "auditor_tenure_short", Title: "Auditor in first year of engagement", Category: aud, Severity: low, EvalFn: "auditor_tenure_short", Params: Params{"max_years": 1}},
		{ID: "emphasis_of_matter_repeat", Title: "Repeated emphasis-of-matter paragraphs", Category: aud, Severity: med, EvalFn: "emphasis_of_matter", Params: Params{"min_count": 2}},

		// --- Cash flow (8) ---
		{ID: "cfo_pat_divergence", Title: "Profit growth far ahead of operating cash flow growth", Category: cf, Severity: high, EvalFn: "cfo_pat_divergence", Params: Params{"min_gap_pp": 15}},
		{ID: "cfo_pat_ratio_low", Title: "Operating cash flow well below reported profit", Category: cf, Severity: high, EvalFn: "cfo_pat_ratio_low", Params: Params{"max_ratio": 0.5}},
		{ID: "negative_cfo_positive_pat", Title: "Negative operating cash flow against positive profit", Category: cf, Severity: crit, EvalFn: "negative_cfo_positive_pat"},
		{ID: "cumulative_fcf_negative", Title: "Cumulative free cash flow negative despite profits", Category: cf, Severity: med, EvalFn: "cumulative_fcf_negative"},
		{ID: "interest_coverage_low", Title: "Operating profit barely covers interest", Category: cf, Severity: high, EvalFn: "interest_coverage_low", Params: Params{"min_cover": 1.5}},
		{ID: "cash_interest_yield_low", Title: "Reported cash earns implausibly little interest", Category: cf, Severity: med, EvalFn: "cash_interest_yield_low", Params: Params{"min_yield": 0.02}},
		{ID: "dividend_unfunded", Title: "Dividend not covered by operating cash flow", Category: cf, Severity: med, EvalFn: "dividend_unfunded"},
		{ID: "capex_depreciation_excess", Title: "Capex far above depreciation", Category: cf, Severity: low, EvalFn: "capex_depreciation_excess", Params: Params{"max_multiple": 3}},

		// --- Related party (7) ---
		{ID: "rpt_sales_ratio_high", Title: "Large share of revenue from related parties", Category: rpt, Severity: high, EvalFn: "rpt_sales_ratio", Params: Params{"max_ratio": 0.20}},
		{ID: "rpt_loans_to_networth", Title: "Loans to related parties large against net worth", Category: rpt, Severity: high, EvalFn: "rpt_loans_ratio", Params: Params{"max_ratio": 0.10}},
		{ID: "rpt_purchases_ratio_high", Title: "Large share of purchases from related parties", Category: rpt, Severity: med, EvalFn: "rpt_purchases_ratio", Params: Params{"max_ratio": 0.25}},
		{ID: "rpt_growth_spike", Title: "Related-party volumes grew sharply", Category: rpt, Severity: med, EvalFn: "rpt_growth_spike", Params: Params{"max_growth": 0.50}},
		{ID: "rpt_receivables_share", Title: "Receivables concentrated in related parties", Category: rpt, Severity: high, EvalFn: "rpt_receivables_share", Params: Params{"max_ratio": 0.30}},
		{ID: "rpt_guarantees_high", Title: "Guarantees to related parties against net worth", Category: rpt, Severity: med, EvalFn: "rpt_guarantees_ratio", Params: Params{"max_ratio": 0.05}},
		{ID: "subsidiary_sprawl", Title: "Unusually large subsidiary network", Category: rpt, Severity: low, EvalFn: "subsidiary_sprawl", Params: Params{"max_count": 50}},

		// --- Promoter (7) ---
		{ID: "promoter_pledge_critical", Title: "Majority of promoter stake pledged", Category: pro, Severity: crit, EvalFn: "pledge_above", Params: Params{"min_pct": 50}},
		{ID: "promoter_pledge_elevated", Title: "Substantial promoter pledge", Category: pro, Severity: high, EvalFn: "pledge_above", Params: Params{"min_pct": 25}},
		{ID: "pledge_increase_sharp", Title: "Promoter pledge rose sharply year on year", Category: pro, Severity: high, EvalFn: "pledge_increase", Params: Params{"min_increase_pp": 10}},
		{ID: "promoter_holding_decline", Title: "Promoter holding fell year on year", Category: pro, Severity: high, EvalFn: "holding_decline", Params: Params{"min_decline_pp": 5}},
		{ID: "promoter_holding_low", Title: "Promoter holding below blocking stake", Category: pro, Severity: med, EvalFn: "holding_low", Params: Params{"min_pct": 26}},
		{ID: "promoter_pay_excess", Title: "Promoter remuneration large against profit", Category: pro, Severity: med, EvalFn: "promoter_pay_ratio", Params: Params{"max_ratio": 0.10}},
		{ID: "promoter_pay_vs_profit", Title: "Promoter pay grew while profit declined", Category: pro, Severity: med, EvalFn: "promoter_pay_vs_profit", Params: Params{"min_pay_growth": 0.30}},

		// --- Governance (8) ---
		{ID: "board_independence_low", Title: "Independent directors below a third of the board", Category: gov, Severity: high, EvalFn: "board_independence", Params: Params{"min_ratio": 1.0 / 3.0}},
		{ID: "director_exodus", Title: "Multiple director resignations in the year", Category: gov, Severity: high, EvalFn: "director_exodus", Params: Params{"min_count": 2}},
		{ID: "cfo_exit", Title: "CFO changed during the year", Category: gov, Severity: high, EvalFn: "cfo_exit"},
		{ID: "audit_committee_inactive", Title: "Audit committee met fewer than four times", Category: gov, Severity: med, EvalFn: "audit_committee_meetings", Params: Params{"min_meetings": 4}},
		{ID: "chair_ceo_duality", Title: "Chairperson and CEO are the same person", Category: gov, Severity: low, EvalFn: "chair_ceo_duality"},
		{ID: "regulatory_penalty", Title: "Regulatory penalty levied during the year", Category: gov, Severity: high, EvalFn: "regulatory_penalty"},
		{ID: "rating_downgrade_sharp", Title: "Credit rating cut by two or more notches", Category: gov, Severity: crit, EvalFn: "rating_downgrade", Params: Params{"min_notches": 2}},
		{ID: "results_filing_delay", Title: "Results filed late", Category: gov, Severity: med, EvalFn: "filing_delay", Params: Params{"max_days": 30}},

		// --- Balance sheet (7) ---
		{ID: "receivables_outpace_revenue", Title: "Receivables growing much faster than revenue", Category: bs, Severity: high, EvalFn: "receivables_outpace", Params: Params{"min_gap_pp": 25}},
		{ID: "inventory_outpace_revenue", Title: "Inventory growing much faster than revenue", Category: bs, Severity: med, EvalFn: "inventory_outpace", Params: Params{"min_gap_pp": 25}},
		{ID: "debt_growth_sharp", Title: "Borrowings grew sharply year on year", Category: bs, Severity: high, EvalFn: "debt_growth", Params: Params{"max_growth": 0.50}},
		{ID: "leverage_high", Title: "Debt-to-equity above tolerance", Category: bs, Severity: high, EvalFn: "leverage_high", Params: Params{"max_ratio": 3}},
		{ID: "intangibles_jump", Title: "Intangibles ballooned year on year", Category: bs, Severity: med, EvalFn: "intangibles_jump", Params: Params{"max_growth": 0.50}},
		{ID: "contingent_liabilities_high", Title: "Contingent liabilities large against net worth", Category: bs, Severity: med, EvalFn: "contingent_ratio", Params: Params{"max_ratio": 0.30}},
		{ID: "negative_networth", Title: "Net worth fully eroded", Category: bs, Severity: crit, EvalFn: "negative_networth"},

		// --- Revenue (3) ---
		{ID: "revenue_spike", Title: "Revenue grew implausibly fast", Category: rev, Severity: med, EvalFn: "revenue_spike", Params: Params{"max_growth": 0.50}},
		{ID: "other_income_dependence", Title: "Profit heavily dependent on other income", Category: rev, Severity: med, EvalFn: "other_income_ratio", Params: Params{"max_ratio": 0.30}},
		{ID: "receivable_days_high", Title: "Receivable days above tolerance", Category: rev, Severity: high, EvalFn: "receivable_days", Params: Params{"max_days": 120}},

		// --- Textual (6, AI-assisted) ---
		{ID: "mdna_tone_divergence", Title: "Management commentary inconsistent with reported numbers", Category: txt, Severity: med, Kind: KindTextual, Section: "mdna"},
		{ID: "risk_factor_dilution", Title: "New or materially reworded going-concern language in risk factors", Category: txt, Severity: med, Kind: KindTextual, Section: "risk_factors"},
		{ID: "accounting_policy_shift", Title: "Revenue-recognition or estimation policy changed", Category: txt, Severity: high, Kind: KindTextual, Section: "notes"},
		{ID: "litigation_exposure", Title: "Material litigation or investigation disclosed", Category: txt, Severity: high, Kind: KindTextual, Section: "notes"},
		{ID: "evasive_disclosure", Title: "Hedging or evasive language in management discussion", Category: txt, Severity: med, Kind: KindTextual, Section: "mdna"},
		{ID: "rpt_narrative_complexity", Title: "Opaque related-party structure narrative", Category: txt, Severity: med, Kind: KindTextual, Section: "notes"},
	}
}

package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/akashent3/redflags-sub001/internal/domain/model"
)

// Finding is the raw outcome of one deterministic check: whether it fired
// and the templated evidence embedding the computed values.
type Finding struct {
	Triggered bool
	Evidence  string
}

type numericCheckFn func(b *model.ReportBundle, p Params) (Finding, error)

// numericChecks is the dispatch registry for deterministic checks. Each
// function reads only the bundle, never another check's result.
var numericChecks = map[string]numericCheckFn{
	"auditor_change":            checkAuditorChange,
	"audit_opinion":             checkAuditOpinion,
	"going_concern":             checkGoingConcern,
	"audit_fee_decline":         checkAuditFeeDecline,
	"non_audit_fee_excess":      checkNonAuditFeeExcess,
	"audit_fee_ratio_low":       checkAuditFeeRatioLow,
	"auditor_tenure_short":      checkAuditorTenureShort,
	"emphasis_of_matter":        checkEmphasisOfMatter,
	"cfo_pat_divergence":        checkCFOPATDivergence,
	"cfo_pat_ratio_low":         checkCFOPATRatioLow,
	"negative_cfo_positive_pat": checkNegativeCFOPositivePAT,
	"cumulative_fcf_negative":   checkCumulativeFCFNegative,
	"interest_coverage_low":     checkInterestCoverageLow,
	"cash_interest_yield_low":   checkCashInterestYieldLow,
	"dividend_unfunded":         checkDividendUnfunded,
	"capex_depreciation_excess": checkCapexDepreciationExcess,
	"rpt_sales_ratio":           checkRPTSalesRatio,
	"rpt_loans_ratio":           checkRPTLoansRatio,
	"rpt_purchases_ratio":       checkRPTPurchasesRatio,
	"rpt_growth_spike":          checkRPTGrowthSpike,
	"rpt_receivables_share":     checkRPTReceivablesShare,
	"rpt_guarantees_ratio":      checkRPTGuaranteesRatio,
	"subsidiary_sprawl":         checkSubsidiarySprawl,
	"pledge_above":              checkPledgeAbove,
	"pledge_increase":           checkPledgeIncrease,
	"holding_decline":           checkHoldingDecline,
	"holding_low":               checkHoldingLow,
	"promoter_pay_ratio":        checkPromoterPayRatio,
	"promoter_pay_vs_profit":    checkPromoterPayVsProfit,
	"board_independence":        checkBoardIndependence,
	"director_exodus":           checkDirectorExodus,
	"cfo_exit":                  checkCFOExit,
	"audit_committee_meetings":  checkAuditCommitteeMeetings,
	"chair_ceo_duality":         checkChairCEODuality,
	"regulatory_penalty":        checkRegulatoryPenalty,
	"rating_downgrade":          checkRatingDowngrade,
	"filing_delay":              checkFilingDelay,
	"receivables_outpace":       checkReceivablesOutpace,
	"inventory_outpace":         checkInventoryOutpace,
	"debt_growth":               checkDebtGrowth,
	"leverage_high":             checkLeverageHigh,
	"intangibles_jump":          checkIntangiblesJump,
	"contingent_ratio":          checkContingentRatio,
	"negative_networth":         checkNegativeNetworth,
	"revenue_spike":             checkRevenueSpike,
	"other_income_ratio":        checkOtherIncomeRatio,
	"receivable_days":           checkReceivableDays,
}

// --- field access helpers ---
// Absent fields and non-positive denominators both resolve to
// DataIncompleteError, which the evaluator converts to SKIPPED.

func currentYear(b *model.ReportBundle) (*model.FiscalYearData, error) {
	y, ok := b.Financials.Current()
	if !ok {
		return nil, &DataIncompleteError{Field: "fiscal_years", Reason: "no current year"}
	}
	return y, nil
}

func priorYear(b *model.ReportBundle) (*model.FiscalYearData, error) {
	y, ok := b.Financials.Prior()
	if !ok {
		return nil, &DataIncompleteError{Field: "fiscal_years", Reason: "no prior year"}
	}
	return y, nil
}

func reqDec(v *decimal.Decimal, field string) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Decimal{}, &DataIncompleteError{Field: field}
	}
	return *v, nil
}

func reqF64(v *float64, field string) (float64, error) {
	if v == nil {
		return 0, &DataIncompleteError{Field: field}
	}
	return *v, nil
}

func reqInt(v *int, field string) (int, error) {
	if v == nil {
		return 0, &DataIncompleteError{Field: field}
	}
	return *v, nil
}

func reqBool(v *bool, field string) (bool, error) {
	if v == nil {
		return false, &DataIncompleteError{Field: field}
	}
	return *v, nil
}

func reqStr(v *string, field string) (string, error) {
	if v == nil {
		return "", &DataIncompleteError{Field: field}
	}
	return *v, nil
}

// ratio divides num by den, skipping on a zero or negative denominator.
func ratio(num, den decimal.Decimal, denField string) (float64, error) {
	if !den.IsPositive() {
		return 0, &DataIncompleteError{Field: denField, Reason: "denominator not positive"}
	}
	return num.Div(den).InexactFloat64(), nil
}

// growthPct returns the year-on-year growth of cur over prior in percent,
// skipping when the base is zero or negative.
func growthPct(cur, prior decimal.Decimal, field string) (float64, error) {
	if !prior.IsPositive() {
		return 0, &DataIncompleteError{Field: field, Reason: "prior-year base not positive"}
	}
	return cur.Sub(prior).Div(prior).InexactFloat64() * 100, nil
}

// --- Auditor ---

func checkAuditorChange(b *model.ReportBundle, _ Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	pri, err := priorYear(b)
	if err != nil {
		return Finding{}, err
	}
	curName, err := reqStr(cur.AuditorName, "auditor_name")
	if err != nil {
		return Finding{}, err
	}
	priName, err := reqStr(pri.AuditorName, "auditor_name[prior]")
	if err != nil {
		return Finding{}, err
	}
	if curName != priName {
		return Finding{Triggered: true, Evidence: fmt.Sprintf("statutory auditor changed from %q to %q", priName, curName)}, nil
	}
	return Finding{}, nil
}

func checkAuditOpinion(b *model.ReportBundle, _ Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	opinion, err := reqStr(cur.AuditOpinion, "audit_opinion")
	if err != nil {
		return Finding{}, err
	}
	switch opinion {
	case "qualified", "adverse", "disclaimer":
		return Finding{Triggered: true, Evidence: fmt.Sprintf("audit opinion is %q", opinion)}, nil
	}
	return Finding{}, nil
}

func checkGoingConcern(b *model.ReportBundle, _ Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	doubt, err := reqBool(cur.GoingConcernDoubt, "going_concern_doubt")
	if err != nil {
		return Finding{}, err
	}
	if doubt {
		return Finding{Triggered: true, Evidence: "auditor raised material uncertainty over going concern"}, nil
	}
	return Finding{}, nil
}

func checkAuditFeeDecline(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	pri, err := priorYear(b)
	if err != nil {
		return Finding{}, err
	}
	curFee, err := reqDec(cur.AuditFees, "audit_fees")
	if err != nil {
		return Finding{}, err
	}
	priFee, err := reqDec(pri.AuditFees, "audit_fees[prior]")
	if err != nil {
		return Finding{}, err
	}
	curRev, err := reqDec(cur.Revenue, "revenue")
	if err != nil {
		return Finding{}, err
	}
	priRev, err := reqDec(pri.Revenue, "revenue[prior]")
	if err != nil {
		return Finding{}, err
	}
	feeGrowth, err := growthPct(curFee, priFee, "audit_fees[prior]")
	if err != nil {
		return Finding{}, err
	}
	revGrowth, err := growthPct(curRev, priRev, "revenue[prior]")
	if err != nil {
		return Finding{}, err
	}
	if feeGrowth < -p["min_decline_pct"] && revGrowth >= 0 {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"audit fees fell %.1f%% while revenue grew %.1f%%", -feeGrowth, revGrowth)}, nil
	}
	return Finding{}, nil
}

func checkNonAuditFeeExcess(b *model.ReportBundle, _ Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	nonAudit, err := reqDec(cur.NonAuditFees, "non_audit_fees")
	if err != nil {
		return Finding{}, err
	}
	audit, err := reqDec(cur.AuditFees, "audit_fees")
	if err != nil {
		return Finding{}, err
	}
	if !audit.IsPositive() {
		return Finding{}, &DataIncompleteError{Field: "audit_fees", Reason: "denominator not positive"}
	}
	if nonAudit.GreaterThan(audit) {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"non-audit fees %s exceed audit fees %s", nonAudit.StringFixed(0), audit.StringFixed(0))}, nil
	}
	return Finding{}, nil
}

func checkAuditFeeRatioLow(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	fee, err := reqDec(cur.AuditFees, "audit_fees")
	if err != nil {
		return Finding{}, err
	}
	rev, err := reqDec(cur.Revenue, "revenue")
	if err != nil {
		return Finding{}, err
	}
	r, err := ratio(fee, rev, "revenue")
	if err != nil {
		return Finding{}, err
	}
	if r < p["max_ratio"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"audit fee is %.4f%% of revenue, below the %.4f%% plausibility floor", r*100, p["max_ratio"]*100)}, nil
	}
	return Finding{}, nil
}

func checkAuditorTenureShort(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	tenure, err := reqInt(cur.AuditorTenureYears, "auditor_tenure_years")
	if err != nil {
		return Finding{}, err
	}
	if float64(tenure) <= p["max_years"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf("auditor tenure is %d year(s)", tenure)}, nil
	}
	return Finding{}, nil
}

func checkEmphasisOfMatter(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	count, err := reqInt(cur.EmphasisOfMatterCount, "emphasis_of_matter_count")
	if err != nil {
		return Finding{}, err
	}
	if float64(count) >= p["min_count"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf("%d emphasis-of-matter paragraphs in the audit report", count)}, nil
	}
	return Finding{}, nil
}

// --- Cash flow ---

func checkCFOPATDivergence(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	pri, err := priorYear(b)
	if err != nil {
		return Finding{}, err
	}
	curPAT, err := reqDec(cur.PAT, "pat")
	if err != nil {
		return Finding{}, err
	}
	priPAT, err := reqDec(pri.PAT, "pat[prior]")
	if err != nil {
		return Finding{}, err
	}
	curCFO, err := reqDec(cur.CFO, "cfo")
	if err != nil {
		return Finding{}, err
	}
	priCFO, err := reqDec(pri.CFO, "cfo[prior]")
	if err != nil {
		return Finding{}, err
	}
	patGrowth, err := growthPct(curPAT, priPAT, "pat[prior]")
	if err != nil {
		return Finding{}, err
	}
	cfoGrowth, err := growthPct(curCFO, priCFO, "cfo[prior]")
	if err != nil {
		return Finding{}, err
	}
	gap := patGrowth - cfoGrowth
	if gap > p["min_gap_pp"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"profit grew %.1f%% but operating cash flow grew only %.1f%% (gap %.1f pp)",
			patGrowth, cfoGrowth, gap)}, nil
	}
	return Finding{}, nil
}

func checkCFOPATRatioLow(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	cfo, err := reqDec(cur.CFO, "cfo")
	if err != nil {
		return Finding{}, err
	}
	pat, err := reqDec(cur.PAT, "pat")
	if err != nil {
		return Finding{}, err
	}
	r, err := ratio(cfo, pat, "pat")
	if err != nil {
		return Finding{}, err
	}
	if r < p["max_ratio"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"CFO/PAT is %.2f, below the %.2f floor (CFO %s vs PAT %s)",
			r, p["max_ratio"], cfo.StringFixed(0), pat.StringFixed(0))}, nil
	}
	return Finding{}, nil
}

func checkNegativeCFOPositivePAT(b *model.ReportBundle, _ Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	cfo, err := reqDec(cur.CFO, "cfo")
	if err != nil {
		return Finding{}, err
	}
	pat, err := reqDec(cur.PAT, "pat")
	if err != nil {
		return Finding{}, err
	}
	if cfo.IsNegative() && pat.IsPositive() {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"operating cash flow %s is negative against reported profit %s",
			cfo.StringFixed(0), pat.StringFixed(0))}, nil
	}
	return Finding{}, nil
}

func checkCumulativeFCFNegative(b *model.ReportBundle, _ Params) (Finding, error) {
	if len(b.Financials.Years) < 2 {
		return Finding{}, &DataIncompleteError{Field: "fiscal_years", Reason: "need at least two years"}
	}
	fcf := decimal.Zero
	patSum := decimal.Zero
	for i := range b.Financials.Years {
		y := &b.Financials.Years[i]
		cfo, err := reqDec(y.CFO, fmt.Sprintf("cfo[%d]", y.Year))
		if err != nil {
			return Finding{}, err
		}
		capex, err := reqDec(y.Capex, fmt.Sprintf("capex[%d]", y.Year))
		if err != nil {
			return Finding{}, err
		}
		pat, err := reqDec(y.PAT, fmt.Sprintf("pat[%d]", y.Year))
		if err != nil {
			return Finding{}, err
		}
		fcf = fcf.Add(cfo.Sub(capex))
		patSum = patSum.Add(pat)
	}
	if fcf.IsNegative() && patSum.IsPositive() {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"cumulative free cash flow %s over %d years despite cumulative profit %s",
			fcf.StringFixed(0), len(b.Financials.Years), patSum.StringFixed(0))}, nil
	}
	return Finding{}, nil
}

func checkInterestCoverageLow(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	op, err := reqDec(cur.OperatingProfit, "operating_profit")
	if err != nil {
		return Finding{}, err
	}
	interest, err := reqDec(cur.InterestExpense, "interest_expense")
	if err != nil {
		return Finding{}, err
	}
	cover, err := ratio(op, interest, "interest_expense")
	if err != nil {
		return Finding{}, err
	}
	if cover < p["min_cover"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"interest coverage is %.2fx, below the %.1fx floor", cover, p["min_cover"])}, nil
	}
	return Finding{}, nil
}

func checkCashInterestYieldLow(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	income, err := reqDec(cur.InterestIncome, "interest_income")
	if err != nil {
		return Finding{}, err
	}
	cash, err := reqDec(cur.CashAndEquivalents, "cash_and_equivalents")
	if err != nil {
		return Finding{}, err
	}
	yield, err := ratio(income, cash, "cash_and_equivalents")
	if err != nil {
		return Finding{}, err
	}
	if yield < p["min_yield"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"reported cash of %s earned only %.2f%% interest", cash.StringFixed(0), yield*100)}, nil
	}
	return Finding{}, nil
}

func checkDividendUnfunded(b *model.ReportBundle, _ Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	dividend, err := reqDec(cur.DividendPaid, "dividend_paid")
	if err != nil {
		return Finding{}, err
	}
	cfo, err := reqDec(cur.CFO, "cfo")
	if err != nil {
		return Finding{}, err
	}
	if dividend.IsPositive() && dividend.GreaterThan(cfo) {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"dividend of %s paid against operating cash flow of %s",
			dividend.StringFixed(0), cfo.StringFixed(0))}, nil
	}
	return Finding{}, nil
}

func checkCapexDepreciationExcess(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	capex, err := reqDec(cur.Capex, "capex")
	if err != nil {
		return Finding{}, err
	}
	dep, err := reqDec(cur.Depreciation, "depreciation")
	if err != nil {
		return Finding{}, err
	}
	mult, err := ratio(capex, dep, "depreciation")
	if err != nil {
		return Finding{}, err
	}
	if mult > p["max_multiple"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"capex is %.1fx depreciation", mult)}, nil
	}
	return Finding{}, nil
}

// --- Related party ---

func checkRPTSalesRatio(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	rptSales, err := reqDec(cur.RelatedPartySales, "related_party_sales")
	if err != nil {
		return Finding{}, err
	}
	rev, err := reqDec(cur.Revenue, "revenue")
	if err != nil {
		return Finding{}, err
	}
	r, err := ratio(rptSales, rev, "revenue")
	if err != nil {
		return Finding{}, err
	}
	if r > p["max_ratio"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"%.1f%% of revenue comes from related parties", r*100)}, nil
	}
	return Finding{}, nil
}

func checkRPTLoansRatio(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	loans, err := reqDec(cur.RelatedPartyLoans, "related_party_loans")
	if err != nil {
		return Finding{}, err
	}
	equity, err := reqDec(cur.Equity, "equity")
	if err != nil {
		return Finding{}, err
	}
	r, err := ratio(loans, equity, "equity")
	if err != nil {
		return Finding{}, err
	}
	if r > p["max_ratio"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"loans to related parties are %.1f%% of net worth", r*100)}, nil
	}
	return Finding{}, nil
}

func checkRPTPurchasesRatio(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	purchases, err := reqDec(cur.RelatedPartyPurchases, "related_party_purchases")
	if err != nil {
		return Finding{}, err
	}
	rev, err := reqDec(cur.Revenue, "revenue")
	if err != nil {
		return Finding{}, err
	}
	r, err := ratio(purchases, rev, "revenue")
	if err != nil {
		return Finding{}, err
	}
	if r > p["max_ratio"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"related-party purchases are %.1f%% of revenue", r*100)}, nil
	}
	return Finding{}, nil
}

func checkRPTGrowthSpike(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	pri, err := priorYear(b)
	if err != nil {
		return Finding{}, err
	}
	curTotal, err := rptTotal(cur)
	if err != nil {
		return Finding{}, err
	}
	priTotal, err := rptTotal(pri)
	if err != nil {
		return Finding{}, err
	}
	growth, err := growthPct(curTotal, priTotal, "related_party_total[prior]")
	if err != nil {
		return Finding{}, err
	}
	if growth > p["max_growth"]*100 {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"related-party volumes grew %.1f%% year on year", growth)}, nil
	}
	return Finding{}, nil
}

func rptTotal(y *model.FiscalYearData) (decimal.Decimal, error) {
	sales, err := reqDec(y.RelatedPartySales, "related_party_sales")
	if err != nil {
		return decimal.Decimal{}, err
	}
	purchases, err := reqDec(y.RelatedPartyPurchases, "related_party_purchases")
	if err != nil {
		return decimal.Decimal{}, err
	}
	loans, err := reqDec(y.RelatedPartyLoans, "related_party_loans")
	if err != nil {
		return decimal.Decimal{}, err
	}
	return sales.Add(purchases).Add(loans), nil
}

func checkRPTReceivablesShare(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	rptRec, err := reqDec(cur.RelatedPartyReceivables, "related_party_receivables")
	if err != nil {
		return Finding{}, err
	}
	rec, err := reqDec(cur.Receivables, "receivables")
	if err != nil {
		return Finding{}, err
	}
	r, err := ratio(rptRec, rec, "receivables")
	if err != nil {
		return Finding{}, err
	}
	if r > p["max_ratio"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"%.1f%% of receivables are due from related parties", r*100)}, nil
	}
	return Finding{}, nil
}

func checkRPTGuaranteesRatio(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	guarantees, err := reqDec(cur.RelatedPartyGuarantees, "related_party_guarantees")
	if err != nil {
		return Finding{}, err
	}
	equity, err := reqDec(cur.Equity, "equity")
	if err != nil {
		return Finding{}, err
	}
	r, err := ratio(guarantees, equity, "equity")
	if err != nil {
		return Finding{}, err
	}
	if r > p["max_ratio"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"guarantees to related parties are %.1f%% of net worth", r*100)}, nil
	}
	return Finding{}, nil
}

func checkSubsidiarySprawl(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	count, err := reqInt(cur.SubsidiaryCount, "subsidiary_count")
	if err != nil {
		return Finding{}, err
	}
	if float64(count) >= p["max_count"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf("%d subsidiaries and associates", count)}, nil
	}
	return Finding{}, nil
}

// --- Promoter ---

func checkPledgeAbove(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	pledge, err := reqF64(cur.PromoterPledgePct, "promoter_pledge_pct")
	if err != nil {
		return Finding{}, err
	}
	if pledge >= p["min_pct"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"%.1f%% of promoter holding is pledged (threshold %.0f%%)", pledge, p["min_pct"])}, nil
	}
	return Finding{}, nil
}

func checkPledgeIncrease(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	pri, err := priorYear(b)
	if err != nil {
		return Finding{}, err
	}
	curPledge, err := reqF64(cur.PromoterPledgePct, "promoter_pledge_pct")
	if err != nil {
		return Finding{}, err
	}
	priPledge, err := reqF64(pri.PromoterPledgePct, "promoter_pledge_pct[prior]")
	if err != nil {
		return Finding{}, err
	}
	increase := curPledge - priPledge
	if increase >= p["min_increase_pp"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"promoter pledge rose from %.1f%% to %.1f%% (+%.1f pp)", priPledge, curPledge, increase)}, nil
	}
	return Finding{}, nil
}

func checkHoldingDecline(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	pri, err := priorYear(b)
	if err != nil {
		return Finding{}, err
	}
	curHold, err := reqF64(cur.PromoterHoldingPct, "promoter_holding_pct")
	if err != nil {
		return Finding{}, err
	}
	priHold, err := reqF64(pri.PromoterHoldingPct, "promoter_holding_pct[prior]")
	if err != nil {
		return Finding{}, err
	}
	decline := priHold - curHold
	if decline > p["min_decline_pp"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"promoter holding fell from %.1f%% to %.1f%% (-%.1f pp)", priHold, curHold, decline)}, nil
	}
	return Finding{}, nil
}

func checkHoldingLow(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	hold, err := reqF64(cur.PromoterHoldingPct, "promoter_holding_pct")
	if err != nil {
		return Finding{}, err
	}
	if hold < p["min_pct"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"promoter holding is %.1f%%, below the %.0f%% blocking stake", hold, p["min_pct"])}, nil
	}
	return Finding{}, nil
}

func checkPromoterPayRatio(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	pay, err := reqDec(cur.PromoterRemuneration, "promoter_remuneration")
	if err != nil {
		return Finding{}, err
	}
	pat, err := reqDec(cur.PAT, "pat")
	if err != nil {
		return Finding{}, err
	}
	r, err := ratio(pay, pat, "pat")
	if err != nil {
		return Finding{}, err
	}
	if r > p["max_ratio"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"promoter remuneration is %.1f%% of profit after tax", r*100)}, nil
	}
	return Finding{}, nil
}

func checkPromoterPayVsProfit(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	pri, err := priorYear(b)
	if err != nil {
		return Finding{}, err
	}
	curPay, err := reqDec(cur.PromoterRemuneration, "promoter_remuneration")
	if err != nil {
		return Finding{}, err
	}
	priPay, err := reqDec(pri.PromoterRemuneration, "promoter_remuneration[prior]")
	if err != nil {
		return Finding{}, err
	}
	curPAT, err := reqDec(cur.PAT, "pat")
	if err != nil {
		return Finding{}, err
	}
	priPAT, err := reqDec(pri.PAT, "pat[prior]")
	if err != nil {
		return Finding{}, err
	}
	payGrowth, err := growthPct(curPay, priPay, "promoter_remuneration[prior]")
	if err != nil {
		return Finding{}, err
	}
	if payGrowth > p["min_pay_growth"]*100 && curPAT.LessThan(priPAT) {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"promoter pay grew %.1f%% while profit fell from %s to %s",
			payGrowth, priPAT.StringFixed(0), curPAT.StringFixed(0))}, nil
	}
	return Finding{}, nil
}

// --- Governance ---

func checkBoardIndependence(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	independent, err := reqInt(cur.IndependentDirectors, "independent_directors")
	if err != nil {
		return Finding{}, err
	}
	size, err := reqInt(cur.BoardSize, "board_size")
	if err != nil {
		return Finding{}, err
	}
	if size <= 0 {
		return Finding{}, &DataIncompleteError{Field: "board_size", Reason: "denominator not positive"}
	}
	r := float64(independent) / float64(size)
	if r < p["min_ratio"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"only %d of %d directors are independent (%.0f%%)", independent, size, r*100)}, nil
	}
	return Finding{}, nil
}

func checkDirectorExodus(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	resignations, err := reqInt(cur.DirectorResignations, "director_resignations")
	if err != nil {
		return Finding{}, err
	}
	if float64(resignations) >= p["min_count"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"%d directors resigned during the year", resignations)}, nil
	}
	return Finding{}, nil
}

func checkCFOExit(b *model.ReportBundle, _ Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	changed, err := reqBool(cur.CFOChanged, "cfo_changed")
	if err != nil {
		return Finding{}, err
	}
	if changed {
		return Finding{Triggered: true, Evidence: "CFO changed during the year"}, nil
	}
	return Finding{}, nil
}

func checkAuditCommitteeMeetings(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	meetings, err := reqInt(cur.AuditCommitteeMeetings, "audit_committee_meetings")
	if err != nil {
		return Finding{}, err
	}
	if float64(meetings) < p["min_meetings"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"audit committee met only %d time(s)", meetings)}, nil
	}
	return Finding{}, nil
}

func checkChairCEODuality(b *model.ReportBundle, _ Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	same, err := reqBool(cur.ChairCEOSame, "chair_ceo_same")
	if err != nil {
		return Finding{}, err
	}
	if same {
		return Finding{Triggered: true, Evidence: "chairperson and CEO roles are held by the same person"}, nil
	}
	return Finding{}, nil
}

func checkRegulatoryPenalty(b *model.ReportBundle, _ Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	penalties, err := reqDec(cur.RegulatoryPenalties, "regulatory_penalties")
	if err != nil {
		return Finding{}, err
	}
	if penalties.IsPositive() {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"regulatory penalties of %s levied during the year", penalties.StringFixed(0))}, nil
	}
	return Finding{}, nil
}

func checkRatingDowngrade(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	notches, err := reqInt(cur.RatingDowngradeNotches, "rating_downgrade_notches")
	if err != nil {
		return Finding{}, err
	}
	if float64(notches) >= p["min_notches"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"credit rating cut by %d notches", notches)}, nil
	}
	return Finding{}, nil
}

func checkFilingDelay(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	days, err := reqInt(cur.FilingDelayDays, "filing_delay_days")
	if err != nil {
		return Finding{}, err
	}
	if float64(days) > p["max_days"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"annual results filed %d days late", days)}, nil
	}
	return Finding{}, nil
}

// --- Balance sheet ---

func checkReceivablesOutpace(b *model.ReportBundle, p Params) (Finding, error) {
	return growthGapCheck(b, p, "receivables",
		func(y *model.FiscalYearData) *decimal.Decimal { return y.Receivables },
		"receivables grew %.1f%% against revenue growth of %.1f%% (gap %.1f pp)")
}

func checkInventoryOutpace(b *model.ReportBundle, p Params) (Finding, error) {
	return growthGapCheck(b, p, "inventory",
		func(y *model.FiscalYearData) *decimal.Decimal { return y.Inventory },
		"inventory grew %.1f%% against revenue growth of %.1f%% (gap %.1f pp)")
}

// growthGapCheck compares a balance-sheet line's YoY growth with revenue
// growth and fires when the gap exceeds min_gap_pp.
func growthGapCheck(b *model.ReportBundle, p Params, field string, pick func(*model.FiscalYearData) *decimal.Decimal, template string) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	pri, err := priorYear(b)
	if err != nil {
		return Finding{}, err
	}
	curVal, err := reqDec(pick(cur), field)
	if err != nil {
		return Finding{}, err
	}
	priVal, err := reqDec(pick(pri), field+"[prior]")
	if err != nil {
		return Finding{}, err
	}
	curRev, err := reqDec(cur.Revenue, "revenue")
	if err != nil {
		return Finding{}, err
	}
	priRev, err := reqDec(pri.Revenue, "revenue[prior]")
	if err != nil {
		return Finding{}, err
	}
	valGrowth, err := growthPct(curVal, priVal, field+"[prior]")
	if err != nil {
		return Finding{}, err
	}
	revGrowth, err := growthPct(curRev, priRev, "revenue[prior]")
	if err != nil {
		return Finding{}, err
	}
	gap := valGrowth - revGrowth
	if gap > p["min_gap_pp"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(template, valGrowth, revGrowth, gap)}, nil
	}
	return Finding{}, nil
}

func checkDebtGrowth(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	pri, err := priorYear(b)
	if err != nil {
		return Finding{}, err
	}
	curDebt, err := reqDec(cur.TotalDebt, "total_debt")
	if err != nil {
		return Finding{}, err
	}
	priDebt, err := reqDec(pri.TotalDebt, "total_debt[prior]")
	if err != nil {
		return Finding{}, err
	}
	growth, err := growthPct(curDebt, priDebt, "total_debt[prior]")
	if err != nil {
		return Finding{}, err
	}
	if growth > p["max_growth"]*100 {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"total debt grew %.1f%% year on year to %s", growth, curDebt.StringFixed(0))}, nil
	}
	return Finding{}, nil
}

func checkLeverageHigh(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	debt, err := reqDec(cur.TotalDebt, "total_debt")
	if err != nil {
		return Finding{}, err
	}
	equity, err := reqDec(cur.Equity, "equity")
	if err != nil {
		return Finding{}, err
	}
	r, err := ratio(debt, equity, "equity")
	if err != nil {
		return Finding{}, err
	}
	if r > p["max_ratio"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"debt-to-equity is %.2f, above the %.1f tolerance", r, p["max_ratio"])}, nil
	}
	return Finding{}, nil
}

func checkIntangiblesJump(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	pri, err := priorYear(b)
	if err != nil {
		return Finding{}, err
	}
	curVal, err := reqDec(cur.Intangibles, "intangibles")
	if err != nil {
		return Finding{}, err
	}
	priVal, err := reqDec(pri.Intangibles, "intangibles[prior]")
	if err != nil {
		return Finding{}, err
	}
	growth, err := growthPct(curVal, priVal, "intangibles[prior]")
	if err != nil {
		return Finding{}, err
	}
	if growth > p["max_growth"]*100 {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"goodwill and intangibles grew %.1f%% year on year", growth)}, nil
	}
	return Finding{}, nil
}

func checkContingentRatio(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	contingent, err := reqDec(cur.ContingentLiabilities, "contingent_liabilities")
	if err != nil {
		return Finding{}, err
	}
	equity, err := reqDec(cur.Equity, "equity")
	if err != nil {
		return Finding{}, err
	}
	r, err := ratio(contingent, equity, "equity")
	if err != nil {
		return Finding{}, err
	}
	if r > p["max_ratio"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"contingent liabilities are %.1f%% of net worth", r*100)}, nil
	}
	return Finding{}, nil
}

func checkNegativeNetworth(b *model.ReportBundle, _ Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	equity, err := reqDec(cur.Equity, "equity")
	if err != nil {
		return Finding{}, err
	}
	if !equity.IsPositive() {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"net worth is %s", equity.StringFixed(0))}, nil
	}
	return Finding{}, nil
}

// --- Revenue ---

func checkRevenueSpike(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	pri, err := priorYear(b)
	if err != nil {
		return Finding{}, err
	}
	curRev, err := reqDec(cur.Revenue, "revenue")
	if err != nil {
		return Finding{}, err
	}
	priRev, err := reqDec(pri.Revenue, "revenue[prior]")
	if err != nil {
		return Finding{}, err
	}
	growth, err := growthPct(curRev, priRev, "revenue[prior]")
	if err != nil {
		return Finding{}, err
	}
	if growth > p["max_growth"]*100 {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"revenue grew %.1f%% year on year", growth)}, nil
	}
	return Finding{}, nil
}

func checkOtherIncomeRatio(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	other, err := reqDec(cur.OtherIncome, "other_income")
	if err != nil {
		return Finding{}, err
	}
	pat, err := reqDec(cur.PAT, "pat")
	if err != nil {
		return Finding{}, err
	}
	r, err := ratio(other, pat, "pat")
	if err != nil {
		return Finding{}, err
	}
	if r > p["max_ratio"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"other income is %.1f%% of profit after tax", r*100)}, nil
	}
	return Finding{}, nil
}

func checkReceivableDays(b *model.ReportBundle, p Params) (Finding, error) {
	cur, err := currentYear(b)
	if err != nil {
		return Finding{}, err
	}
	rec, err := reqDec(cur.Receivables, "receivables")
	if err != nil {
		return Finding{}, err
	}
	rev, err := reqDec(cur.Revenue, "revenue")
	if err != nil {
		return Finding{}, err
	}
	r, err := ratio(rec, rev, "revenue")
	if err != nil {
		return Finding{}, err
	}
	days := r * 365
	if days > p["max_days"] {
		return Finding{Triggered: true, Evidence: fmt.Sprintf(
			"receivable days are %.0f, above the %.0f-day tolerance", days, p["max_days"])}, nil
	}
	return Finding{}, nil
}

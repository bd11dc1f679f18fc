package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashent3/redflags-sub001/internal/domain/model"
	"github.com/akashent3/redflags-sub001/pkg/testutil"
)

func TestChecksNumericHealthyCompanyTriggersNothing(t *testing.T) {
	bundle := testutil.HealthyBundle()
	for id, fn := range numericChecks {
		def := findDefByEvalFn(t, id)
		finding, err := fn(bundle, def.Params)
		require.NoError(t, err, "check %s", id)
		assert.False(t, finding.Triggered, "check %s fired on a healthy company", id)
	}
}

// findDefByEvalFn returns a catalog definition using the eval fn, so tests
// exercise each function with its shipped parameters.
func findDefByEvalFn(t *testing.T, evalFn string) CheckDefinition {
	t.Helper()
	for _, def := range defaultCheckDefinitions() {
		if def.EvalFn == evalFn {
			return def
		}
	}
	t.Fatalf("no catalog entry uses eval fn %s", evalFn)
	return CheckDefinition{}
}

func TestCheckCFOPATDivergence(t *testing.T) {
	def := findDefByEvalFn(t, "cfo_pat_divergence")

	t.Run("profit outruns cash flow", func(t *testing.T) {
		bundle := testutil.HealthyBundle()
		// PAT +25% while CFO -10%: a 35pp gap, well past the 15pp tolerance.
		bundle.Financials.Years[0].PAT = testutil.Dec("1750")
		bundle.Financials.Years[1].PAT = testutil.Dec("1400")
		bundle.Financials.Years[0].CFO = testutil.Dec("1350")
		bundle.Financials.Years[1].CFO = testutil.Dec("1500")

		finding, err := checkCFOPATDivergence(bundle, def.Params)
		require.NoError(t, err)
		assert.True(t, finding.Triggered)
		assert.Contains(t, finding.Evidence, "25.0%")
		assert.Contains(t, finding.Evidence, "-10.0%")
	})

	t.Run("missing prior cfo skips", func(t *testing.T) {
		bundle := testutil.HealthyBundle()
		bundle.Financials.Years[1].CFO = nil

		_, err := checkCFOPATDivergence(bundle, def.Params)
		var incomplete *DataIncompleteError
		require.ErrorAs(t, err, &incomplete)
	})

	t.Run("non-positive prior pat skips", func(t *testing.T) {
		bundle := testutil.HealthyBundle()
		bundle.Financials.Years[1].PAT = testutil.Dec("0")

		_, err := checkCFOPATDivergence(bundle, def.Params)
		var incomplete *DataIncompleteError
		require.ErrorAs(t, err, &incomplete)
	})

	t.Run("single year skips", func(t *testing.T) {
		bundle := testutil.HealthyBundle()
		bundle.Financials.Years = bundle.Financials.Years[:1]

		_, err := checkCFOPATDivergence(bundle, def.Params)
		var incomplete *DataIncompleteError
		require.ErrorAs(t, err, &incomplete)
	})
}

func TestCheckNegativeCFOPositivePAT(t *testing.T) {
	def := findDefByEvalFn(t, "negative_cfo_positive_pat")
	bundle := testutil.HealthyBundle()
	bundle.Financials.Years[0].CFO = testutil.Dec("-200")

	finding, err := checkNegativeCFOPositivePAT(bundle, def.Params)
	require.NoError(t, err)
	assert.True(t, finding.Triggered)
}

func TestCheckPledgeAboveTiers(t *testing.T) {
	// Two catalog entries share this function with different thresholds.
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	critical, ok := catalog.Lookup("promoter_pledge_critical")
	require.True(t, ok)
	elevated, ok := catalog.Lookup("promoter_pledge_elevated")
	require.True(t, ok)

	bundle := testutil.HealthyBundle()
	bundle.Financials.Years[0].PromoterPledgePct = testutil.F64(30)

	finding, err := checkPledgeAbove(bundle, critical.Params)
	require.NoError(t, err)
	assert.False(t, finding.Triggered, "30%% pledge must not clear the 50%% tier")

	finding, err = checkPledgeAbove(bundle, elevated.Params)
	require.NoError(t, err)
	assert.True(t, finding.Triggered, "30%% pledge clears the 25%% tier")
}

func TestCheckAuditorChange(t *testing.T) {
	def := findDefByEvalFn(t, "auditor_change")
	bundle := testutil.HealthyBundle()
	bundle.Financials.Years[1].AuditorName = testutil.Str("Former Auditor & Associates")

	finding, err := checkAuditorChange(bundle, def.Params)
	require.NoError(t, err)
	assert.True(t, finding.Triggered)
}

func TestCheckNegativeNetworth(t *testing.T) {
	def := findDefByEvalFn(t, "negative_networth")
	bundle := testutil.HealthyBundle()
	bundle.Financials.Years[0].Equity = testutil.Dec("-500")

	finding, err := checkNegativeNetworth(bundle, def.Params)
	require.NoError(t, err)
	assert.True(t, finding.Triggered)
}

func TestCheckLeverageSkipsOnNonPositiveEquity(t *testing.T) {
	def := findDefByEvalFn(t, "leverage_high")
	bundle := testutil.HealthyBundle()
	bundle.Financials.Years[0].Equity = testutil.Dec("0")

	_, err := checkLeverageHigh(bundle, def.Params)
	var incomplete *DataIncompleteError
	require.ErrorAs(t, err, &incomplete)
}

func TestCheckReceivableDays(t *testing.T) {
	def := findDefByEvalFn(t, "receivable_days")
	bundle := testutil.HealthyBundle()
	// 4000/10000 * 365 = 146 days, past the 120-day tolerance.
	bundle.Financials.Years[0].Receivables = testutil.Dec("4000")

	finding, err := checkReceivableDays(bundle, def.Params)
	require.NoError(t, err)
	assert.True(t, finding.Triggered)
}

func TestCheckRevenueSpike(t *testing.T) {
	def := findDefByEvalFn(t, "revenue_spike")
	bundle := testutil.HealthyBundle()
	bundle.Financials.Years[0].Revenue = testutil.Dec("15000")

	finding, err := checkRevenueSpike(bundle, def.Params)
	require.NoError(t, err)
	assert.True(t, finding.Triggered)
}

func TestCheckBoardIndependence(t *testing.T) {
	def := findDefByEvalFn(t, "board_independence")
	bundle := testutil.HealthyBundle()
	bundle.Financials.Years[0].IndependentDirectors = testutil.Int(2)

	finding, err := checkBoardIndependence(bundle, def.Params)
	require.NoError(t, err)
	assert.True(t, finding.Triggered, "2 of 10 is below a third")
}

func TestChecksSkipWithoutCurrentYear(t *testing.T) {
	bundle := &model.ReportBundle{}
	for id, fn := range numericChecks {
		def := findDefByEvalFn(t, id)
		_, err := fn(bundle, def.Params)
		var incomplete *DataIncompleteError
		require.ErrorAs(t, err, &incomplete, "check %s", id)
	}
}

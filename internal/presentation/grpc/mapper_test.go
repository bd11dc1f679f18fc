package grpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() *AnalyzeReportRequest {
	return &AnalyzeReportRequest{
		CompanyId:         "00000000-0000-0000-0000-000000000001",
		CompanyName:       "Steadfast Industries Ltd",
		FiscalYear:        2025,
		ExtractionVersion: "v1.4.0",
		Years: []*FiscalYearMsg{
			{
				Year: 2025,
				Figures: map[string]string{
					"revenue": "10000.50",
					"pat":     "1500",
					"cfo":     "-200.25",
				},
				Percents: map[string]float64{"promoter_pledge_pct": 62.5},
				Counts:   map[string]int32{"board_size": 10},
				Flags:    map[string]bool{"going_concern_doubt": true},
				Text:     map[string]string{"audit_opinion": "qualified"},
			},
			{Year: 2024, Figures: map[string]string{"revenue": "9500"}},
		},
		Excerpts: []*ExcerptMsg{
			{Section: "mdna", Text: "Management discussion.", Pages: []int32{42, 43}},
		},
		PriorExcerpts: []*ExcerptMsg{
			{Section: "mdna", Text: "Prior year discussion.", Pages: []int32{40}},
		},
	}
}

func TestBundleFromRequest(t *testing.T) {
	bundle, err := bundleFromRequest(validRequest())
	require.NoError(t, err)

	assert.Equal(t, "Steadfast Industries Ltd", bundle.Financials.CompanyName)
	assert.Equal(t, 2025, bundle.Financials.FiscalYear)
	require.Len(t, bundle.Financials.Years, 2)

	cur := bundle.Financials.Years[0]
	require.NotNil(t, cur.Revenue)
	assert.Equal(t, "10000.5", cur.Revenue.String())
	require.NotNil(t, cur.CFO)
	assert.Equal(t, "-200.25", cur.CFO.String())
	require.NotNil(t, cur.PromoterPledgePct)
	assert.Equal(t, 62.5, *cur.PromoterPledgePct)
	require.NotNil(t, cur.BoardSize)
	assert.Equal(t, 10, *cur.BoardSize)
	require.NotNil(t, cur.GoingConcernDoubt)
	assert.True(t, *cur.GoingConcernDoubt)
	require.NotNil(t, cur.AuditOpinion)
	assert.Equal(t, "qualified", *cur.AuditOpinion)
	assert.Nil(t, cur.Equity, "unsent fields stay absent")

	excerpt, ok := bundle.Excerpts.Get("mdna")
	require.True(t, ok)
	assert.Equal(t, []int{42, 43}, excerpt.Pages)
	prior, ok := bundle.Excerpts.GetPrior("mdna")
	require.True(t, ok)
	assert.Equal(t, "Prior year discussion.", prior.Text)
}

func TestBundleFromRequestRejectsBadInput(t *testing.T) {
	t.Run("bad company id", func(t *testing.T) {
		req := validRequest()
		req.CompanyId = "not-a-uuid"
		_, err := bundleFromRequest(req)
		assert.ErrorContains(t, err, "company_id")
	})

	t.Run("no years", func(t *testing.T) {
		req := validRequest()
		req.Years = nil
		_, err := bundleFromRequest(req)
		assert.Error(t, err)
	})

	t.Run("unknown figure key", func(t *testing.T) {
		req := validRequest()
		req.Years[0].Figures["ebitda_margin"] = "12"
		_, err := bundleFromRequest(req)
		assert.ErrorContains(t, err, "unknown figure")
	})

	t.Run("unparseable figure", func(t *testing.T) {
		req := validRequest()
		req.Years[0].Figures["revenue"] = "ten thousand"
		_, err := bundleFromRequest(req)
		assert.ErrorContains(t, err, "revenue")
	})

	t.Run("unknown flag key", func(t *testing.T) {
		req := validRequest()
		req.Years[0].Flags["is_listed"] = true
		_, err := bundleFromRequest(req)
		assert.ErrorContains(t, err, "unknown flag")
	})
}

func TestSetterTablesCoverEveryDatasetField(t *testing.T) {
	// 26 decimal figures, 2 percents, 9 counts, 3 flags, 2 text fields.
	assert.Len(t, figureSetters, 26)
	assert.Len(t, percentSetters, 2)
	assert.Len(t, countSetters, 9)
	assert.Len(t, flagSetters, 3)
	assert.Len(t, textSetters, 2)
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashent3/redflags-sub001/internal/domain/model"
	"github.com/akashent3/redflags-sub001/internal/domain/valueobject"
)

type fakeLibrary struct {
	cases []model.FraudCase
}

func (f *fakeLibrary) Cases() []model.FraudCase { return f.cases }
func (f *fakeLibrary) Version() string          { return "test" }

func TestMatchHighSimilarity(t *testing.T) {
	library := &fakeLibrary{cases: []model.FraudCase{
		{CaseID: "case-a", Company: "Alpha Corp", Year: 2015,
			FlagIDs: []string{"cfo_pat_divergence", "auditor_change", "promoter_pledge_critical", "rpt_sales_ratio_high"}},
	}}
	matcher := NewPatternMatcher(library)

	// 4 of 5 in the union: J = 4/5 = 0.8, a CRITICAL pattern match.
	triggered := []string{"cfo_pat_divergence", "auditor_change", "promoter_pledge_critical", "rpt_sales_ratio_high", "leverage_high"}
	matches, risk := matcher.Match(triggered)

	require.Len(t, matches, 1)
	assert.Equal(t, "case-a", matches[0].CaseID)
	assert.InDelta(t, 0.8, matches[0].Similarity, 1e-9)
	assert.True(t, matches[0].Band.Equal(valueobject.PatternRiskCritical))
	assert.True(t, risk.Equal(valueobject.PatternRiskCritical))
	assert.Equal(t, []string{"auditor_change", "cfo_pat_divergence", "promoter_pledge_critical", "rpt_sales_ratio_high"},
		matches[0].OverlappingFlags, "overlap is sorted")
}

func TestMatchNoTriggeredFlags(t *testing.T) {
	library := &fakeLibrary{cases: []model.FraudCase{
		{CaseID: "case-a", Company: "Alpha Corp", Year: 2015, FlagIDs: []string{"auditor_change"}},
	}}
	matcher := NewPatternMatcher(library)

	matches, risk := matcher.Match(nil)
	assert.Empty(t, matches)
	assert.True(t, risk.Equal(valueobject.PatternRiskNone))
}

func TestMatchBelowFloorIsDropped(t *testing.T) {
	library := &fakeLibrary{cases: []model.FraudCase{
		{CaseID: "case-a", Company: "Alpha Corp", Year: 2015,
			FlagIDs: []string{"auditor_change", "cfo_exit", "leverage_high", "debt_growth_sharp"}},
	}}
	matcher := NewPatternMatcher(library)

	// Overlap 1, union 5: J = 0.2, below the 0.30 floor.
	matches, risk := matcher.Match([]string{"auditor_change", "revenue_spike"})
	assert.Empty(t, matches)
	assert.True(t, risk.Equal(valueobject.PatternRiskNone))
}

func TestMatchOrdering(t *testing.T) {
	library := &fakeLibrary{cases: []model.FraudCase{
		{CaseID: "old-strong", Company: "Old Strong", Year: 2009, FlagIDs: []string{"a", "b"}},
		{CaseID: "zeta", Company: "Zeta", Year: 2018, FlagIDs: []string{"a", "b", "c", "x"}},
		{CaseID: "alpha", Company: "Alpha", Year: 2018, FlagIDs: []string{"a", "b", "c", "y"}},
	}}
	matcher := NewPatternMatcher(library)

	matches, _ := matcher.Match([]string{"a", "b", "c"})
	require.Len(t, matches, 3)
	// old-strong: J = 2/3; zeta and alpha: J = 3/4 each, tied, same year,
	// broken by case id ascending.
	assert.Equal(t, "alpha", matches[0].CaseID)
	assert.Equal(t, "zeta", matches[1].CaseID)
	assert.Equal(t, "old-strong", matches[2].CaseID)
}

func TestMatchCustomFloor(t *testing.T) {
	library := &fakeLibrary{cases: []model.FraudCase{
		{CaseID: "case-a", Company: "Alpha Corp", Year: 2015, FlagIDs: []string{"a", "b", "c", "d"}},
	}}
	matcher := NewPatternMatcher(library).WithMatchFloor(0.15)

	matches, risk := matcher.Match([]string{"a", "x"})
	require.Len(t, matches, 1)
	assert.InDelta(t, 0.2, matches[0].Similarity, 1e-9)
	assert.True(t, risk.Equal(valueobject.PatternRiskMedium))
}

func flagSet(ids ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func TestJaccardIsSymmetric(t *testing.T) {
	pairs := []struct {
		name string
		a, b []string
	}{
		{"partial overlap", []string{"a", "b", "c"}, []string{"b", "c", "d", "e"}},
		{"disjoint", []string{"a", "b"}, []string{"x", "y"}},
		{"subset", []string{"a"}, []string{"a", "b", "c"}},
		{"one empty", nil, []string{"a", "b"}},
	}
	for _, tc := range pairs {
		t.Run(tc.name, func(t *testing.T) {
			ab, _ := jaccard(flagSet(tc.a...), flagSet(tc.b...))
			ba, _ := jaccard(flagSet(tc.b...), flagSet(tc.a...))
			assert.InDelta(t, ab, ba, 1e-12)
		})
	}
}

func TestJaccardIdenticalSetsIsOne(t *testing.T) {
	j, overlap := jaccard(flagSet("a", "b", "c"), flagSet("a", "b", "c"))
	assert.InDelta(t, 1.0, j, 1e-12)
	assert.Equal(t, []string{"a", "b", "c"}, overlap)
}

func TestMatchIsIdempotent(t *testing.T) {
	library := &fakeLibrary{cases: []model.FraudCase{
		{CaseID: "old-strong", Company: "Old Strong", Year: 2009, FlagIDs: []string{"a", "b"}},
		{CaseID: "zeta", Company: "Zeta", Year: 2018, FlagIDs: []string{"a", "b", "c", "x"}},
		{CaseID: "alpha", Company: "Alpha", Year: 2018, FlagIDs: []string{"a", "b", "c", "y"}},
	}}
	matcher := NewPatternMatcher(library)
	triggered := []string{"a", "b", "c"}

	first, firstRisk := matcher.Match(triggered)
	require.NotEmpty(t, first)
	for i := 0; i < 5; i++ {
		again, againRisk := matcher.Match(triggered)
		assert.Equal(t, first, again)
		assert.True(t, firstRisk.Equal(againRisk))
	}
}

func TestMatchAggregateIsHighestBand(t *testing.T) {
	library := &fakeLibrary{cases: []model.FraudCase{
		{CaseID: "weak", Company: "Weak", Year: 2010, FlagIDs: []string{"a", "b", "c", "d", "e", "f"}},
		{CaseID: "strong", Company: "Strong", Year: 2012, FlagIDs: []string{"a", "b", "c"}},
	}}
	matcher := NewPatternMatcher(library)

	matches, risk := matcher.Match([]string{"a", "b", "c"})
	require.Len(t, matches, 2)
	assert.True(t, risk.Equal(valueobject.PatternRiskCritical), "strong is an exact match")
}

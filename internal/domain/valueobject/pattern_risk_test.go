package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatternRiskFromSimilarity(t *testing.T) {
	tests := []struct {
		name       string
		similarity float64
		want       PatternRisk
	}{
		{"critical lower bound", 0.70, PatternRiskCritical},
		{"exact match", 1.0, PatternRiskCritical},
		{"just below critical", 0.699, PatternRiskHigh},
		{"high lower bound", 0.50, PatternRiskHigh},
		{"just below high", 0.499, PatternRiskMedium},
		{"at the match floor", 0.30, PatternRiskMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, PatternRiskFromSimilarity(tt.similarity).Equal(tt.want))
		})
	}
}

func TestPatternRiskMax(t *testing.T) {
	assert.True(t, PatternRiskNone.Max(PatternRiskMedium).Equal(PatternRiskMedium))
	assert.True(t, PatternRiskCritical.Max(PatternRiskHigh).Equal(PatternRiskCritical))
	assert.True(t, PatternRiskHigh.Max(PatternRiskHigh).Equal(PatternRiskHigh))
	assert.True(t, PatternRiskNone.Max(PatternRiskNone).Equal(PatternRiskNone))
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashent3/redflags-sub001/internal/domain/valueobject"
)

func TestDefaultCatalog(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	assert.Equal(t, 54, catalog.Len())

	perCategory := map[string]int{}
	seen := map[string]bool{}
	for _, def := range catalog.Checks() {
		assert.False(t, seen[def.ID], "duplicate check id %s", def.ID)
		seen[def.ID] = true
		perCategory[def.Category.String()]++

		if def.Kind == KindTextual {
			assert.NotEmpty(t, def.Section, "textual check %s needs a section", def.ID)
		} else {
			assert.Contains(t, numericChecks, def.EvalFn, "check %s", def.ID)
		}
	}

	assert.Equal(t, map[string]int{
		"AUDITOR":       8,
		"CASH_FLOW":     8,
		"RELATED_PARTY": 7,
		"PROMOTER":      7,
		"GOVERNANCE":    8,
		"BALANCE_SHEET": 7,
		"REVENUE":       3,
		"TEXTUAL":       6,
	}, perCategory)
}

func TestCatalogLookup(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	def, ok := catalog.Lookup("negative_cfo_positive_pat")
	require.True(t, ok)
	assert.True(t, def.Severity.Equal(valueobject.SeverityCritical))
	assert.True(t, def.Category.Equal(valueobject.CategoryCashFlow))

	_, ok = catalog.Lookup("nonexistent_check")
	assert.False(t, ok)
}

func TestNewCatalogValidation(t *testing.T) {
	valid := CheckDefinition{
		ID:       "leverage_high",
		Title:    "Debt-to-equity above tolerance",
		Category: valueobject.CategoryBalanceSheet,
		Severity: valueobject.SeverityHigh,
		EvalFn:   "leverage_high",
	}

	tests := []struct {
		name string
		defs []CheckDefinition
	}{
		{"empty catalog", nil},
		{"duplicate id", []CheckDefinition{valid, valid}},
		{"empty id", []CheckDefinition{{Category: valueobject.CategoryRevenue, Severity: valueobject.SeverityLow, EvalFn: "revenue_spike"}}},
		{"unknown eval fn", []CheckDefinition{{ID: "x", Category: valueobject.CategoryRevenue, Severity: valueobject.SeverityLow, EvalFn: "no_such_fn"}}},
		{"textual without section", []CheckDefinition{{ID: "x", Category: valueobject.CategoryTextual, Severity: valueobject.SeverityMedium, Kind: KindTextual}}},
		{"textual outside textual category", []CheckDefinition{{ID: "x", Category: valueobject.CategoryRevenue, Severity: valueobject.SeverityMedium, Kind: KindTextual, Section: "mdna"}}},
		{"missing severity", []CheckDefinition{{ID: "x", Category: valueobject.CategoryRevenue, EvalFn: "revenue_spike"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.defs)
			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
		})
	}
}

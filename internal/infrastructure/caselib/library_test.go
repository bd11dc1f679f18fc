package caselib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashent3/redflags-sub001/internal/domain/service"
)

func testCatalog(t *testing.T) *service.Catalog {
	t.Helper()
	catalog, err := service.DefaultCatalog()
	require.NoError(t, err)
	return catalog
}

func TestLoadEmbeddedDataset(t *testing.T) {
	lib, err := Load("", testCatalog(t))
	require.NoError(t, err)

	assert.NotEmpty(t, lib.Version())
	cases := lib.Cases()
	require.NotEmpty(t, cases)

	ids := map[string]bool{}
	for _, c := range cases {
		assert.False(t, ids[c.CaseID], "duplicate case %s", c.CaseID)
		ids[c.CaseID] = true
		assert.NotEmpty(t, c.Company)
		assert.NotEmpty(t, c.FlagIDs, "case %s", c.CaseID)
	}
	assert.True(t, ids["satyam-2009"], "the canonical precedent must ship")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.json")
	content := `{
		"version": "test-1",
		"cases": [
			{"case_id": "c1", "company": "One Ltd", "year": 2015,
			 "flag_ids": ["auditor_change", "cfo_pat_divergence"]}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	lib, err := Load(path, testCatalog(t))
	require.NoError(t, err)
	assert.Equal(t, "test-1", lib.Version())
	require.Len(t, lib.Cases(), 1)
	assert.Equal(t, "c1", lib.Cases()[0].CaseID)
}

func TestLoadRejectsDefects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown flag", `{"version": "v", "cases": [{"case_id": "c1", "company": "X", "year": 2015, "flag_ids": ["no_such_flag"]}]}`},
		{"missing version", `{"cases": [{"case_id": "c1", "company": "X", "year": 2015, "flag_ids": ["auditor_change"]}]}`},
		{"no cases", `{"version": "v", "cases": []}`},
		{"empty case id", `{"version": "v", "cases": [{"case_id": "", "company": "X", "year": 2015, "flag_ids": ["auditor_change"]}]}`},
		{"duplicate case id", `{"version": "v", "cases": [
			{"case_id": "c1", "company": "X", "year": 2015, "flag_ids": ["auditor_change"]},
			{"case_id": "c1", "company": "Y", "year": 2016, "flag_ids": ["cfo_exit"]}]}`},
		{"case without flags", `{"version": "v", "cases": [{"case_id": "c1", "company": "X", "year": 2015, "flag_ids": []}]}`},
		{"malformed json", `{"version": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cases.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := Load(path, testCatalog(t))
			var cfgErr *service.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestReloadKeepsOldDataOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cases.json")
	good := `{"version": "v1", "cases": [{"case_id": "c1", "company": "X", "year": 2015, "flag_ids": ["auditor_change"]}]}`
	require.NoError(t, os.WriteFile(path, []byte(good), 0o600))

	lib, err := Load(path, testCatalog(t))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`{"version": "v2", "cases": []}`), 0o600))
	assert.Error(t, lib.Reload())
	assert.Equal(t, "v1", lib.Version(), "failed reload must not clobber the loaded dataset")
	assert.Len(t, lib.Cases(), 1)
}

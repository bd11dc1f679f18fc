// Package caselib loads the static, versioned library of historical fraud
// cases used by the pattern matcher. The dataset ships embedded and can be
// overridden with a file; it is loaded once per process and reloadable on
// explicit request.
package caselib

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/akashent3/redflags-sub001/internal/domain/model"
	"github.com/akashent3/redflags-sub001/internal/domain/service"
)

//go:embed cases.json
var embeddedCases []byte

// Library implements port.CaseLibrary.
type Library struct {
	mu      sync.RWMutex
	path    string // empty means the embedded dataset
	catalog *service.Catalog
	cases   []model.FraudCase
	version string
}

type libraryFile struct {
	Version string `json:"version"`
	Cases   []struct {
		CaseID  string   `json:"case_id"`
		Company string   `json:"company"`
		Year    int      `json:"year"`
		FlagIDs []string `json:"flag_ids"`
	} `json:"cases"`
}

// Load builds the library from path (or the embedded dataset when path is
// empty) and validates every flag id against the check catalog. A case
// referencing an unknown flag is a ConfigurationError.
func Load(path string, catalog *service.Catalog) (*Library, error) {
	lib := &Library{path: path, catalog: catalog}
	if err := lib.Reload(); err != nil {
		return nil, err
	}
	return lib, nil
}

// Reload re-reads the dataset. On error the previously loaded cases stay in
// effect.
func (l *Library) Reload() error {
	raw := embeddedCases
	if l.path != "" {
		data, err := os.ReadFile(l.path)
		if err != nil {
			return &service.ConfigurationError{Detail: fmt.Sprintf("read case library %s: %v", l.path, err)}
		}
		raw = data
	}

	var file libraryFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return &service.ConfigurationError{Detail: fmt.Sprintf("parse case library: %v", err)}
	}
	if file.Version == "" {
		return &service.ConfigurationError{Detail: "case library has no version"}
	}
	if len(file.Cases) == 0 {
		return &service.ConfigurationError{Detail: "case library is empty"}
	}

	seen := make(map[string]struct{}, len(file.Cases))
	cases := make([]model.FraudCase, 0, len(file.Cases))
	for _, c := range file.Cases {
		if c.CaseID == "" {
			return &service.ConfigurationError{Detail: "case with empty id"}
		}
		if _, dup := seen[c.CaseID]; dup {
			return &service.ConfigurationError{Detail: fmt.Sprintf("duplicate case id %q", c.CaseID)}
		}
		seen[c.CaseID] = struct{}{}
		if len(c.FlagIDs) == 0 {
			return &service.ConfigurationError{Detail: fmt.Sprintf("case %s has no flags", c.CaseID)}
		}
		for _, id := range c.FlagIDs {
			if _, ok := l.catalog.Lookup(id); !ok {
				return &service.ConfigurationError{Detail: fmt.Sprintf(
					"case %s references unknown flag %q", c.CaseID, id)}
			}
		}
		cases = append(cases, model.FraudCase{
			CaseID:  c.CaseID,
			Company: c.Company,
			Year:    c.Year,
			FlagIDs: c.FlagIDs,
		})
	}

	l.mu.Lock()
	l.cases = cases
	l.version = file.Version
	l.mu.Unlock()
	return nil
}

// Cases returns the loaded fraud cases.
func (l *Library) Cases() []model.FraudCase {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.FraudCase, len(l.cases))
	copy(out, l.cases)
	return out
}

// Version returns the dataset version string.
func (l *Library) Version() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}

package service

import (
	"sort"

	"github.com/akashent3/redflags-sub001/internal/domain/model"
	"github.com/akashent3/redflags-sub001/internal/domain/port"
	"github.com/akashent3/redflags-sub001/internal/domain/valueobject"
)

// Minimum Jaccard similarity for a historical case to count as a match.
const defaultMatchFloor = 0.30

// PatternMatcher ranks historical fraud cases by the Jaccard similarity of
// their canonical flag sets against the current report's triggered flags.
// Severity is ignored here; only flag identity matters.
type PatternMatcher struct {
	library port.CaseLibrary
	floor   float64
}

// NewPatternMatcher builds a matcher over the loaded case library.
func NewPatternMatcher(library port.CaseLibrary) *PatternMatcher {
	return &PatternMatcher{library: library, floor: defaultMatchFloor}
}

// WithMatchFloor overrides the similarity floor.
func (m *PatternMatcher) WithMatchFloor(floor float64) *PatternMatcher {
	m.floor = floor
	return m
}

// Match returns every case clearing the similarity floor, sorted by
// similarity descending, ties broken by case recency then case id, together
// with the aggregate pattern risk: the highest band among survivors, or NONE
// when nothing clears the floor.
func (m *PatternMatcher) Match(triggeredFlagIDs []string) ([]model.PatternMatch, valueobject.PatternRisk) {
	current := make(map[string]struct{}, len(triggeredFlagIDs))
	for _, id := range triggeredFlagIDs {
		current[id] = struct{}{}
	}

	var matches []model.PatternMatch
	aggregate := valueobject.PatternRiskNone

	for _, fc := range m.library.Cases() {
		similarity, overlap := jaccard(current, fc.FlagSet())
		if similarity < m.floor {
			continue
		}
		band := valueobject.PatternRiskFromSimilarity(similarity)
		aggregate = aggregate.Max(band)
		matches = append(matches, model.PatternMatch{
			CaseID:           fc.CaseID,
			Company:          fc.Company,
			Year:             fc.Year,
			Similarity:       similarity,
			OverlappingFlags: overlap,
			Band:             band,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		if matches[i].Year != matches[j].Year {
			return matches[i].Year > matches[j].Year
		}
		return matches[i].CaseID < matches[j].CaseID
	})

	return matches, aggregate
}

// jaccard computes |a∩b| / |a∪b| and the sorted overlap. An empty union
// yields zero, so a report with no triggered flags matches nothing.
func jaccard(a, b map[string]struct{}) (float64, []string) {
	var overlap []string
	union := len(b)
	for id := range a {
		if _, ok := b[id]; ok {
			overlap = append(overlap, id)
		} else {
			union++
		}
	}
	if union == 0 {
		return 0, nil
	}
	sort.Strings(overlap)
	return float64(len(overlap)) / float64(union), overlap
}

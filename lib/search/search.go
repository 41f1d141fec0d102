// Package search finds catalog items by display name. An exact pass
// matches the query as a case-insensitive substring; when that yields
// too few hits a fuzzy pass ranks the remaining names by string
// similarity so typos still land on the right item.
package search

import (
	"fmt"
	"sort"
	"strings"

	"osrs-info/lib/catalog"
	"osrs-info/lib/textutil"

	"github.com/antzucaro/matchr"
)

// ErrEmptyQuery is returned when the query is empty or whitespace.
var ErrEmptyQuery = fmt.Errorf("search query is empty")

// Scorer rates how close a candidate name is to the query on a 0..1
// scale. Both strings arrive already lowercased and trimmed.
type Scorer interface {
	Score(query, candidate string) float64
}

// JaroWinkler scores with the Jaro-Winkler metric, which favors
// matching prefixes. That suits item names, where typos tend to sit at
// the end ("abbysal whip" notwithstanding).
type JaroWinkler struct{}

func (JaroWinkler) Score(query, candidate string) float64 {
	return matchr.JaroWinkler(query, candidate, false)
}

// Result pairs a matched item with the score that ranked it. Substring
// matches always score 1.
type Result struct {
	Item  catalog.Item
	Score float64
}

// Searcher holds the knobs for a search pass. The zero value scores
// with JaroWinkler at a 0.85 threshold, falls back to fuzzy matching
// only when the substring pass finds nothing, and caps fuzzy hits at 10.
type Searcher struct {
	// Scorer rates fuzzy candidates. Defaults to JaroWinkler.
	Scorer Scorer
	// Threshold is the minimum fuzzy score to keep. Defaults to 0.85.
	Threshold float64
	// MinResults is how many substring hits suppress the fuzzy pass.
	// Defaults to 1.
	MinResults int
	// Limit caps how many fuzzy hits are appended. Defaults to 10.
	Limit int
	// Aliases maps shorthand queries to the query actually searched,
	// e.g. "dds" to "dragon dagger". Keys are matched caselessly.
	Aliases map[string]string
}

func (s Searcher) withDefaults() Searcher {
	if s.Scorer == nil {
		s.Scorer = JaroWinkler{}
	}
	if s.Threshold == 0 {
		s.Threshold = 0.85
	}
	if s.MinResults == 0 {
		s.MinResults = 1
	}
	if s.Limit == 0 {
		s.Limit = 10
	}
	return s
}

// Search matches query against the tradeable items of the catalog.
// Results are ordered by descending score, then by name. When fuzzy is
// false only the substring pass runs.
func (s Searcher) Search(cat *catalog.Catalog, query string, fuzzy bool) ([]Result, error) {
	s = s.withDefaults()

	folded := textutil.Fold(query)
	if folded == "" {
		return nil, ErrEmptyQuery
	}
	for alias, target := range s.Aliases {
		if textutil.Fold(alias) == folded {
			folded = textutil.Fold(target)
			break
		}
	}

	results := []Result{}
	matched := map[int]bool{}
	for _, item := range cat.Tradeable() {
		if strings.Contains(textutil.Fold(item.Name), folded) {
			results = append(results, Result{Item: item, Score: 1})
			matched[item.ID] = true
		}
	}

	if fuzzy && len(results) < s.MinResults {
		results = append(results, s.fuzzyPass(cat, folded, matched)...)
	}

	sort.Slice(results, func(a, b int) bool {
		if results[a].Score != results[b].Score {
			return results[a].Score > results[b].Score
		}
		return results[a].Item.Name < results[b].Item.Name
	})
	return results, nil
}

func (s Searcher) fuzzyPass(cat *catalog.Catalog, folded string, matched map[int]bool) []Result {
	hits := []Result{}
	for _, item := range cat.Tradeable() {
		if matched[item.ID] {
			continue
		}
		score := s.Scorer.Score(folded, textutil.Fold(item.Name))
		if score >= s.Threshold {
			hits = append(hits, Result{Item: item, Score: score})
		}
	}
	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Score != hits[b].Score {
			return hits[a].Score > hits[b].Score
		}
		return hits[a].Item.Name < hits[b].Item.Name
	})
	if len(hits) > s.Limit {
		hits = hits[:s.Limit]
	}
	return hits
}

package search

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	"osrs-info/lib/catalog"
	"osrs-info/lib/testutil"
	"osrs-info/lib/wikiprices"

	"github.com/stretchr/testify/require"
)

type staticSource struct {
	names map[int]string
}

func (s staticSource) Mapping(ctx context.Context) ([]wikiprices.MappingEntry, error) {
	entries := []wikiprices.MappingEntry{}
	for id, name := range s.names {
		entries = append(entries, wikiprices.MappingEntry{ID: id, Name: name})
	}
	return entries, nil
}

func (s staticSource) Latest(ctx context.Context) (map[int]wikiprices.PriceQuote, error) {
	quotes := map[int]wikiprices.PriceQuote{}
	for id := range s.names {
		quotes[id] = wikiprices.PriceQuote{High: 1}
	}
	return quotes, nil
}

func testCatalog(t *testing.T) *catalog.Catalog {
	source := staticSource{names: map[int]string{
		4151:  "Abyssal whip",
		13263: "Abyssal bludgeon",
		13265: "Abyssal dagger",
		1215:  "Dragon dagger",
		4587:  "Dragon scimitar",
		1333:  "Rune scimitar",
		11832: "Bandos chestplate",
		90001: "Abyssal whip (Deadman Mode)",
	}}
	cat, err := catalog.NewCache(source, catalog.Options{}).Get(context.Background())
	require.NoError(t, err)
	return cat
}

func names(results []Result) []string {
	out := []string{}
	for _, result := range results {
		out = append(out, result.Item.Name)
	}
	return out
}

func TestSearchSubstring(t *testing.T) {
	cat := testCatalog(t)
	searcher := Searcher{}

	{
		results, err := searcher.Search(cat, "abyssal", false)
		require.NoError(t, err)
		require.Equal(t, []string{
			"Abyssal bludgeon",
			"Abyssal dagger",
			"Abyssal whip",
		}, names(results))
		for _, result := range results {
			require.Equal(t, float64(1), result.Score)
		}
	}
	{
		results, err := searcher.Search(cat, "  ABYSSAL WHIP ", false)
		require.NoError(t, err)
		require.Equal(t, []string{"Abyssal whip"}, names(results))
	}
	{
		// seasonal duplicates never surface
		results, err := searcher.Search(cat, "deadman", true)
		require.NoError(t, err)
		require.Empty(t, results)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	cat := testCatalog(t)
	searcher := Searcher{}

	_, err := searcher.Search(cat, "", false)
	require.ErrorIs(t, err, ErrEmptyQuery)
	_, err = searcher.Search(cat, "   ", true)
	require.ErrorIs(t, err, ErrEmptyQuery)
}

func TestSearchFuzzyFallback(t *testing.T) {
	cat := testCatalog(t)
	searcher := Searcher{}

	{
		results, err := searcher.Search(cat, "abysal wip", true)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		require.Equal(t, "Abyssal whip", results[0].Item.Name)
		for _, result := range results {
			require.Less(t, result.Score, float64(1))
			require.GreaterOrEqual(t, result.Score, 0.85)
		}
	}
	{
		// fuzzy disabled means typos simply miss
		results, err := searcher.Search(cat, "abysal wip", false)
		require.NoError(t, err)
		require.Empty(t, results)
	}
	{
		// enough substring hits suppress the fuzzy pass entirely
		results, err := searcher.Search(cat, "dagger", true)
		require.NoError(t, err)
		require.Equal(t, []string{"Abyssal dagger", "Dragon dagger"}, names(results))
	}
}

func TestSearchAliases(t *testing.T) {
	cat := testCatalog(t)
	searcher := Searcher{Aliases: map[string]string{"DDS": "dragon dagger"}}

	results, err := searcher.Search(cat, "dds", false)
	require.NoError(t, err)
	require.Equal(t, []string{"Dragon dagger"}, names(results))
}

// buries a handful of real names in random noise and checks the
// substring pass never returns a name the query isn't part of.
func TestSearchNoisyCatalog(t *testing.T) {
	rndm := rand.New(rand.NewSource(11))

	items := map[int]string{
		4151: "Abyssal whip",
		1215: "Dragon dagger",
	}
	for id := 100000; id < 100040; id++ {
		items[id] = testutil.RandomString(rndm, 12)
	}

	cat, err := catalog.NewCache(staticSource{names: items}, catalog.Options{}).Get(context.Background())
	require.NoError(t, err)

	searcher := Searcher{}
	results, err := searcher.Search(cat, "whip", false)
	require.NoError(t, err)
	require.Contains(t, names(results), "Abyssal whip")
	for _, result := range results {
		require.True(t, strings.Contains(strings.ToLower(result.Item.Name), "whip"))
	}
}

type constantScorer struct {
	score float64
}

func (c constantScorer) Score(query, candidate string) float64 {
	return c.score
}

func TestSearchScorerAndLimit(t *testing.T) {
	cat := testCatalog(t)
	searcher := Searcher{Scorer: constantScorer{score: 0.9}, Limit: 2}

	results, err := searcher.Search(cat, "zzzz", true)
	require.NoError(t, err)
	// every candidate ties, so the limit keeps the first two by name
	require.Equal(t, []string{"Abyssal bludgeon", "Abyssal dagger"}, names(results))

	searcher.Scorer = constantScorer{score: 0.2}
	results, err = searcher.Search(cat, "zzzz", true)
	require.NoError(t, err)
	require.Empty(t, results)
}

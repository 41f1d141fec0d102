package osrs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"osrs-info/lib/hiscores"
	"osrs-info/lib/telemetry"
	"osrs-info/lib/wikiprices"

	"github.com/stretchr/testify/require"
)

func liteFixture(overall string) string {
	var b strings.Builder
	for i := range hiscores.SkillNames {
		if i == 0 {
			b.WriteString(overall + "\n")
			continue
		}
		b.WriteString("-1,-1,-1\n")
	}
	for range hiscores.ActivityNames {
		b.WriteString("-1,-1\n")
	}
	return b.String()
}

type upstream struct {
	mappingCalls atomic.Int64
}

func (u *upstream) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/mapping", func(w http.ResponseWriter, r *http.Request) {
		u.mappingCalls.Add(1)
		w.Write([]byte(`[
			{"id":4151,"name":"Abyssal whip","limit":70},
			{"id":1712,"name":"Amulet of glory(4)"},
			{"id":617,"name":"Coins"}
		]`))
	})
	mux.HandleFunc("/latest", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{
			"4151":{"high":2300000,"highTime":1700000000,"low":2200000,"lowTime":1700000100},
			"1712":{"high":12000}
		}}`))
	})
	mux.HandleFunc("/timeseries", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"timestamp":1700000000,"avgHighPrice":2310000}]}`))
	})
	mux.HandleFunc("/volumes", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"timestamp":1700006400,"data":{"4151":5000}}`))
	})
	mux.HandleFunc("/m=hiscore_oldschool/index_lite.ws", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("player") != "gielinor" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(liteFixture("10000,2277,4600000000")))
	})
	mux.HandleFunc("/m=hiscore_oldschool_ironman/index_lite.ws", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("player") != "gielinor" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(liteFixture("64000,1500,300000000")))
	})
	return mux
}

func setup(t *testing.T, config Config) (*Decoder, func()) {
	cleanup := telemetry.SetupForTesting(t, "test:osrs")

	server := httptest.NewServer((&upstream{}).handler())
	config.UserAgent = "osrs-info (test)"
	config.HiscoresBaseUrl = server.URL
	config.PricesBaseUrl = server.URL
	return New(config), func() {
		server.Close()
		cleanup()
	}
}

func TestDecoderStats(t *testing.T) {
	decoder, cleanup := setup(t, Config{})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		stats, err := decoder.GetStats(ctx, "gielinor", ModeNormal)
		require.NoError(t, err)
		require.Equal(t, 2277, stats.Overall().Level)
	}
	{
		_, err := decoder.GetStats(ctx, "nobody", ModeNormal)
		require.ErrorIs(t, err, ErrPlayerNotFound)
	}
	{
		_, err := decoder.GetStats(ctx, "", ModeNormal)
		require.ErrorIs(t, err, ErrEmptyPlayer)
	}
}

func TestDecoderDefaultMode(t *testing.T) {
	decoder, cleanup := setup(t, Config{DefaultMode: "ironman"})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		stats, err := decoder.GetStats(ctx, "gielinor", "")
		require.NoError(t, err)
		require.Equal(t, 1500, stats.Overall().Level)
	}
	{
		stats, err := decoder.GetStats(ctx, "gielinor", ModeNormal)
		require.NoError(t, err)
		require.Equal(t, 2277, stats.Overall().Level)
	}
}

func TestDecoderSearch(t *testing.T) {
	decoder, cleanup := setup(t, Config{
		SearchAliases: map[string]string{"whippy": "abyssal whip"},
	})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		results, err := decoder.Search(ctx, "whip", false)
		require.NoError(t, err)
		require.Len(t, results, 1)
		require.Equal(t, "Abyssal whip", results[0].Item.Name)
	}
	{
		results, err := decoder.Search(ctx, "abbysal whip", true)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		require.Equal(t, "Abyssal whip", results[0].Item.Name)
	}
	{
		results, err := decoder.Search(ctx, "whippy", false)
		require.NoError(t, err)
		require.Len(t, results, 1)
	}
	{
		_, err := decoder.Search(ctx, "  ", true)
		require.ErrorIs(t, err, ErrInvalidQuery)
	}
}

func TestDecoderFuzzyDisabled(t *testing.T) {
	decoder, cleanup := setup(t, Config{DisableFuzzy: true})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	results, err := decoder.Search(ctx, "abbysal whip", true)
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestDecoderPrices(t *testing.T) {
	decoder, cleanup := setup(t, Config{})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		batch, err := decoder.GetPrices(ctx, 4151, 1712, 617)
		require.NoError(t, err)
		require.Len(t, batch.Records, 1)
		require.Equal(t, []int{617, 1712}, batch.Skipped)
		require.Equal(t, int64(5000), batch.Records[4151].Volume)
	}
	{
		quote, err := decoder.Price(ctx, 4151)
		require.NoError(t, err)
		require.Equal(t, "Abyssal whip", quote.Item.Name)
		require.Equal(t, int64(2300000), quote.Record.High)
	}
	{
		_, err := decoder.Price(ctx, 1712)
		require.ErrorIs(t, err, ErrNotTradeable)
	}
	{
		points, err := decoder.History(ctx, 4151, wikiprices.Step24h)
		require.NoError(t, err)
		require.Len(t, points, 1)
	}
}

func TestDecoderJunkOverride(t *testing.T) {
	decoder, cleanup := setup(t, Config{
		JunkCategories: []string{"seasonal", "nonsense"},
	})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	// charged variants are junk by default but allowed here
	quote, err := decoder.Price(ctx, 1712)
	require.NoError(t, err)
	require.Equal(t, "Amulet of glory(4)", quote.Item.Name)
}

func TestDecoderCatalogCaching(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:osrs")
	defer cleanup()

	up := &upstream{}
	server := httptest.NewServer(up.handler())
	defer server.Close()

	decoder := New(Config{
		UserAgent:       "osrs-info (test)",
		HiscoresBaseUrl: server.URL,
		PricesBaseUrl:   server.URL,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	first, err := decoder.Items(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, first.Len())
	_, err = decoder.Items(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), up.mappingCalls.Load())

	_, err = decoder.Refresh(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), up.mappingCalls.Load())
}

func TestRateLimitDetection(t *testing.T) {
	require.True(t, IsRateLimited(hiscores.ErrRateLimited))
	require.True(t, IsRateLimited(wikiprices.ErrRateLimited))
	require.False(t, IsRateLimited(errors.New("boom")))
	require.False(t, IsRateLimited(nil))
}

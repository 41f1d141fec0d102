// Package osrs is the top-level decoder for game data: player stats
// from the hiscores, item prices from the wiki feed and the item
// catalog that ties the two together. It wires the lower-level clients
// behind one configuration and one entry point.
package osrs

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"osrs-info/lib/catalog"
	"osrs-info/lib/ge"
	"osrs-info/lib/hiscores"
	"osrs-info/lib/search"
	"osrs-info/lib/telemetry"
	"osrs-info/lib/wikiprices"
)

var tracer = telemetry.Tracer("osrs.lib.osrs")

// Config holds every knob a decoder has. The zero value talks to the
// live endpoints with sane defaults.
type Config struct {
	// UserAgent identifies this client to upstream. The wiki admins
	// ask for something descriptive with contact info.
	UserAgent string `json:"user_agent"`
	// TimeoutSeconds bounds each upstream request. Defaults to 10.
	TimeoutSeconds int `json:"timeout_seconds"`

	HiscoresBaseUrl string `json:"hiscores_base_url"`
	PricesBaseUrl   string `json:"prices_base_url"`

	// DefaultMode is the leaderboard stats calls use when the caller
	// passes an empty mode. Accepts the same spellings as ParseMode.
	DefaultMode string `json:"default_mode"`

	// JunkCategories names the item categories excluded from search
	// and pricing. Defaults to charged, corrupted and seasonal.
	JunkCategories []string `json:"junk_categories"`

	// SearchAliases maps shorthand queries to the query actually run.
	SearchAliases map[string]string `json:"search_aliases"`
	// FuzzyThreshold is the minimum similarity for fuzzy search hits.
	FuzzyThreshold float64 `json:"fuzzy_threshold"`
	// FuzzyLimit caps how many fuzzy hits a search returns.
	FuzzyLimit int `json:"fuzzy_limit"`
	// DisableFuzzy turns the fuzzy fallback off for every search,
	// regardless of what callers pass.
	DisableFuzzy bool `json:"disable_fuzzy"`
}

func (c Config) junk() []catalog.Category {
	if c.JunkCategories == nil {
		return nil
	}
	categories := []catalog.Category{}
	for _, name := range c.JunkCategories {
		category, err := catalog.ParseCategory(name)
		if err != nil {
			slog.Warn("ignoring unknown junk category in config", "category", name)
			continue
		}
		categories = append(categories, category)
	}
	return categories
}

// Decoder exposes every lookup this module can do. Construct one with
// New and share it; all methods are safe for concurrent use.
type Decoder struct {
	hiscores *hiscores.Client
	prices   *wikiprices.Client
	ge       *ge.Client
	catalog  *catalog.Cache
	searcher search.Searcher

	defaultMode Mode
	fuzzyOff    bool
}

func New(config Config) *Decoder {
	timeout := time.Duration(config.TimeoutSeconds) * time.Second

	defaultMode, err := hiscores.ParseMode(config.DefaultMode)
	if err != nil {
		slog.Warn("ignoring unknown default mode in config", "mode", config.DefaultMode)
		defaultMode = hiscores.ModeNormal
	}

	prices := wikiprices.NewClient(wikiprices.ClientOptions{
		BaseUrl:   config.PricesBaseUrl,
		UserAgent: config.UserAgent,
		Timeout:   timeout,
	})
	hs := hiscores.NewClient(hiscores.ClientOptions{
		BaseUrl:   config.HiscoresBaseUrl,
		UserAgent: config.UserAgent,
		Timeout:   timeout,
	})
	cache := catalog.NewCache(prices, catalog.Options{
		Junk: config.junk(),
	})

	return &Decoder{
		hiscores: hs,
		prices:   prices,
		ge:       ge.NewClient(prices, cache),
		catalog:  cache,
		searcher: search.Searcher{
			Threshold: config.FuzzyThreshold,
			Limit:     config.FuzzyLimit,
			Aliases:   config.SearchAliases,
		},
		defaultMode: defaultMode,
		fuzzyOff:    config.DisableFuzzy,
	}
}

// mode substitutes the configured default when the caller passes an
// empty mode.
func (d *Decoder) mode(mode Mode) Mode {
	if mode == "" {
		return d.defaultMode
	}
	return mode
}

// GetStats fetches a player's stats from the mode's leaderboard.
func (d *Decoder) GetStats(ctx context.Context, player string, mode Mode) (hiscores.PlayerStats, error) {
	return d.hiscores.Stats(ctx, player, d.mode(mode))
}

// GetStatsJSON fetches stats through the self-describing JSON endpoint.
func (d *Decoder) GetStatsJSON(ctx context.Context, player string, mode Mode) (hiscores.PlayerStats, error) {
	return d.hiscores.StatsJSON(ctx, player, d.mode(mode))
}

// Rankings scrapes one page of a leaderboard table.
func (d *Decoder) Rankings(ctx context.Context, req hiscores.RankingsRequest) ([]hiscores.RankingEntry, error) {
	req.Mode = d.mode(req.Mode)
	return d.hiscores.Rankings(ctx, req)
}

// Items returns the loaded catalog, fetching it on first use.
func (d *Decoder) Items(ctx context.Context) (*catalog.Catalog, error) {
	return d.catalog.Get(ctx)
}

// Refresh reloads the catalog from upstream.
func (d *Decoder) Refresh(ctx context.Context) (*catalog.Catalog, error) {
	return d.catalog.Refresh(ctx)
}

// Search finds tradeable items by name. With fuzzy set, a query with no
// substring hits falls back to similarity matching; DisableFuzzy in
// the config overrides the flag.
func (d *Decoder) Search(ctx context.Context, query string, fuzzy bool) ([]search.Result, error) {
	fuzzy = fuzzy && !d.fuzzyOff
	ctx, span := tracer.Start(ctx, "decoder:Search")
	defer span.End()
	span.SetAttributes(
		attribute.String("query", query),
		attribute.Bool("fuzzy", fuzzy),
	)

	cat, err := d.catalog.Get(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog unavailable")
		return nil, err
	}
	results, err := d.searcher.Search(cat, query, fuzzy)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("results", len(results)))
	return results, nil
}

// GetPrices prices a batch of items, skipping the ones it cannot price.
func (d *Decoder) GetPrices(ctx context.Context, ids ...int) (ge.Batch, error) {
	return d.ge.GetPrices(ctx, ids...)
}

// Price prices one item and returns its catalog entry alongside.
func (d *Decoder) Price(ctx context.Context, id int) (ge.Quote, error) {
	return d.ge.Price(ctx, id)
}

// History returns the aggregated trade series for an item.
func (d *Decoder) History(ctx context.Context, id int, step wikiprices.Timestep) ([]wikiprices.TimeseriesPoint, error) {
	return d.ge.History(ctx, id, step)
}

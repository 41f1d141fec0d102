package catalog

import (
	"context"
	"fmt"
	"sync"

	"osrs-info/lib/telemetry"
	"osrs-info/lib/wikiprices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("osrs.lib.catalog")

// ErrLoad wraps every failure to download or assemble the item catalog.
var ErrLoad = fmt.Errorf("could not load item catalog")

// Source provides the two upstream documents a catalog is built from.
// *wikiprices.Client satisfies it.
type Source interface {
	Mapping(ctx context.Context) ([]wikiprices.MappingEntry, error)
	Latest(ctx context.Context) (map[int]wikiprices.PriceQuote, error)
}

// Options tune how a Cache classifies and filters the catalog it builds.
// The zero value uses DefaultRules and treats charged, corrupted and
// seasonal variants as junk.
type Options struct {
	Rules []Rule
	Junk  []Category
}

func (o Options) withDefaults() Options {
	if o.Rules == nil {
		o.Rules = DefaultRules()
	}
	if o.Junk == nil {
		o.Junk = []Category{CategoryCharged, CategoryCorrupted, CategorySeasonal}
	}
	return o
}

// Cache loads the catalog at most once and hands the same snapshot to
// every caller afterwards. A failed load does not latch, so the next
// caller retries.
type Cache struct {
	source  Source
	options Options

	mutex   sync.Mutex
	current *Catalog
}

func NewCache(source Source, options Options) *Cache {
	return &Cache{
		source:  source,
		options: options.withDefaults(),
	}
}

// Get returns the cached catalog, loading it on the first call.
func (c *Cache) Get(ctx context.Context) (*Catalog, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.current != nil {
		return c.current, nil
	}
	return c.load(ctx)
}

// Refresh discards the cached snapshot and loads a fresh one.
func (c *Cache) Refresh(ctx context.Context) (*Catalog, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.load(ctx)
}

// load must be called with the mutex held.
func (c *Cache) load(ctx context.Context) (*Catalog, error) {
	ctx, span := tracer.Start(ctx, "catalog:load")
	defer span.End()

	entries, err := c.source.Mapping(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrLoad, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not download item mapping")
		return nil, err
	}
	quotes, err := c.source.Latest(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrLoad, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "could not download latest prices")
		return nil, err
	}

	built := build(entries, quotes, c.options.Rules, c.options.Junk)
	c.current = built

	span.SetAttributes(
		attribute.Int("items", built.Len()),
		attribute.Int("tradeable", len(built.Tradeable())),
	)
	return built, nil
}
